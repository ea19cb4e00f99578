package inputdecode

import "github.com/dormantflower/webgw/pkg/proto"

// eventKind tags a rawEvent as either a decoded key or a raw mouse report
// awaiting folding.
type eventKind int

const (
	eventKindKey eventKind = iota
	eventKindMouse
	eventKindOther
)

type rawEvent struct {
	kind  eventKind
	raw   []byte
	key   proto.Key
	mouse rawMouse
}

// parseLegacy scans buf left to right, recognizing C0 controls, printable
// UTF-8 runes, common xterm CSI/SS3 cursor and function-key sequences, and
// X10/SGR mouse reports. Unrecognized bytes are emitted as eventKindOther
// (logged and dropped by the caller) and the scanner advances by one byte
// so a single garbled sequence cannot wedge the rest of the buffer.
func parseLegacy(buf []byte) []rawEvent {
	var events []rawEvent
	i := 0
	for i < len(buf) {
		if buf[i] == 0x1b && i+1 < len(buf) {
			if n, ev, ok := tryParseEscape(buf[i:]); ok {
				events = append(events, ev)
				i += n
				continue
			}
		}

		if buf[i] < 0x80 {
			if ev, ok := controlOrPrintable(buf[i]); ok {
				events = append(events, ev)
			} else {
				events = append(events, rawEvent{kind: eventKindOther, raw: buf[i : i+1]})
			}
			i++
			continue
		}

		// Multi-byte UTF-8 rune.
		r, size := decodeRune(buf[i:])
		events = append(events, rawEvent{
			kind: eventKindKey,
			raw:  buf[i : i+size],
			key:  proto.Key{Kind: proto.KeyChar, Char: r},
		})
		i += size
	}
	return events
}

func controlOrPrintable(b byte) (rawEvent, bool) {
	switch b {
	case 0x0d:
		return rawEvent{kind: eventKindKey, raw: []byte{b}, key: proto.Key{Kind: proto.KeyEnter}}, true
	case 0x09:
		return rawEvent{kind: eventKindKey, raw: []byte{b}, key: proto.Key{Kind: proto.KeyTab}}, true
	case 0x7f:
		return rawEvent{kind: eventKindKey, raw: []byte{b}, key: proto.Key{Kind: proto.KeyBackspace}}, true
	case 0x1b:
		return rawEvent{kind: eventKindKey, raw: []byte{b}, key: proto.Key{Kind: proto.KeyEsc}}, true
	case 0x00:
		return rawEvent{kind: eventKindKey, raw: []byte{b}, key: proto.Key{Kind: proto.KeyNull}}, true
	}
	if b >= 0x01 && b <= 0x1a && b != 0x09 && b != 0x0d {
		// Ctrl-A..Ctrl-Z (excluding Tab/Enter, already handled above).
		return rawEvent{
			kind: eventKindKey,
			raw:  []byte{b},
			key:  proto.Key{Kind: proto.KeyChar, Char: rune('a' + b - 1), Modifiers: proto.KeyModifiers{Ctrl: true}},
		}, true
	}
	if b >= 0x20 && b < 0x7f {
		return rawEvent{kind: eventKindKey, raw: []byte{b}, key: proto.Key{Kind: proto.KeyChar, Char: rune(b)}}, true
	}
	return rawEvent{}, false
}

func decodeRune(buf []byte) (rune, int) {
	b0 := buf[0]
	var size int
	switch {
	case b0&0xe0 == 0xc0:
		size = 2
	case b0&0xf0 == 0xe0:
		size = 3
	case b0&0xf8 == 0xf0:
		size = 4
	default:
		return rune(b0), 1
	}
	if len(buf) < size {
		return rune(b0), 1
	}
	r := rune(b0 & (0xff >> uint(size+1)))
	for i := 1; i < size; i++ {
		if buf[i]&0xc0 != 0x80 {
			return rune(b0), 1
		}
		r = r<<6 | rune(buf[i]&0x3f)
	}
	return r, size
}

// tryParseEscape recognizes one CSI or SS3 sequence starting at buf[0]
// (which must be ESC). It returns the number of bytes consumed.
func tryParseEscape(buf []byte) (int, rawEvent, bool) {
	if len(buf) < 2 {
		return 0, rawEvent{}, false
	}

	switch buf[1] {
	case 'O': // SS3: ESC O <letter>  -- F1..F4
		if len(buf) < 3 {
			return 0, rawEvent{}, false
		}
		switch buf[2] {
		case 'P':
			return 3, keyEvent(buf[:3], proto.Key{Kind: proto.KeyFunction, FNum: 1}), true
		case 'Q':
			return 3, keyEvent(buf[:3], proto.Key{Kind: proto.KeyFunction, FNum: 2}), true
		case 'R':
			return 3, keyEvent(buf[:3], proto.Key{Kind: proto.KeyFunction, FNum: 3}), true
		case 'S':
			return 3, keyEvent(buf[:3], proto.Key{Kind: proto.KeyFunction, FNum: 4}), true
		}
		return 0, rawEvent{}, false

	case '[':
		return tryParseCSI(buf)
	}
	return 0, rawEvent{}, false
}

func keyEvent(raw []byte, key proto.Key) rawEvent {
	return rawEvent{kind: eventKindKey, raw: raw, key: key}
}

// tryParseCSI recognizes the ESC [ ... family: mouse reports, cursor keys,
// and numbered function/navigation keys terminated by '~'.
func tryParseCSI(buf []byte) (int, rawEvent, bool) {
	if len(buf) < 3 {
		return 0, rawEvent{}, false
	}

	switch buf[2] {
	case 'A':
		return 3, keyEvent(buf[:3], proto.Key{Kind: proto.KeyUp}), true
	case 'B':
		return 3, keyEvent(buf[:3], proto.Key{Kind: proto.KeyDown}), true
	case 'C':
		return 3, keyEvent(buf[:3], proto.Key{Kind: proto.KeyRight}), true
	case 'D':
		return 3, keyEvent(buf[:3], proto.Key{Kind: proto.KeyLeft}), true
	case 'H':
		return 3, keyEvent(buf[:3], proto.Key{Kind: proto.KeyHome}), true
	case 'F':
		return 3, keyEvent(buf[:3], proto.Key{Kind: proto.KeyEnd}), true
	case 'M':
		return tryParseX10Mouse(buf)
	case '<':
		return tryParseSGRMouse(buf)
	}

	// Numbered form: ESC [ <digits> ~
	if buf[2] >= '0' && buf[2] <= '9' {
		return tryParseNumberedKey(buf)
	}
	return 0, rawEvent{}, false
}

func tryParseNumberedKey(buf []byte) (int, rawEvent, bool) {
	i := 2
	for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
		i++
	}
	if i >= len(buf) || buf[i] != '~' || i == 2 {
		return 0, rawEvent{}, false
	}
	num := 0
	for _, c := range buf[2:i] {
		num = num*10 + int(c-'0')
	}
	n := i + 1

	switch num {
	case 1, 7:
		return n, keyEvent(buf[:n], proto.Key{Kind: proto.KeyHome}), true
	case 2:
		return n, keyEvent(buf[:n], proto.Key{Kind: proto.KeyInsert}), true
	case 3:
		return n, keyEvent(buf[:n], proto.Key{Kind: proto.KeyDelete}), true
	case 4, 8:
		return n, keyEvent(buf[:n], proto.Key{Kind: proto.KeyEnd}), true
	case 5:
		return n, keyEvent(buf[:n], proto.Key{Kind: proto.KeyPageUp}), true
	case 6:
		return n, keyEvent(buf[:n], proto.Key{Kind: proto.KeyPageDown}), true
	case 11, 12, 13, 14, 15:
		return n, keyEvent(buf[:n], proto.Key{Kind: proto.KeyFunction, FNum: num - 10}), true
	case 17, 18, 19, 20, 21:
		return n, keyEvent(buf[:n], proto.Key{Kind: proto.KeyFunction, FNum: num - 11}), true
	case 23, 24:
		return n, keyEvent(buf[:n], proto.Key{Kind: proto.KeyFunction, FNum: num - 12}), true
	}
	return 0, rawEvent{}, false
}

// tryParseX10Mouse recognizes legacy X10 mouse reports: ESC [ M Cb Cx Cy,
// three raw bytes each biased by +32.
func tryParseX10Mouse(buf []byte) (int, rawEvent, bool) {
	if len(buf) < 6 {
		return 0, rawEvent{}, false
	}
	cb := int(buf[3]) - 32
	cx := int(buf[4]) - 32
	cy := int(buf[5]) - 32
	if cx < 0 || cy < 0 {
		return 0, rawEvent{}, false
	}
	return 6, rawEvent{
		kind: eventKindMouse,
		raw:  buf[:6],
		mouse: rawMouse{
			buttonCode: cb,
			row:        uint16(cy),
			col:        uint16(cx),
			isRelease:  cb&3 == 3,
		},
	}, true
}

// tryParseSGRMouse recognizes SGR mouse reports:
// ESC [ < Cb ; Cx ; Cy M|m
func tryParseSGRMouse(buf []byte) (int, rawEvent, bool) {
	i := 3
	cb, i, ok := readDecimal(buf, i)
	if !ok || i >= len(buf) || buf[i] != ';' {
		return 0, rawEvent{}, false
	}
	i++
	cx, i, ok := readDecimal(buf, i)
	if !ok || i >= len(buf) || buf[i] != ';' {
		return 0, rawEvent{}, false
	}
	i++
	cy, i, ok := readDecimal(buf, i)
	if !ok || i >= len(buf) {
		return 0, rawEvent{}, false
	}
	final := buf[i]
	if final != 'M' && final != 'm' {
		return 0, rawEvent{}, false
	}
	n := i + 1
	return n, rawEvent{
		kind: eventKindMouse,
		raw:  buf[:n],
		mouse: rawMouse{
			buttonCode: cb,
			row:        uint16(cy),
			col:        uint16(cx),
			isRelease:  final == 'm',
		},
	}, true
}

func readDecimal(buf []byte, i int) (int, int, bool) {
	start := i
	n := 0
	for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
		n = n*10 + int(buf[i]-'0')
		i++
	}
	if i == start {
		return 0, i, false
	}
	return n, i, true
}
