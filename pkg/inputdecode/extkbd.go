package inputdecode

import (
	"strconv"

	"github.com/dormantflower/webgw/pkg/proto"
)

// Functional key codes in the private-use range, mirroring the assignment
// the kitty keyboard protocol uses for non-printable keys. The original
// KittyKeyboardParser this replaces lives in the untouched zellij_client
// crate, so these constants are re-derived from the protocol's public
// functional-key table rather than ported line-for-line.
const (
	codeEscape    = 27
	codeEnter     = 13
	codeTab       = 9
	codeBackspace = 127

	codeInsert   = 57348
	codeDelete   = 57349
	codeLeft     = 57350
	codeRight    = 57351
	codeUp       = 57352
	codeDown     = 57353
	codePageUp   = 57354
	codePageDown = 57355
	codeHome     = 57356
	codeEnd      = 57357
	codeF1       = 57364
	codeF35      = 57398
)

// tryParseExtended attempts to parse buf, in its entirety, as a single
// CSI-u extended keyboard report:
//
//	ESC [ codepoint (: alt-codepoint)? (; modifiers (: event-type)?)? u
//
// It returns ok=false unless buf is exactly one such report with nothing
// left over — the spec requires whole-buffer-or-nothing so legacy parsing
// is only ever a fallback, never a second opinion on the same bytes.
func tryParseExtended(buf []byte) (proto.Key, bool) {
	if len(buf) < 3 || buf[0] != 0x1b || buf[1] != '[' {
		return proto.Key{}, false
	}
	if buf[len(buf)-1] != 'u' {
		return proto.Key{}, false
	}

	body := buf[2 : len(buf)-1]

	// Split on ';' into codepoint-field and modifier-field.
	var codeField, modField string
	if idx := indexByte(body, ';'); idx >= 0 {
		codeField = string(body[:idx])
		modField = string(body[idx+1:])
	} else {
		codeField = string(body)
	}
	if codeField == "" {
		return proto.Key{}, false
	}

	// The codepoint field may itself carry ":alternate-codepoints"; only
	// the primary (first) codepoint matters here.
	if idx := indexByte([]byte(codeField), ':'); idx >= 0 {
		codeField = codeField[:idx]
	}
	codepoint, err := strconv.Atoi(codeField)
	if err != nil || codepoint <= 0 {
		return proto.Key{}, false
	}

	modifiers, eventType, ok := parseModifierField(modField)
	if !ok {
		return proto.Key{}, false
	}
	// event-type 3 is key-release; the gateway still emits a Key message
	// for it (KeyUp=true) rather than dropping it, since a release is
	// meaningful for held-key tracking in the browser's emulator.
	keyUp := eventType == 3
	repeat := eventType == 2

	key, ok := codepointToKey(codepoint)
	if !ok {
		return proto.Key{}, false
	}
	key.Modifiers = modifiers
	key.KeyUp = keyUp
	key.Repeat = repeat
	return key, true
}

// parseModifierField parses "modifiers(:event-type)?", defaulting to no
// modifiers and event-type 1 (press) when the field is absent.
func parseModifierField(field string) (proto.KeyModifiers, int, bool) {
	if field == "" {
		return proto.KeyModifiers{}, 1, true
	}
	modStr := field
	eventType := 1
	if idx := indexByte([]byte(field), ':'); idx >= 0 {
		modStr = field[:idx]
		et, err := strconv.Atoi(field[idx+1:])
		if err != nil {
			return proto.KeyModifiers{}, 0, false
		}
		eventType = et
	}
	modVal, err := strconv.Atoi(modStr)
	if err != nil || modVal < 1 {
		return proto.KeyModifiers{}, 0, false
	}
	bits := modVal - 1
	return proto.KeyModifiers{
		Shift: bits&1 != 0,
		Alt:   bits&2 != 0,
		Ctrl:  bits&4 != 0,
		Super: bits&8 != 0,
	}, eventType, true
}

func codepointToKey(codepoint int) (proto.Key, bool) {
	switch codepoint {
	case codeEscape:
		return proto.Key{Kind: proto.KeyEsc}, true
	case codeEnter:
		return proto.Key{Kind: proto.KeyEnter}, true
	case codeTab:
		return proto.Key{Kind: proto.KeyTab}, true
	case codeBackspace:
		return proto.Key{Kind: proto.KeyBackspace}, true
	case codeInsert:
		return proto.Key{Kind: proto.KeyInsert}, true
	case codeDelete:
		return proto.Key{Kind: proto.KeyDelete}, true
	case codeLeft:
		return proto.Key{Kind: proto.KeyLeft}, true
	case codeRight:
		return proto.Key{Kind: proto.KeyRight}, true
	case codeUp:
		return proto.Key{Kind: proto.KeyUp}, true
	case codeDown:
		return proto.Key{Kind: proto.KeyDown}, true
	case codePageUp:
		return proto.Key{Kind: proto.KeyPageUp}, true
	case codePageDown:
		return proto.Key{Kind: proto.KeyPageDown}, true
	case codeHome:
		return proto.Key{Kind: proto.KeyHome}, true
	case codeEnd:
		return proto.Key{Kind: proto.KeyEnd}, true
	}
	if codepoint >= codeF1 && codepoint <= codeF35 {
		return proto.Key{Kind: proto.KeyFunction, FNum: codepoint - codeF1 + 1}, true
	}
	if codepoint == 0 {
		return proto.Key{Kind: proto.KeyNull}, true
	}
	if codepoint > 0 && codepoint < 0x110000 {
		return proto.Key{Kind: proto.KeyChar, Char: rune(codepoint)}, true
	}
	return proto.Key{}, false
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}
