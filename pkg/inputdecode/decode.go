// Package inputdecode turns raw stdin-frame bytes from a browser terminal
// channel into typed messages bound for the multiplexer server. It
// disambiguates the extended ("kitty"-style) keyboard-reporting protocol
// from legacy CSI input and folds raw mouse reports into press/drag/release
// transitions.
//
// Each call to Decode assumes buf is a complete, self-contained frame — a
// legacy escape sequence split across two WebSocket stdin frames is not
// reassembled. That is a deliberate contract, not an oversight: the browser
// always flushes its input buffer into one frame per send, so callers must
// batch accordingly.
package inputdecode

import (
	"github.com/rs/zerolog/log"

	"github.com/dormantflower/webgw/pkg/proto"
)

// MouseCarry is the per-terminal-channel mouse state the caller owns and
// threads through successive Decode calls so press/drag/release can be
// resolved across frames.
type MouseCarry struct {
	held proto.MouseButton
}

// Decode implements the ordered algorithm from the spec: if the extended
// keyboard protocol is enabled, the whole buffer is first offered to the
// extended-protocol parser; on acceptance exactly one Key message with
// FromExtended=true is returned and legacy parsing never runs. Otherwise
// (or on extended-parser rejection) the buffer is handed to the legacy
// scanner, which may yield zero or more Key/Action messages.
func Decode(buf []byte, disableExtendedKeyboard bool, carry *MouseCarry) []proto.ClientToServerMsg {
	if len(buf) == 0 {
		return nil
	}

	if !disableExtendedKeyboard {
		if key, ok := tryParseExtended(buf); ok {
			return []proto.ClientToServerMsg{proto.NewKeyMsg(key, buf, true)}
		}
	}

	events := parseLegacy(buf)
	msgs := make([]proto.ClientToServerMsg, 0, len(events))
	for _, ev := range events {
		switch ev.kind {
		case eventKindKey:
			msgs = append(msgs, proto.NewKeyMsg(ev.key, ev.raw, false))
		case eventKindMouse:
			normalized := fold(carry, ev.mouse)
			msgs = append(msgs, proto.NewMouseActionMsg(normalized))
		default:
			log.Error().Bytes("raw", ev.raw).Msg("inputdecode: unsupported event dropped")
		}
	}
	return msgs
}
