package inputdecode

import "github.com/dormantflower/webgw/pkg/proto"

// rawMouse is the un-folded mouse report the legacy scanner produces,
// shared by both the X10 and SGR encodings after their button-code bias
// has been removed.
type rawMouse struct {
	buttonCode int
	row        uint16
	col        uint16
	isRelease  bool
}

const (
	mouseButtonMask  = 0x03
	mouseMotionFlag  = 0x20
	mouseScrollFlag  = 0x40
	mouseShiftFlag   = 0x04
	mouseAltFlag     = 0x08
	mouseCtrlFlag    = 0x10
)

// fold resolves a raw button-code report into a NormalizedMouse, using
// carry to remember which button is currently held so a drag or release
// report (which carries no button identity of its own) can be attributed
// correctly. This mirrors the press/drag/release state machine terminal
// emulators use to interpret X10/SGR mouse reports.
func fold(carry *MouseCarry, raw rawMouse) proto.NormalizedMouse {
	mods := proto.KeyModifiers{
		Shift: raw.buttonCode&mouseShiftFlag != 0,
		Alt:   raw.buttonCode&mouseAltFlag != 0,
		Ctrl:  raw.buttonCode&mouseCtrlFlag != 0,
	}

	if raw.buttonCode&mouseScrollFlag != 0 {
		kind := proto.MouseScrollUp
		if raw.buttonCode&mouseButtonMask == 1 {
			kind = proto.MouseScrollDown
		}
		return proto.NormalizedMouse{Kind: kind, Button: carry.held, Row: raw.row, Col: raw.col, Modifiers: mods}
	}

	if raw.isRelease {
		button := carry.held
		carry.held = proto.MouseButtonNone
		return proto.NormalizedMouse{Kind: proto.MouseRelease, Button: button, Row: raw.row, Col: raw.col, Modifiers: mods}
	}

	if raw.buttonCode&mouseMotionFlag != 0 {
		if carry.held == proto.MouseButtonNone {
			return proto.NormalizedMouse{Kind: proto.MouseMove, Button: proto.MouseButtonNone, Row: raw.row, Col: raw.col, Modifiers: mods}
		}
		return proto.NormalizedMouse{Kind: proto.MouseDrag, Button: carry.held, Row: raw.row, Col: raw.col, Modifiers: mods}
	}

	button := buttonFromCode(raw.buttonCode & mouseButtonMask)
	carry.held = button
	return proto.NormalizedMouse{Kind: proto.MousePress, Button: button, Row: raw.row, Col: raw.col, Modifiers: mods}
}

func buttonFromCode(code int) proto.MouseButton {
	switch code {
	case 0:
		return proto.MouseButtonLeft
	case 1:
		return proto.MouseButtonMiddle
	case 2:
		return proto.MouseButtonRight
	}
	return proto.MouseButtonNone
}
