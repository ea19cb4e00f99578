// Package proto defines the message vocabulary exchanged between the
// web-client gateway and the multiplexer server, and the JSON frames
// exchanged between the gateway and the browser.
//
// The browser-facing frames (ControlFrame, StdinFrame, RenderFrame) are
// bit-exact with the vocabulary a native zellij web client speaks. The
// gateway<->server wire encoding (length-delimited JSON) is this port's own
// choice, since the original's IPC framing lives entirely in code this spec
// treats as an external peer.
package proto

// Browser-facing frames.

// ControlFrame is the browser->gateway envelope carried on the control
// WebSocket channel.
type ControlFrame struct {
	WebClientID string            `json:"web_client_id"`
	Message     ClientToServerMsg `json:"message"`
}

// StdinFrame is the browser->gateway envelope carried on the terminal
// WebSocket channel. Stdin is a UTF-8 string carrying raw terminal bytes,
// including escape sequences, exactly as captured by the browser's
// emulator.
type StdinFrame struct {
	WebClientID string `json:"web_client_id"`
	Stdin       string `json:"stdin"`
}

// RenderFrame is the gateway->browser envelope carried on the terminal
// WebSocket channel.
type RenderFrame struct {
	WebClientID string `json:"web_client_id"`
	Bytes       string `json:"bytes"`
}

// MsgType discriminates the ClientToServerMsg variants the gateway emits.
type MsgType string

const (
	MsgAttachClient MsgType = "AttachClient"
	MsgKey          MsgType = "Key"
	MsgAction       MsgType = "Action"
	MsgClientExited MsgType = "ClientExited"
)

// ClientToServerMsg is a tagged union over the four variants the gateway
// ever sends. Exactly one of the pointer fields is populated, matching
// Type.
type ClientToServerMsg struct {
	Type         MsgType       `json:"type"`
	AttachClient *AttachClient `json:"attach_client,omitempty"`
	Key          *KeyEvent     `json:"key,omitempty"`
	Action       *ActionMsg    `json:"action,omitempty"`
}

// NewKeyMsg builds the Key(key, raw_bytes, from_extended) variant.
func NewKeyMsg(key Key, raw []byte, fromExtended bool) ClientToServerMsg {
	return ClientToServerMsg{
		Type: MsgKey,
		Key: &KeyEvent{
			Key:          key,
			Raw:          append([]byte(nil), raw...),
			FromExtended: fromExtended,
		},
	}
}

// NewMouseActionMsg builds the Action(MouseEvent(normalized)) variant.
func NewMouseActionMsg(m NormalizedMouse) ClientToServerMsg {
	return ClientToServerMsg{
		Type:   MsgAction,
		Action: &ActionMsg{MouseEvent: &m},
	}
}

// ClientExitedMsg builds the ClientExited variant.
func ClientExitedMsg() ClientToServerMsg {
	return ClientToServerMsg{Type: MsgClientExited}
}

// KeyEvent is the payload of the Key variant.
type KeyEvent struct {
	Key          Key    `json:"key"`
	Raw          []byte `json:"raw_bytes"`
	FromExtended bool   `json:"from_extended"`
}

// ActionMsg is the payload of the Action variant. Only MouseEvent actions
// originate from the web gateway; other action kinds are out of scope.
type ActionMsg struct {
	MouseEvent *NormalizedMouse `json:"mouse_event,omitempty"`
}

// AttachClient is the payload of the AttachClient variant, mirroring the
// six positional fields of the native protocol's AttachClient message:
// attrs, config, options, two reserved placeholders (always nil for a web
// client), and is_web_client.
type AttachClient struct {
	Attributes  ClientAttributes `json:"attributes"`
	Config      any              `json:"config"`
	Options     any              `json:"options"`
	Reserved1   *string          `json:"reserved1,omitempty"`
	Reserved2   *string          `json:"reserved2,omitempty"`
	IsWebClient bool             `json:"is_web_client"`
}

// ClientAttributes describes a client's viewport and visual style,
// negotiated at attach time.
type ClientAttributes struct {
	Size  Size  `json:"size"`
	Style Style `json:"style"`
}

// Size is a terminal viewport in character cells.
type Size struct {
	Rows uint16 `json:"rows"`
	Cols uint16 `json:"cols"`
}

// Style carries the resolved color palette and pane-frame display options.
type Style struct {
	Colors          Palette `json:"colors"`
	RoundedCorners  bool    `json:"rounded_corners"`
	HideSessionName bool    `json:"hide_session_name"`
}

// Palette is a 16-color terminal palette plus foreground/background/cursor
// colors, expressed as "#rrggbb" strings so it serializes identically
// regardless of source (theme file or OS-default fallback).
type Palette struct {
	Foreground string    `json:"fg"`
	Background string    `json:"bg"`
	Cursor     string    `json:"cursor"`
	Colors     [16]string `json:"colors"`
}

// SrvMsgType discriminates ServerToClientMsg variants the gateway
// understands. Variants outside this set are ignored per spec.
type SrvMsgType string

const (
	SrvRender SrvMsgType = "Render"
	SrvExit   SrvMsgType = "Exit"
	SrvOther  SrvMsgType = "Other"
)

// ServerToClientMsg is a tagged union over the server messages the gateway
// reacts to.
type ServerToClientMsg struct {
	Type   SrvMsgType `json:"type"`
	Render string     `json:"render,omitempty"`
	Exit   *ExitReason `json:"exit,omitempty"`
}

// ExitReasonKind distinguishes an error exit from an ordinary one; only
// the error case is logged verbosely.
type ExitReasonKind string

const (
	ExitNormal ExitReasonKind = "normal"
	ExitError  ExitReasonKind = "error"
)

// ExitReason is the payload of a ServerToClientMsg with Type == SrvExit.
type ExitReason struct {
	Kind    ExitReasonKind `json:"kind"`
	Message string         `json:"message,omitempty"`
}
