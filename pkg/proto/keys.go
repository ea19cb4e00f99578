package proto

// KeyKind enumerates the canonical key categories the input decoder
// produces. A flat enum rather than one Go type per key mirrors the
// teacher's preference for small tagged payloads (e.g. desktop.AgentAction)
// over deep interface hierarchies.
type KeyKind int

const (
	KeyChar KeyKind = iota
	KeyBackspace
	KeyEnter
	KeyTab
	KeyEsc
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyFunction
	KeyNull
)

// KeyModifiers is a set of held modifier keys.
type KeyModifiers struct {
	Ctrl  bool `json:"ctrl,omitempty"`
	Alt   bool `json:"alt,omitempty"`
	Shift bool `json:"shift,omitempty"`
	Super bool `json:"super,omitempty"`
}

// Key is the canonical, transport-agnostic key representation the decoder
// emits, whether it came from the extended protocol or the legacy parser.
type Key struct {
	Kind      KeyKind      `json:"kind"`
	Char      rune         `json:"char,omitempty"`
	FNum      int          `json:"f_num,omitempty"`
	Modifiers KeyModifiers `json:"modifiers"`
	// Repeat and KeyUp are only ever meaningful for extended-protocol
	// reports; the legacy CSI stream cannot distinguish them.
	Repeat bool `json:"repeat,omitempty"`
	KeyUp  bool `json:"key_up,omitempty"`
}

// MouseEventKind enumerates the normalized mouse event shapes the mouse
// folder can emit.
type MouseEventKind int

const (
	MousePress MouseEventKind = iota
	MouseRelease
	MouseDrag
	MouseMove
	MouseScrollUp
	MouseScrollDown
)

// MouseButton identifies which button a press/drag/release refers to.
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
)

// NormalizedMouse is the folded mouse event sent to the server: it always
// carries the button that is currently held (for drag/release), never a
// bare, button-less movement between a press and its release.
type NormalizedMouse struct {
	Kind      MouseEventKind `json:"kind"`
	Button    MouseButton    `json:"button"`
	Row       uint16         `json:"row"`
	Col       uint16         `json:"col"`
	Modifiers KeyModifiers   `json:"modifiers"`
}
