// Package ipcclient owns the gateway's single socket connection to one
// multiplexer server session. Higher layers never see the underlying
// net.Conn or its framing; they call Send/Recv/TerminalSize/LoadPalette.
package ipcclient

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/dormantflower/webgw/pkg/proto"
)

// Sentinel errors matching the taxonomy in the spec's error handling
// design: ParseError and UnknownIdentifier are handled by logging at the
// call site and never surface here.
var (
	// ErrUnavailable means the session's server socket does not exist (or
	// permissions forbid opening it) and no watcher fired before the wait
	// window elapsed.
	ErrUnavailable = errors.New("ipcclient: server socket unavailable")
	// ErrDisconnected means a write or read failed against an already
	// live connection.
	ErrDisconnected = errors.New("ipcclient: disconnected")
)

// socketWaitWindow bounds how long Connect will wait for a session socket
// that does not exist yet before giving up.
const socketWaitWindow = 2 * time.Second

// Handle is the opaque per-attach object described in spec §4.A. send and
// recv may be called concurrently from different goroutines; sendMu
// serializes writes, reads are only ever issued by the handle's owning
// server-listener goroutine and need no lock of their own.
type Handle struct {
	conn net.Conn

	sendMu sync.Mutex

	// browserSize is set once at attach from the browser-reported
	// viewport and always takes priority over a local fd query.
	browserSize    proto.Size
	hasBrowserSize bool
}

// Connect opens a local stream socket to socketPath. If the socket does
// not exist yet, Connect watches its parent directory for creation for up
// to socketWaitWindow before failing with ErrUnavailable.
func Connect(socketPath string) (*Handle, error) {
	conn, err := net.Dial("unix", socketPath)
	if err == nil {
		return &Handle{conn: conn}, nil
	}
	if !os.IsNotExist(unwrapDialErr(err)) {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, socketPath, err)
	}

	conn, err = waitForSocket(socketPath)
	if err != nil {
		return nil, err
	}
	return &Handle{conn: conn}, nil
}

func unwrapDialErr(err error) error {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Err
	}
	return err
}

// waitForSocket watches the session socket directory for the socket file
// to appear, grounded on the teacher's fsnotify-based JSONL watcher
// (claude_jsonl_watcher.go) rather than busy-polling net.Dial.
func waitForSocket(socketPath string) (net.Conn, error) {
	dir := filepath.Dir(socketPath)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: could not watch %s: %v", ErrUnavailable, dir, err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return nil, fmt.Errorf("%w: could not watch %s: %v", ErrUnavailable, dir, err)
	}

	deadline := time.After(socketWaitWindow)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnavailable, socketPath)
			}
			if ev.Name != socketPath {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if conn, dialErr := net.Dial("unix", socketPath); dialErr == nil {
				return conn, nil
			}
		case err, ok := <-watcher.Errors:
			if !ok || err != nil {
				log.Debug().Err(err).Str("dir", dir).Msg("ipcclient: watcher error while waiting for socket")
			}
		case <-deadline:
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, socketPath)
		}
	}
}

// Send serializes msg with the gateway's length-delimited JSON framing and
// writes it in full, blocking until the write completes.
func (h *Handle) Send(msg proto.ClientToServerMsg) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("ipcclient: marshal: %w", err)
	}

	h.sendMu.Lock()
	defer h.sendMu.Unlock()

	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(body)))
	if _, err := h.conn.Write(length[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrDisconnected, err)
	}
	if _, err := h.conn.Write(body); err != nil {
		return fmt.Errorf("%w: %v", ErrDisconnected, err)
	}
	return nil
}

// Recv blocks until a full ServerToClientMsg arrives. It returns
// io.EOF to signal a clean server-side shutdown.
func (h *Handle) Recv() (proto.ServerToClientMsg, error) {
	var length [4]byte
	if _, err := io.ReadFull(h.conn, length[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return proto.ServerToClientMsg{}, io.EOF
		}
		return proto.ServerToClientMsg{}, fmt.Errorf("%w: %v", ErrDisconnected, err)
	}

	size := binary.BigEndian.Uint32(length[:])
	body := make([]byte, size)
	if _, err := io.ReadFull(h.conn, body); err != nil {
		return proto.ServerToClientMsg{}, fmt.Errorf("%w: %v", ErrDisconnected, err)
	}

	var msg proto.ServerToClientMsg
	if err := json.Unmarshal(body, &msg); err != nil {
		return proto.ServerToClientMsg{}, fmt.Errorf("ipcclient: unmarshal: %w", err)
	}
	return msg, nil
}

// SetBrowserSize records the viewport the browser reported at attach. Once
// set, TerminalSize always prefers it over a local fd query.
func (h *Handle) SetBrowserSize(size proto.Size) {
	h.browserSize = size
	h.hasBrowserSize = true
}

// TerminalSize returns the client's effective terminal size: the
// browser-reported viewport if one has been recorded, else a local
// controlling-terminal query, else the given fallback.
func (h *Handle) TerminalSize(fallbackRows, fallbackCols uint16) proto.Size {
	if h.hasBrowserSize {
		return h.browserSize
	}
	if cols, rows, err := term.GetSize(0); err == nil && cols > 0 && rows > 0 {
		return proto.Size{Rows: uint16(rows), Cols: uint16(cols)}
	}
	return proto.Size{Rows: fallbackRows, Cols: fallbackCols}
}

// LoadPalette returns the OS-default fallback palette used when no theme
// is configured.
func (h *Handle) LoadPalette() proto.Palette {
	return defaultPalette
}

// defaultPalette is a standard 16-color ANSI palette used as the
// OS-default fallback named in spec §4.F.
var defaultPalette = proto.Palette{
	Foreground: "#c0c0c0",
	Background: "#000000",
	Cursor:     "#c0c0c0",
	Colors: [16]string{
		"#000000", "#800000", "#008000", "#808000",
		"#000080", "#800080", "#008080", "#c0c0c0",
		"#808080", "#ff0000", "#00ff00", "#ffff00",
		"#0000ff", "#ff00ff", "#00ffff", "#ffffff",
	},
}

// Close releases the underlying connection. It is safe to call more than
// once.
func (h *Handle) Close() error {
	return h.conn.Close()
}
