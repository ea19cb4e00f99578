package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dormantflower/webgw/pkg/config"
	"github.com/dormantflower/webgw/pkg/inputdecode"
	"github.com/dormantflower/webgw/pkg/ipcclient"
	"github.com/dormantflower/webgw/pkg/proto"
)

var terminalUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// attachPreamble is the fixed, order-preserving sequence of escape strings
// pushed onto the render channel before any server-emitted Render byte, so
// the browser's emulator starts from a known state.
var attachPreamble = []string{
	"\x1b[?1l\x1b=\x1b[r\x1b[?1000l\x1b[?1002l\x1b[?1003l\x1b[?1005l\x1b[?1006l\x1b[?12l",
	"\x1b[?1049h",
	"\x1b[?2004h",
	"\x1b[?1000h\x1b[?1002h\x1b[?1015h\x1b[?1006h",
	"\x1b[>1u",
}

// handleTerminal implements the twelve-step terminal channel sequence.
func (s *State) handleTerminal(w http.ResponseWriter, r *http.Request, session string) {
	conn, err := terminalUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("gateway: terminal upgrade failed")
		return
	}
	defer conn.Close()

	webClientID := uuid.New().String()

	socketPath := filepath.Join(s.Config.SocketDir, session)
	if err := ensureSocketDir(s.Config.SocketDir); err != nil {
		log.Error().Err(err).Str("dir", s.Config.SocketDir).Msg("gateway: socket directory unavailable")
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "server unavailable"))
		return
	}

	handle, err := ipcclient.Connect(socketPath)
	if err != nil {
		log.Error().Err(err).Str("socket", socketPath).Msg("gateway: attach failed, server socket unavailable")
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "session unavailable"))
		return
	}

	if size, ok := browserSizeFromQuery(r); ok {
		handle.SetBrowserSize(size)
	}

	s.Registry.Insert(webClientID, handle)
	defer s.Registry.Remove(webClientID)

	ch := newRenderChannel()
	defer ch.close()

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		runServerListener(handle, s.Config, session, ch)
	}()

	go runRenderPump(conn, webClientID, ch)

	disableExtendedKeyboard := s.Config.DisableExtendedKeyboard()
	carry := &inputdecode.MouseCarry{}

readLoop:
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("gateway: terminal read error")
			}
			break
		}
		if msgType != websocket.TextMessage {
			log.Error().Int("type", msgType).Msg("gateway: terminal unsupported frame type")
			continue
		}

		stdin, id, ok := parseStdinFrame(data)
		if !ok {
			log.Error().Msg("gateway: stdin frame parse error")
			continue
		}
		if id != webClientID {
			log.Error().Str("web_client_id", id).Msg("gateway: stdin frame addresses unknown client")
			continue
		}

		msgs := inputdecode.Decode([]byte(stdin), disableExtendedKeyboard, carry)
		for _, msg := range msgs {
			if err := handle.Send(msg); err != nil {
				log.Debug().Err(err).Msg("gateway: stdin forward failed")
				break readLoop
			}
		}
	}

	if err := handle.Send(proto.ClientExitedMsg()); err != nil {
		log.Debug().Err(err).Msg("gateway: client-exit notification failed")
	}
	handle.Close()
}

// browserSizeFromQuery reads the rows/cols query parameters the browser's
// WebSocket upgrade request carries, the way the teacher's ws_terminal.go
// reads its initial terminal size.
func browserSizeFromQuery(r *http.Request) (proto.Size, bool) {
	rowsStr := r.URL.Query().Get("rows")
	colsStr := r.URL.Query().Get("cols")
	if rowsStr == "" || colsStr == "" {
		return proto.Size{}, false
	}
	rows, err := strconv.Atoi(rowsStr)
	if err != nil || rows <= 0 {
		return proto.Size{}, false
	}
	cols, err := strconv.Atoi(colsStr)
	if err != nil || cols <= 0 {
		return proto.Size{}, false
	}
	return proto.Size{Rows: uint16(rows), Cols: uint16(cols)}, true
}

func ensureSocketDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	return os.Chmod(dir, 0o700)
}

// parseStdinFrame extracts the raw stdin bytes and web_client_id from a
// browser-sent JSON stdin frame.
func parseStdinFrame(data []byte) (stdin string, webClientID string, ok bool) {
	var frame proto.StdinFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return "", "", false
	}
	return frame.Stdin, frame.WebClientID, true
}

// runServerListener performs the attach handshake and then drives the
// render channel from server messages until the server signals exit or
// the connection fails. This runs on a dedicated, OS-thread-locked
// goroutine because recv/send on the IPC handle block on a real syscall.
func runServerListener(handle *ipcclient.Handle, cfg config.GatewayConfig, session string, ch *renderChannel) {
	browserSize := handle.TerminalSize(24, 80)

	for _, s := range attachPreamble {
		ch.push(s)
	}

	attrs := proto.ClientAttributes{
		Size:  browserSize,
		Style: resolveStyle(cfg, handle),
	}

	attachMsg := proto.ClientToServerMsg{
		Type: proto.MsgAttachClient,
		AttachClient: &proto.AttachClient{
			Attributes:  attrs,
			IsWebClient: true,
		},
	}
	if err := handle.Send(attachMsg); err != nil {
		log.Error().Err(err).Str("session", session).Msg("gateway: attach send failed")
		return
	}

	for {
		msg, err := handle.Recv()
		if err != nil {
			if err != io.EOF {
				log.Debug().Err(err).Msg("gateway: server-listener recv error")
			}
			return
		}

		switch msg.Type {
		case proto.SrvRender:
			ch.push(msg.Render)
		case proto.SrvExit:
			if msg.Exit != nil && msg.Exit.Kind == proto.ExitError {
				log.Error().Str("reason", msg.Exit.Message).Msg("gateway: session exited with error")
			}
			if err := handle.Send(proto.ClientExitedMsg()); err != nil {
				log.Debug().Err(err).Msg("gateway: client-exit notification failed")
			}
			return
		default:
			// other variants ignored
		}
	}
}
