package ipcclient

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dormantflower/webgw/pkg/proto"
)

func serveOnce(t *testing.T, l net.Listener, recv chan<- proto.ClientToServerMsg, reply proto.ServerToClientMsg) {
	t.Helper()
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		var length [4]byte
		if _, err := io.ReadFull(conn, length[:]); err != nil {
			return
		}
		body := make([]byte, binary.BigEndian.Uint32(length[:]))
		if _, err := io.ReadFull(conn, body); err != nil {
			return
		}
		var msg proto.ClientToServerMsg
		if err := json.Unmarshal(body, &msg); err == nil {
			recv <- msg
		}

		out, _ := json.Marshal(reply)
		var outLen [4]byte
		binary.BigEndian.PutUint32(outLen[:], uint32(len(out)))
		conn.Write(outLen[:])
		conn.Write(out)
	}()
}

func TestConnectSendRecvAgainstExistingSocket(t *testing.T) {
	dir := t.TempDir()
	socketPath := filepath.Join(dir, "session")
	l, err := net.Listen("unix", socketPath)
	require.NoError(t, err)
	defer l.Close()

	recv := make(chan proto.ClientToServerMsg, 1)
	serveOnce(t, l, recv, proto.ServerToClientMsg{Type: proto.SrvRender, Render: "hi"})

	h, err := Connect(socketPath)
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, h.Send(proto.ClientToServerMsg{Type: proto.MsgAttachClient}))

	select {
	case msg := <-recv:
		assert.Equal(t, proto.MsgAttachClient, msg.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("server never received the message")
	}

	reply, err := h.Recv()
	require.NoError(t, err)
	assert.Equal(t, "hi", reply.Render)
}

func TestConnectWaitsForSocketCreatedLater(t *testing.T) {
	dir := t.TempDir()
	socketPath := filepath.Join(dir, "session")

	done := make(chan error, 1)
	go func() {
		h, err := Connect(socketPath)
		if h != nil {
			h.Close()
		}
		done <- err
	}()

	time.Sleep(100 * time.Millisecond)
	l, err := net.Listen("unix", socketPath)
	require.NoError(t, err)
	defer l.Close()
	go l.Accept()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Connect never noticed the socket appear")
	}
}

func TestConnectFailsWhenSocketNeverAppears(t *testing.T) {
	dir := t.TempDir()
	socketPath := filepath.Join(dir, "session")

	_, err := Connect(socketPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestTerminalSizePrefersBrowserSize(t *testing.T) {
	h := &Handle{}
	h.SetBrowserSize(proto.Size{Rows: 50, Cols: 120})
	assert.Equal(t, proto.Size{Rows: 50, Cols: 120}, h.TerminalSize(24, 80))
}

func TestTerminalSizeFallsBackWhenNoBrowserSize(t *testing.T) {
	h := &Handle{}
	size := h.TerminalSize(24, 80)
	assert.NotZero(t, size.Rows)
	assert.NotZero(t, size.Cols)
}

func TestLoadPaletteReturnsOSDefault(t *testing.T) {
	h := &Handle{}
	assert.Equal(t, defaultPalette, h.LoadPalette())
}
