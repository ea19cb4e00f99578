package inputdecode

import (
	"os/exec"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/dormantflower/webgw/pkg/proto"
)

// TestDecodeBytesRoundTrippedThroughAPty drives bytes through a real pty
// pair (cat echoes its stdin back on stdout) rather than handing Decode a
// literal slice, so the legacy scanner is exercised against bytes that
// actually traversed a kernel tty line discipline, the way a browser's
// bytes traverse the real terminal stack before Decode ever sees them.
func TestDecodeBytesRoundTrippedThroughAPty(t *testing.T) {
	cmd := exec.Command("cat")
	ptmx, err := pty.Start(cmd)
	require.NoError(t, err)
	defer func() {
		ptmx.Close()
		cmd.Process.Kill()
		cmd.Wait()
	}()

	_, err = term.MakeRaw(int(ptmx.Fd()))
	require.NoError(t, err)

	_, err = ptmx.Write([]byte("\x1b[A"))
	require.NoError(t, err)

	buf := make([]byte, 16)
	ptmx.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := ptmx.Read(buf)
	require.NoError(t, err)

	msgs := Decode(buf[:n], true, &MouseCarry{})
	require.Len(t, msgs, 1)
	require.Equal(t, proto.MsgKey, msgs[0].Type)
	require.Equal(t, proto.KeyUp, msgs[0].Key.Key.Kind)
}
