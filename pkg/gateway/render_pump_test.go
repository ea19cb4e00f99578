package gateway

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderChannelPushNext(t *testing.T) {
	ch := newRenderChannel()
	ch.push("a")
	ch.push("b")

	s, ok := ch.next()
	require.True(t, ok)
	assert.Equal(t, "a", s)

	s, ok = ch.next()
	require.True(t, ok)
	assert.Equal(t, "b", s)
}

func TestRenderChannelCloseUnblocksNext(t *testing.T) {
	ch := newRenderChannel()
	done := make(chan struct{})
	go func() {
		_, ok := ch.next()
		assert.False(t, ok)
		close(done)
	}()
	ch.close()
	<-done
}

func TestRunRenderPumpDeliversFramesInOrder(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		ch := newRenderChannel()
		ch.push("hello")
		ch.push("world")
		go func() {
			runRenderPump(conn, "client-1", ch)
		}()
		// Keep the handler alive briefly so the pump can write both frames.
		_, _, _ = conn.ReadMessage()
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	_, data1, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data1), `"bytes":"hello"`)
	assert.Contains(t, string(data1), `"web_client_id":"client-1"`)

	_, data2, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data2), `"bytes":"world"`)
}
