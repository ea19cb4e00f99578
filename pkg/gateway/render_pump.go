package gateway

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dormantflower/webgw/pkg/proto"
)

// renderChannel is the single-producer unbounded string channel between
// the server-listener goroutine and the Render Pump. A native Go channel
// is bounded, so this is a growable slice guarded by a mutex and a
// condition variable — the teacher's sendChan/stdout_channel_tx buffering,
// sized up to "never blocks the producer" instead of "drop when full".
type renderChannel struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    []string
	closed bool
}

func newRenderChannel() *renderChannel {
	c := &renderChannel{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// push appends a string for the pump to deliver. Never blocks.
func (c *renderChannel) push(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.buf = append(c.buf, s)
	c.cond.Signal()
}

// next blocks until a string is available or the channel is closed, in
// which case ok is false.
func (c *renderChannel) next() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.buf) == 0 && !c.closed {
		c.cond.Wait()
	}
	if len(c.buf) == 0 {
		return "", false
	}
	s := c.buf[0]
	c.buf = c.buf[1:]
	return s, true
}

func (c *renderChannel) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cond.Broadcast()
}

// runRenderPump awaits strings from ch and writes each as a text WebSocket
// frame addressed to webClientID. A send failure (the browser is gone)
// terminates the pump; a JSON-marshal failure is logged and the pump
// continues.
func runRenderPump(conn *websocket.Conn, webClientID string, ch *renderChannel) {
	for {
		s, ok := ch.next()
		if !ok {
			return
		}

		frame := proto.RenderFrame{WebClientID: webClientID, Bytes: s}
		data, err := json.Marshal(frame)
		if err != nil {
			log.Error().Err(err).Msg("gateway: render frame marshal failed")
			continue
		}

		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Debug().Err(err).Msg("gateway: render pump send failed, browser gone")
			return
		}
	}
}
