package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dormantflower/webgw/pkg/proto"
)

var controlUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleControl upgrades to a WebSocket and forwards every control frame's
// typed message to the addressed registry entry. Unlike the terminal
// channel, the control channel never creates a registry entry itself —
// it only ever looks one up.
func (s *State) handleControl(w http.ResponseWriter, r *http.Request, session string) {
	conn, err := controlUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("gateway: control upgrade failed")
		return
	}
	defer conn.Close()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("gateway: control read error")
			}
			return
		}
		if msgType != websocket.TextMessage {
			log.Error().Int("type", msgType).Msg("gateway: control unsupported frame type")
			continue
		}

		var frame struct {
			WebClientID string          `json:"web_client_id"`
			Message     json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal(data, &frame); err != nil {
			log.Error().Err(err).Msg("gateway: control frame parse error")
			continue
		}

		handle, ok := s.Registry.Lookup(frame.WebClientID)
		if !ok {
			log.Error().Str("web_client_id", frame.WebClientID).Msg("gateway: control frame addresses unknown client")
			continue
		}

		var msg proto.ClientToServerMsg
		if err := json.Unmarshal(frame.Message, &msg); err != nil {
			log.Error().Err(err).Msg("gateway: control message parse error")
			continue
		}

		if err := handle.Send(msg); err != nil {
			log.Error().Err(err).Str("web_client_id", frame.WebClientID).Msg("gateway: control forward failed")
		}
	}
}
