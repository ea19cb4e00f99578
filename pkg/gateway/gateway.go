// Package gateway wires the HTTP/WebSocket surface together: asset
// routes, the control and terminal channel handlers, and the shared
// registry/config state they all read.
package gateway

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/dormantflower/webgw/pkg/assets"
	"github.com/dormantflower/webgw/pkg/config"
	"github.com/dormantflower/webgw/pkg/registry"
)

// State is the shared state every route handler closes over.
type State struct {
	Registry       *registry.Registry
	DefaultSession string
	Config         config.GatewayConfig
}

// NewState builds the gateway's shared state from cfg.
func NewState(cfg config.GatewayConfig) *State {
	return &State{
		Registry:       registry.New(),
		DefaultSession: cfg.DefaultSession,
		Config:         cfg,
	}
}

// Router mounts every route named in the external interfaces: the
// bootstrap page, the embedded asset tree, and the control/terminal
// WebSocket upgrades, both in their "default session" and named-session
// forms.
func (s *State) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", assets.BootstrapPage).Methods(http.MethodGet)
	r.HandleFunc("/{session}", assets.BootstrapPage).Methods(http.MethodGet)
	r.PathPrefix("/assets/").Handler(assets.Handler())

	r.HandleFunc("/ws/control/default", s.handleControlDefault)
	r.HandleFunc("/ws/control/session/{session}", s.handleControlSession)
	r.HandleFunc("/ws/terminal/default", s.handleTerminalDefault)
	r.HandleFunc("/ws/terminal/session/{session}", s.handleTerminalSession)

	return r
}

func (s *State) handleControlDefault(w http.ResponseWriter, r *http.Request) {
	s.handleControl(w, r, s.DefaultSession)
}

func (s *State) handleControlSession(w http.ResponseWriter, r *http.Request) {
	s.handleControl(w, r, mux.Vars(r)["session"])
}

func (s *State) handleTerminalDefault(w http.ResponseWriter, r *http.Request) {
	s.handleTerminal(w, r, s.DefaultSession)
}

func (s *State) handleTerminalSession(w http.ResponseWriter, r *http.Request) {
	s.handleTerminal(w, r, mux.Vars(r)["session"])
}

// Run binds addr and serves until the process exits or ListenAndServe
// returns an error. There is no graceful-shutdown contract, matching the
// teacher's fire-and-forget ListenAndServe goroutines.
func Run(addr string, s *State) error {
	log.Info().Str("addr", addr).Msg("gateway: listening")
	return http.ListenAndServe(addr, s.Router())
}
