package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dormantflower/webgw/pkg/config"
)

func TestRouterServesBootstrapPage(t *testing.T) {
	s := NewState(config.GatewayConfig{DefaultSession: "default"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html", rec.Header().Get("content-type"))
}

func TestRouterServesNamedSessionBootstrapPage(t *testing.T) {
	s := NewState(config.GatewayConfig{DefaultSession: "default"})

	req := httptest.NewRequest(http.MethodGet, "/my-session", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterServesAssets(t *testing.T) {
	s := NewState(config.GatewayConfig{DefaultSession: "default"})

	req := httptest.NewRequest(http.MethodGet, "/assets/terminal.css", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/css", rec.Header().Get("content-type"))
}

func TestNewStateBuildsEmptyRegistry(t *testing.T) {
	s := NewState(config.GatewayConfig{DefaultSession: "default"})
	require.NotNil(t, s.Registry)
	assert.Equal(t, 0, s.Registry.Len())
}
