package assets

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerServesKnownAsset(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/assets/terminal.css", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/css", rec.Header().Get("content-type"))
	assert.NotEmpty(t, rec.Body.String())
}

func TestHandlerUnknownPathReturnsNotFoundBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/assets/does-not-exist", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "text/html", rec.Header().Get("content-type"))
	assert.Equal(t, "Not Found", rec.Body.String())
}

func TestContentTypeByExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"app.wasm", "application/wasm"},
		{"app.js", "application/javascript"},
		{"logo.svg", "image/svg+xml"},
		{"logo.png", "image/png"},
		{"favicon.ico", "image/x-icon"},
		{"readme", "text/plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, contentType(tt.path), tt.path)
	}
}

func TestBootstrapPage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	BootstrapPage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html", rec.Header().Get("content-type"))
	assert.Contains(t, rec.Body.String(), "<!DOCTYPE html>")
}
