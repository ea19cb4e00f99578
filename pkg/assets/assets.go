// Package assets serves the gateway's bootstrap HTML page and its embedded
// static asset tree (currently one CSS and one JS file) that make up the
// browser terminal client.
package assets

import (
	"embed"
	"net/http"
	"path"
	"strings"
)

//go:embed static bootstrap.html
var embedded embed.FS

// notFoundBody is preserved verbatim for browser-side compatibility; it is
// not an HTML error page.
const notFoundBody = "Not Found"

// contentTypeByExt maps a file extension to the content type the browser
// client expects. Anything outside this table falls back to text/plain.
var contentTypeByExt = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".wasm": "application/wasm",
	".png":  "image/png",
	".ico":  "image/x-icon",
	".svg":  "image/svg+xml",
}

// Handler serves the embedded static tree rooted at "static" under the
// path it is mounted at, e.g. /assets/app.wasm -> static/app.wasm.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := strings.TrimPrefix(r.URL.Path, "/assets/")
		p = strings.TrimPrefix(p, "/")
		if p == "" {
			writeNotFound(w)
			return
		}

		data, err := embedded.ReadFile(path.Join("static", p))
		if err != nil {
			writeNotFound(w)
			return
		}

		w.Header().Set("content-type", contentType(p))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	})
}

func contentType(p string) string {
	ext := path.Ext(p)
	if ct, ok := contentTypeByExt[ext]; ok {
		return ct
	}
	return "text/plain"
}

func writeNotFound(w http.ResponseWriter) {
	w.Header().Set("content-type", "text/html")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(notFoundBody))
}

// BootstrapPage serves the HTML shell the browser loads at "/" and
// "/{session}"; the session name itself is read client-side from the URL.
func BootstrapPage(w http.ResponseWriter, r *http.Request) {
	data, err := embedded.ReadFile("bootstrap.html")
	if err != nil {
		writeNotFound(w)
		return
	}
	w.Header().Set("content-type", "text/html")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
