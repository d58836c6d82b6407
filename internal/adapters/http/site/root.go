// Package site serves the embedded activities front-end.
package site

import (
	"context"
	"net/http"
)

// IndexPath is where GET / redirects browsers. The file server answers it
// with index.html.
const IndexPath = "/static/"

// Register attaches the front-end routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle("GET /{$}", NewRootHandler())
	mux.Handle("GET /static/", http.StripPrefix("/static", http.FileServer(FS())))
}

// RootHandler redirects the bare root to the front-end.
type RootHandler struct{}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// ServeHTTP answers with a temporary redirect to IndexPath.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}
