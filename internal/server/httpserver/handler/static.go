// Package handler provides HTTP request handlers for the beacon server.
package handler

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// handleStatic serves files from the configured root directory. The
// request path below the prefix resolves to the corresponding relative
// path inside the root; anything that would escape the root is
// rejected before touching the filesystem.
func (h *Handler) handleStatic(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, h.staticPrefix)
	rel = strings.TrimPrefix(rel, "/")
	name := path.Clean(rel)

	// fs.ValidPath refuses "..", absolute paths and empty elements,
	// which covers directory traversal.
	if name == "" || name == "." || !fs.ValidPath(name) {
		h.staticNotFound(w, r)
		return
	}

	root := os.DirFS(h.staticRoot)

	info, err := fs.Stat(root, name)
	if err != nil || info.IsDir() {
		h.staticNotFound(w, r)
		return
	}

	if h.metrics != nil {
		h.metrics.StaticFilesServed.Inc()
	}
	http.ServeFileFS(w, r, root, name)
}

func (h *Handler) staticNotFound(w http.ResponseWriter, r *http.Request) {
	if h.metrics != nil {
		h.metrics.StaticFilesMissed.Inc()
	}
	http.NotFound(w, r)
}
