package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"hungrylist/internal/shared/constants"
)

// spaHandler serves files from the frontend build and falls back to
// index.html for client-side routes. API and health paths are never
// answered here.
type spaHandler struct {
	root  string
	files http.Handler
}

// newSPAHandler returns nil when dir does not hold a build.
func newSPAHandler(dir string) *spaHandler {
	if dir == "" {
		return nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil
	}
	if info, err := os.Stat(filepath.Join(abs, "index.html")); err != nil || info.IsDir() {
		return nil
	}
	return &spaHandler{root: abs, files: http.FileServer(http.Dir(abs))}
}

func isAPIPath(p string) bool {
	return p == constants.APIPrefix || strings.HasPrefix(p, constants.APIPrefix+"/")
}

// serve reports whether it answered the request.
func (h *spaHandler) serve(c *gin.Context) bool {
	if h == nil || isAPIPath(c.Request.URL.Path) || c.Request.URL.Path == constants.HealthPath {
		return false
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		return false
	}

	name := path.Clean("/" + c.Request.URL.Path)
	if info, err := os.Stat(filepath.Join(h.root, filepath.FromSlash(name))); err == nil && !info.IsDir() {
		h.files.ServeHTTP(c.Writer, c.Request)
		return true
	}

	c.File(filepath.Join(h.root, "index.html"))
	return true
}
