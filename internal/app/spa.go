package app

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// registerSPA serves the built frontend from the web directory. Unknown
// non-API paths fall back to index.html so client-side routing works.
func (a *App) registerSPA() {
	webDir := a.cfg.WebDir()

	a.router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, apiPrefix+"/") || c.Request.URL.Path == apiPrefix {
			response.NotFound(c)
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			response.NotFound(c)
			return
		}

		requested := filepath.Join(webDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}

		index := filepath.Join(webDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
		response.NotFound(c)
	})
}
