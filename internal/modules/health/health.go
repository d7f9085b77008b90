// Package health exposes liveness checks and log file management.
package health

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type logItem struct {
	Size     string `json:"size"`
	Filename string `json:"filename"`
	Created  int64  `json:"created"`
}

type Handler struct {
	db     *gorm.DB
	rdb    *redis.Client
	logDir string
}

func NewHandler(db *gorm.DB, rdb *redis.Client, logDir string) *Handler {
	return &Handler{db: db, rdb: rdb, logDir: logDir}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/health", h.check)

	logGroup := rg.Group("/health/log", authMW)
	logGroup.GET("/list", h.listLogs)
	logGroup.GET("", h.readLog)
	logGroup.DELETE("", h.deleteLog)
}

// check reports database and redis reachability. Redis being down degrades
// the status but the API stays usable, so only a database failure turns the
// response into a 503.
func (h *Handler) check(c *gin.Context) {
	dbOK := false
	if sqlDB, err := h.db.DB(); err == nil {
		dbOK = sqlDB.PingContext(c.Request.Context()) == nil
	}
	redisOK := h.rdb != nil && h.rdb.Ping(c.Request.Context()).Err() == nil

	status := "ok"
	code := http.StatusOK
	if !dbOK {
		status = "degraded"
		code = http.StatusServiceUnavailable
	} else if !redisOK {
		status = "degraded"
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": dbOK,
		"redis":    redisOK,
	})
}

func (h *Handler) listLogs(c *gin.Context) {
	entries, err := os.ReadDir(h.logDir)
	if err != nil {
		if os.IsNotExist(err) {
			response.OK(c, []logItem{})
			return
		}
		response.BadRequest(c, "log dir not exists")
		return
	}

	items := make([]logItem, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		items = append(items, logItem{
			Size:     formatByteSize(info.Size()),
			Filename: entry.Name(),
			Created:  info.ModTime().UnixMilli(),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Created > items[j].Created })
	response.OK(c, items)
}

func (h *Handler) readLog(c *gin.Context) {
	filename, ok := h.resolveLogFilename(c)
	if !ok {
		return
	}
	data, err := os.ReadFile(filepath.Join(h.logDir, filename))
	if err != nil {
		response.BadRequest(c, "log file not exists")
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}

func (h *Handler) deleteLog(c *gin.Context) {
	filename, ok := h.resolveLogFilename(c)
	if !ok {
		return
	}
	if err := os.Remove(filepath.Join(h.logDir, filename)); err != nil {
		response.BadRequest(c, "log file not exists")
		return
	}
	response.OK(c, gin.H{"success": true})
}

func (h *Handler) resolveLogFilename(c *gin.Context) (string, bool) {
	filename := filepath.Base(strings.TrimSpace(c.Query("filename")))
	if filename == "" || filename == "." || filename == string(filepath.Separator) ||
		!strings.HasSuffix(filename, ".log") {
		response.UnprocessableEntity(c, "filename must be a .log file name")
		return "", false
	}
	return filename, true
}

func formatByteSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
