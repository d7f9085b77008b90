package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/modules/achievement"
	"github.com/folio-space/core/internal/modules/auth"
	"github.com/folio-space/core/internal/modules/comment"
	"github.com/folio-space/core/internal/modules/content"
	"github.com/folio-space/core/internal/modules/experience"
	"github.com/folio-space/core/internal/modules/health"
	"github.com/folio-space/core/internal/modules/like"
	"github.com/folio-space/core/internal/modules/profile"
	"github.com/folio-space/core/internal/modules/project"
	"github.com/folio-space/core/internal/modules/render"
	"github.com/folio-space/core/internal/modules/storage/file"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const apiPrefix = "/api"

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	rdb := a.rc.Raw()
	authMW := middleware.Auth(db)

	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":     "folio-core",
		"version":  "1.0.0",
		"homepage": "https://github.com/folio-space/core",
	}

	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth(db))
	api.Use(middleware.RateLimit(rdb))
	api.Use(middleware.Idempotence(rdb))
	api.Use(middleware.HTTPCache(rdb, middleware.HTTPCacheOptions{
		TTL:       15 * time.Second,
		Disable:   a.cfg.IsDev(),
		SkipPaths: httpCacheSkipPaths(),
	}))

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/info", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		uptimeMs := time.Since(processStart).Milliseconds()
		c.JSON(http.StatusOK, gin.H{
			"timestamp": uptimeMs,
			"humanize":  humanizeDuration(time.Duration(uptimeMs) * time.Millisecond),
		})
	})

	a.registerSiteLike(api)
	a.registerCacheAdmin(api, authMW)
	a.registerCronAdmin(api, authMW)

	health.NewHandler(db, rdb, a.cfg.LogDir()).RegisterRoutes(api, authMW)
	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW)
	profile.NewHandler(profile.NewService(db)).RegisterRoutes(api, authMW)
	project.NewHandler(project.NewService(db)).RegisterRoutes(api, authMW)
	experience.NewHandler(experience.NewService(db)).RegisterRoutes(api, authMW)
	achievement.NewHandler(achievement.NewService(db)).RegisterRoutes(api, authMW)
	content.NewHandler(content.NewService(db)).RegisterRoutes(api, authMW)
	comment.NewHandler(comment.NewService(db)).RegisterRoutes(api, authMW)
	like.NewHandler(like.NewService(db)).RegisterRoutes(api, authMW)
	file.NewHandler(a.fileSvc).RegisterRoutes(api, authMW)
	render.NewHandler(db).RegisterRoutes(api, authMW)

	a.registerSPA()
}

// registerSiteLike handles the site-wide like counter. One like per IP per
// day, deduplicated in redis, counted in the options table.
func (a *App) registerSiteLike(api *gin.RouterGroup) {
	db := a.db
	rdb := a.rc.Raw()

	api.GET("/like_site", func(c *gin.Context) {
		var opt models.OptionModel
		if err := db.Where("name = ?", "like_site").First(&opt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, 0)
				return
			}
			response.InternalError(c, err)
			return
		}
		n, err := strconv.ParseInt(strings.TrimSpace(opt.Value), 10, 64)
		if err != nil {
			c.JSON(http.StatusOK, 0)
			return
		}
		c.JSON(http.StatusOK, n)
	})

	api.POST("/like_site", func(c *gin.Context) {
		ip := c.ClientIP()
		date := time.Now().Format("2006-01-02")
		key := fmt.Sprintf("folio:like_site:%s:%s", date, ip)
		set, err := rdb.SetNX(c.Request.Context(), key, 1, 24*time.Hour).Result()
		if err == nil && !set {
			response.BadRequest(c, "already liked today")
			return
		}
		err = db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value": gorm.Expr("CAST(value AS UNSIGNED) + 1"),
			}),
		}).Create(&models.OptionModel{
			Name:  "like_site",
			Value: "1",
		}).Error
		if err != nil {
			response.InternalError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func (a *App) registerCacheAdmin(api *gin.RouterGroup, authMW gin.HandlerFunc) {
	rdb := a.rc.Raw()

	api.POST("/clean_cache", authMW, func(c *gin.Context) {
		deleted, err := middleware.PurgeHTTPCache(c.Request.Context(), rdb)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": deleted})
	})

	api.POST("/clean_redis", authMW, func(c *gin.Context) {
		rdb.FlushDB(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

func (a *App) registerCronAdmin(api *gin.RouterGroup, authMW gin.HandlerFunc) {
	cronGroup := api.Group("/cron", authMW)

	cronGroup.GET("", func(c *gin.Context) {
		response.OK(c, a.sched.List())
	})
	cronGroup.POST("/run/:name", func(c *gin.Context) {
		if err := a.sched.Trigger(c.Request.Context(), c.Param("name")); err != nil {
			response.NotFoundMsg(c, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "job triggered"})
	})
	cronGroup.GET("/task/:name", func(c *gin.Context) {
		result, err := a.sched.Outcome(c.Param("name"))
		if err != nil {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.OK(c, result)
	})
}

func httpCacheSkipPaths() []string {
	return []string{
		apiPrefix + "/uptime",
		apiPrefix + "/like_site",
		apiPrefix + "/health",
		apiPrefix + "/health/*",
		apiPrefix + "/auth/*",
		apiPrefix + "/files/*",
	}
}
