package render

import (
	"errors"
	"net/http"
	"strings"

	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler { return &Handler{db: db} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/render")
	g.GET("/:itemType/:slug", h.renderItem)
	g.POST("/preview", authMW, h.preview)
}

func (h *Handler) renderItem(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		response.NotFound(c)
		return
	}

	title, text, published, err := h.loadRenderable(c.Param("itemType"), slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}

	if !published && !middleware.IsAuthenticated(c) {
		response.NotFound(c)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, renderDocument(title, RenderMarkdown(text)))
}

type previewDTO struct {
	MD    string `json:"md" binding:"required"`
	Title string `json:"title"`
}

func (h *Handler) preview(c *gin.Context) {
	var dto previewDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, renderDocument(dto.Title, RenderMarkdown(dto.MD)))
}

func (h *Handler) loadRenderable(itemType, slug string) (title, text string, published bool, err error) {
	switch strings.ToLower(strings.TrimSpace(itemType)) {
	case models.ItemTypeProject:
		var p models.ProjectModel
		if err = h.db.Select("id, title, text, published").
			Where("slug = ?", slug).First(&p).Error; err != nil {
			return "", "", false, err
		}
		return p.Title, p.Text, p.Published, nil
	case models.ItemTypeExperience:
		var e models.ExperienceModel
		if err = h.db.Select("id, role, company, text, published").
			Where("slug = ?", slug).First(&e).Error; err != nil {
			return "", "", false, err
		}
		return e.Role + " @ " + e.Company, e.Text, e.Published, nil
	case models.ItemTypeAchievement:
		var a models.AchievementModel
		if err = h.db.Select("id, title, text, published").
			Where("slug = ?", slug).First(&a).Error; err != nil {
			return "", "", false, err
		}
		return a.Title, a.Text, a.Published, nil
	}
	return "", "", false, gorm.ErrRecordNotFound
}
