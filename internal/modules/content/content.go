// Package content stores freeform site copy as (section, field) -> value
// rows, so the frontend can fetch all editable text in one call.
package content

import (
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpsertContentDTO struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// GetAll returns every content row grouped as {section: {field: value}}.
func (s *Service) GetAll() (map[string]map[string]string, error) {
	var rows []models.ContentModel
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]map[string]string)
	for _, row := range rows {
		if out[row.Section] == nil {
			out[row.Section] = make(map[string]string)
		}
		out[row.Section][row.Field] = row.Value
	}
	return out, nil
}

// GetSection returns one section's fields. A missing section yields an empty
// map, not an error.
func (s *Service) GetSection(section string) (map[string]string, error) {
	var rows []models.ContentModel
	if err := s.db.Where("section = ?", section).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Field] = row.Value
	}
	return out, nil
}

// Upsert writes the given fields into a section, inserting or updating each
// row.
func (s *Service) Upsert(section string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	rows := make([]models.ContentModel, 0, len(fields))
	for field, value := range fields {
		rows = append(rows, models.ContentModel{Section: section, Field: field, Value: value})
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "section"}, {Name: "field"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rows).Error
}

func (s *Service) DeleteField(section, field string) error {
	return s.db.Where("section = ? AND field = ?", section, field).
		Delete(&models.ContentModel{}).Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/content")
	g.GET("", h.getAll)
	g.GET("/:section", h.getSection)

	a := g.Group("", authMW)
	a.PUT("/:section", h.upsert)
	a.DELETE("/:section/:field", h.deleteField)
}

func (h *Handler) getAll(c *gin.Context) {
	grouped, err := h.svc.GetAll()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, grouped)
}

func (h *Handler) getSection(c *gin.Context) {
	fields, err := h.svc.GetSection(c.Param("section"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, fields)
}

func (h *Handler) upsert(c *gin.Context) {
	var dto UpsertContentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Upsert(c.Param("section"), dto.Fields); err != nil {
		response.InternalError(c, err)
		return
	}
	fields, err := h.svc.GetSection(c.Param("section"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, fields)
}

func (h *Handler) deleteField(c *gin.Context) {
	if err := h.svc.DeleteField(c.Param("section"), c.Param("field")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
