package project

import (
	"errors"
	"time"

	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/pagination"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/folio-space/core/internal/pkg/slug"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateProjectDTO struct {
	Title        string   `json:"title"        binding:"required"`
	Slug         string   `json:"slug"`
	Summary      string   `json:"summary"`
	Text         string   `json:"text"`
	CoverImage   string   `json:"coverImage"`
	Images       []string `json:"images"`
	Technologies []string `json:"technologies"`
	DemoURL      string   `json:"demoUrl"`
	RepoURL      string   `json:"repoUrl"`
	CompletedAt  *string  `json:"completedAt"` // RFC 3339 date
	Featured     bool     `json:"featured"`
	Published    *bool    `json:"published"`
	SortOrder    int      `json:"sortOrder"`
}

type UpdateProjectDTO struct {
	Title        *string  `json:"title"`
	Slug         *string  `json:"slug"`
	Summary      *string  `json:"summary"`
	Text         *string  `json:"text"`
	CoverImage   *string  `json:"coverImage"`
	Images       []string `json:"images"`
	Technologies []string `json:"technologies"`
	DemoURL      *string  `json:"demoUrl"`
	RepoURL      *string  `json:"repoUrl"`
	CompletedAt  *string  `json:"completedAt"`
	Featured     *bool    `json:"featured"`
	Published    *bool    `json:"published"`
	SortOrder    *int     `json:"sortOrder"`
}

type projectResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Summary      string     `json:"summary"`
	Text         string     `json:"text"`
	CoverImage   string     `json:"coverImage"`
	Images       []string   `json:"images"`
	Technologies []string   `json:"technologies"`
	DemoURL      string     `json:"demoUrl"`
	RepoURL      string     `json:"repoUrl"`
	CompletedAt  *time.Time `json:"completedAt"`
	Featured     bool       `json:"featured"`
	Published    bool       `json:"published"`
	SortOrder    int        `json:"sortOrder"`
	ViewCount    int64      `json:"viewCount"`
	Created      time.Time  `json:"created"`
	Modified     time.Time  `json:"modified"`
}

func toResponse(p *models.ProjectModel) projectResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	technologies := p.Technologies
	if technologies == nil {
		technologies = []string{}
	}
	return projectResponse{
		ID: p.ID, Title: p.Title, Slug: p.Slug, Summary: p.Summary, Text: p.Text,
		CoverImage: p.CoverImage, Images: images, Technologies: technologies,
		DemoURL: p.DemoURL, RepoURL: p.RepoURL, CompletedAt: p.CompletedAt,
		Featured: p.Featured, Published: p.Published, SortOrder: p.SortOrder,
		ViewCount: p.ViewCount, Created: p.CreatedAt, Modified: p.UpdatedAt,
	}
}

func parseDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, *raw); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("invalid date format")
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// List returns published projects ordered by sort order, newest first within
// the same order.
func (s *Service) List(q pagination.Query) ([]models.ProjectModel, response.Pagination, error) {
	tx := s.db.Model(&models.ProjectModel{}).
		Where("published = ?", true).
		Order("sort_order ASC, created_at DESC")
	var items []models.ProjectModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

// ListAll returns every project including unpublished drafts.
func (s *Service) ListAll() ([]models.ProjectModel, error) {
	var items []models.ProjectModel
	err := s.db.Order("sort_order ASC, created_at DESC").Find(&items).Error
	return items, err
}

// ListFeatured returns published projects flagged as featured.
func (s *Service) ListFeatured() ([]models.ProjectModel, error) {
	var items []models.ProjectModel
	err := s.db.Where("published = ? AND featured = ?", true, true).
		Order("sort_order ASC, created_at DESC").
		Find(&items).Error
	return items, err
}

func (s *Service) GetByID(id string) (*models.ProjectModel, error) {
	var p models.ProjectModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetBySlug returns the project with the given slug. Unpublished projects
// are only visible when includeUnpublished is set.
func (s *Service) GetBySlug(value string, includeUnpublished bool) (*models.ProjectModel, error) {
	tx := s.db.Where("slug = ?", value)
	if !includeUnpublished {
		tx = tx.Where("published = ?", true)
	}
	var p models.ProjectModel
	if err := tx.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// IncrementView bumps the view counter without touching updated_at.
func (s *Service) IncrementView(id string) error {
	return s.db.Model(&models.ProjectModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (s *Service) Create(dto *CreateProjectDTO) (*models.ProjectModel, error) {
	completedAt, err := parseDate(dto.CompletedAt)
	if err != nil {
		return nil, err
	}

	candidate := dto.Slug
	if candidate == "" {
		candidate = dto.Title
	}
	unique, err := slug.MakeUnique(s.db, "projects", "slug", slug.Derive(candidate), "")
	if err != nil {
		return nil, err
	}

	published := true
	if dto.Published != nil {
		published = *dto.Published
	}
	p := models.ProjectModel{
		Title: dto.Title, Slug: unique, Summary: dto.Summary, Text: dto.Text,
		CoverImage: dto.CoverImage, Images: dto.Images, Technologies: dto.Technologies,
		DemoURL: dto.DemoURL, RepoURL: dto.RepoURL, CompletedAt: completedAt,
		Featured: dto.Featured, Published: published, SortOrder: dto.SortOrder,
	}
	return &p, s.db.Create(&p).Error
}

func (s *Service) Update(id string, dto *UpdateProjectDTO) (*models.ProjectModel, error) {
	p, err := s.GetByID(id)
	if err != nil || p == nil {
		return p, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	// An explicit slug wins; otherwise a title change re-derives it so the
	// public URL keeps tracking the title.
	slugCandidate := ""
	if dto.Slug != nil {
		slugCandidate = *dto.Slug
	} else if dto.Title != nil && *dto.Title != p.Title {
		slugCandidate = *dto.Title
	}
	if slugCandidate != "" {
		unique, err := slug.MakeUnique(s.db, "projects", "slug", slug.Derive(slugCandidate), p.ID)
		if err != nil {
			return nil, err
		}
		updates["slug"] = unique
	}
	if dto.Summary != nil {
		updates["summary"] = *dto.Summary
	}
	if dto.Text != nil {
		updates["text"] = *dto.Text
	}
	if dto.CoverImage != nil {
		updates["cover_image"] = *dto.CoverImage
	}
	if dto.Images != nil {
		updates["images"] = models.StringArray(dto.Images)
	}
	if dto.Technologies != nil {
		updates["technologies"] = models.StringArray(dto.Technologies)
	}
	if dto.DemoURL != nil {
		updates["demo_url"] = *dto.DemoURL
	}
	if dto.RepoURL != nil {
		updates["repo_url"] = *dto.RepoURL
	}
	if dto.CompletedAt != nil {
		completedAt, err := parseDate(dto.CompletedAt)
		if err != nil {
			return nil, err
		}
		updates["completed_at"] = completedAt
	}
	if dto.Featured != nil {
		updates["featured"] = *dto.Featured
	}
	if dto.Published != nil {
		updates["published"] = *dto.Published
	}
	if dto.SortOrder != nil {
		updates["sort_order"] = *dto.SortOrder
	}
	if err := s.db.Model(p).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) error {
	return s.db.Delete(&models.ProjectModel{}, "id = ?", id).Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/projects")
	g.GET("", h.list)
	g.GET("/featured", h.listFeatured)
	g.GET("/:slug", h.getBySlug)

	a := g.Group("", authMW)
	a.GET("/all", h.listAll)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.List(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]projectResponse, len(items))
	for i, p := range items {
		out[i] = toResponse(&p)
	}
	response.Paged(c, out, pag)
}

func (h *Handler) listAll(c *gin.Context) {
	items, err := h.svc.ListAll()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]projectResponse, len(items))
	for i, p := range items {
		out[i] = toResponse(&p)
	}
	response.OK(c, out)
}

func (h *Handler) listFeatured(c *gin.Context) {
	items, err := h.svc.ListFeatured()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]projectResponse, len(items))
	for i, p := range items {
		out[i] = toResponse(&p)
	}
	response.OK(c, out)
}

func (h *Handler) getBySlug(c *gin.Context) {
	p, err := h.svc.GetBySlug(c.Param("slug"), middleware.IsAuthenticated(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	if !middleware.IsAuthenticated(c) {
		_ = h.svc.IncrementView(p.ID)
		p.ViewCount++
	}
	response.OK(c, toResponse(p))
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Create(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(p))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(p))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
