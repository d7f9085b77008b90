package experience

import (
	"errors"
	"time"

	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/folio-space/core/internal/pkg/slug"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateExperienceDTO struct {
	Role         string   `json:"role"    binding:"required"`
	Company      string   `json:"company" binding:"required"`
	Slug         string   `json:"slug"`
	Location     string   `json:"location"`
	Text         string   `json:"text"`
	Technologies []string `json:"technologies"`
	CompanyLogo  string   `json:"companyLogo"`
	StartedAt    string   `json:"startedAt" binding:"required"`
	EndedAt      *string  `json:"endedAt"` // nil = current position
	Published    *bool    `json:"published"`
	SortOrder    int      `json:"sortOrder"`
}

type UpdateExperienceDTO struct {
	Role         *string  `json:"role"`
	Company      *string  `json:"company"`
	Slug         *string  `json:"slug"`
	Location     *string  `json:"location"`
	Text         *string  `json:"text"`
	Technologies []string `json:"technologies"`
	CompanyLogo  *string  `json:"companyLogo"`
	StartedAt    *string  `json:"startedAt"`
	EndedAt      *string  `json:"endedAt"`
	Published    *bool    `json:"published"`
	SortOrder    *int     `json:"sortOrder"`
}

type experienceResponse struct {
	ID           string     `json:"id"`
	Role         string     `json:"role"`
	Company      string     `json:"company"`
	Slug         string     `json:"slug"`
	Location     string     `json:"location"`
	Text         string     `json:"text"`
	Technologies []string   `json:"technologies"`
	CompanyLogo  string     `json:"companyLogo"`
	StartedAt    time.Time  `json:"startedAt"`
	EndedAt      *time.Time `json:"endedAt"`
	Current      bool       `json:"current"`
	Published    bool       `json:"published"`
	SortOrder    int        `json:"sortOrder"`
	Created      time.Time  `json:"created"`
	Modified     time.Time  `json:"modified"`
}

func toResponse(e *models.ExperienceModel) experienceResponse {
	technologies := e.Technologies
	if technologies == nil {
		technologies = []string{}
	}
	return experienceResponse{
		ID: e.ID, Role: e.Role, Company: e.Company, Slug: e.Slug,
		Location: e.Location, Text: e.Text, Technologies: technologies,
		CompanyLogo: e.CompanyLogo, StartedAt: e.StartedAt, EndedAt: e.EndedAt,
		Current: e.EndedAt == nil, Published: e.Published, SortOrder: e.SortOrder,
		Created: e.CreatedAt, Modified: e.UpdatedAt,
	}
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid date format")
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// List returns published experiences, most recent first. Current positions
// (no end date) sort before finished ones.
func (s *Service) List() ([]models.ExperienceModel, error) {
	var items []models.ExperienceModel
	err := s.db.Where("published = ?", true).
		Order("ended_at IS NULL DESC, started_at DESC").
		Find(&items).Error
	return items, err
}

// ListAll returns every experience including unpublished ones.
func (s *Service) ListAll() ([]models.ExperienceModel, error) {
	var items []models.ExperienceModel
	err := s.db.Order("ended_at IS NULL DESC, started_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(id string) (*models.ExperienceModel, error) {
	var e models.ExperienceModel
	if err := s.db.First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (s *Service) GetBySlug(value string, includeUnpublished bool) (*models.ExperienceModel, error) {
	tx := s.db.Where("slug = ?", value)
	if !includeUnpublished {
		tx = tx.Where("published = ?", true)
	}
	var e models.ExperienceModel
	if err := tx.First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (s *Service) Create(dto *CreateExperienceDTO) (*models.ExperienceModel, error) {
	startedAt, err := parseDate(dto.StartedAt)
	if err != nil {
		return nil, err
	}
	var endedAt *time.Time
	if dto.EndedAt != nil && *dto.EndedAt != "" {
		t, err := parseDate(*dto.EndedAt)
		if err != nil {
			return nil, err
		}
		endedAt = &t
	}

	candidate := dto.Slug
	if candidate == "" {
		candidate = dto.Role + " " + dto.Company
	}
	unique, err := slug.MakeUnique(s.db, "experiences", "slug", slug.Derive(candidate), "")
	if err != nil {
		return nil, err
	}

	published := true
	if dto.Published != nil {
		published = *dto.Published
	}
	e := models.ExperienceModel{
		Role: dto.Role, Company: dto.Company, Slug: unique,
		Location: dto.Location, Text: dto.Text, Technologies: dto.Technologies,
		CompanyLogo: dto.CompanyLogo, StartedAt: startedAt, EndedAt: endedAt,
		Published: published, SortOrder: dto.SortOrder,
	}
	return &e, s.db.Create(&e).Error
}

func (s *Service) Update(id string, dto *UpdateExperienceDTO) (*models.ExperienceModel, error) {
	e, err := s.GetByID(id)
	if err != nil || e == nil {
		return e, err
	}

	updates := map[string]interface{}{}
	role, company := e.Role, e.Company
	if dto.Role != nil {
		updates["role"] = *dto.Role
		role = *dto.Role
	}
	if dto.Company != nil {
		updates["company"] = *dto.Company
		company = *dto.Company
	}
	// An explicit slug wins; otherwise a role or company change re-derives it
	// so the public URL keeps tracking the position.
	slugCandidate := ""
	if dto.Slug != nil {
		slugCandidate = *dto.Slug
	} else if role != e.Role || company != e.Company {
		slugCandidate = role + " " + company
	}
	if slugCandidate != "" {
		unique, err := slug.MakeUnique(s.db, "experiences", "slug", slug.Derive(slugCandidate), e.ID)
		if err != nil {
			return nil, err
		}
		updates["slug"] = unique
	}
	if dto.Location != nil {
		updates["location"] = *dto.Location
	}
	if dto.Text != nil {
		updates["text"] = *dto.Text
	}
	if dto.Technologies != nil {
		updates["technologies"] = models.StringArray(dto.Technologies)
	}
	if dto.CompanyLogo != nil {
		updates["company_logo"] = *dto.CompanyLogo
	}
	if dto.StartedAt != nil {
		startedAt, err := parseDate(*dto.StartedAt)
		if err != nil {
			return nil, err
		}
		updates["started_at"] = startedAt
	}
	if dto.EndedAt != nil {
		if *dto.EndedAt == "" {
			updates["ended_at"] = nil
		} else {
			endedAt, err := parseDate(*dto.EndedAt)
			if err != nil {
				return nil, err
			}
			updates["ended_at"] = endedAt
		}
	}
	if dto.Published != nil {
		updates["published"] = *dto.Published
	}
	if dto.SortOrder != nil {
		updates["sort_order"] = *dto.SortOrder
	}
	if err := s.db.Model(e).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) error {
	return s.db.Delete(&models.ExperienceModel{}, "id = ?", id).Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/experiences")
	g.GET("", h.list)
	g.GET("/:slug", h.getBySlug)

	a := g.Group("", authMW)
	a.GET("/all", h.listAll)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]experienceResponse, len(items))
	for i, e := range items {
		out[i] = toResponse(&e)
	}
	response.OK(c, out)
}

func (h *Handler) listAll(c *gin.Context) {
	items, err := h.svc.ListAll()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]experienceResponse, len(items))
	for i, e := range items {
		out[i] = toResponse(&e)
	}
	response.OK(c, out)
}

func (h *Handler) getBySlug(c *gin.Context) {
	e, err := h.svc.GetBySlug(c.Param("slug"), middleware.IsAuthenticated(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if e == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(e))
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateExperienceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	e, err := h.svc.Create(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(e))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateExperienceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	e, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if e == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(e))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
