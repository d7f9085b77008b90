package achievement

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

type CreateAchievementDTO struct {
	Title         string  `json:"title"  binding:"required"`
	Slug          string  `json:"slug"`
	Issuer        string  `json:"issuer" binding:"required"`
	Kind          string  `json:"kind"   binding:"omitempty,oneof=certification award publication"`
	AwardedAt     *string `json:"awardedAt"`
	CredentialURL string  `json:"credentialUrl"`
	BadgeImage    string  `json:"badgeImage"`
	Text          string  `json:"text"`
	Featured      bool    `json:"featured"`
	Published     *bool   `json:"published"`
}

type UpdateAchievementDTO struct {
	Title         *string `json:"title"`
	Slug          *string `json:"slug"`
	Issuer        *string `json:"issuer"`
	Kind          *string `json:"kind" binding:"omitempty,oneof=certification award publication"`
	AwardedAt     *string `json:"awardedAt"`
	CredentialURL *string `json:"credentialUrl"`
	BadgeImage    *string `json:"badgeImage"`
	Text          *string `json:"text"`
	Featured      *bool   `json:"featured"`
	Published     *bool   `json:"published"`
}

type achievementResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Issuer        string     `json:"issuer"`
	Kind          string     `json:"kind"`
	AwardedAt     *time.Time `json:"awardedAt"`
	CredentialURL string     `json:"credentialUrl"`
	BadgeImage    string     `json:"badgeImage"`
	Text          string     `json:"text"`
	Featured      bool       `json:"featured"`
	Published     bool       `json:"published"`
	Created       time.Time  `json:"created"`
	Modified      time.Time  `json:"modified"`
}

func toResponse(a *models.AchievementModel) achievementResponse {
	return achievementResponse{
		ID: a.ID, Title: a.Title, Slug: a.Slug, Issuer: a.Issuer, Kind: a.Kind,
		AwardedAt: a.AwardedAt, CredentialURL: a.CredentialURL,
		BadgeImage: a.BadgeImage, Text: a.Text, Featured: a.Featured,
		Published: a.Published, Created: a.CreatedAt, Modified: a.UpdatedAt,
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

// List returns published achievements, most recently awarded first. An
// optional kind narrows the result.
func (s *Service) List(kind string) ([]models.AchievementModel, error) {
	tx := s.db.Where("published = ?", true)
	if kind != "" {
		tx = tx.Where("kind = ?", kind)
	}
	var items []models.AchievementModel
	err := tx.Order("awarded_at DESC, created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) ListAll() ([]models.AchievementModel, error) {
	var items []models.AchievementModel
	err := s.db.Order("awarded_at DESC, created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(id string) (*models.AchievementModel, error) {
	var a models.AchievementModel
	if err := s.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *Service) GetBySlug(value string, includeUnpublished bool) (*models.AchievementModel, error) {
	tx := s.db.Where("slug = ?", value)
	if !includeUnpublished {
		tx = tx.Where("published = ?", true)
	}
	var a models.AchievementModel
	if err := tx.First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *Service) Create(dto *CreateAchievementDTO) (*models.AchievementModel, error) {
	awardedAt, err := parseDate(dto.AwardedAt)
	if err != nil {
		return nil, err
	}

	candidate := dto.Slug
	if candidate == "" {
		candidate = dto.Title
	}
	unique, err := slug.MakeUnique(s.db, "achievements", "slug", slug.Derive(candidate), "")
	if err != nil {
		return nil, err
	}

	kind := dto.Kind
	if kind == "" {
		kind = models.AchievementCertification
	}
	published := true
	if dto.Published != nil {
		published = *dto.Published
	}
	a := models.AchievementModel{
		Title: dto.Title, Slug: unique, Issuer: dto.Issuer, Kind: kind,
		AwardedAt: awardedAt, CredentialURL: dto.CredentialURL,
		BadgeImage: dto.BadgeImage, Text: dto.Text, Featured: dto.Featured,
		Published: published,
	}
	return &a, s.db.Create(&a).Error
}

func (s *Service) Update(id string, dto *UpdateAchievementDTO) (*models.AchievementModel, error) {
	a, err := s.GetByID(id)
	if err != nil || a == nil {
		return a, err
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
	} else if dto.Title != nil && *dto.Title != a.Title {
		slugCandidate = *dto.Title
	}
	if slugCandidate != "" {
		unique, err := slug.MakeUnique(s.db, "achievements", "slug", slug.Derive(slugCandidate), a.ID)
		if err != nil {
			return nil, err
		}
		updates["slug"] = unique
	}
	if dto.Issuer != nil {
		updates["issuer"] = *dto.Issuer
	}
	if dto.Kind != nil {
		updates["kind"] = *dto.Kind
	}
	if dto.AwardedAt != nil {
		awardedAt, err := parseDate(dto.AwardedAt)
		if err != nil {
			return nil, err
		}
		updates["awarded_at"] = awardedAt
	}
	if dto.CredentialURL != nil {
		updates["credential_url"] = *dto.CredentialURL
	}
	if dto.BadgeImage != nil {
		updates["badge_image"] = *dto.BadgeImage
	}
	if dto.Text != nil {
		updates["text"] = *dto.Text
	}
	if dto.Featured != nil {
		updates["featured"] = *dto.Featured
	}
	if dto.Published != nil {
		updates["published"] = *dto.Published
	}
	if err := s.db.Model(a).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) error {
	return s.db.Delete(&models.AchievementModel{}, "id = ?", id).Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/achievements")
	g.GET("", h.list)
	g.GET("/:slug", h.getBySlug)

	a := g.Group("", authMW)
	a.GET("/all", h.listAll)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Query("kind"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]achievementResponse, len(items))
	for i, a := range items {
		out[i] = toResponse(&a)
	}
	response.OK(c, out)
}

func (h *Handler) listAll(c *gin.Context) {
	items, err := h.svc.ListAll()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]achievementResponse, len(items))
	for i, a := range items {
		out[i] = toResponse(&a)
	}
	response.OK(c, out)
}

func (h *Handler) getBySlug(c *gin.Context) {
	a, err := h.svc.GetBySlug(c.Param("slug"), middleware.IsAuthenticated(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if a == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(a))
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateAchievementDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	a, err := h.svc.Create(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, toResponse(a))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateAchievementDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	a, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if a == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(a))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
