// Package profile exposes the owner's public profile and its admin-side
// editing. The profile is the single user row; there is no per-visitor
// account.
package profile

import (
	"errors"
	"time"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UpdateProfileDTO struct {
	Name        *string `json:"name"`
	Title       *string `json:"title"`
	Bio         *string `json:"bio"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Location    *string `json:"location"`
	Avatar      *string `json:"avatar"`
	HeroImage   *string `json:"heroImage"`
	GitHubURL   *string `json:"githubUrl"`
	LinkedInURL *string `json:"linkedinUrl"`
	WebsiteURL  *string `json:"websiteUrl"`
	ResumeURL   *string `json:"resumeUrl"`
	Password    *string `json:"password" binding:"omitempty,min=6"`
}

type profileResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Bio         string    `json:"bio"`
	Email       string    `json:"email"`
	Location    string    `json:"location"`
	Avatar      string    `json:"avatar"`
	HeroImage   string    `json:"heroImage"`
	GitHubURL   string    `json:"githubUrl"`
	LinkedInURL string    `json:"linkedinUrl"`
	WebsiteURL  string    `json:"websiteUrl"`
	ResumeURL   string    `json:"resumeUrl"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
}

func toResponse(u *models.UserModel) profileResponse {
	return profileResponse{
		ID: u.ID, Username: u.Username, Name: u.Name, Title: u.Title,
		Bio: u.Bio, Email: u.Email, Location: u.Location, Avatar: u.Avatar,
		HeroImage: u.HeroImage, GitHubURL: u.GitHubURL,
		LinkedInURL: u.LinkedInURL, WebsiteURL: u.WebsiteURL,
		ResumeURL: u.ResumeURL, Created: u.CreatedAt, Modified: u.UpdatedAt,
	}
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Get returns the owner profile, or nil before registration.
func (s *Service) Get() (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Order("created_at ASC").First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *Service) Update(dto *UpdateProfileDTO) (*models.UserModel, error) {
	u, err := s.Get()
	if err != nil || u == nil {
		return u, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Bio != nil {
		updates["bio"] = *dto.Bio
	}
	if dto.Email != nil {
		updates["email"] = *dto.Email
	}
	if dto.Location != nil {
		updates["location"] = *dto.Location
	}
	if dto.Avatar != nil {
		updates["avatar"] = *dto.Avatar
	}
	if dto.HeroImage != nil {
		updates["hero_image"] = *dto.HeroImage
	}
	if dto.GitHubURL != nil {
		updates["github_url"] = *dto.GitHubURL
	}
	if dto.LinkedInURL != nil {
		updates["linkedin_url"] = *dto.LinkedInURL
	}
	if dto.WebsiteURL != nil {
		updates["website_url"] = *dto.WebsiteURL
	}
	if dto.ResumeURL != nil {
		updates["resume_url"] = *dto.ResumeURL
	}
	if dto.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}
	if err := s.db.Model(u).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get()
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/profile")
	g.GET("", h.get)
	g.PUT("", authMW, h.update)
}

func (h *Handler) get(c *gin.Context) {
	u, err := h.svc.Get()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if u == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(u))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Update(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if u == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(u))
}
