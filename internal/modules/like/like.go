// Package like implements the like toggle. Likes are stored one row per
// (actor, item); counts are always derived from the rows inside the same
// transaction as the toggle, never kept as a separate counter.
package like

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type likeStatusResponse struct {
	Count     int64 `json:"count"`
	UserLiked bool  `json:"userLiked"`
}

type toggleResponse struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Toggle flips the like state for actor on the item and returns the new
// state plus the item's like count. Both the flip and the count run in one
// transaction so concurrent toggles never report a stale count.
func (s *Service) Toggle(actorID, itemType, itemID string) (liked bool, count int64, err error) {
	if actorID == "" || itemType == "" || itemID == "" {
		return false, 0, errors.New("actor and item are required")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.LikeModel
		findErr := tx.Where("actor_id = ? AND item_type = ? AND item_id = ?",
			actorID, itemType, itemID).First(&existing).Error

		switch {
		case findErr == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			liked = false
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			row := models.LikeModel{ActorID: actorID, ItemType: itemType, ItemID: itemID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			liked = true
		default:
			return findErr
		}

		return tx.Model(&models.LikeModel{}).
			Where("item_type = ? AND item_id = ?", itemType, itemID).
			Count(&count).Error
	})
	return liked, count, err
}

// Status returns the item's like count and whether actor has liked it. An
// empty actorID reports userLiked=false.
func (s *Service) Status(actorID, itemType, itemID string) (count int64, userLiked bool, err error) {
	if err := s.db.Model(&models.LikeModel{}).
		Where("item_type = ? AND item_id = ?", itemType, itemID).
		Count(&count).Error; err != nil {
		return 0, false, err
	}
	if actorID == "" {
		return count, false, nil
	}

	var actorCount int64
	if err := s.db.Model(&models.LikeModel{}).
		Where("actor_id = ? AND item_type = ? AND item_id = ?", actorID, itemType, itemID).
		Count(&actorCount).Error; err != nil {
		return 0, false, err
	}
	return count, actorCount > 0, nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, _ gin.HandlerFunc) {
	g := rg.Group("/likes")
	g.GET("/:itemType/:itemId", h.status)
	g.POST("/:itemType/:itemId/toggle", h.toggle)
}

// resolveActor identifies the liking actor: the authenticated user when
// present, otherwise a stable fingerprint of IP and user agent so anonymous
// visitors can toggle their own like.
func resolveActor(c *gin.Context) string {
	if uid := middleware.CurrentUserID(c); uid != "" {
		return uid
	}
	ip := c.ClientIP()
	if ip == "" {
		return ""
	}
	h := sha256.Sum256([]byte(ip + "|" + c.Request.UserAgent()))
	return "anon:" + hex.EncodeToString(h[:8])
}

func (h *Handler) status(c *gin.Context) {
	count, userLiked, err := h.svc.Status(resolveActor(c), c.Param("itemType"), c.Param("itemId"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, likeStatusResponse{Count: count, UserLiked: userLiked})
}

func (h *Handler) toggle(c *gin.Context) {
	actor := resolveActor(c)
	if actor == "" {
		response.BadRequest(c, "cannot identify requester")
		return
	}
	liked, count, err := h.svc.Toggle(actor, c.Param("itemType"), c.Param("itemId"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, toggleResponse{Liked: liked, Count: count})
}
