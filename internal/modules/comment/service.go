package comment

import (
	"errors"
	"strings"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/pagination"
	"github.com/folio-space/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// CreateParams carries everything needed to store a comment. ActorID is the
// authenticated user, empty for anonymous visitors.
type CreateParams struct {
	ItemType string
	ItemID   string
	Text     string
	ActorID  string
	Name     string
	Email    string
	ParentID *string
	IP       string
	Agent    string
}

// Create stores a comment. Item references are not verified against the
// target tables: items may come and go independently of their comments.
func (s *Service) Create(p CreateParams) (*models.CommentModel, error) {
	itemType := strings.TrimSpace(p.ItemType)
	itemID := strings.TrimSpace(p.ItemID)
	if itemType == "" || itemID == "" {
		return nil, errors.New("item type and id are required")
	}
	if strings.TrimSpace(p.Text) == "" {
		return nil, errTextRequired
	}
	if err := validateAuthor(p.ActorID, p.Name, p.Email); err != nil {
		return nil, err
	}

	if p.ParentID != nil {
		var parent models.CommentModel
		if err := s.db.First(&parent, "id = ?", *p.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errParentNotFound
			}
			return nil, err
		}
		if parent.ItemType != itemType || parent.ItemID != itemID {
			return nil, errParentMismatch
		}
	}

	c := models.CommentModel{
		ItemType: itemType,
		ItemID:   itemID,
		Text:     p.Text,
		ParentID: p.ParentID,
		Approved: true,
		IP:       p.IP,
		Agent:    p.Agent,
	}
	if p.ActorID != "" {
		actorID := p.ActorID
		c.AuthorID = &actorID
	} else {
		c.AuthorName = strings.TrimSpace(p.Name)
		c.AuthorEmail = strings.TrimSpace(p.Email)
	}
	return &c, s.db.Create(&c).Error
}

// ListByItem returns top-level comments for an item, newest first, with
// replies preloaded. Unapproved comments are hidden unless includeHidden.
func (s *Service) ListByItem(itemType, itemID string, includeHidden bool) ([]models.CommentModel, error) {
	tx := s.db.Where("item_type = ? AND item_id = ? AND parent_id IS NULL", itemType, itemID).
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			if !includeHidden {
				db = db.Where("approved = ?", true)
			}
			return db.Order("created_at ASC")
		}).
		Order("created_at DESC")
	if !includeHidden {
		tx = tx.Where("approved = ?", true)
	}
	var comments []models.CommentModel
	err := tx.Find(&comments).Error
	return comments, err
}

// ListAll returns every comment paginated, newest first, optionally filtered
// by item type.
func (s *Service) ListAll(q pagination.Query, itemType string) ([]models.CommentModel, response.Pagination, error) {
	tx := s.db.Model(&models.CommentModel{}).Order("created_at DESC")
	if itemType != "" {
		tx = tx.Where("item_type = ?", itemType)
	}
	var comments []models.CommentModel
	pag, err := pagination.Paginate(tx, q, &comments)
	return comments, pag, err
}

func (s *Service) GetByID(id string) (*models.CommentModel, error) {
	var c models.CommentModel
	if err := s.db.Preload("Children").First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// SetApproved flips moderation state.
func (s *Service) SetApproved(id string, approved bool) (*models.CommentModel, error) {
	c, err := s.GetByID(id)
	if err != nil || c == nil {
		return c, err
	}
	return c, s.db.Model(c).Update("approved", approved).Error
}

// Delete removes a comment and its direct replies in one transaction, so a
// failed reply sweep never leaves orphans behind.
func (s *Service) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&models.CommentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.CommentModel{}, "id = ?", id).Error
	})
}
