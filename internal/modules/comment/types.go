package comment

import (
	"errors"
	"strings"
	"time"

	"github.com/folio-space/core/internal/models"
)

var (
	errTextRequired    = errors.New("comment text is required")
	errAuthorRequired  = errors.New("comment requires either an authenticated author or a name and email")
	errAuthorAmbiguous = errors.New("comment cannot carry both an authenticated author and anonymous details")
	errParentNotFound  = errors.New("parent comment not found")
	errParentMismatch  = errors.New("parent comment belongs to a different item")
)

type CreateCommentDTO struct {
	Text     string  `json:"text"  binding:"required"`
	Name     string  `json:"name"`
	Email    string  `json:"email" binding:"omitempty,email"`
	ParentID *string `json:"parentId"`
}

type ContactDTO struct {
	Name    string `json:"name"    binding:"required"`
	Email   string `json:"email"   binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

type commentResponse struct {
	ID         string            `json:"id"`
	ItemType   string            `json:"itemType"`
	ItemID     string            `json:"itemId"`
	Text       string            `json:"text"`
	AuthorID   *string           `json:"authorId,omitempty"`
	AuthorName string            `json:"authorName"`
	Email      string            `json:"email,omitempty"`
	ParentID   *string           `json:"parentId,omitempty"`
	Approved   bool              `json:"approved"`
	IP         string            `json:"ip,omitempty"`
	Agent      string            `json:"agent,omitempty"`
	Children   []commentResponse `json:"children"`
	Created    time.Time         `json:"created"`
	Modified   time.Time         `json:"modified"`
}

func toResponse(c *models.CommentModel, isAdmin bool) commentResponse {
	children := make([]commentResponse, len(c.Children))
	for i, ch := range c.Children {
		children[i] = toResponse(&ch, isAdmin)
	}
	r := commentResponse{
		ID: c.ID, ItemType: c.ItemType, ItemID: c.ItemID, Text: c.Text,
		AuthorID: c.AuthorID, AuthorName: c.AuthorName, ParentID: c.ParentID,
		Approved: c.Approved, Children: children,
		Created: c.CreatedAt, Modified: c.UpdatedAt,
	}
	if isAdmin {
		r.Email = c.AuthorEmail
		r.IP = c.IP
		r.Agent = c.Agent
	}
	return r
}

// validateAuthor enforces the authorship rule: exactly one of an
// authenticated actor or an anonymous (name, email) pair.
func validateAuthor(actorID, name, email string) error {
	anonymous := strings.TrimSpace(name) != "" || strings.TrimSpace(email) != ""
	switch {
	case actorID != "" && anonymous:
		return errAuthorAmbiguous
	case actorID != "":
		return nil
	case strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "":
		return errAuthorRequired
	default:
		return nil
	}
}
