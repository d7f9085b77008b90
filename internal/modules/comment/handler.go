package comment

import (
	"errors"

	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/pagination"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/comments")
	g.GET("/:itemType/:itemId", h.listByItem)
	g.POST("/:itemType/:itemId", h.create)

	a := g.Group("", authMW)
	a.GET("", h.listAll)
	a.PUT("/:id/approved", h.setApproved)
	a.DELETE("/:id", h.delete)

	// The contact form is stored as an anonymous comment against the site
	// itself, so it shares moderation and listing with everything else.
	rg.POST("/contact", h.contact)
}

func (h *Handler) listByItem(c *gin.Context) {
	isAdmin := middleware.IsAuthenticated(c)
	comments, err := h.svc.ListByItem(c.Param("itemType"), c.Param("itemId"), isAdmin)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]commentResponse, len(comments))
	for i, cm := range comments {
		out[i] = toResponse(&cm, isAdmin)
	}
	response.OK(c, out)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.svc.Create(CreateParams{
		ItemType: c.Param("itemType"),
		ItemID:   c.Param("itemId"),
		Text:     dto.Text,
		ActorID:  middleware.CurrentUserID(c),
		Name:     dto.Name,
		Email:    dto.Email,
		ParentID: dto.ParentID,
		IP:       c.ClientIP(),
		Agent:    c.Request.UserAgent(),
	})
	if err != nil {
		switch {
		case errors.Is(err, errTextRequired), errors.Is(err, errAuthorRequired), errors.Is(err, errAuthorAmbiguous):
			response.UnprocessableEntity(c, err.Error())
		case errors.Is(err, errParentNotFound), errors.Is(err, errParentMismatch):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, toResponse(created, middleware.IsAuthenticated(c)))
}

func (h *Handler) contact(c *gin.Context) {
	var dto ContactDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.svc.Create(CreateParams{
		ItemType: models.ItemTypeContact,
		ItemID:   "site",
		Text:     dto.Message,
		Name:     dto.Name,
		Email:    dto.Email,
		IP:       c.ClientIP(),
		Agent:    c.Request.UserAgent(),
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"id": created.ID})
}

func (h *Handler) listAll(c *gin.Context) {
	q := pagination.FromContext(c)
	comments, pag, err := h.svc.ListAll(q, c.Query("itemType"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]commentResponse, len(comments))
	for i, cm := range comments {
		out[i] = toResponse(&cm, true)
	}
	response.Paged(c, out, pag)
}

func (h *Handler) setApproved(c *gin.Context) {
	var dto struct {
		Approved *bool `json:"approved" binding:"required"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cm, err := h.svc.SetApproved(c.Param("id"), *dto.Approved)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if cm == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(cm, true))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
