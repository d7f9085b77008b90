package file

import (
	"errors"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/files")
	g.GET("/:type/:name", h.serve)

	a := g.Group("", authMW)
	a.POST("/upload", h.upload)
	a.GET("/:type", h.listByType)
	a.DELETE("/:type/:name", h.delete)
	a.POST("/bind", h.bindReference)
	a.GET("/orphans", h.listOrphans)
	a.GET("/orphans/count", h.countOrphans)
	a.POST("/orphans/cleanup", h.cleanupOrphans)
}

// serve streams a locally stored file. Uploaded names never change, so the
// response can be cached aggressively.
func (h *Handler) serve(c *gin.Context) {
	path, err := h.svc.ResolveLocalPath(c.Param("type"), c.Param("name"))
	if err != nil {
		response.NotFound(c)
		return
	}
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.File(path)
}

func (h *Handler) upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing multipart field 'file'")
		return
	}
	typ := normalizeTypeDefault(c.Query("type"), "image")

	uploaded, err := h.svc.SaveUpload(c.Request.Context(), typ, fh)
	if err != nil {
		if c.Request.Context().Err() != nil {
			return
		}
		response.UnprocessableEntity(c, err.Error())
		return
	}
	response.Created(c, uploaded)
}

func (h *Handler) listByType(c *gin.Context) {
	items, err := h.svc.ListByType(c.Param("type"))
	if err != nil {
		if errors.Is(err, errFileNotFound) {
			response.BadRequest(c, "invalid file type")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("type"), c.Param("name"))
	if err != nil {
		if errors.Is(err, errFileNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) bindReference(c *gin.Context) {
	var dto BindReferenceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ref, err := h.svc.BindReference(&dto)
	if err != nil {
		if errors.Is(err, errFileNotFound) {
			response.NotFoundMsg(c, "no upload recorded for this url")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, toReferenceResponse(ref))
}

func (h *Handler) listOrphans(c *gin.Context) {
	refs, err := h.svc.ListOrphans()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	items := make([]referenceResponse, len(refs))
	for i := range refs {
		items[i] = toReferenceResponse(&refs[i])
	}
	response.OK(c, items)
}

func (h *Handler) countOrphans(c *gin.Context) {
	count, err := h.svc.CountOrphans()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"count": count})
}

func (h *Handler) cleanupOrphans(c *gin.Context) {
	deleted, err := h.svc.CleanupOrphans(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, cleanupResponse{Deleted: deleted})
}

func toReferenceResponse(ref *models.FileReferenceModel) referenceResponse {
	return referenceResponse{
		ID: ref.ID, FileURL: ref.FileURL, FileName: ref.FileName,
		Status: ref.Status, RefID: ref.RefID, RefType: ref.RefType,
		Created: ref.CreatedAt,
	}
}
