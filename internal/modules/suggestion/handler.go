package suggestion

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quillmind/core/internal/middleware"
	"github.com/quillmind/core/internal/models"
	"github.com/quillmind/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	sg := rg.Group("/suggestions", authMW)
	sg.POST("/:id/accept", h.accept)
	sg.POST("/:id/reject", h.reject)

	dg := rg.Group("/documents/:id", authMW)
	dg.GET("/suggestions", h.listForDocument)
	dg.GET("/tags", h.listTags)
	dg.POST("/tags", h.createTag)

	rg.DELETE("/tags/:id", authMW, h.deleteTag)
}

// POST /suggestions/:id/accept
func (h *Handler) accept(c *gin.Context) {
	result, err := h.svc.Accept(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c)
		case errors.Is(err, ErrStale):
			response.Conflict(c, err.Error())
		default:
			response.BadRequest(c, err.Error())
		}
		return
	}
	response.OK(c, result)
}

// POST /suggestions/:id/reject
func (h *Handler) reject(c *gin.Context) {
	sug, err := h.svc.Reject(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, sug)
}

// GET /documents/:id/suggestions?status=pending&spanStart=0&spanEnd=100
func (h *Handler) listForDocument(c *gin.Context) {
	filter := ListFilter{
		Status: models.SuggestionStatus(c.Query("status")),
	}
	if v, err := strconv.Atoi(c.Query("spanStart")); err == nil {
		filter.ParagraphStart = &v
	}
	if v, err := strconv.Atoi(c.Query("spanEnd")); err == nil {
		filter.ParagraphEnd = &v
	}

	out, err := h.svc.ListForDocument(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), filter)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, out)
}

// GET /documents/:id/tags
func (h *Handler) listTags(c *gin.Context) {
	tags, err := h.svc.ListTags(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, tags)
}

// POST /documents/:id/tags
func (h *Handler) createTag(c *gin.Context) {
	var dto TagDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tag, err := h.svc.CreateTag(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), dto)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, tag)
}

// DELETE /tags/:id
func (h *Handler) deleteTag(c *gin.Context) {
	if err := h.svc.DeleteTag(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
