package document

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/quillmind/core/internal/middleware"
	"github.com/quillmind/core/internal/models"
	"github.com/quillmind/core/internal/pkg/pagination"
	"github.com/quillmind/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/documents", authMW)

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	doc, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, doc)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	query := h.svc.Query(c.Request.Context(), middleware.CurrentUserID(c))

	var docs []models.DocumentModel
	page, err := pagination.Paginate(query, q, &docs)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, docs, page)
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.svc.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, doc)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	doc, err := h.svc.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), dto)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, doc)
}

func (h *Handler) remove(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
