package rubric

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/quillmind/core/internal/middleware"
	"github.com/quillmind/core/internal/modules/analysis"
	"github.com/quillmind/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/rubrics", authMW)

	g.POST("/parse", h.parse)
	g.POST("/analyze", h.analyze)
	g.GET("/:id", h.get)
}

func (h *Handler) parse(c *gin.Context) {
	var dto ParseDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rubric, err := h.svc.Parse(c.Request.Context(), middleware.CurrentUserID(c), dto)
	if err != nil {
		respondModelError(c, err)
		return
	}
	response.Created(c, rubric)
}

func (h *Handler) analyze(c *gin.Context) {
	var dto AnalyzeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	feedback, err := h.svc.Analyze(c.Request.Context(), middleware.CurrentUserID(c), dto)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c)
			return
		}
		respondModelError(c, err)
		return
	}
	response.OK(c, feedback)
}

func (h *Handler) get(c *gin.Context) {
	rubric, err := h.svc.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, rubric)
}

func respondModelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, analysis.ErrModelCallFailed):
		response.BadGateway(c, err.Error())
	case errors.Is(err, analysis.ErrAnalysisFailed):
		response.UnprocessableEntity(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
