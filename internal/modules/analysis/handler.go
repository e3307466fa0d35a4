package analysis

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/quillmind/core/internal/middleware"
	"github.com/quillmind/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/analysis")

	g.POST("/suggestions", h.requestSuggestions)
	g.GET("/cache/stats", authMW, h.cacheStats)
}

// POST /analysis/suggestions
func (h *Handler) requestSuggestions(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if uid := middleware.CurrentUserID(c); uid != "" {
		req.UserID = uid
	}

	result, err := h.svc.Analyze(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRequest):
			response.BadRequest(c, err.Error())
		case errors.Is(err, ErrRateLimited):
			response.TooManyRequests(c, err.Error())
		case errors.Is(err, ErrModelCallFailed):
			response.BadGateway(c, err.Error())
		case errors.Is(err, ErrAnalysisFailed):
			response.UnprocessableEntity(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}

	response.OK(c, result)
}

// GET /analysis/cache/stats
func (h *Handler) cacheStats(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		response.Unauthorized(c)
		return
	}

	stats, err := h.svc.CacheStats(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, stats)
}
