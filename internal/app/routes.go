package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quillmind/core/internal/middleware"
	"github.com/quillmind/core/internal/modules/analysis"
	"github.com/quillmind/core/internal/modules/document"
	"github.com/quillmind/core/internal/modules/rubric"
	"github.com/quillmind/core/internal/modules/suggestion"
	"github.com/quillmind/core/internal/pkg/ratelimit"
	pkgredis "github.com/quillmind/core/internal/pkg/redis"
	"github.com/quillmind/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	cfg := a.cfg
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":     "quillmind-core",
		"version":  "1.0.0",
		"homepage": "https://github.com/quillmind/core",
	}

	// Idempotence runs on every mutating route except analysis submissions,
	// which answer repeats from the content-hash cache.
	r.Use(middleware.Idempotence(rc.Raw()))

	// Shared services
	limiter := ratelimit.New(rc, cfg.RateLimit.RequestsPerHour, time.Hour)
	cache := analysis.NewCache(rc, a.logger)
	tracker := analysis.NewTracker(db)
	sugStore := analysis.NewSuggestionStore(db, a.logger)

	analysisCaller := analysis.NewModelCaller(cfg.AI, cfg.AI.AnalysisModel)
	analysisSvc := analysis.NewService(cache, tracker, limiter, analysisCaller, sugStore, cfg.AI.AnalysisTemperature, a.logger)

	rubricCaller := analysis.NewModelCaller(cfg.AI, cfg.AI.RubricModel)
	rubricSvc := rubric.NewService(db, rubricCaller, cfg.AI.DefaultTemperature, a.logger)

	docSvc := document.NewService(db)
	sugSvc := suggestion.NewService(db, tracker, a.logger)

	// Versioned API
	api := r.Group("/api/v2")
	api.Use(middleware.OptionalAuth())

	// Short-lived redis cache on the anonymous public GETs.
	publicCache := middleware.HTTPCache(rc.Raw(), 0)

	api.GET("/ping", publicCache, func(c *gin.Context) {
		response.OK(c, gin.H{"message": "pong"})
	})
	api.GET("/info", publicCache, func(c *gin.Context) {
		info := gin.H{"uptime": a.uptime().Truncate(time.Second).String()}
		for k, v := range appInfo {
			info[k] = v
		}
		response.OK(c, info)
	})

	analysis.NewHandler(analysisSvc).RegisterRoutes(api, authMW)
	document.NewHandler(docSvc).RegisterRoutes(api, authMW)
	suggestion.NewHandler(sugSvc).RegisterRoutes(api, authMW)
	rubric.NewHandler(rubricSvc).RegisterRoutes(api, authMW)

	// Background job admin surface
	jobs := api.Group("/jobs", authMW)
	jobs.GET("", func(c *gin.Context) {
		response.OK(c, a.sched.List())
	})
	jobs.POST("/:name/run", func(c *gin.Context) {
		if err := a.sched.Run(c.Request.Context(), c.Param("name")); err != nil {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.OK(c, gin.H{"message": "job started"})
	})
}
