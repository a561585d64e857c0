// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api exposes query transformation, rank reconciliation and boost
// experiments over HTTP.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/search-boost/internal/backend"
	"github.com/pdiddy/search-boost/internal/boost"
	"github.com/pdiddy/search-boost/internal/experiment"
	"github.com/pdiddy/search-boost/pkg/types"
)

// API holds handler dependencies. Runner may be nil, in which case the
// experiment endpoint reports the backend as unavailable.
type API struct {
	runner *experiment.Runner
}

// NewRouter builds a gin engine with middleware and all routes registered.
func NewRouter(runner *experiment.Runner, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	router := gin.New()
	router.Use(gin.Recovery(), RequestIDMiddleware(), LoggerMiddleware(log),
		RequestSizeLimitMiddleware(MaxRequestBytes))
	SetupRoutes(router, runner)
	return router
}

// SetupRoutes registers the API routes on router.
func SetupRoutes(router *gin.Engine, runner *experiment.Runner) {
	h := &API{runner: runner}

	router.GET("/health", h.HealthCheckHandler)

	boostRoutes := router.Group("/api/boost")
	{
		boostRoutes.POST("/transform", h.TransformHandler)
		boostRoutes.POST("/reconcile", h.ReconcileHandler)
		boostRoutes.POST("/experiment", h.ExperimentHandler)
	}
}

// TransformRequest is the body of POST /api/boost/transform.
type TransformRequest struct {
	Query       string            `json:"query"`
	BoostConfig types.BoostConfig `json:"boost_config"`
}

// TransformResponse is returned by POST /api/boost/transform.
type TransformResponse struct {
	Query            string `json:"query"`
	TransformedQuery string `json:"transformed_query"`
}

// ReconcileRequest is the body of POST /api/boost/reconcile.
type ReconcileRequest struct {
	Original []types.ResultEntry `json:"original"`
	Boosted  []types.ResultEntry `json:"boosted"`
}

// ReconcileResponse is returned by POST /api/boost/reconcile.
type ReconcileResponse struct {
	Results []types.AnnotatedEntry `json:"results"`
	Stats   types.MovementStats    `json:"stats"`
}

// HealthCheckHandler reports liveness.
func (h *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// TransformHandler rewrites a query with the posted boost configuration.
func (h *API) TransformHandler(c *gin.Context) {
	var req TransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, TransformResponse{
		Query:            req.Query,
		TransformedQuery: boost.TransformQuery(req.Query, req.BoostConfig),
	})
}

// ReconcileHandler annotates a boosted list against its baseline.
func (h *API) ReconcileHandler(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	results, stats := experiment.Compare(req.Original, req.Boosted)
	c.JSON(http.StatusOK, ReconcileResponse{Results: results, Stats: stats})
}

// ExperimentHandler runs a full experiment against the configured backend.
func (h *API) ExperimentHandler(c *gin.Context) {
	var req TransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		SendValidationError(c, "query is required")
		return
	}
	if h.runner == nil {
		SendError(c, http.StatusServiceUnavailable, ErrorCodeBackendUnavailable,
			"no search backend configured")
		return
	}

	run, err := h.runner.Run(c.Request.Context(), experiment.Request{
		Query:  req.Query,
		Config: req.BoostConfig,
	})
	switch {
	case errors.Is(err, backend.ErrEmptyQuery):
		SendValidationError(c, err.Error())
	case errors.Is(err, experiment.ErrSearchFailed):
		SendSearchError(c, err)
	case err != nil:
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, err.Error())
	default:
		c.JSON(http.StatusOK, run)
	}
}
