// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package router provides HTTP routing for the sandbox Security Center.
package router

import (
	"net/http"

	"github.com/lazycatapps/wasscan/internal/handler"
	"github.com/lazycatapps/wasscan/internal/middleware"
	apperrors "github.com/lazycatapps/wasscan/internal/pkg/errors"
	"github.com/lazycatapps/wasscan/internal/types"

	"github.com/gin-gonic/gin"
)

// Router holds the handlers served by the sandbox.
type Router struct {
	wasScanHandler *handler.WasScanHandler
}

// New creates a new Router instance with the provided handlers.
func New(wasScanHandler *handler.WasScanHandler) *Router {
	return &Router{wasScanHandler: wasScanHandler}
}

// Setup initializes the Gin engine with middleware and routes.
// Middleware order:
//  1. gin.Recovery() - Panic recovery
//  2. CORS - Cross-Origin Resource Sharing
//  3. APIKey - x-apikey check (if keys are configured)
func (r *Router) Setup(cfg *types.Config) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORSWithOrigins(cfg.CORS.AllowedOrigins))
	engine.Use(middleware.APIKey(cfg.Sandbox.AccessKey, cfg.Sandbox.SecretKey))

	engine.SetTrustedProxies(nil)
	engine.NoRoute(func(c *gin.Context) {
		handler.RespondError(c, apperrors.NewNotFound("Unknown resource "+c.Request.URL.Path))
	})

	r.registerRoutes(engine)

	return engine
}

// registerRoutes registers the Security Center endpoints under /rest.
//   - GET    /health              - Health check
//   - POST   /wasScan             - Create a WAS scan
//   - GET    /wasScan             - List WAS scans (?fields=)
//   - GET    /wasScan/:id         - Scan details (?fields=)
//   - PATCH  /wasScan/:id         - Edit a scan
//   - DELETE /wasScan/:id         - Delete a scan
//   - POST   /wasScan/:id/copy    - Copy a scan to another user
func (r *Router) registerRoutes(engine *gin.Engine) {
	rest := engine.Group("/rest")
	{
		rest.GET("/health", r.healthCheck)

		rest.POST("/wasScan", r.wasScanHandler.Create)
		rest.GET("/wasScan", r.wasScanHandler.List)
		rest.GET("/wasScan/:id", r.wasScanHandler.Get)
		rest.PATCH("/wasScan/:id", r.wasScanHandler.Update)
		rest.DELETE("/wasScan/:id", r.wasScanHandler.Delete)
		rest.POST("/wasScan/:id/copy", r.wasScanHandler.Copy)
	}
}

func (r *Router) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
