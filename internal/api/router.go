// SPDX-License-Identifier: Apache-2.0

package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// NewRouter wires the controller's handlers onto a gin engine.
func NewRouter(c *Controller, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), cors())

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{
			"status":  "healthy",
			"service": "citeengine",
			"version": Version,
		})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/capture", c.Capture)

		reviews := v1.Group("/reviews/:reviewID")
		reviews.GET("/citations", c.ListCitations)
		reviews.PUT("/citations", c.ReplaceCitations)
		reviews.DELETE("/citations", c.DeleteCitations)
		reviews.POST("/emphasis", c.Emphasize)
		reviews.POST("/render", c.Render)
	}
	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"dur_ms", time.Since(start).Milliseconds(),
		)
	}
}
