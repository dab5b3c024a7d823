// SPDX-License-Identifier: Apache-2.0

// Package api serves the citation store and renderer over HTTP.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reviewdesk/citeengine/internal/citation"
)

// Controller handles the citation endpoints. Emphasis state is kept per review.
type Controller struct {
	store  citation.Store
	logger *slog.Logger
	delay  time.Duration

	mu       sync.Mutex
	emphasis map[string]*citation.Emphasizer
}

// NewController creates a Controller over store. delay is how long an
// emphasized citation stays active.
func NewController(store citation.Store, logger *slog.Logger, delay time.Duration) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		store:    store,
		logger:   logger,
		delay:    delay,
		emphasis: make(map[string]*citation.Emphasizer),
	}
}

func (c *Controller) emphasizer(reviewID string) *citation.Emphasizer {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.emphasis[reviewID]
	if !ok {
		e = citation.NewEmphasizer(c.delay)
		c.emphasis[reviewID] = e
	}
	return e
}

// activeEmphasis reads the emphasized citation of a review without creating
// an entry, so renders of arbitrary review ids leave the map untouched.
func (c *Controller) activeEmphasis(reviewID string) string {
	c.mu.Lock()
	e, ok := c.emphasis[reviewID]
	c.mu.Unlock()
	if !ok {
		return ""
	}
	return e.Active()
}

// forget drops the emphasis entry of a review.
func (c *Controller) forget(reviewID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.emphasis[reviewID]; ok {
		e.Stop()
		delete(c.emphasis, reviewID)
	}
}

// Close stops every pending emphasis timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.emphasis {
		e.Stop()
	}
}

// ListCitations handles GET /api/v1/reviews/:reviewID/citations.
func (c *Controller) ListCitations(ctx *gin.Context) {
	reviewID := ctx.Param("reviewID")
	cites, err := c.store.Fetch(ctx.Request.Context(), reviewID)
	if err != nil {
		c.logger.Error("fetch citations failed", "review_id", reviewID, "error", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch citations"})
		return
	}
	ctx.JSON(http.StatusOK, CitationsResponse{ReviewID: reviewID, Count: len(cites), Citations: nonNil(cites)})
}

// ReplaceCitations handles PUT /api/v1/reviews/:reviewID/citations.
func (c *Controller) ReplaceCitations(ctx *gin.Context) {
	reviewID := ctx.Param("reviewID")
	var req ReplaceCitationsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := citation.Replace(ctx.Request.Context(), c.store, reviewID, req.Citations); err != nil {
		if errors.Is(err, citation.ErrInvalidCitation) {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.logger.Error("replace citations failed", "review_id", reviewID, "error", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save citations"})
		return
	}

	c.logger.Info("citations saved", "review_id", reviewID, "count", len(req.Citations))
	sorted := citation.SortByOffset(req.Citations)
	ctx.JSON(http.StatusOK, CitationsResponse{ReviewID: reviewID, Count: len(sorted), Citations: sorted})
}

// DeleteCitations handles DELETE /api/v1/reviews/:reviewID/citations.
func (c *Controller) DeleteCitations(ctx *gin.Context) {
	reviewID := ctx.Param("reviewID")
	if err := c.store.DeleteAll(ctx.Request.Context(), reviewID); err != nil {
		c.logger.Error("delete citations failed", "review_id", reviewID, "error", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete citations"})
		return
	}
	c.forget(reviewID)
	ctx.Status(http.StatusNoContent)
}

// Emphasize handles POST /api/v1/reviews/:reviewID/emphasis.
func (c *Controller) Emphasize(ctx *gin.Context) {
	reviewID := ctx.Param("reviewID")
	var req EmphasizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	e := c.emphasizer(reviewID)
	e.Emphasize(req.CitationID)
	ctx.JSON(http.StatusAccepted, gin.H{"active_id": req.CitationID, "clears_after_ms": c.delayOrDefault().Milliseconds()})
}

func (c *Controller) delayOrDefault() time.Duration {
	if c.delay <= 0 {
		return citation.DefaultEmphasis
	}
	return c.delay
}

// Render handles POST /api/v1/reviews/:reviewID/render: the body is rendered
// with the review's stored citations and current emphasis.
func (c *Controller) Render(ctx *gin.Context) {
	reviewID := ctx.Param("reviewID")
	var req RenderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	cites, err := c.store.Fetch(ctx.Request.Context(), reviewID)
	if err != nil {
		// Render without highlights rather than failing the page.
		c.logger.Warn("fetch citations failed, rendering without highlights", "review_id", reviewID, "error", err)
		cites = nil
	}

	active := c.activeEmphasis(reviewID)
	r := citation.Highlight(citation.Project(req.Body), cites, active)
	for _, id := range r.Skipped {
		c.logger.Debug("citation text not found", "review_id", reviewID, "citation_id", id)
	}
	ctx.JSON(http.StatusOK, RenderResponse{
		ActiveID: active,
		Blocks:   r.Blocks,
		Spans:    nonNil(r.Spans),
		Skipped:  nonNil(r.Skipped),
	})
}

// Capture handles POST /api/v1/capture. It responds 204 when no selection is
// recorded.
func (c *Controller) Capture(ctx *gin.Context) {
	var req CaptureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if !req.Identity.CanCite() {
		ctx.Status(http.StatusNoContent)
		return
	}
	sel, ok := citation.Capture(citation.PlainText(citation.Project(req.Body)), req.Anchor, req.Focus)
	if !ok {
		ctx.Status(http.StatusNoContent)
		return
	}
	ctx.JSON(http.StatusOK, sel)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
