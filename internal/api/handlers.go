package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewpipe/internal/database"
)

// Handler serves the analyst endpoints over the review store.
type Handler struct {
	stats   database.StatsReader
	version string
}

func NewHandler(stats database.StatsReader, version string) *Handler {
	return &Handler{stats: stats, version: version}
}

// HealthCheck reports service health; the store count doubles as a
// connectivity probe.
func (h *Handler) HealthCheck(c *gin.Context) {
	count, err := h.stats.ReviewCount(c.Request.Context())
	if err != nil {
		log.Printf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "store unreachable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": h.version,
		"reviews": count,
	})
}

// GetStats returns per-bank sentiment and theme breakdowns.
func (h *Handler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	sentiments, err := h.stats.SentimentByBank(ctx)
	if err != nil {
		log.Printf("Failed to query sentiment stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query sentiment stats"})
		return
	}

	themes, err := h.stats.ThemesByBank(ctx)
	if err != nil {
		log.Printf("Failed to query theme stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query theme stats"})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		SentimentByBank: groupSentiments(sentiments),
		ThemesByBank:    groupThemes(themes),
	})
}

// ListReviews returns persisted reviews, optionally filtered by bank,
// sentiment and theme.
func (h *Handler) ListReviews(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 1000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer in [1,1000]"})
			return
		}
		limit = parsed
	}

	filter := database.ReviewFilter{
		BankName:  c.Query("bank"),
		Sentiment: c.Query("sentiment"),
		Theme:     c.Query("theme"),
		Limit:     limit,
	}

	reviews, err := h.stats.QueryReviews(c.Request.Context(), filter)
	if err != nil {
		log.Printf("Failed to query reviews: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query reviews"})
		return
	}

	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResponse(r))
	}

	c.JSON(http.StatusOK, gin.H{"count": len(out), "reviews": out})
}
