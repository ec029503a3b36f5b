package handlers

import (
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"focustrack/internal/pdf"
	"focustrack/internal/services"
)

type StatsHandler struct {
	stats   services.StatsService
	users   services.UserService
	reports pdf.Generator
}

func NewStatsHandler(stats services.StatsService, users services.UserService, reports pdf.Generator) *StatsHandler {
	return &StatsHandler{stats: stats, users: users, reports: reports}
}

// GET /api/analytics
func (h *StatsHandler) Analytics(c *gin.Context) {
	userID := currentUserID(c)

	report, err := h.stats.Analytics(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[stats][analytics][err] owner=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/profile/stats
func (h *StatsHandler) ProfileStats(c *gin.Context) {
	userID := currentUserID(c)

	stats, err := h.stats.ProfileStats(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[stats][profile][err] owner=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/reports/productivity
func (h *StatsHandler) ProductivityReport(c *gin.Context) {
	userID := currentUserID(c)

	if h.reports == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Report export is not configured"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[stats][report][err] load user=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	report, err := h.stats.Analytics(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[stats][report][err] analytics owner=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	path, err := h.reports.GenerateProductivityReport(user.Username, report, time.Now())
	if err != nil {
		log.Printf("[stats][report][err] render owner=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	log.Printf("[stats][report][ok] owner=%d file=%s", userID, path)
	c.FileAttachment(path, filepath.Base(path))
}
