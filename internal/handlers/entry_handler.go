package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"focustrack/internal/models"
	"focustrack/internal/repositories"
)

type EntryHandler struct {
	entries  repositories.EntryRepository
	activity repositories.ActivityRepository
}

func NewEntryHandler(entries repositories.EntryRepository, activity repositories.ActivityRepository) *EntryHandler {
	return &EntryHandler{entries: entries, activity: activity}
}

// POST /api/notes/save
func (h *EntryHandler) SaveNotes(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		EntryDate string `json:"entry_date" binding:"required"`
		Notes     string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := time.Parse("2006-01-02", req.EntryDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry_date (YYYY-MM-DD)"})
		return
	}

	if err := h.entries.SaveNotes(c.Request.Context(), userID, req.EntryDate, req.Notes); err != nil {
		log.Printf("[entry][notes][err] owner=%d date=%s: %v", userID, req.EntryDate, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save notes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Notes saved."})
}

// POST /api/activity/log
func (h *EntryHandler) LogActivity(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		Message string `json:"message" binding:"required"`
		TaskID  *int64 `json:"task_db_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := &models.ActivityEntry{
		OwnerID:   userID,
		Message:   req.Message,
		Timestamp: time.Now(),
		TaskID:    req.TaskID,
	}
	if err := h.activity.Append(c.Request.Context(), entry); err != nil {
		log.Printf("[entry][activity][err] owner=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log activity"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}
