package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"focustrack/internal/models"
	"focustrack/internal/repositories"
	"focustrack/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func isAllowedTaskStatus(s models.TaskStatus) bool {
	switch s {
	case models.StatusPending, models.StatusInProgress, models.StatusPaused, models.StatusCompleted:
		return true
	}
	return false
}

// POST /api/user-tasks
func (h *TaskHandler) Create(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		EntryDate       string  `json:"entry_date" binding:"required"`
		Title           string  `json:"title" binding:"required"`
		Description     string  `json:"description"`
		StartTime       *string `json:"start_time"`
		DurationMinutes *int    `json:"duration_minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := time.Parse("2006-01-02", req.EntryDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry_date (YYYY-MM-DD)"})
		return
	}

	task := &models.Task{
		OwnerID:         userID,
		EntryDate:       req.EntryDate,
		Title:           req.Title,
		Description:     req.Description,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
	}
	createdTask, err := h.service.Create(c.Request.Context(), task)
	if err != nil {
		log.Printf("[task][create][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}
	log.Printf("[task][create][ok] id=%d owner=%d title=%q", createdTask.ID, userID, createdTask.Title)
	c.JSON(http.StatusCreated, createdTask)
}

// GET /api/daily-summary?date=YYYY-MM-DD
func (h *TaskHandler) DailySummary(c *gin.Context) {
	userID := currentUserID(c)

	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date (YYYY-MM-DD)"})
		return
	}

	summary, err := h.service.DailySummary(c.Request.Context(), userID, date)
	if err != nil {
		log.Printf("[task][summary][err] owner=%d date=%s: %v", userID, date, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load daily summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// PUT /api/user-tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	userID := currentUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		Title           string            `json:"title" binding:"required"`
		Description     string            `json:"description"`
		StartTime       *string           `json:"start_time"`
		DurationMinutes *int              `json:"duration_minutes"`
		Status          models.TaskStatus `json:"status" binding:"required"`
		TimeSpent       int64             `json:"time_spent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !isAllowedTaskStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	updatedTask, err := h.service.Update(c.Request.Context(), id, userID, &models.Task{
		Title:           req.Title,
		Description:     req.Description,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Status:          req.Status,
		TimeSpent:       req.TimeSpent,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found or unauthorized"})
			return
		}
		log.Printf("[task][update][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}
	log.Printf("[task][update][ok] id=%d", id)
	c.JSON(http.StatusOK, updatedTask)
}

// PUT /api/user-tasks/:id/status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	userID := currentUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		Status    models.TaskStatus `json:"status" binding:"required"`
		TimeSpent int64             `json:"time_spent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !isAllowedTaskStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	if err := h.service.UpdateStatusAndTime(c.Request.Context(), id, userID, req.Status, req.TimeSpent); err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found or unauthorized"})
			return
		}
		log.Printf("[task][status][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Task status and time updated."})
}

// DELETE /api/user-tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	userID := currentUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found or unauthorized"})
			return
		}
		log.Printf("[task][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}
	log.Printf("[task][delete][ok] id=%d owner=%d", id, userID)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Task deleted."})
}
