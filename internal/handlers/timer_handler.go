package handlers

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"

	"focustrack/internal/repositories"
	"focustrack/internal/services"
)

type TimerHandler struct {
	service services.TimerService

	// Telegram notifications on completion
	tg    *services.TelegramService
	users repositories.UserRepository
}

func NewTimerHandler(service services.TimerService, tg *services.TelegramService, users repositories.UserRepository) *TimerHandler {
	return &TimerHandler{service: service, tg: tg, users: users}
}

type timerRequest struct {
	TaskID    int64  `json:"task_id"`
	SessionID string `json:"session_id"`
}

// client session ids look like session_<timestamp>_<random>
var sessionIDRe = regexp.MustCompile(`^session_\d+_[a-z0-9]+$`)

func bindTimerRequest(c *gin.Context, checkFormat bool) (timerRequest, bool) {
	var req timerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TaskID == 0 || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task_id and session_id are required"})
		return req, false
	}
	if checkFormat && !sessionIDRe.MatchString(req.SessionID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID format"})
		return req, false
	}
	return req, true
}

// respondTimerError maps engine errors onto HTTP statuses. Owner mismatch and
// missing ids share one 404 so task ids cannot be probed; storage failures
// surface as the generic failMsg only.
func respondTimerError(c *gin.Context, err error, op, failMsg string) {
	switch {
	case errors.Is(err, repositories.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found or unauthorized"})
	case errors.Is(err, services.ErrTaskCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot start timer for completed task"})
	case errors.Is(err, services.ErrNoActiveTimer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No active timer found for this task"})
	case errors.Is(err, services.ErrSessionMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task not found or session mismatch"})
	default:
		log.Printf("[timer][%s][err] %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg})
	}
}

// POST /api/timer/start
func (h *TimerHandler) Start(c *gin.Context) {
	userID := currentUserID(c)
	req, ok := bindTimerRequest(c, true)
	if !ok {
		return
	}

	res, err := h.service.Start(c.Request.Context(), userID, req.TaskID, req.SessionID)
	if err != nil {
		respondTimerError(c, err, "start", "Failed to start timer")
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/timer/pause
func (h *TimerHandler) Pause(c *gin.Context) {
	userID := currentUserID(c)
	req, ok := bindTimerRequest(c, false)
	if !ok {
		return
	}

	res, err := h.service.Pause(c.Request.Context(), userID, req.TaskID, req.SessionID)
	if err != nil {
		respondTimerError(c, err, "pause", "Failed to pause timer")
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/timer/stop
func (h *TimerHandler) Stop(c *gin.Context) {
	userID := currentUserID(c)
	req, ok := bindTimerRequest(c, false)
	if !ok {
		return
	}

	res, err := h.service.Stop(c.Request.Context(), userID, req.TaskID, req.SessionID)
	if err != nil {
		respondTimerError(c, err, "stop", "Failed to stop timer")
		return
	}
	c.JSON(http.StatusOK, res)

	h.notifyCompletion(c, userID, req.TaskID)
}

// POST /api/timer/sync
func (h *TimerHandler) Sync(c *gin.Context) {
	userID := currentUserID(c)
	req, ok := bindTimerRequest(c, false)
	if !ok {
		return
	}

	res, err := h.service.Sync(c.Request.Context(), userID, req.TaskID, req.SessionID)
	if err != nil {
		respondTimerError(c, err, "sync", "Failed to sync timer")
		return
	}
	if res.Status == "session_invalid" {
		// stale session is a signal to the client, not an error
		c.JSON(http.StatusOK, gin.H{"status": res.Status, "message": res.Message})
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/timer/cleanup
func (h *TimerHandler) Cleanup(c *gin.Context) {
	userID := currentUserID(c)
	req, ok := bindTimerRequest(c, true)
	if !ok {
		return
	}

	if err := h.service.Cleanup(c.Request.Context(), userID, req.TaskID, req.SessionID); err != nil {
		respondTimerError(c, err, "cleanup", "Failed to cleanup timer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GET /api/timer/status/:task_id
func (h *TimerHandler) Status(c *gin.Context) {
	userID := currentUserID(c)
	taskID, err := strconv.ParseInt(c.Param("task_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	res, err := h.service.Status(c.Request.Context(), userID, taskID)
	if err != nil {
		respondTimerError(c, err, "status", "Failed to get timer status")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *TimerHandler) notifyCompletion(c *gin.Context, userID, taskID int64) {
	if h.tg == nil || h.users == nil {
		return
	}
	chatID, allow, err := h.users.GetTelegramSettings(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[timer][notify] get telegram settings failed: user=%d err=%v", userID, err)
		return
	}
	if !allow || chatID == 0 {
		return
	}
	st, err := h.service.Status(c.Request.Context(), userID, taskID)
	if err != nil {
		return
	}
	mins := st.TimeSpent / 60000
	_ = h.tg.SendMessage(chatID,
		"✅ Completed: <b>"+st.Title+"</b>\n"+
			"• Time tracked: <code>"+strconv.FormatInt(mins, 10)+" min</code>")
}
