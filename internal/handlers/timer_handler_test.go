package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focustrack/internal/models"
	"focustrack/internal/repositories"
	"focustrack/internal/services"
)

type stubTimerService struct {
	startFn  func(ownerID, taskID int64, sessionID string) (*models.TimerStartResult, error)
	pauseFn  func(ownerID, taskID int64, sessionID string) (*models.TimerOpResult, error)
	stopFn   func(ownerID, taskID int64, sessionID string) (*models.TimerOpResult, error)
	syncFn   func(ownerID, taskID int64, sessionID string) (*models.TimerSyncResult, error)
	statusFn func(ownerID, taskID int64) (*models.TimerStatus, error)
}

func (s *stubTimerService) Start(_ context.Context, ownerID, taskID int64, sessionID string) (*models.TimerStartResult, error) {
	return s.startFn(ownerID, taskID, sessionID)
}

func (s *stubTimerService) Pause(_ context.Context, ownerID, taskID int64, sessionID string) (*models.TimerOpResult, error) {
	return s.pauseFn(ownerID, taskID, sessionID)
}

func (s *stubTimerService) Stop(_ context.Context, ownerID, taskID int64, sessionID string) (*models.TimerOpResult, error) {
	return s.stopFn(ownerID, taskID, sessionID)
}

func (s *stubTimerService) Sync(_ context.Context, ownerID, taskID int64, sessionID string) (*models.TimerSyncResult, error) {
	return s.syncFn(ownerID, taskID, sessionID)
}

func (s *stubTimerService) Cleanup(_ context.Context, ownerID, taskID int64, sessionID string) error {
	return nil
}

func (s *stubTimerService) Status(_ context.Context, ownerID, taskID int64) (*models.TimerStatus, error) {
	return s.statusFn(ownerID, taskID)
}

func newTimerRouter(svc services.TimerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", int64(7))
		c.Next()
	})
	h := NewTimerHandler(svc, nil, nil)
	r.POST("/api/timer/start", h.Start)
	r.POST("/api/timer/pause", h.Pause)
	r.POST("/api/timer/stop", h.Stop)
	r.POST("/api/timer/sync", h.Sync)
	r.GET("/api/timer/status/:task_id", h.Status)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTimerStart_RejectsBadSessionIDFormat(t *testing.T) {
	called := false
	r := newTimerRouter(&stubTimerService{
		startFn: func(int64, int64, string) (*models.TimerStartResult, error) {
			called = true
			return nil, nil
		},
	})

	w := postJSON(t, r, "/api/timer/start", `{"task_id":1,"session_id":"not-a-session"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid session ID format")
	assert.False(t, called, "service must not be reached on a malformed session id")
}

func TestTimerStart_AcceptsValidSessionID(t *testing.T) {
	r := newTimerRouter(&stubTimerService{
		startFn: func(ownerID, taskID int64, sessionID string) (*models.TimerStartResult, error) {
			require.Equal(t, int64(7), ownerID)
			require.Equal(t, int64(42), taskID)
			return &models.TimerStartResult{Status: "success", SessionID: sessionID}, nil
		},
	})

	w := postJSON(t, r, "/api/timer/start", `{"task_id":42,"session_id":"session_1736900000_k3j9x"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "session_1736900000_k3j9x")
}

func TestTimerStart_CompletedTaskIs400(t *testing.T) {
	r := newTimerRouter(&stubTimerService{
		startFn: func(int64, int64, string) (*models.TimerStartResult, error) {
			return nil, services.ErrTaskCompleted
		},
	})

	w := postJSON(t, r, "/api/timer/start", `{"task_id":1,"session_id":"session_1_a"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot start timer for completed task")
}

func TestTimerPause_NoActiveTimerIs400(t *testing.T) {
	r := newTimerRouter(&stubTimerService{
		pauseFn: func(int64, int64, string) (*models.TimerOpResult, error) {
			return nil, services.ErrNoActiveTimer
		},
	})

	w := postJSON(t, r, "/api/timer/pause", `{"task_id":1,"session_id":"anything"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No active timer found for this task")
}

func TestTimerStop_UnknownTaskIs404(t *testing.T) {
	r := newTimerRouter(&stubTimerService{
		stopFn: func(int64, int64, string) (*models.TimerOpResult, error) {
			return nil, repositories.ErrTaskNotFound
		},
	})

	w := postJSON(t, r, "/api/timer/stop", `{"task_id":999,"session_id":"anything"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Task not found or unauthorized")
}

func TestTimerSync_StaleSessionIs200(t *testing.T) {
	r := newTimerRouter(&stubTimerService{
		syncFn: func(int64, int64, string) (*models.TimerSyncResult, error) {
			return &models.TimerSyncResult{
				Status:  "session_invalid",
				Message: "Timer session is no longer valid",
			}, nil
		},
	})

	w := postJSON(t, r, "/api/timer/sync", `{"task_id":1,"session_id":"stale"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "session_invalid")
	assert.NotContains(t, w.Body.String(), "time_spent")
}

func TestTimerStatus_ReturnsProjection(t *testing.T) {
	r := newTimerRouter(&stubTimerService{
		statusFn: func(ownerID, taskID int64) (*models.TimerStatus, error) {
			require.Equal(t, int64(5), taskID)
			return &models.TimerStatus{TaskID: taskID, Status: models.StatusPaused, TimeSpent: 5000, Title: "Write report"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/timer/status/5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Write report")
}

func TestTimerRequest_MissingFieldsIs400(t *testing.T) {
	r := newTimerRouter(&stubTimerService{})

	w := postJSON(t, r, "/api/timer/start", `{"task_id":1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "task_id and session_id are required")
}
