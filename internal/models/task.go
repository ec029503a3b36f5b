// internal/models/task.go
package models

import "time"

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusPaused     TaskStatus = "paused"
	StatusCompleted  TaskStatus = "completed"
)

// Task represents a dated task with its timer fields.
//
// TimeSpent is accumulated milliseconds across finished timer sessions.
// TimerStartTime is set iff Status is in-progress; TimerSessionID is the
// opaque client-generated token correlating one continuous timer run.
type Task struct {
	ID              int64      `json:"id"`
	OwnerID         int64      `json:"-"`
	EntryDate       string     `json:"entry_date"` // YYYY-MM-DD
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	StartTime       *string    `json:"start_time,omitempty"` // scheduled time of day, HH:MM
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Status          TaskStatus `json:"status"`
	TimeSpent       int64      `json:"time_spent"`
	TimerStartTime  *time.Time `json:"timer_start_time,omitempty"`
	TimerSessionID  *string    `json:"timer_session_id,omitempty"`
	LastSyncTime    *time.Time `json:"last_sync_time,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TimerUpdate is the full set of timer columns written by one engine
// transition. Status and the timer fields always travel together so they
// cannot disagree outside a transaction.
type TimerUpdate struct {
	Status       TaskStatus
	TimeSpent    int64
	StartTime    *time.Time // nil clears timer_start_time
	SessionID    *string    // nil clears timer_session_id
	LastSyncTime *time.Time // nil clears last_sync_time
}
