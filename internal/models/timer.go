// internal/models/timer.go
package models

import "time"

// TimerStartResult is returned by a successful start.
type TimerStartResult struct {
	Status         string    `json:"status"`
	TimerStartTime time.Time `json:"timer_start_time"`
	SessionID      string    `json:"session_id"`
}

// TimerOpResult is the shared shape of pause and stop responses.
type TimerOpResult struct {
	Status           string `json:"status"`
	TimeSpent        int64  `json:"time_spent"`
	ElapsedInSession int64  `json:"elapsed_in_session"`
}

// TimerSyncResult is the heartbeat response. Status is "success" or
// "session_invalid"; a session_invalid response carries no timer data.
type TimerSyncResult struct {
	Status                string     `json:"status"`
	Message               string     `json:"message,omitempty"`
	TaskStatus            TaskStatus `json:"task_status,omitempty"`
	TimeSpent             int64      `json:"time_spent"`
	CurrentSessionElapsed int64      `json:"current_session_elapsed"`
	TotalDisplayTime      int64      `json:"total_display_time"`
	TimerStartTime        *time.Time `json:"timer_start_time"`
}

// TimerStatus is the read-only projection of a task's timer state.
type TimerStatus struct {
	TaskID                int64      `json:"task_id"`
	Status                TaskStatus `json:"status"`
	TimeSpent             int64      `json:"time_spent"`
	CurrentSessionElapsed int64      `json:"current_session_elapsed"`
	TotalDisplayTime      int64      `json:"total_display_time"`
	TimerStartTime        *time.Time `json:"timer_start_time"`
	SessionID             *string    `json:"session_id"`
	Title                 string     `json:"title"`
}
