// internal/models/activity.go
package models

import "time"

// ActivityEntry is one line of the per-user activity log.
type ActivityEntry struct {
	ID        int64     `json:"-"`
	OwnerID   int64     `json:"-"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	TaskID    *int64    `json:"task_db_id"`
}
