// internal/models/stats.go
package models

// Achievement is one row of the fixed threshold table, evaluated fresh on
// every request; nothing is persisted.
type Achievement struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
}

// DayProductivity is a completed-task rollup for one weekday.
type DayProductivity struct {
	DayName        string `json:"day_name"`
	TasksCompleted int64  `json:"tasks_completed"`
	TimeSpent      int64  `json:"time_spent"`
}

// MonthActivity is a completed-task rollup for one calendar month.
type MonthActivity struct {
	Month          string `json:"month"` // YYYY-MM
	TasksCompleted int64  `json:"tasks_completed"`
	TimeSpent      int64  `json:"time_spent"`
}

type AnalyticsReport struct {
	TotalTasks        int64             `json:"totalTasks"`
	CompletedTasks    int64             `json:"completedTasks"`
	TotalTimeHours    float64           `json:"totalTimeHours"`
	CurrentStreak     int               `json:"currentStreak"`
	ProductivityByDay []DayProductivity `json:"productivityByDay"`
	MonthlyActivity   []MonthActivity   `json:"monthlyActivity"`
	Achievements      []Achievement     `json:"achievements"`
}

type ProfileStats struct {
	TotalTasks        int64   `json:"totalTasks"`
	CompletedTasks    int64   `json:"completedTasks"`
	TotalHours        float64 `json:"totalHours"`
	CurrentStreak     int     `json:"currentStreak"`
	LongestStreak     int     `json:"longestStreak"`
	AchievementsCount int     `json:"achievementsCount"`
}

// DailySummary is everything the dashboard needs for one calendar date.
type DailySummary struct {
	Tasks       []Task          `json:"tasks"`
	Notes       string          `json:"notes"`
	ActivityLog []ActivityEntry `json:"activity_log"`
	Streak      int             `json:"streak"`
}
