package models

import "time"

// Settings is the single persisted preferences record.
type Settings struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	Language      string `json:"language"`
}

// DefaultSettings matches what a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{Theme: "light", Notifications: true, Language: "en"}
}

// AnalyticsEvent is one tracked interaction.
type AnalyticsEvent struct {
	Event     string         `json:"event"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Analytics is the single persisted analytics record.
type Analytics struct {
	Events []AnalyticsEvent `json:"events"`
}

// SyncTask is one queued back-office synchronization job.
type SyncTask struct {
	ID          string     `json:"id"`
	TaskType    string     `json:"task_type"`
	OrderID     string     `json:"order_id"`
	Payload     string     `json:"payload"`
	Status      string     `json:"status"`
	RetryCount  int        `json:"retry_count"`
	LastError   string     `json:"last_error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	NextRetryAt *time.Time `json:"next_retry_at,omitempty"`
}
