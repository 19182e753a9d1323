package dto

import (
	"time"

	"github.com/google/uuid"
)

type DashboardStats struct {
	TotalVolunteers int64 `json:"total_volunteers"`
	TotalEvents     int64 `json:"total_events"`
	TotalHours      int64 `json:"total_hours"`
	PendingReviews  int64 `json:"pending_reviews"`
	ActiveEvents    int64 `json:"active_events"`
}

type MonthlyTrend struct {
	Month           string `json:"month"` // "2026-08"
	EventsCount     int64  `json:"events_count"`
	VolunteersCount int64  `json:"volunteers_count"`
	HoursSum        int64  `json:"hours_sum"`
}

type EventImpact struct {
	EventID      uuid.UUID `json:"event_id"`
	EventName    string    `json:"event_name"`
	Participants int64     `json:"participants"`
	Hours        int64     `json:"hours"`
	ImpactScore  int64     `json:"impact_score"`
}

type EndingSoonEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	EventName string    `json:"event_name"`
	EndDate   time.Time `json:"end_date"`
}
