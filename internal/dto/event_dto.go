package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/sevasetu/volunteerhub/internal/model"
)

type CreateEventRequest struct {
	Name          string    `json:"name" binding:"required,min=3,max=255"`
	Description   string    `json:"description" binding:"omitempty,max=5000"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`
	DeclaredHours int       `json:"declared_hours" binding:"gte=0,lte=100"`
	MinVolunteers int       `json:"min_volunteers" binding:"gte=0"`
	MaxVolunteers int       `json:"max_volunteers" binding:"gte=0"`
	CategoryID    string    `json:"category_id" binding:"required,uuid"`
}

type UpdateEventRequest struct {
	Name          *string    `json:"name" binding:"omitempty,min=3,max=255"`
	Description   *string    `json:"description" binding:"omitempty,max=5000"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	DeclaredHours *int       `json:"declared_hours" binding:"omitempty,gte=0,lte=100"`
	MinVolunteers *int       `json:"min_volunteers" binding:"omitempty,gte=0"`
	MaxVolunteers *int       `json:"max_volunteers" binding:"omitempty,gte=0"`
	Status        *string    `json:"status" binding:"omitempty,oneof=draft published ongoing completed cancelled"`
	CategoryID    *string    `json:"category_id" binding:"omitempty,uuid"`
}

type EventFilter struct {
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=draft published ongoing completed cancelled"`
	Search     string `form:"search"`
	Upcoming   bool   `form:"upcoming"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type EventResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	DeclaredHours int       `json:"declared_hours"`
	MinVolunteers int       `json:"min_volunteers"`
	MaxVolunteers int       `json:"max_volunteers"`
	Status        string    `json:"status"`
	CategoryName  string    `json:"category_name,omitempty"`
	CategoryCode  string    `json:"category_code,omitempty"`
	CreatedByName string    `json:"created_by_name,omitempty"`
	RegisteredCnt int64     `json:"registered_count"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

type PaginatedEventResponse struct {
	Data []EventResponse `json:"data"`
	Meta PaginationMeta  `json:"meta"`
}

func ToEventResponse(e *model.Event, registered int64) EventResponse {
	return EventResponse{
		ID:            e.ID,
		Name:          e.Name,
		Description:   e.Description,
		StartDate:     e.StartDate,
		EndDate:       e.EndDate,
		DeclaredHours: e.DeclaredHours,
		MinVolunteers: e.MinVolunteers,
		MaxVolunteers: e.MaxVolunteers,
		Status:        e.Status,
		CategoryName:  e.Category.Name,
		CategoryCode:  e.Category.Code,
		CreatedByName: e.CreatedBy.FullName,
		RegisteredCnt: registered,
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt,
	}
}

type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Code  string `json:"code" binding:"required,min=2,max=20"`
	Color string `json:"color" binding:"omitempty,max=20"`
}

type UpdateCategoryRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	Color    *string `json:"color" binding:"omitempty,max=20"`
	IsActive *bool   `json:"is_active"`
}

type RegisterParticipationRequest struct {
	VolunteerID   string `json:"volunteer_id" binding:"omitempty,uuid"` // defaults to the caller
	DeclaredHours int    `json:"declared_hours" binding:"gte=0,lte=24"`
}

type MarkAttendanceRequest struct {
	Status        string `json:"status" binding:"required,oneof=registered present absent partially_present excused"`
	HoursAttended int    `json:"hours_attended" binding:"gte=0,lte=24"`
}
