package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/sevasetu/volunteerhub/internal/model"
)

type ApproveHoursRequest struct {
	// ApprovedHours defaults to the recorded hours attended when omitted.
	ApprovedHours *int   `json:"approved_hours" binding:"omitempty,gte=0,lte=24"`
	Notes         string `json:"notes" binding:"omitempty,max=1000"`
}

type RejectHoursRequest struct {
	Notes string `json:"notes" binding:"required,min=2,max=1000"`
}

type BulkApproveRequest struct {
	ParticipationIDs []string `json:"participation_ids" binding:"required,min=1,dive,uuid"`
	Notes            string   `json:"notes" binding:"omitempty,max=1000"`
}

type BulkApproveResponse struct {
	Count int64 `json:"count"`
}

type PendingApprovalFilter struct {
	EventID string `form:"event_id" binding:"omitempty,uuid"`
	// Reviewable drops rows with zero attended hours, matching the
	// dashboard's pending-review count.
	Reviewable bool `form:"reviewable"`
}

type ParticipationResponse struct {
	ID             uuid.UUID  `json:"id"`
	EventID        uuid.UUID  `json:"event_id"`
	EventName      string     `json:"event_name,omitempty"`
	VolunteerID    uuid.UUID  `json:"volunteer_id"`
	VolunteerName  string     `json:"volunteer_name,omitempty"`
	RollNumber     string     `json:"roll_number,omitempty"`
	DeclaredHours  int        `json:"declared_hours"`
	HoursAttended  int        `json:"hours_attended"`
	Status         string     `json:"status"`
	ApprovalStatus string     `json:"approval_status"`
	ApprovedHours  *int       `json:"approved_hours,omitempty"`
	ApprovedByName string     `json:"approved_by_name,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	ApprovalNotes  *string    `json:"approval_notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func ToParticipationResponse(p *model.EventParticipation) ParticipationResponse {
	resp := ParticipationResponse{
		ID:             p.ID,
		EventID:        p.EventID,
		EventName:      p.Event.Name,
		VolunteerID:    p.VolunteerID,
		VolunteerName:  p.Volunteer.FullName,
		RollNumber:     p.Volunteer.RollNumber,
		DeclaredHours:  p.DeclaredHours,
		HoursAttended:  p.HoursAttended,
		Status:         p.Status,
		ApprovalStatus: p.ApprovalStatus,
		ApprovedHours:  p.ApprovedHours,
		ApprovedAt:     p.ApprovedAt,
		ApprovalNotes:  p.ApprovalNotes,
		CreatedAt:      p.CreatedAt,
	}
	if p.ApprovedBy != nil {
		resp.ApprovedByName = p.ApprovedBy.FullName
	}
	return resp
}
