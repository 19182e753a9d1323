package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ParticipationRegistered       = "registered"
	ParticipationPresent          = "present"
	ParticipationAbsent           = "absent"
	ParticipationPartiallyPresent = "partially_present"
	ParticipationExcused          = "excused"

	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// EventParticipation is one volunteer's attendance record for one event.
// At most one row exists per (event, volunteer) pair.
type EventParticipation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_volunteer" json:"event_id"`
	Event       Event     `gorm:"constraint:OnDelete:CASCADE" json:"event,omitempty"`
	VolunteerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_volunteer" json:"volunteer_id"`
	Volunteer   Volunteer `gorm:"constraint:OnDelete:CASCADE" json:"volunteer,omitempty"`

	DeclaredHours int    `gorm:"not null;default:0" json:"declared_hours"`
	HoursAttended int    `gorm:"not null;default:0" json:"hours_attended"`
	Status        string `gorm:"size:20;not null;default:registered" json:"status"`

	ApprovalStatus string     `gorm:"size:20;not null;default:pending;index" json:"approval_status"`
	ApprovedHours  *int       `json:"approved_hours,omitempty"`
	ApprovedByID   *uuid.UUID `gorm:"type:uuid" json:"approved_by_id,omitempty"`
	ApprovedBy     *Volunteer `gorm:"foreignKey:ApprovedByID" json:"approved_by,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	ApprovalNotes  *string    `gorm:"type:text" json:"approval_notes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *EventParticipation) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}
