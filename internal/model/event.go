package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventDraft     = "draft"
	EventPublished = "published"
	EventOngoing   = "ongoing"
	EventCompleted = "completed"
	EventCancelled = "cancelled"
)

type EventCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Code      string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Color     string    `gorm:"size:20" json:"color"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *EventCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Event struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string        `gorm:"size:255;not null" json:"name"`
	Description   string        `gorm:"type:text" json:"description"`
	StartDate     time.Time     `gorm:"not null" json:"start_date"`
	EndDate       time.Time     `gorm:"not null" json:"end_date"`
	DeclaredHours int           `gorm:"not null;default:0" json:"declared_hours"`
	MinVolunteers int           `gorm:"default:0" json:"min_volunteers"`
	MaxVolunteers int           `gorm:"default:0" json:"max_volunteers"` // 0 means unlimited
	Status        string        `gorm:"size:20;not null;default:draft" json:"status"`
	CategoryID    *uuid.UUID    `gorm:"type:uuid" json:"category_id"`
	Category      EventCategory `gorm:"constraint:OnDelete:SET NULL" json:"category"`
	CreatedByID   uuid.UUID     `gorm:"type:uuid" json:"created_by_id"`
	CreatedBy     Volunteer     `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	IsActive      bool          `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID, err = uuid.NewV7()
	}
	return
}
