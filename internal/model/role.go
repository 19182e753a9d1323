package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role hierarchy levels. Higher level grants everything below it.
const (
	RoleVolunteer = "volunteer"
	RoleHead      = "head"
	RoleAdmin     = "admin"

	LevelVolunteer = 1
	LevelHead      = 2
	LevelAdmin     = 3
)

type RoleDefinition struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	DisplayName string    `gorm:"size:100" json:"display_name"`
	Level       int       `gorm:"not null;default:1" json:"level"`
	Permissions string    `gorm:"type:text" json:"permissions"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type UserRole struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	VolunteerID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"volunteer_id"`
	RoleID       uint           `gorm:"not null" json:"role_id"`
	Role         RoleDefinition `gorm:"foreignKey:RoleID" json:"role"`
	AssignedByID *uuid.UUID     `gorm:"type:uuid" json:"assigned_by_id,omitempty"`
	AssignedAt   time.Time      `gorm:"autoCreateTime" json:"assigned_at"`
	ExpiresAt    *time.Time     `json:"expires_at,omitempty"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
}

func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ExpiredAt reports whether the assignment has lapsed at the given instant.
func (r *UserRole) ExpiredAt(now time.Time) bool {
	return r.ExpiresAt != nil && !r.ExpiresAt.After(now)
}
