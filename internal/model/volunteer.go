package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enumerated string domains. Stored as plain strings; the valid values are
// enforced at the DTO boundary.
const (
	BranchComp  = "comp"
	BranchIT    = "it"
	BranchEntc  = "entc"
	BranchMech  = "mech"
	BranchCivil = "civil"
	BranchOther = "other"

	YearFirst  = "fy"
	YearSecond = "sy"
	YearThird  = "ty"
	YearFinal  = "btech"

	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

type Volunteer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName     string    `gorm:"size:100;not null" json:"full_name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	RollNumber   string    `gorm:"size:20;uniqueIndex;not null" json:"roll_number"`
	Branch       string    `gorm:"size:10;not null" json:"branch"`
	Year         string    `gorm:"size:10;not null" json:"year"`
	Gender       string    `gorm:"size:10" json:"gender,omitempty"`
	Phone        *string   `gorm:"size:20" json:"phone,omitempty"`
	AvatarURL    *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Roles []UserRole `gorm:"foreignKey:VolunteerID" json:"roles,omitempty"`
}

func (v *Volunteer) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
