package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/sevasetu/volunteerhub/internal/model"
)

type VolunteerFilter struct {
	Search   string `form:"search"`
	Branch   string `form:"branch" binding:"omitempty,oneof=comp it entc mech civil other"`
	Year     string `form:"year" binding:"omitempty,oneof=fy sy ty btech"`
	Inactive bool   `form:"inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type UpdateVolunteerRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=2,max=100"`
	Branch   *string `json:"branch" binding:"omitempty,oneof=comp it entc mech civil other"`
	Year     *string `json:"year" binding:"omitempty,oneof=fy sy ty btech"`
	Gender   *string `json:"gender" binding:"omitempty,oneof=male female other"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
}

type VolunteerResponse struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	RollNumber string    `json:"roll_number"`
	Branch     string    `json:"branch"`
	Year       string    `json:"year"`
	Gender     string    `json:"gender,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	IsActive   bool      `json:"is_active"`
	Roles      []string  `json:"roles,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type PaginatedVolunteerResponse struct {
	Data []VolunteerResponse `json:"data"`
	Meta PaginationMeta      `json:"meta"`
}

func ToVolunteerResponse(v *model.Volunteer) VolunteerResponse {
	resp := VolunteerResponse{
		ID:         v.ID,
		FullName:   v.FullName,
		Email:      v.Email,
		RollNumber: v.RollNumber,
		Branch:     v.Branch,
		Year:       v.Year,
		Gender:     v.Gender,
		Phone:      v.Phone,
		AvatarURL:  v.AvatarURL,
		IsActive:   v.IsActive,
		CreatedAt:  v.CreatedAt,
	}
	now := time.Now().UTC()
	for _, ur := range v.Roles {
		if ur.IsActive && !ur.ExpiredAt(now) {
			resp.Roles = append(resp.Roles, ur.Role.Name)
		}
	}
	return resp
}
