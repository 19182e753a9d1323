package dto

import "time"

type AssignRoleRequest struct {
	VolunteerID string     `json:"volunteer_id" binding:"required,uuid"`
	RoleName    string     `json:"role_name" binding:"required,oneof=volunteer head admin"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

type RevokeRoleRequest struct {
	VolunteerID string `json:"volunteer_id" binding:"required,uuid"`
	RoleName    string `json:"role_name" binding:"required,oneof=volunteer head admin"`
}
