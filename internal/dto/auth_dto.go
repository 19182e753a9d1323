package dto

type RegisterRequest struct {
	FullName   string `json:"full_name" binding:"required,min=2,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8,max=72"`
	RollNumber string `json:"roll_number" binding:"required,max=20"`
	Branch     string `json:"branch" binding:"required,oneof=comp it entc mech civil other"`
	Year       string `json:"year" binding:"required,oneof=fy sy ty btech"`
	Gender     string `json:"gender" binding:"omitempty,oneof=male female other"`
	Phone      string `json:"phone" binding:"omitempty,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string            `json:"token"`
	Volunteer VolunteerResponse `json:"volunteer"`
}
