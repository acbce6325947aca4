package dtos

import "github.com/jobdeck/jobboard-api/internal/models"

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`

	// Optional; defaults to "applicant". "admin" is rejected — admin
	// accounts are only created through the users API by an existing admin.
	Role string `json:"role" binding:"omitempty,oneof=applicant company"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdateRequest is the self-service profile edit body. Role and
// status are deliberately absent; those go through the admin users API.
type ProfileUpdateRequest struct {
	Username         *string                  `json:"username"`
	ApplicantProfile *models.ApplicantProfile `json:"applicant_profile"`
	CompanyProfile   *models.CompanyProfile   `json:"company_profile"`
}

// AuthResponse pairs an issued token with the public user view.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}
