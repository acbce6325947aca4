package dtos

import "github.com/jobdeck/jobboard-api/internal/models"

// UserUpdateRequest is the admin-or-self user patch. Role and Status are
// admin-only; the service rejects patches that carry them from anyone else.
type UserUpdateRequest struct {
	Username         *string                  `json:"username"`
	Role             *string                  `json:"role" binding:"omitempty,oneof=applicant company admin"`
	Status           *string                  `json:"status" binding:"omitempty,oneof=active inactive pending"`
	ApplicantProfile *models.ApplicantProfile `json:"applicant_profile"`
	CompanyProfile   *models.CompanyProfile   `json:"company_profile"`
}
