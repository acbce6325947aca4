package dtos

// ApplyRequest is bound from the multipart form accompanying the resume
// file on POST /jobs/:id/apply.
type ApplyRequest struct {
	FullName    string `form:"full_name" binding:"required"`
	Email       string `form:"email" binding:"required,email"`
	CoverLetter string `form:"cover_letter"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending reviewed interviewed offered rejected"`
	Notes  string `json:"notes"`
}
