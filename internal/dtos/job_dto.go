package dtos

type JobCreationRequest struct {
	JobTitle    string `json:"job_title" binding:"required"`
	CompanyName string `json:"company_name" binding:"required"`
	Description string `json:"description" binding:"required"`

	// Optional fields
	SalaryMin       int      `json:"salary_min" binding:"omitempty,min=0"`
	SalaryMax       int      `json:"salary_max" binding:"omitempty,min=0"`
	SalaryType      string   `json:"salary_type" binding:"omitempty,oneof=hourly monthly yearly"`
	JobLocation     string   `json:"job_location"`
	ExperienceLevel string   `json:"experience_level"`
	EmploymentType  string   `json:"employment_type"`
	Requirements    []string `json:"requirements"`
	Skills          []string `json:"skills"`
	Status          string   `json:"status" binding:"omitempty,oneof=active closed draft"` // defaults to "active"
}

// JobUpdateRequest is a partial patch; nil means "leave unchanged".
// ApprovalStatus and RejectionReason are present only so the service can
// reject patches from roles that may not touch them.
type JobUpdateRequest struct {
	JobTitle        *string   `json:"job_title"`
	CompanyName     *string   `json:"company_name"`
	SalaryMin       *int      `json:"salary_min"`
	SalaryMax       *int      `json:"salary_max"`
	SalaryType      *string   `json:"salary_type" binding:"omitempty,oneof=hourly monthly yearly"`
	JobLocation     *string   `json:"job_location"`
	ExperienceLevel *string   `json:"experience_level"`
	EmploymentType  *string   `json:"employment_type"`
	Description     *string   `json:"description"`
	Requirements    *[]string `json:"requirements"`
	Skills          *[]string `json:"skills"`
	Status          *string   `json:"status" binding:"omitempty,oneof=active closed draft"`
	ApprovalStatus  *string   `json:"approval_status"`
	RejectionReason *string   `json:"rejection_reason"`
}

// JobApprovalRequest is the admin review body.
type JobApprovalRequest struct {
	ApprovalStatus  string `json:"approval_status" binding:"required,oneof=pending approved rejected"`
	RejectionReason string `json:"rejection_reason"`
}

// JobListQuery carries the public feed filters.
type JobListQuery struct {
	Search         string `form:"search"`
	Location       string `form:"location"`
	EmploymentType string `form:"employment_type"`
	Page           int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize       int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}
