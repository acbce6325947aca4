package models

import (
	"fmt"
	"time"
)

// ApplicationStatus is the company-side hiring pipeline state. Transitions
// among the non-pending states are unordered; "pending" is only ever the
// initial state.
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationReviewed    ApplicationStatus = "reviewed"
	ApplicationInterviewed ApplicationStatus = "interviewed"
	ApplicationOffered     ApplicationStatus = "offered"
	ApplicationRejected    ApplicationStatus = "rejected"
)

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch ApplicationStatus(s) {
	case ApplicationPending, ApplicationReviewed, ApplicationInterviewed,
		ApplicationOffered, ApplicationRejected:
		return ApplicationStatus(s), nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

type Application struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// The composite unique index is the duplicate-apply guard: two
	// concurrent submissions race on the insert, not on a pre-check.
	JobID       string `gorm:"size:36;not null;uniqueIndex:idx_applications_job_applicant" json:"job_id"`
	Job         *Job   `gorm:"foreignKey:JobID" json:"job,omitempty"`
	ApplicantID string `gorm:"size:36;not null;uniqueIndex:idx_applications_job_applicant" json:"applicant_id"`
	Applicant   *User  `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`

	// Copy of Job.PostedByID so ownership checks need no join.
	CompanyID string `gorm:"size:36;index;not null" json:"company_id"`

	FullName    string `gorm:"size:191" json:"full_name"`
	Username    string `gorm:"size:64" json:"username"`
	Email       string `gorm:"size:191" json:"email"`
	ResumePath  string `gorm:"size:255;not null" json:"resume_path"`
	CoverLetter string `gorm:"type:text" json:"cover_letter,omitempty"`

	Status ApplicationStatus `gorm:"size:16;not null;default:'pending'" json:"status"`
	Notes  string            `gorm:"type:text" json:"notes,omitempty"`

	AppliedDate time.Time `gorm:"autoCreateTime" json:"applied_date"`
	UpdatedAt   time.Time `json:"updated_at"`
}
