package models

import (
	"fmt"
	"time"
)

// JobStatus is the company-controlled listing state. There is no enforced
// transition graph; the owner may move a job between any of these freely.
type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"
)

func ParseJobStatus(s string) (JobStatus, error) {
	switch JobStatus(s) {
	case JobStatusActive, JobStatusClosed, JobStatusDraft:
		return JobStatus(s), nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// ApprovalStatus is the admin-controlled gate on public visibility.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	switch ApprovalStatus(s) {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return ApprovalStatus(s), nil
	}
	return "", fmt.Errorf("unknown approval status %q", s)
}

type SalaryType string

const (
	SalaryHourly  SalaryType = "hourly"
	SalaryMonthly SalaryType = "monthly"
	SalaryYearly  SalaryType = "yearly"
)

type Job struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JobTitle        string     `gorm:"size:191;not null" json:"job_title"`
	CompanyName     string     `gorm:"size:191;not null" json:"company_name"`
	SalaryMin       int        `json:"salary_min"`
	SalaryMax       int        `json:"salary_max"`
	SalaryType      SalaryType `gorm:"size:16;default:'yearly'" json:"salary_type"`
	JobLocation     string     `gorm:"size:191" json:"job_location"`
	ExperienceLevel string     `gorm:"size:64" json:"experience_level"`
	EmploymentType  string     `gorm:"size:64" json:"employment_type"`
	Description     string     `gorm:"type:text" json:"description"`
	Requirements    []string   `gorm:"serializer:json" json:"requirements"`
	Skills          []string   `gorm:"serializer:json" json:"skills"`

	PostedByID string `gorm:"size:36;index;not null" json:"posted_by_id"`
	PostedBy   *User  `gorm:"foreignKey:PostedByID" json:"posted_by,omitempty"`

	Status          JobStatus      `gorm:"size:16;not null;default:'active'" json:"status"`
	ApprovalStatus  ApprovalStatus `gorm:"size:16;not null;default:'pending'" json:"approval_status"`
	RejectionReason string         `gorm:"type:text" json:"rejection_reason,omitempty"`

	// Derived view over the applications table; Preload() fills this.
	// The application rows are the single source of truth.
	Applications []Application `gorm:"foreignKey:JobID" json:"applications,omitempty"`
}

// Visible reports whether the listing shows up in the public job feed.
func (j *Job) Visible() bool {
	return j.ApprovalStatus == ApprovalApproved && j.Status != JobStatusDraft
}
