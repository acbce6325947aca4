package models

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles. Keeping it a named type forces
// authorization checkpoints to switch over known variants instead of
// comparing raw strings.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleCompany   Role = "company"
	RoleAdmin     Role = "admin"
)

// ParseRole maps a request string onto a known role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleApplicant, RoleCompany, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusPending  UserStatus = "pending"
)

func ParseUserStatus(s string) (UserStatus, error) {
	switch UserStatus(s) {
	case UserStatusActive, UserStatusInactive, UserStatusPending:
		return UserStatus(s), nil
	}
	return "", fmt.Errorf("unknown user status %q", s)
}

// ApplicantProfile holds the job-seeker side of a user record. Stored as a
// JSON column since it is only ever read and written whole.
type ApplicantProfile struct {
	Headline   string   `json:"headline,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Experience string   `json:"experience,omitempty"`
	Location   string   `json:"location,omitempty"`
	Phone      string   `json:"phone,omitempty"`
}

// CompanyProfile holds the employer side of a user record.
type CompanyProfile struct {
	CompanyName string `json:"company_name,omitempty"`
	Website     string `json:"website,omitempty"`
	About       string `json:"about,omitempty"`
	Location    string `json:"location,omitempty"`
}

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username     string     `gorm:"size:64;not null" json:"username"`
	Email        string     `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string     `gorm:"size:191;not null" json:"-"`
	Role         Role       `gorm:"size:16;not null" json:"role"`
	Status       UserStatus `gorm:"size:16;not null;default:'active'" json:"status"`

	ApplicantProfile *ApplicantProfile `gorm:"serializer:json" json:"applicant_profile,omitempty"`
	CompanyProfile   *CompanyProfile   `gorm:"serializer:json" json:"company_profile,omitempty"`
}
