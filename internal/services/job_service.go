package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jobdeck/jobboard-api/internal/apperrors"
	"github.com/jobdeck/jobboard-api/internal/dtos"
	"github.com/jobdeck/jobboard-api/internal/models"
)

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{DB: db}
}

// Create posts a new listing. Approval always starts at "pending" no matter
// what the request says; only the admin review endpoint moves it.
func (s *JobService) Create(ctx context.Context, identity *models.User, req *dtos.JobCreationRequest) (*models.Job, error) {
	status := models.JobStatusActive
	if req.Status != "" {
		parsed, err := models.ParseJobStatus(req.Status)
		if err != nil {
			return nil, apperrors.Validation(err.Error())
		}
		status = parsed
	}
	salaryType := models.SalaryYearly
	if req.SalaryType != "" {
		salaryType = models.SalaryType(req.SalaryType)
	}
	if req.SalaryMax != 0 && req.SalaryMax < req.SalaryMin {
		return nil, apperrors.Validation("salary_max must not be below salary_min")
	}

	job := &models.Job{
		ID:              uuid.NewString(),
		JobTitle:        req.JobTitle,
		CompanyName:     req.CompanyName,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		SalaryType:      salaryType,
		JobLocation:     req.JobLocation,
		ExperienceLevel: req.ExperienceLevel,
		EmploymentType:  req.EmploymentType,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Skills:          req.Skills,
		PostedByID:      identity.ID,
		Status:          status,
		ApprovalStatus:  models.ApprovalPending,
	}
	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		logrus.WithError(err).Error("creating job")
		return nil, apperrors.Internal(err)
	}
	return job, nil
}

// Get fetches one listing. Unapproved or draft jobs are only visible to the
// posting company and admins; everyone else sees NotFound rather than a
// hint that the job exists.
func (s *JobService) Get(ctx context.Context, id string, identity *models.User) (*models.Job, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).Preload("PostedBy").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("job not found")
		}
		logrus.WithError(err).Error("fetching job")
		return nil, apperrors.Internal(err)
	}
	if !job.Visible() && !canManageJob(identity, &job) {
		return nil, apperrors.NotFound("job not found")
	}
	return &job, nil
}

// List is the public feed: approved, non-draft listings with optional
// search filters.
func (s *JobService) List(ctx context.Context, q *dtos.JobListQuery) ([]models.Job, int64, error) {
	tx := s.DB.WithContext(ctx).Model(&models.Job{}).
		Where("approval_status = ?", models.ApprovalApproved).
		Where("status = ?", models.JobStatusActive)

	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where("LOWER(job_title) LIKE ? OR LOWER(company_name) LIKE ?", like, like)
	}
	if q.Location != "" {
		tx = tx.Where("LOWER(job_location) LIKE ?", "%"+strings.ToLower(q.Location)+"%")
	}
	if q.EmploymentType != "" {
		tx = tx.Where("employment_type = ?", q.EmploymentType)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	page, pageSize := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	var jobs []models.Job
	err := tx.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&jobs).Error
	if err != nil {
		logrus.WithError(err).Error("listing jobs")
		return nil, 0, apperrors.Internal(err)
	}
	return jobs, total, nil
}

// ListForCompany returns every job posted by the company, approved or not.
func (s *JobService) ListForCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.WithContext(ctx).
		Where("posted_by_id = ?", companyID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		logrus.WithError(err).Error("listing company jobs")
		return nil, apperrors.Internal(err)
	}
	return jobs, nil
}

// ListAll is the admin review queue, optionally filtered by approval state.
func (s *JobService) ListAll(ctx context.Context, approval string) ([]models.Job, error) {
	tx := s.DB.WithContext(ctx).Preload("PostedBy").Order("created_at DESC")
	if approval != "" {
		parsed, err := models.ParseApprovalStatus(approval)
		if err != nil {
			return nil, apperrors.Validation(err.Error())
		}
		tx = tx.Where("approval_status = ?", parsed)
	}
	var jobs []models.Job
	if err := tx.Find(&jobs).Error; err != nil {
		logrus.WithError(err).Error("listing all jobs")
		return nil, apperrors.Internal(err)
	}
	return jobs, nil
}

// Update applies a partial patch. Only the posting company or an admin may
// write, and approval fields in the patch are rejected for non-admins —
// admins are pointed at the review endpoint's rules instead.
func (s *JobService) Update(ctx context.Context, id string, identity *models.User, req *dtos.JobUpdateRequest) (*models.Job, error) {
	job, err := s.loadOwned(ctx, id, identity)
	if err != nil {
		return nil, err
	}

	if req.ApprovalStatus != nil || req.RejectionReason != nil {
		switch identity.Role {
		case models.RoleAdmin:
			// Admins review via SetApproval so the reason rules apply there.
			return nil, apperrors.Validation("approval changes go through the approval endpoint")
		case models.RoleCompany, models.RoleApplicant:
			return nil, apperrors.Validation("approval_status cannot be set by this role")
		}
	}

	if req.JobTitle != nil {
		job.JobTitle = *req.JobTitle
	}
	if req.CompanyName != nil {
		job.CompanyName = *req.CompanyName
	}
	if req.SalaryMin != nil {
		job.SalaryMin = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = *req.SalaryMax
	}
	if req.SalaryType != nil {
		job.SalaryType = models.SalaryType(*req.SalaryType)
	}
	if req.JobLocation != nil {
		job.JobLocation = *req.JobLocation
	}
	if req.ExperienceLevel != nil {
		job.ExperienceLevel = *req.ExperienceLevel
	}
	if req.EmploymentType != nil {
		job.EmploymentType = *req.EmploymentType
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = *req.Requirements
	}
	if req.Skills != nil {
		job.Skills = *req.Skills
	}
	if req.Status != nil {
		parsed, err := models.ParseJobStatus(*req.Status)
		if err != nil {
			return nil, apperrors.Validation(err.Error())
		}
		job.Status = parsed
	}

	if err := s.DB.WithContext(ctx).Save(job).Error; err != nil {
		logrus.WithError(err).Error("updating job")
		return nil, apperrors.Internal(err)
	}
	return job, nil
}

// Delete removes a listing and its applications.
func (s *JobService) Delete(ctx context.Context, id string, identity *models.User) error {
	job, err := s.loadOwned(ctx, id, identity)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", job.ID).Delete(&models.Application{}).Error; err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Delete(job).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
}

// SetApproval is the admin review action. Every transition between the
// three states is legal and repeating the current state is a no-op, so a
// job can be re-reviewed at any time. Rejection demands a reason; approval
// clears whatever reason was there.
func (s *JobService) SetApproval(ctx context.Context, id string, identity *models.User, req *dtos.JobApprovalRequest) (*models.Job, error) {
	if identity.Role != models.RoleAdmin {
		return nil, apperrors.Forbidden("only admins review jobs")
	}

	var job models.Job
	err := s.DB.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("job not found")
		}
		return nil, apperrors.Internal(err)
	}

	target, err := models.ParseApprovalStatus(req.ApprovalStatus)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	switch target {
	case models.ApprovalRejected:
		if strings.TrimSpace(req.RejectionReason) == "" {
			return nil, apperrors.Validation("rejection_reason is required when rejecting")
		}
		job.ApprovalStatus = models.ApprovalRejected
		job.RejectionReason = req.RejectionReason
	case models.ApprovalApproved:
		job.ApprovalStatus = models.ApprovalApproved
		job.RejectionReason = ""
	case models.ApprovalPending:
		job.ApprovalStatus = models.ApprovalPending
		job.RejectionReason = ""
	}

	if err := s.DB.WithContext(ctx).Save(&job).Error; err != nil {
		logrus.WithError(err).Error("saving job approval")
		return nil, apperrors.Internal(err)
	}
	return &job, nil
}

// loadOwned fetches a job and enforces the write-ownership rule: the
// posting company or an admin, nobody else.
func (s *JobService) loadOwned(ctx context.Context, id string, identity *models.User) (*models.Job, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("job not found")
		}
		logrus.WithError(err).Error("fetching job")
		return nil, apperrors.Internal(err)
	}
	if !canManageJob(identity, &job) {
		return nil, apperrors.Forbidden("not the owner of this job")
	}
	return &job, nil
}

func canManageJob(identity *models.User, job *models.Job) bool {
	if identity == nil {
		return false
	}
	switch identity.Role {
	case models.RoleAdmin:
		return true
	case models.RoleCompany:
		return job.PostedByID == identity.ID
	case models.RoleApplicant:
		return false
	}
	return false
}
