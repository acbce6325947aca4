package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jobdeck/jobboard-api/internal/apperrors"
	"github.com/jobdeck/jobboard-api/internal/dtos"
	"github.com/jobdeck/jobboard-api/internal/models"
)

type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

// Apply submits an application for an active, approved job. The
// one-application-per-(job, applicant) rule is enforced by the composite
// unique index, not a pre-check, so two concurrent submissions cannot both
// slip through: the second insert fails with a duplicate-key error.
func (s *ApplicationService) Apply(ctx context.Context, jobID string, identity *models.User, req *dtos.ApplyRequest, resumePath string) (*models.Application, error) {
	if identity.Role != models.RoleApplicant {
		return nil, apperrors.Forbidden("only applicants can apply to jobs")
	}

	var job models.Job
	err := s.DB.WithContext(ctx).First(&job, "id = ?", jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("job not found")
		}
		logrus.WithError(err).Error("fetching job for application")
		return nil, apperrors.Internal(err)
	}
	if job.Status != models.JobStatusActive {
		return nil, apperrors.InvalidState("job is not accepting applications")
	}
	if job.ApprovalStatus != models.ApprovalApproved {
		return nil, apperrors.InvalidState("job is not approved")
	}

	app := &models.Application{
		ID:          uuid.NewString(),
		JobID:       job.ID,
		ApplicantID: identity.ID,
		CompanyID:   job.PostedByID,
		FullName:    req.FullName,
		Username:    identity.Username,
		Email:       req.Email,
		ResumePath:  resumePath,
		CoverLetter: req.CoverLetter,
		Status:      models.ApplicationPending,
	}
	if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("you have already applied to this job")
		}
		logrus.WithError(err).Error("creating application")
		return nil, apperrors.Internal(err)
	}
	return app, nil
}

// UpdateStatus moves an application through the hiring pipeline. Only the
// company that posted the job may do this; the workflow is deliberately
// loose, so any of the five states can follow any other.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, identity *models.User, req *dtos.ApplicationStatusRequest) (*models.Application, error) {
	var app models.Application
	err := s.DB.WithContext(ctx).First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("application not found")
		}
		logrus.WithError(err).Error("fetching application")
		return nil, apperrors.Internal(err)
	}
	if identity.Role != models.RoleCompany || app.CompanyID != identity.ID {
		return nil, apperrors.Forbidden("only the job's company can update this application")
	}

	status, err := models.ParseApplicationStatus(req.Status)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	app.Status = status
	if req.Notes != "" {
		app.Notes = req.Notes
	}
	if err := s.DB.WithContext(ctx).Save(&app).Error; err != nil {
		logrus.WithError(err).Error("saving application status")
		return nil, apperrors.Internal(err)
	}
	return &app, nil
}

// Get fetches one application: its applicant, the owning company, or an
// admin.
func (s *ApplicationService) Get(ctx context.Context, id string, identity *models.User) (*models.Application, error) {
	var app models.Application
	err := s.DB.WithContext(ctx).Preload("Job").First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("application not found")
		}
		logrus.WithError(err).Error("fetching application")
		return nil, apperrors.Internal(err)
	}
	if !canSeeApplication(identity, &app) {
		return nil, apperrors.Forbidden("not allowed to view this application")
	}
	return &app, nil
}

// ListFor returns the applications visible to the identity: an applicant's
// own, a company's incoming ones (optionally scoped to one job), or all of
// them for an admin.
func (s *ApplicationService) ListFor(ctx context.Context, identity *models.User, jobID string) ([]models.Application, error) {
	tx := s.DB.WithContext(ctx).Preload("Job").Order("applied_date DESC")

	switch identity.Role {
	case models.RoleApplicant:
		tx = tx.Where("applicant_id = ?", identity.ID)
	case models.RoleCompany:
		tx = tx.Where("company_id = ?", identity.ID)
	case models.RoleAdmin:
		// no scoping
	}
	if jobID != "" {
		tx = tx.Where("job_id = ?", jobID)
	}

	var apps []models.Application
	if err := tx.Find(&apps).Error; err != nil {
		logrus.WithError(err).Error("listing applications")
		return nil, apperrors.Internal(err)
	}
	return apps, nil
}

// ListForJob returns a job's applications for its owning company or an
// admin — the derived view replacing the old embedded applicants array.
func (s *ApplicationService) ListForJob(ctx context.Context, jobID string, identity *models.User) ([]models.Application, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).First(&job, "id = ?", jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("job not found")
		}
		return nil, apperrors.Internal(err)
	}
	if !canManageJob(identity, &job) {
		return nil, apperrors.Forbidden("not the owner of this job")
	}

	var apps []models.Application
	err = s.DB.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("applied_date DESC").
		Find(&apps).Error
	if err != nil {
		logrus.WithError(err).Error("listing job applications")
		return nil, apperrors.Internal(err)
	}
	return apps, nil
}

func canSeeApplication(identity *models.User, app *models.Application) bool {
	if identity == nil {
		return false
	}
	switch identity.Role {
	case models.RoleAdmin:
		return true
	case models.RoleCompany:
		return app.CompanyID == identity.ID
	case models.RoleApplicant:
		return app.ApplicantID == identity.ID
	}
	return false
}
