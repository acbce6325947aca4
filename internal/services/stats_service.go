package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jobdeck/jobboard-api/internal/apperrors"
	"github.com/jobdeck/jobboard-api/internal/models"
)

// StatsService produces the aggregate counts behind the dashboard charts.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

type AdminStats struct {
	UsersByRole       map[string]int64 `json:"users_by_role"`
	JobsByApproval    map[string]int64 `json:"jobs_by_approval"`
	TotalApplications int64            `json:"total_applications"`
}

type CompanyStats struct {
	JobsByStatus         map[string]int64 `json:"jobs_by_status"`
	ApplicationsByStatus map[string]int64 `json:"applications_by_status"`
}

type ApplicantStats struct {
	ApplicationsByStatus map[string]int64 `json:"applications_by_status"`
}

type countRow struct {
	Key   string
	Count int64
}

func (s *StatsService) Admin(ctx context.Context) (*AdminStats, error) {
	out := &AdminStats{}
	var err error
	if out.UsersByRole, err = s.groupCount(ctx, &models.User{}, "role"); err != nil {
		return nil, err
	}
	if out.JobsByApproval, err = s.groupCount(ctx, &models.Job{}, "approval_status"); err != nil {
		return nil, err
	}
	if err = s.DB.WithContext(ctx).Model(&models.Application{}).Count(&out.TotalApplications).Error; err != nil {
		logrus.WithError(err).Error("counting applications")
		return nil, apperrors.Internal(err)
	}
	return out, nil
}

func (s *StatsService) Company(ctx context.Context, companyID string) (*CompanyStats, error) {
	out := &CompanyStats{}
	var err error
	if out.JobsByStatus, err = s.groupCount(ctx, &models.Job{}, "status", "posted_by_id = ?", companyID); err != nil {
		return nil, err
	}
	if out.ApplicationsByStatus, err = s.groupCount(ctx, &models.Application{}, "status", "company_id = ?", companyID); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *StatsService) Applicant(ctx context.Context, applicantID string) (*ApplicantStats, error) {
	byStatus, err := s.groupCount(ctx, &models.Application{}, "status", "applicant_id = ?", applicantID)
	if err != nil {
		return nil, err
	}
	return &ApplicantStats{ApplicationsByStatus: byStatus}, nil
}

// groupCount runs a GROUP BY count over one column, optionally scoped by a
// where clause.
func (s *StatsService) groupCount(ctx context.Context, model interface{}, column string, where ...interface{}) (map[string]int64, error) {
	tx := s.DB.WithContext(ctx).Model(model).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column)
	if len(where) > 0 {
		tx = tx.Where(where[0], where[1:]...)
	}
	var rows []countRow
	if err := tx.Scan(&rows).Error; err != nil {
		logrus.WithError(err).Error("aggregating counts")
		return nil, apperrors.Internal(err)
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Count
	}
	return out, nil
}
