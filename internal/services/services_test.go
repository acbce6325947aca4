package services

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobdeck/jobboard-api/internal/apperrors"
	"github.com/jobdeck/jobboard-api/internal/auth"
	"github.com/jobdeck/jobboard-api/internal/database"
	"github.com/jobdeck/jobboard-api/internal/dtos"
	"github.com/jobdeck/jobboard-api/internal/models"
)

// newTestDB opens an isolated in-memory database with the real schema,
// including the unique indexes the services rely on.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping test db: %v", err)
	}
	// A pooled second connection would see a different :memory: database.
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return db
}

func newTestTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour)
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     string(role) + "-user",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Status:       models.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

func seedJob(t *testing.T, db *gorm.DB, company *models.User, mutate ...func(*models.Job)) *models.Job {
	t.Helper()
	job := &models.Job{
		ID:             uuid.NewString(),
		JobTitle:       "Backend Engineer",
		CompanyName:    "Acme",
		Description:    "Build APIs",
		PostedByID:     company.ID,
		Status:         models.JobStatusActive,
		ApprovalStatus: models.ApprovalApproved,
	}
	for _, m := range mutate {
		m(job)
	}
	if err := db.Create(job).Error; err != nil {
		t.Fatalf("seeding job: %v", err)
	}
	return job
}

func wantKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %d, got nil", kind)
	}
	if got := apperrors.KindOf(err); got != kind {
		t.Fatalf("expected error kind %d, got %d (%v)", kind, got, err)
	}
}

func applyReq() *dtos.ApplyRequest {
	return &dtos.ApplyRequest{FullName: "Pat Doe", Email: "pat@example.com"}
}

var ctx = context.Background()
