package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobdeck/jobboard-api/internal/auth"
	"github.com/jobdeck/jobboard-api/internal/database"
	"github.com/jobdeck/jobboard-api/internal/middleware"
	"github.com/jobdeck/jobboard-api/internal/models"
	"github.com/jobdeck/jobboard-api/internal/services"
	"github.com/jobdeck/jobboard-api/internal/storage"
)

type testAPI struct {
	db     *gorm.DB
	tokens *auth.TokenManager
	router *gin.Engine
}

// newTestAPI wires the same route table as cmd/api against an in-memory
// database and a temp upload dir.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	authService := services.NewAuthService(db, tokens)
	jobService := services.NewJobService(db)
	applicationService := services.NewApplicationService(db)
	userService := services.NewUserService(db)
	statsService := services.NewStatsService(db)

	resumes, err := storage.NewResumeStore(t.TempDir())
	if err != nil {
		t.Fatalf("resume store: %v", err)
	}

	authHandler := NewAuthHandler(authService)
	jobHandler := NewJobHandler(jobService)
	applicationHandler := NewApplicationHandler(applicationService, resumes)
	userHandler := NewUserHandler(userService)
	statsHandler := NewStatsHandler(statsService)

	requireAuth := middleware.RequireAuth(tokens, authService)
	optionalAuth := middleware.OptionalAuth(tokens, authService)

	r := gin.New()
	api := r.Group("/api/v1")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", requireAuth, authHandler.Me)

		api.GET("/jobs", jobHandler.List)
		api.GET("/jobs/:id", optionalAuth, jobHandler.Get)

		jobs := api.Group("/jobs", requireAuth)
		{
			jobs.POST("", middleware.RequireRoles(models.RoleCompany, models.RoleAdmin), jobHandler.Create)
			jobs.PUT("/:id", middleware.RequireRoles(models.RoleCompany, models.RoleAdmin), jobHandler.Update)
			jobs.DELETE("/:id", middleware.RequireRoles(models.RoleCompany, models.RoleAdmin), jobHandler.Delete)
			jobs.POST("/:id/apply", middleware.RequireRoles(models.RoleApplicant), applicationHandler.Apply)
			jobs.GET("/:id/applications", middleware.RequireRoles(models.RoleCompany, models.RoleAdmin), applicationHandler.ListForJob)
		}

		apps := api.Group("/applications", requireAuth)
		{
			apps.GET("", applicationHandler.List)
			apps.PUT("/:id/status", middleware.RequireRoles(models.RoleCompany), applicationHandler.UpdateStatus)
		}

		users := api.Group("/users", requireAuth)
		{
			users.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), userHandler.Delete)
		}

		admin := api.Group("/admin", requireAuth, middleware.RequireRoles(models.RoleAdmin))
		{
			admin.PUT("/jobs/:id/approval", jobHandler.SetApproval)
			admin.GET("/stats", statsHandler.Admin)
		}
	}

	return &testAPI{db: db, tokens: tokens, router: r}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	}
	return w, parsed
}

func (a *testAPI) apply(t *testing.T, jobID, token, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("full_name", "Pat Doe")
	_ = w.WriteField("email", "pat@example.com")
	part, err := w.CreateFormFile("resume", filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing resume: %v", err)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/api/v1/jobs/"+jobID+"/apply", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) register(t *testing.T, role, email string) string {
	t.Helper()
	w, resp := a.do(t, "POST", "/api/v1/auth/register", "", gin.H{
		"username": "u-" + role,
		"email":    email,
		"password": "correct-horse",
		"role":     role,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: %d %s", email, w.Code, w.Body.String())
	}
	return resp["data"].(map[string]interface{})["token"].(string)
}

// seedAdmin inserts an admin directly; admins cannot self-register.
func (a *testAPI) seedAdmin(t *testing.T) string {
	t.Helper()
	admin := &models.User{
		ID:           uuid.NewString(),
		Username:     "root",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         models.RoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := a.db.Create(admin).Error; err != nil {
		t.Fatalf("seeding admin: %v", err)
	}
	token, err := a.tokens.Issue(admin)
	if err != nil {
		t.Fatalf("issuing admin token: %v", err)
	}
	return token
}

func TestFullHiringScenario(t *testing.T) {
	a := newTestAPI(t)

	// Register company C and log in.
	a.register(t, "company", "c@x.com")
	w, resp := a.do(t, "POST", "/api/v1/auth/login", "", gin.H{"email": "c@x.com", "password": "correct-horse"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	companyToken := resp["data"].(map[string]interface{})["token"].(string)

	// Company creates a job; it starts pending.
	w, resp = a.do(t, "POST", "/api/v1/jobs", companyToken, gin.H{
		"job_title": "Go Engineer", "company_name": "Acme", "description": "APIs",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create job: %d %s", w.Code, w.Body.String())
	}
	job := resp["data"].(map[string]interface{})
	jobID := job["id"].(string)
	if job["approval_status"] != "pending" {
		t.Fatalf("expected pending job, got %v", job["approval_status"])
	}

	// Pending job is invisible on the public feed.
	_, resp = a.do(t, "GET", "/api/v1/jobs", "", nil)
	if total := resp["data"].(map[string]interface{})["total"].(float64); total != 0 {
		t.Fatalf("pending job leaked into public feed (total %v)", total)
	}

	// Admin approves it.
	adminToken := a.seedAdmin(t)
	w, resp = a.do(t, "PUT", "/api/v1/admin/jobs/"+jobID+"/approval", adminToken, gin.H{"approval_status": "approved"})
	if w.Code != http.StatusOK {
		t.Fatalf("approve: %d %s", w.Code, w.Body.String())
	}
	if resp["data"].(map[string]interface{})["approval_status"] != "approved" {
		t.Fatalf("approval not applied: %s", w.Body.String())
	}

	// Applicant P applies with a resume.
	applicantToken := a.register(t, "applicant", "p@x.com")
	if rec := a.apply(t, jobID, applicantToken, "resume.docx", []byte("resume bytes")); rec.Code != http.StatusCreated {
		t.Fatalf("apply: %d %s", rec.Code, rec.Body.String())
	}

	// One pending application is visible to the company.
	w, resp = a.do(t, "GET", "/api/v1/jobs/"+jobID+"/applications", companyToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list applications: %d %s", w.Code, w.Body.String())
	}
	apps := resp["data"].([]interface{})
	if len(apps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(apps))
	}
	app := apps[0].(map[string]interface{})
	if app["status"] != "pending" {
		t.Fatalf("expected pending application, got %v", app["status"])
	}

	// Company moves it to interviewed.
	w, resp = a.do(t, "PUT", "/api/v1/applications/"+app["id"].(string)+"/status", companyToken, gin.H{"status": "interviewed"})
	if w.Code != http.StatusOK {
		t.Fatalf("status update: %d %s", w.Code, w.Body.String())
	}
	if resp["data"].(map[string]interface{})["status"] != "interviewed" {
		t.Fatalf("status not applied: %s", w.Body.String())
	}

	// A second apply by P conflicts.
	if rec := a.apply(t, jobID, applicantToken, "resume.docx", []byte("resume bytes")); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate apply: expected 409, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestApplyRejectsBadResume(t *testing.T) {
	a := newTestAPI(t)
	companyToken := a.register(t, "company", "c@x.com")
	adminToken := a.seedAdmin(t)
	applicantToken := a.register(t, "applicant", "p@x.com")

	_, resp := a.do(t, "POST", "/api/v1/jobs", companyToken, gin.H{
		"job_title": "Go Engineer", "company_name": "Acme", "description": "APIs",
	})
	jobID := resp["data"].(map[string]interface{})["id"].(string)
	a.do(t, "PUT", "/api/v1/admin/jobs/"+jobID+"/approval", adminToken, gin.H{"approval_status": "approved"})

	if rec := a.apply(t, jobID, applicantToken, "resume.exe", []byte("nope")); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad extension: expected 400, got %d", rec.Code)
	}
	if rec := a.apply(t, jobID, applicantToken, "resume.pdf", []byte("not a pdf")); rec.Code != http.StatusBadRequest {
		t.Fatalf("fake pdf: expected 400, got %d", rec.Code)
	}
}

func TestApplicantCannotCreateJobs(t *testing.T) {
	a := newTestAPI(t)
	applicantToken := a.register(t, "applicant", "p@x.com")

	w, _ := a.do(t, "POST", "/api/v1/jobs", applicantToken, gin.H{
		"job_title": "x", "company_name": "y", "description": "z",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRejectWithoutReasonIsBadRequest(t *testing.T) {
	a := newTestAPI(t)
	companyToken := a.register(t, "company", "c@x.com")
	adminToken := a.seedAdmin(t)

	_, resp := a.do(t, "POST", "/api/v1/jobs", companyToken, gin.H{
		"job_title": "x", "company_name": "y", "description": "z",
	})
	jobID := resp["data"].(map[string]interface{})["id"].(string)

	w, _ := a.do(t, "PUT", "/api/v1/admin/jobs/"+jobID+"/approval", adminToken, gin.H{"approval_status": "rejected"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %s", w.Code, w.Body.String())
	}
}

func TestAdminSelfDeleteForbidden(t *testing.T) {
	a := newTestAPI(t)
	adminToken := a.seedAdmin(t)

	var admin models.User
	if err := a.db.First(&admin, "role = ?", models.RoleAdmin).Error; err != nil {
		t.Fatalf("finding admin: %v", err)
	}

	w, _ := a.do(t, "DELETE", "/api/v1/users/"+admin.ID, adminToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("self delete: expected 403, got %d %s", w.Code, w.Body.String())
	}

	// A different admin account can be deleted.
	other := &models.User{
		ID: uuid.NewString(), Username: "other", Email: "other@example.com",
		PasswordHash: "x", Role: models.RoleAdmin, Status: models.UserStatusActive,
	}
	if err := a.db.Create(other).Error; err != nil {
		t.Fatalf("seeding second admin: %v", err)
	}
	w, _ = a.do(t, "DELETE", "/api/v1/users/"+other.ID, adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cross-admin delete: expected 200, got %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	a := newTestAPI(t)
	a.register(t, "applicant", "dup@x.com")

	w, _ := a.do(t, "POST", "/api/v1/auth/register", "", gin.H{
		"username": "again", "email": "dup@x.com", "password": "correct-horse",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d %s", w.Code, w.Body.String())
	}
}
