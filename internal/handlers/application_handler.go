package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jobdeck/jobboard-api/internal/dtos"
	"github.com/jobdeck/jobboard-api/internal/middleware"
	"github.com/jobdeck/jobboard-api/internal/services"
	"github.com/jobdeck/jobboard-api/internal/storage"
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
	Resumes            *storage.ResumeStore
}

func NewApplicationHandler(a *services.ApplicationService, r *storage.ResumeStore) *ApplicationHandler {
	return &ApplicationHandler{ApplicationService: a, Resumes: r}
}

// Apply is POST /jobs/:id/apply (applicant, multipart). The resume file is
// stored first; if the application insert then fails the stored file is an
// orphan on disk, never a dangling reference in the database.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dtos.ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		BadRequest(c, "invalid form: "+err.Error())
		return
	}
	fh, err := c.FormFile("resume")
	if err != nil {
		BadRequest(c, "resume file is required")
		return
	}

	resumePath, err := h.Resumes.Save(fh)
	if err != nil {
		Fail(c, err)
		return
	}

	app, err := h.ApplicationService.Apply(c.Request.Context(), c.Param("id"), middleware.Identity(c), &req, resumePath)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, app)
}

// List is GET /applications, scoped by the caller's role.
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.ApplicationService.ListFor(c.Request.Context(), middleware.Identity(c), c.Query("job_id"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, apps)
}

// Get is GET /applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.ApplicationService.Get(c.Request.Context(), c.Param("id"), middleware.Identity(c))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, app)
}

// UpdateStatus is PUT /applications/:id/status (owning company)
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req dtos.ApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	app, err := h.ApplicationService.UpdateStatus(c.Request.Context(), c.Param("id"), middleware.Identity(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, app)
}

// ListForJob is GET /jobs/:id/applications (owning company/admin)
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	apps, err := h.ApplicationService.ListForJob(c.Request.Context(), c.Param("id"), middleware.Identity(c))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, apps)
}
