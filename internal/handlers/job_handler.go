package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jobdeck/jobboard-api/internal/dtos"
	"github.com/jobdeck/jobboard-api/internal/middleware"
	"github.com/jobdeck/jobboard-api/internal/services"
)

type JobHandler struct {
	JobService *services.JobService
}

func NewJobHandler(j *services.JobService) *JobHandler {
	return &JobHandler{JobService: j}
}

// List is GET /jobs — the public feed of approved, active listings.
func (h *JobHandler) List(c *gin.Context) {
	var q dtos.JobListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, "invalid query: "+err.Error())
		return
	}
	jobs, total, err := h.JobService.List(c.Request.Context(), &q)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"jobs": jobs, "total": total, "page": q.Page, "page_size": q.PageSize})
}

// Get is GET /jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.JobService.Get(c.Request.Context(), c.Param("id"), middleware.Identity(c))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, job)
}

// Create is POST /jobs (company/admin)
func (h *JobHandler) Create(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	job, err := h.JobService.Create(c.Request.Context(), middleware.Identity(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, job)
}

// Update is PUT /jobs/:id (owner/admin)
func (h *JobHandler) Update(c *gin.Context) {
	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	job, err := h.JobService.Update(c.Request.Context(), c.Param("id"), middleware.Identity(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, job)
}

// Delete is DELETE /jobs/:id (owner/admin)
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.JobService.Delete(c.Request.Context(), c.Param("id"), middleware.Identity(c)); err != nil {
		Fail(c, err)
		return
	}
	Message(c, "job deleted")
}

// ListOwn is GET /company/jobs
func (h *JobHandler) ListOwn(c *gin.Context) {
	jobs, err := h.JobService.ListForCompany(c.Request.Context(), middleware.Identity(c).ID)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, jobs)
}

// ListAll is GET /admin/jobs?approval_status=pending
func (h *JobHandler) ListAll(c *gin.Context) {
	jobs, err := h.JobService.ListAll(c.Request.Context(), c.Query("approval_status"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, jobs)
}

// SetApproval is PUT /admin/jobs/:id/approval
func (h *JobHandler) SetApproval(c *gin.Context) {
	var req dtos.JobApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	job, err := h.JobService.SetApproval(c.Request.Context(), c.Param("id"), middleware.Identity(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, job)
}
