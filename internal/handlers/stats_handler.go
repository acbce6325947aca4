package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jobdeck/jobboard-api/internal/middleware"
	"github.com/jobdeck/jobboard-api/internal/services"
)

type StatsHandler struct {
	StatsService *services.StatsService
}

func NewStatsHandler(s *services.StatsService) *StatsHandler {
	return &StatsHandler{StatsService: s}
}

// Admin is GET /admin/stats
func (h *StatsHandler) Admin(c *gin.Context) {
	stats, err := h.StatsService.Admin(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, stats)
}

// Company is GET /company/stats
func (h *StatsHandler) Company(c *gin.Context) {
	stats, err := h.StatsService.Company(c.Request.Context(), middleware.Identity(c).ID)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, stats)
}

// Applicant is GET /applicant/stats
func (h *StatsHandler) Applicant(c *gin.Context) {
	stats, err := h.StatsService.Applicant(c.Request.Context(), middleware.Identity(c).ID)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, stats)
}
