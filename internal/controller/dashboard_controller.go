package controller

import (
	"aba_assessment_backend/internal/service"
	"aba_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// Overview godoc
// @Summary Clinician dashboard overview
// @Description Aggregate counts of children, sessions by status, and users by role.
// @Tags dashboard
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.DashboardOverview}
// @Failure 403 {object} util.Response
// @Router /api/dashboard/overview [get]
func (c *DashboardController) Overview(ctx *gin.Context) {
	overview, err := c.DashboardService.Overview()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}
