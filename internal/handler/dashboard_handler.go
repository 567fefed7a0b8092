package handler

import (
	"dexboard/backend/internal/service"
	"dexboard/backend/internal/util"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles the dashboard aggregates
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetStats handles GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), userID)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, stats)
}

// GetPerformance handles GET /api/v1/dashboard/performance?period=
func (h *DashboardHandler) GetPerformance(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	performance, err := h.dashboardService.GetPerformance(c.Request.Context(), userID, c.Query("period"))
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, performance)
}

// GetBotsComparison handles GET /api/v1/dashboard/bots-comparison
func (h *DashboardHandler) GetBotsComparison(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	comparison, err := h.dashboardService.GetBotsComparison(c.Request.Context(), userID)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"comparison": comparison})
}
