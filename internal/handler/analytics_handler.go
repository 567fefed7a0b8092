package handler

import (
	"strconv"

	"dexboard/backend/internal/service"
	"dexboard/backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler handles trading analytics endpoints
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GetAnalytics handles GET /api/v1/analytics?period=
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	analytics, err := h.analyticsService.GetAnalytics(c.Request.Context(), userID, c.Query("period"))
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, analytics)
}

// GetStats handles GET /api/v1/analytics/stats?period=
func (h *AnalyticsHandler) GetStats(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	stats, err := h.analyticsService.GetStats(c.Request.Context(), userID, c.Query("period"))
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"stats": stats})
}

// ListTrades handles GET /api/v1/analytics/trades?period=&page=&limit=
func (h *AnalyticsHandler) ListTrades(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	// Unparsable values fall back to the defaults applied by the service
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(util.DefaultPageLimit)))

	result, err := h.analyticsService.ListTrades(c.Request.Context(), userID, c.Query("period"), page, limit)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendPaginated(c, result.Trades, util.Pagination{
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.Total,
	})
}
