package handler

import (
	"dexboard/backend/internal/model"
	"dexboard/backend/internal/service"
	"dexboard/backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AlertHandler handles alert endpoints
type AlertHandler struct {
	alertService *service.AlertService
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alertService *service.AlertService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
	}
}

// ListAlerts handles GET /api/v1/alerts
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	alerts, err := h.alertService.ListAlerts(c.Request.Context(), userID)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"alerts": alerts})
}

// GetAlert handles GET /api/v1/alerts/:id
func (h *AlertHandler) GetAlert(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	alert, err := h.alertService.GetAlert(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"alert": alert})
}

// CreateAlert handles POST /api/v1/alerts
func (h *AlertHandler) CreateAlert(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	var req model.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.SendBindError(c, err)
		return
	}

	alert, err := h.alertService.CreateAlert(c.Request.Context(), userID, &req)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendCreated(c, gin.H{"alert": alert}, "Alert created successfully")
}

// UpdateAlert handles PATCH /api/v1/alerts/:id
func (h *AlertHandler) UpdateAlert(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	var req model.UpdateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.SendBindError(c, err)
		return
	}

	alert, err := h.alertService.UpdateAlert(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"alert": alert})
}

// DeleteAlert handles DELETE /api/v1/alerts/:id
func (h *AlertHandler) DeleteAlert(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	if err := h.alertService.DeleteAlert(c.Request.Context(), userID, c.Param("id")); err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccessWithMessage(c, nil, "Alert deleted successfully")
}

// ToggleAlert handles POST /api/v1/alerts/:id/toggle
func (h *AlertHandler) ToggleAlert(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	alert, err := h.alertService.ToggleAlert(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"alert": alert})
}

// GetHistory handles GET /api/v1/alerts/history
func (h *AlertHandler) GetHistory(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	history, err := h.alertService.GetHistory(c.Request.Context(), userID)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"history": history})
}
