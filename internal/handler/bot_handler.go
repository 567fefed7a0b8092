package handler

import (
	"dexboard/backend/internal/model"
	"dexboard/backend/internal/service"
	"dexboard/backend/internal/util"

	"github.com/gin-gonic/gin"
)

// BotHandler handles bot endpoints
type BotHandler struct {
	botService *service.BotService
}

// NewBotHandler creates a new bot handler
func NewBotHandler(botService *service.BotService) *BotHandler {
	return &BotHandler{
		botService: botService,
	}
}

// ListBots handles GET /api/v1/bots
func (h *BotHandler) ListBots(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	bots, err := h.botService.ListBots(c.Request.Context(), userID)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"bots": bots})
}

// GetBot handles GET /api/v1/bots/:id
func (h *BotHandler) GetBot(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	bot, err := h.botService.GetBot(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"bot": bot})
}

// CreateBot handles POST /api/v1/bots
func (h *BotHandler) CreateBot(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	var req model.CreateBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.SendBindError(c, err)
		return
	}

	bot, err := h.botService.CreateBot(c.Request.Context(), userID, &req)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendCreated(c, gin.H{"bot": bot}, "Bot created successfully")
}

// UpdateBot handles PATCH /api/v1/bots/:id
func (h *BotHandler) UpdateBot(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	var req model.UpdateBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.SendBindError(c, err)
		return
	}

	bot, err := h.botService.UpdateBot(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"bot": bot})
}

// DeleteBot handles DELETE /api/v1/bots/:id
func (h *BotHandler) DeleteBot(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	if err := h.botService.DeleteBot(c.Request.Context(), userID, c.Param("id")); err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccessWithMessage(c, nil, "Bot deleted successfully")
}

// StartBot handles POST /api/v1/bots/:id/start
func (h *BotHandler) StartBot(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	bot, err := h.botService.StartBot(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccessWithMessage(c, gin.H{"bot": bot}, "Bot started successfully")
}

// StopBot handles POST /api/v1/bots/:id/stop
func (h *BotHandler) StopBot(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	bot, err := h.botService.StopBot(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccessWithMessage(c, gin.H{"bot": bot}, "Bot stopped successfully")
}

// GetBotStats handles GET /api/v1/bots/:id/stats
func (h *BotHandler) GetBotStats(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	stats, err := h.botService.GetBotStats(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"stats": stats})
}
