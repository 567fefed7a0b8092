package handler

import (
	"dexboard/backend/internal/model"
	"dexboard/backend/internal/service"
	"dexboard/backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TradeHandler handles trade recording
type TradeHandler struct {
	tradeService *service.TradeService
}

// NewTradeHandler creates a new trade handler
func NewTradeHandler(tradeService *service.TradeService) *TradeHandler {
	return &TradeHandler{
		tradeService: tradeService,
	}
}

// RecordTrade handles POST /api/v1/trades
func (h *TradeHandler) RecordTrade(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	var req model.CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.SendBindError(c, err)
		return
	}

	trade, err := h.tradeService.RecordTrade(c.Request.Context(), userID, &req)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendCreated(c, gin.H{"trade": trade}, "Trade recorded successfully")
}
