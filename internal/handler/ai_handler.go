package handler

import (
	"encoding/json"
	"time"

	"dexboard/backend/internal/service"
	"dexboard/backend/internal/util"
	"dexboard/backend/pkg/gemini"

	"github.com/gin-gonic/gin"
)

// ChatRequest is a chat turn with the conversation so far
type ChatRequest struct {
	Message string            `json:"message" binding:"required"`
	History []ChatHistoryItem `json:"history" binding:"omitempty,dive"`
}

// ChatHistoryItem is one earlier message of the conversation
type ChatHistoryItem struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

// AnalyzePortfolioRequest carries the portfolio document to review
type AnalyzePortfolioRequest struct {
	Portfolio json.RawMessage `json:"portfolio"`
}

// OptimizeBotRequest carries the bot document to tune
type OptimizeBotRequest struct {
	Bot json.RawMessage `json:"bot"`
}

// AIHandler handles the assistant endpoints
type AIHandler struct {
	aiService *service.AIService
	now       func() time.Time
}

// NewAIHandler creates a new AI handler
func NewAIHandler(aiService *service.AIService) *AIHandler {
	return &AIHandler{
		aiService: aiService,
		now:       service.UTCNow,
	}
}

// Chat handles POST /api/v1/ai/chat
func (h *AIHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.SendBindError(c, err)
		return
	}

	history := make([]gemini.Message, 0, len(req.History))
	for _, item := range req.History {
		history = append(history, gemini.Message{Role: item.Role, Content: item.Content})
	}

	reply, err := h.aiService.Chat(c.Request.Context(), req.Message, history)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{
		"message":   reply,
		"timestamp": h.timestamp(),
	})
}

// AnalyzePortfolio handles POST /api/v1/ai/analyze-portfolio
func (h *AIHandler) AnalyzePortfolio(c *gin.Context) {
	var req AnalyzePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.SendBindError(c, err)
		return
	}

	analysis, err := h.aiService.AnalyzePortfolio(c.Request.Context(), req.Portfolio)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{
		"analysis":  analysis,
		"timestamp": h.timestamp(),
	})
}

// OptimizeBot handles POST /api/v1/ai/optimize-bot
func (h *AIHandler) OptimizeBot(c *gin.Context) {
	var req OptimizeBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.SendBindError(c, err)
		return
	}

	suggestions, err := h.aiService.OptimizeBot(c.Request.Context(), req.Bot)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{
		"suggestions": suggestions,
		"timestamp":   h.timestamp(),
	})
}

func (h *AIHandler) timestamp() string {
	return h.now().Format(time.RFC3339)
}
