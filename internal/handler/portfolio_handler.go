package handler

import (
	"dexboard/backend/internal/model"
	"dexboard/backend/internal/service"
	"dexboard/backend/internal/util"

	"github.com/gin-gonic/gin"
)

// PortfolioHandler handles wallet, asset and portfolio endpoints
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// GetOverview handles GET /api/v1/portfolio/overview
func (h *PortfolioHandler) GetOverview(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	overview, assets, err := h.portfolioService.GetOverview(c.Request.Context(), userID)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{
		"overview": overview,
		"assets":   assets,
	})
}

// GetAssets handles GET /api/v1/portfolio/assets
func (h *PortfolioHandler) GetAssets(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	assets, err := h.portfolioService.GetAssets(c.Request.Context(), userID)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"assets": assets})
}

// GetHistory handles GET /api/v1/portfolio/history?period=
func (h *PortfolioHandler) GetHistory(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	history, err := h.portfolioService.GetHistory(c.Request.Context(), userID, c.Query("period"))
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"history": history})
}

// CaptureSnapshot handles POST /api/v1/portfolio/snapshots
func (h *PortfolioHandler) CaptureSnapshot(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	snapshot, err := h.portfolioService.CaptureSnapshot(c.Request.Context(), userID)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendCreated(c, gin.H{"snapshot": snapshot}, "Snapshot captured")
}

// ListWallets handles GET /api/v1/portfolio/wallets
func (h *PortfolioHandler) ListWallets(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	wallets, err := h.portfolioService.ListWallets(c.Request.Context(), userID)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"wallets": wallets})
}

// GetWallet handles GET /api/v1/portfolio/wallets/:id
func (h *PortfolioHandler) GetWallet(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	wallet, err := h.portfolioService.GetWallet(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"wallet": wallet})
}

// CreateWallet handles POST /api/v1/portfolio/wallets
func (h *PortfolioHandler) CreateWallet(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	var req model.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.SendBindError(c, err)
		return
	}

	wallet, err := h.portfolioService.CreateWallet(c.Request.Context(), userID, &req)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendCreated(c, gin.H{"wallet": wallet}, "Wallet added successfully")
}

// UpdateWallet handles PATCH /api/v1/portfolio/wallets/:id
func (h *PortfolioHandler) UpdateWallet(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	var req model.UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.SendBindError(c, err)
		return
	}

	wallet, err := h.portfolioService.UpdateWallet(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"wallet": wallet})
}

// DeleteWallet handles DELETE /api/v1/portfolio/wallets/:id
func (h *PortfolioHandler) DeleteWallet(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	if err := h.portfolioService.DeleteWallet(c.Request.Context(), userID, c.Param("id")); err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccessWithMessage(c, nil, "Wallet deleted successfully")
}

// UpsertAsset handles PUT /api/v1/portfolio/wallets/:id/assets
func (h *PortfolioHandler) UpsertAsset(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	var req model.UpsertAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.SendBindError(c, err)
		return
	}

	asset, err := h.portfolioService.UpsertAsset(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"asset": asset})
}

// DeleteAsset handles DELETE /api/v1/portfolio/wallets/:id/assets/:symbol
func (h *PortfolioHandler) DeleteAsset(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	if err := h.portfolioService.DeleteAsset(c.Request.Context(), userID, c.Param("id"), c.Param("symbol")); err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccessWithMessage(c, nil, "Asset removed successfully")
}
