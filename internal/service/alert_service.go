package service

import (
	"context"
	"strings"

	"gorm.io/datatypes"

	"dexboard/backend/internal/model"
	"dexboard/backend/internal/repository"
	"dexboard/backend/internal/util"
	"dexboard/backend/pkg/logger"
)

// AlertService manages alert rules
type AlertService struct {
	alertRepo *repository.AlertRepository
	botRepo   *repository.BotRepository
	log       *logger.Logger
}

// NewAlertService creates a new alert service
func NewAlertService(alertRepo *repository.AlertRepository, botRepo *repository.BotRepository, log *logger.Logger) *AlertService {
	return &AlertService{
		alertRepo: alertRepo,
		botRepo:   botRepo,
		log:       log,
	}
}

// ListAlerts lists the user's alerts, newest first
func (s *AlertService) ListAlerts(ctx context.Context, userID string) ([]model.Alert, error) {
	alerts, err := s.alertRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, util.ErrInternalServer("Failed to list alerts", err)
	}
	return alerts, nil
}

// GetAlert gets an owned alert
func (s *AlertService) GetAlert(ctx context.Context, userID, alertID string) (*model.Alert, error) {
	alert, err := s.alertRepo.GetByID(ctx, userID, alertID)
	if err != nil {
		return nil, notFoundOr(err, util.ErrAlertNotFound(), "Failed to load alert")
	}
	return alert, nil
}

// CreateAlert creates an enabled alert. A referenced bot must belong to the same user.
func (s *AlertService) CreateAlert(ctx context.Context, userID string, req *model.CreateAlertRequest) (*model.Alert, error) {
	if req.BotID != nil {
		if _, err := s.botRepo.GetByID(ctx, userID, *req.BotID); err != nil {
			return nil, notFoundOr(err, util.ErrBotNotFound(), "Failed to load bot")
		}
	}

	var asset *string
	if req.Asset != nil {
		if symbol := strings.ToUpper(strings.TrimSpace(*req.Asset)); symbol != "" {
			asset = &symbol
		}
	}

	channels := req.Channels
	if channels == nil {
		channels = []string{}
	}

	alert := &model.Alert{
		UserID:    userID,
		Name:      strings.TrimSpace(req.Name),
		Type:      req.Type,
		Condition: req.Condition,
		Threshold: *req.Threshold,
		Asset:     asset,
		BotID:     req.BotID,
		Enabled:   true,
		Channels:  datatypes.JSONSlice[string](channels),
	}
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, util.ErrInternalServer("Failed to create alert", err)
	}

	return s.GetAlert(ctx, userID, alert.ID)
}

// UpdateAlert changes the mutable fields of an owned alert
func (s *AlertService) UpdateAlert(ctx context.Context, userID, alertID string, req *model.UpdateAlertRequest) (*model.Alert, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Condition != nil {
		updates["condition"] = *req.Condition
	}
	if req.Threshold != nil {
		updates["threshold"] = *req.Threshold
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}
	if req.Channels != nil {
		updates["channels"] = datatypes.JSONSlice[string](req.Channels)
	}

	alert, err := s.alertRepo.Update(ctx, userID, alertID, updates)
	if err != nil {
		return nil, notFoundOr(err, util.ErrAlertNotFound(), "Failed to update alert")
	}
	return alert, nil
}

// DeleteAlert deletes an owned alert
func (s *AlertService) DeleteAlert(ctx context.Context, userID, alertID string) error {
	if err := s.alertRepo.Delete(ctx, userID, alertID); err != nil {
		return notFoundOr(err, util.ErrAlertNotFound(), "Failed to delete alert")
	}
	return nil
}

// ToggleAlert flips whether an owned alert is enabled
func (s *AlertService) ToggleAlert(ctx context.Context, userID, alertID string) (*model.Alert, error) {
	alert, err := s.alertRepo.Toggle(ctx, userID, alertID)
	if err != nil {
		return nil, notFoundOr(err, util.ErrAlertNotFound(), "Failed to toggle alert")
	}
	return alert, nil
}

// GetHistory lists the alerts that fired, most recent first
func (s *AlertService) GetHistory(ctx context.Context, userID string) ([]model.Alert, error) {
	alerts, err := s.alertRepo.ListTriggered(ctx, userID, util.AlertHistoryLimit)
	if err != nil {
		return nil, util.ErrInternalServer("Failed to load alert history", err)
	}
	return alerts, nil
}
