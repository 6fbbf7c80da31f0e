package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/api/middleware"
	"github.com/kwatiwellness/commerce-platform/internal/catalog"
	"github.com/kwatiwellness/commerce-platform/internal/command"
	"github.com/kwatiwellness/commerce-platform/internal/errors"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	repository "github.com/kwatiwellness/commerce-platform/internal/repositories"
	"github.com/shopspring/decimal"
)

// AlertNotifier delivers a price-drop notification to the watching user.
type AlertNotifier interface {
	SendPriceAlert(ctx context.Context, toEmail, productID string, targetPrice, currentPrice decimal.Decimal) error
}

type PriceAlertService struct {
	repo     repository.PriceAlertRepository
	catalog  catalog.PriceCatalog
	notifier AlertNotifier
	runner   *command.Runner
}

func NewPriceAlertService(repo repository.PriceAlertRepository, priceCatalog catalog.PriceCatalog, notifier AlertNotifier) *PriceAlertService {
	return &PriceAlertService{
		repo:     repo,
		catalog:  priceCatalog,
		notifier: notifier,
		runner:   command.NewRunner(),
	}
}

func (s *PriceAlertService) Status() command.Status {
	return s.runner.Status()
}

func (s *PriceAlertService) GetActiveAlerts(ctx context.Context, userID uuid.UUID) ([]models.PriceAlert, error) {

	set, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	return set.Active(time.Now()), nil
}

// SetAlert registers a watch on the product. A watch already registered for
// the same product is replaced wholesale.
func (s *PriceAlertService) SetAlert(ctx context.Context, userID uuid.UUID, req *models.SetPriceAlertRequest) (*models.PriceAlert, error) {

	if !req.TargetPrice.IsPositive() {
		return nil, errors.ValidationError("Target price must be greater than zero")
	}

	set, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	alert := models.PriceAlert{
		ProductID:   req.ProductID,
		UserID:      userID,
		TargetPrice: req.TargetPrice,
		CreatedAt:   time.Now(),
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {
		set.Replace(alert)
		return s.persist(ctx, set)
	})
	if err != nil {
		return nil, err
	}

	return &alert, nil
}

// RemoveAlert drops the watch. Removing a watch that does not exist is a
// no-op.
func (s *PriceAlertService) RemoveAlert(ctx context.Context, userID uuid.UUID, productID string) error {

	set, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	return s.runner.Execute(ctx, func(ctx context.Context) error {
		set.Remove(productID)
		return s.persist(ctx, set)
	})
}

// UpdateAlert replaces the existing watch with a fresh one carrying the new
// target. The original registration time is not preserved.
func (s *PriceAlertService) UpdateAlert(ctx context.Context, userID uuid.UUID, productID string, req *models.UpdatePriceAlertRequest) (*models.PriceAlert, error) {

	if !req.TargetPrice.IsPositive() {
		return nil, errors.ValidationError("Target price must be greater than zero")
	}

	set, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if set.Find(productID) == nil {
		return nil, errors.NotFoundError("Price alert not found")
	}

	alert := models.PriceAlert{
		ProductID:   productID,
		UserID:      userID,
		TargetPrice: req.TargetPrice,
		CreatedAt:   time.Now(),
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {
		set.Replace(alert)
		return s.persist(ctx, set)
	})
	if err != nil {
		return nil, err
	}

	return &alert, nil
}

// BatchUpdateAlerts applies each update independently and reports a per-item
// outcome. One bad item does not stop the rest; the set is persisted once
// with every successful update applied.
func (s *PriceAlertService) BatchUpdateAlerts(ctx context.Context, userID uuid.UUID, req *models.BatchUpdateAlertsRequest) ([]models.BatchAlertResult, error) {

	set, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	results := make([]models.BatchAlertResult, 0, len(req.Updates))

	err = s.runner.Execute(ctx, func(ctx context.Context) error {

		for _, update := range req.Updates {

			if update.ProductID == "" {
				results = append(results, models.BatchAlertResult{
					ProductID: update.ProductID,
					Error:     "product id is required",
				})
				continue
			}

			if !update.TargetPrice.IsPositive() {
				results = append(results, models.BatchAlertResult{
					ProductID: update.ProductID,
					Error:     "target price must be greater than zero",
				})
				continue
			}

			set.Replace(models.PriceAlert{
				ProductID:   update.ProductID,
				UserID:      userID,
				TargetPrice: update.TargetPrice,
				CreatedAt:   time.Now(),
			})

			results = append(results, models.BatchAlertResult{
				ProductID: update.ProductID,
				Success:   true,
			})
		}

		return s.persist(ctx, set)
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// CheckAlerts compares every active watch against the live catalog price and
// notifies the user for each product at or below its target. Notification
// failures are logged, not surfaced; the triggered list is returned either
// way.
func (s *PriceAlertService) CheckAlerts(ctx context.Context, userID uuid.UUID, email string) ([]models.TriggeredAlert, error) {

	logger := middleware.LoggerFromContext(ctx)

	set, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	var triggered []models.TriggeredAlert

	for _, alert := range set.Active(time.Now()) {

		price, err := s.catalog.PriceOf(ctx, alert.ProductID)
		if err != nil {
			return nil, errors.NetworkError("Failed to resolve product price").WithError(err)
		}

		// products without a published price never trigger
		if !price.IsPositive() || price.GreaterThan(alert.TargetPrice) {
			continue
		}

		triggered = append(triggered, models.TriggeredAlert{
			Alert:        alert,
			CurrentPrice: price,
		})

		if email == "" {
			continue
		}

		if err := s.notifier.SendPriceAlert(ctx, email, alert.ProductID, alert.TargetPrice, price); err != nil {
			logger.Error("Failed to send price alert notification",
				slog.String("productId", alert.ProductID),
				slog.Any("error", err))
		}
	}

	return triggered, nil
}

func (s *PriceAlertService) load(ctx context.Context, userID uuid.UUID) (*models.PriceAlertSet, error) {

	set, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load price alerts").WithError(err)
	}

	if set == nil {
		set = &models.PriceAlertSet{UserID: userID}
	}

	return set, nil
}

func (s *PriceAlertService) persist(ctx context.Context, set *models.PriceAlertSet) error {

	if err := s.repo.Save(ctx, set); err != nil {
		return errors.DatabaseError("Failed to update price alerts").WithError(err)
	}

	return nil
}
