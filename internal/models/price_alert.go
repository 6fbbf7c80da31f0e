package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PriceAlert struct {
	ProductID   string          `json:"product_id"`
	UserID      uuid.UUID       `json:"user_id"`
	TargetPrice decimal.Decimal `json:"target_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PriceAlertSet holds every watch a user has. At most one alert exists per
// product.
type PriceAlertSet struct {
	UserID uuid.UUID    `json:"user_id"`
	Alerts []PriceAlert `json:"alerts"`
}

func (s *PriceAlertSet) Find(productID string) *PriceAlert {

	for i := range s.Alerts {
		if s.Alerts[i].ProductID == productID {
			return &s.Alerts[i]
		}
	}

	return nil
}

// Replace removes any prior alert for the product and inserts the new one.
// Update is defined as remove-then-insert, so prior metadata (createdAt
// included) is discarded.
func (s *PriceAlertSet) Replace(alert PriceAlert) {
	s.Remove(alert.ProductID)
	s.Alerts = append(s.Alerts, alert)
}

// Remove drops the alert for the product; absent products are a no-op.
func (s *PriceAlertSet) Remove(productID string) {
	s.Alerts = slices.DeleteFunc(s.Alerts, func(a PriceAlert) bool {
		return a.ProductID == productID
	})
}

// Active filters alerts whose creation time has passed. Today every alert is
// immediately active; the predicate exists for delayed-activation alerts.
func (s *PriceAlertSet) Active(now time.Time) []PriceAlert {

	var active []PriceAlert

	for _, alert := range s.Alerts {
		if !alert.CreatedAt.After(now) {
			active = append(active, alert)
		}
	}

	return active
}

type SetPriceAlertRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	TargetPrice decimal.Decimal `json:"target_price"`
}

type UpdatePriceAlertRequest struct {
	TargetPrice decimal.Decimal `json:"target_price"`
}

type BatchUpdateAlertsRequest struct {
	Updates []SetPriceAlertRequest `json:"updates" validate:"required,min=1,dive"`
}

// BatchAlertResult is the per-item outcome of a best-effort batch update.
type BatchAlertResult struct {
	ProductID string `json:"product_id"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// TriggeredAlert pairs an alert with the live price that undercut its target.
type TriggeredAlert struct {
	Alert        PriceAlert      `json:"alert"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}
