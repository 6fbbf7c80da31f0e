package models_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceAlertSet(t *testing.T) {

	userID := uuid.New()

	t.Run("Success - replace keeps one alert per product", func(t *testing.T) {
		// Arrange
		set := &models.PriceAlertSet{UserID: userID}
		original := models.PriceAlert{
			ProductID:   "sku-1",
			UserID:      userID,
			TargetPrice: decimal.NewFromInt(50),
			CreatedAt:   time.Now().Add(-time.Hour),
		}
		set.Replace(original)

		// Act
		replacement := models.PriceAlert{
			ProductID:   "sku-1",
			UserID:      userID,
			TargetPrice: decimal.NewFromInt(40),
			CreatedAt:   time.Now(),
		}
		set.Replace(replacement)

		// Assert
		require.Len(t, set.Alerts, 1)
		assert.True(t, set.Alerts[0].TargetPrice.Equal(decimal.NewFromInt(40)))
		assert.NotEqual(t, original.CreatedAt, set.Alerts[0].CreatedAt)
	})

	t.Run("Success - removing an absent product is a no-op", func(t *testing.T) {
		// Arrange
		set := &models.PriceAlertSet{UserID: userID}
		set.Replace(models.PriceAlert{ProductID: "sku-1", UserID: userID, TargetPrice: decimal.NewFromInt(10)})

		// Act
		set.Remove("sku-unknown")

		// Assert
		assert.Len(t, set.Alerts, 1)
	})

	t.Run("Success - active filters out future alerts", func(t *testing.T) {
		// Arrange
		now := time.Now()
		set := &models.PriceAlertSet{
			UserID: userID,
			Alerts: []models.PriceAlert{
				{ProductID: "sku-live", CreatedAt: now.Add(-time.Minute)},
				{ProductID: "sku-future", CreatedAt: now.Add(time.Hour)},
			},
		}

		// Act
		active := set.Active(now)

		// Assert
		require.Len(t, active, 1)
		assert.Equal(t, "sku-live", active[0].ProductID)
	})
}
