package service_test

import (
	"testing"

	"github.com/google/uuid"
	appErrors "github.com/kwatiwellness/commerce-platform/internal/errors"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	service "github.com/kwatiwellness/commerce-platform/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartFixture() (*MockCartRepository, *MockPriceCatalog, *MockCouponValidator, *service.CartService) {
	mockRepo := &MockCartRepository{}
	mockCatalog := &MockPriceCatalog{}
	mockCoupons := &MockCouponValidator{}
	cartService := service.NewCartService(mockRepo, mockCatalog, mockCoupons)
	return mockRepo, mockCatalog, mockCoupons, cartService
}

func TestCartService_AddItem(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success - new item snapshots the catalog price", func(t *testing.T) {
		// Arrange
		mockRepo, mockCatalog, _, cartService := newCartFixture()

		mockRepo.On("Get", mock.Anything, userID).Return(nil, nil).Once()
		mockCatalog.On("PriceOf", mock.Anything, "sku-1").Return(decimal.NewFromInt(20), nil).Once()
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		cart, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: "sku-1", Quantity: 2})

		// Assert
		require.NoError(t, err)
		item := cart.Items["sku-1"]
		assert.Equal(t, 2, item.Quantity)
		assert.True(t, item.PriceAtAdd.Equal(decimal.NewFromInt(20)))
		mockRepo.AssertExpectations(t)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Success - adding the same product merges quantities", func(t *testing.T) {
		// Arrange
		mockRepo, _, _, cartService := newCartFixture()

		existing := &models.Cart{
			ID:     uuid.New(),
			UserID: userID,
			Items: map[string]models.CartItem{
				"sku-1": {ProductID: "sku-1", Quantity: 2, PriceAtAdd: decimal.NewFromInt(20)},
			},
		}

		mockRepo.On("Get", mock.Anything, userID).Return(existing, nil).Once()
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		cart, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: "sku-1", Quantity: 3})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 5, cart.Items["sku-1"].Quantity)
		assert.Len(t, cart.Items, 1)
		assert.True(t, cart.Items["sku-1"].PriceAtAdd.Equal(decimal.NewFromInt(20)), "merge keeps the original snapshot")
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - store write error surfaces", func(t *testing.T) {
		// Arrange
		mockRepo, mockCatalog, _, cartService := newCartFixture()

		mockRepo.On("Get", mock.Anything, userID).Return(nil, nil).Once()
		mockCatalog.On("PriceOf", mock.Anything, "sku-1").Return(decimal.NewFromInt(20), nil).Once()
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.Cart")).Return(assert.AnError).Once()

		// Act
		_, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: "sku-1", Quantity: 1})

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		assert.Equal(t, assert.AnError.Error(), appErr.Err.Error())
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success - removing an absent product is a no-op", func(t *testing.T) {
		// Arrange
		mockRepo, _, _, cartService := newCartFixture()

		mockRepo.On("Get", mock.Anything, userID).Return(nil, nil).Once()
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		cart, err := cartService.RemoveItem(ctx, userID, "sku-unknown")

		// Assert
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
		mockRepo.AssertExpectations(t)
	})
}

func TestCartService_UpdateQuantity(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Failure - unknown product is not found", func(t *testing.T) {
		// Arrange
		mockRepo, _, _, cartService := newCartFixture()
		mockRepo.On("Get", mock.Anything, userID).Return(nil, nil).Once()

		// Act
		_, err := cartService.UpdateQuantity(ctx, userID, "sku-unknown", &models.UpdateQuantityRequest{Quantity: 2})

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCartService_Coupons(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success - valid coupon discounts ten percent of subtotal", func(t *testing.T) {
		// Arrange
		mockRepo, _, mockCoupons, cartService := newCartFixture()

		existing := &models.Cart{
			ID:     uuid.New(),
			UserID: userID,
			Items: map[string]models.CartItem{
				"sku-1": {ProductID: "sku-1", Quantity: 4, PriceAtAdd: decimal.NewFromInt(25)},
			},
		}

		mockCoupons.On("IsValid", "DISCOUNT10").Return(true).Once()
		mockRepo.On("Get", mock.Anything, userID).Return(existing, nil).Once()
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		cart, err := cartService.ApplyCoupon(ctx, userID, &models.ApplyCouponRequest{Code: "DISCOUNT10"})

		// Assert
		require.NoError(t, err)
		assert.True(t, cart.Discount.Equal(decimal.NewFromInt(10)), "discount was %s", cart.Discount)
		mockRepo.AssertExpectations(t)
		mockCoupons.AssertExpectations(t)
	})

	t.Run("Failure - invalid coupon is rejected before the store", func(t *testing.T) {
		// Arrange
		mockRepo, _, mockCoupons, cartService := newCartFixture()
		mockCoupons.On("IsValid", "NOPE").Return(false).Once()

		// Act
		_, err := cartService.ApplyCoupon(ctx, userID, &models.ApplyCouponRequest{Code: "NOPE"})

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		mockRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Success - removing a non-matching coupon is a no-op", func(t *testing.T) {
		// Arrange
		mockRepo, _, _, cartService := newCartFixture()

		existing := &models.Cart{
			ID:         uuid.New(),
			UserID:     userID,
			Items:      map[string]models.CartItem{},
			CouponCode: "DISCOUNT10",
		}

		mockRepo.On("Get", mock.Anything, userID).Return(existing, nil).Once()
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		cart, err := cartService.RemoveCoupon(ctx, userID, "OTHER")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "DISCOUNT10", cart.CouponCode)
	})
}

func TestCartService_GiftOptions(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success - gift message is sanitized", func(t *testing.T) {
		// Arrange
		mockRepo, _, _, cartService := newCartFixture()

		mockRepo.On("Get", mock.Anything, userID).Return(nil, nil).Once()
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		message := `Happy birthday <script>alert("x")</script>Ana`
		wrap := true

		// Act
		cart, err := cartService.SetGiftOptions(ctx, userID, &models.GiftOptionsRequest{Message: &message, GiftWrap: &wrap})

		// Assert
		require.NoError(t, err)
		assert.NotContains(t, cart.GiftMessage, "<script>")
		assert.Contains(t, cart.GiftMessage, "Happy birthday")
		assert.True(t, cart.GiftWrap)
	})

	t.Run("Success - omitted fields stay unchanged", func(t *testing.T) {
		// Arrange
		mockRepo, _, _, cartService := newCartFixture()

		existing := &models.Cart{
			ID:          uuid.New(),
			UserID:      userID,
			Items:       map[string]models.CartItem{},
			GiftMessage: "Keep me",
			GiftWrap:    true,
		}

		mockRepo.On("Get", mock.Anything, userID).Return(existing, nil).Once()
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		cart, err := cartService.SetGiftOptions(ctx, userID, &models.GiftOptionsRequest{})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Keep me", cart.GiftMessage)
		assert.True(t, cart.GiftWrap)
	})
}

func TestCartService_ClearCart(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	// Arrange
	mockRepo, _, _, cartService := newCartFixture()
	mockRepo.On("Delete", mock.Anything, userID).Return(nil).Once()

	// Act
	err := cartService.ClearCart(ctx, userID)

	// Assert
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
