package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/api/handlers"
	appErrors "github.com/kwatiwellness/commerce-platform/internal/errors"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	service "github.com/kwatiwellness/commerce-platform/internal/services"
	"github.com/kwatiwellness/commerce-platform/internal/testutils"
	"github.com/kwatiwellness/commerce-platform/internal/utils/response"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCartTest() (*MockCartRepository, *MockPriceCatalog, *MockCouponValidator, *handlers.CartHandler) {
	mockRepo := &MockCartRepository{}
	mockCatalog := &MockPriceCatalog{}
	mockCoupons := &MockCouponValidator{}
	cartService := service.NewCartService(mockRepo, mockCatalog, mockCoupons)
	cartHandler := handlers.NewCartHandler(cartService)
	return mockRepo, mockCatalog, mockCoupons, cartHandler
}

func TestCartHandler_GetCart(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Retrieve Cart", func(t *testing.T) {
		// Arrange
		mockRepo, _, _, cartHandler := setupCartTest()

		stored := &models.Cart{
			ID:     uuid.New(),
			UserID: userID,
			Items: map[string]models.CartItem{
				"sku-1": {ProductID: "sku-1", Quantity: 2, PriceAtAdd: decimal.NewFromInt(20)},
			},
		}
		mockRepo.On("Get", mock.Anything, userID).Return(stored, nil).Once()

		req := testutils.CreateTestRequestWithContext("GET", "/api/cart", nil, userID, nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.GetCart()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotNil(t, resp.Data)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		_, _, _, cartHandler := setupCartTest()

		req := testutils.CreateTestRequestWithoutContext("GET", "/api/cart", nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.GetCart()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error.Message, "Authentication required")
	})
}

func TestCartHandler_AddItem(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Add Item", func(t *testing.T) {
		// Arrange
		mockRepo, mockCatalog, _, cartHandler := setupCartTest()

		mockRepo.On("Get", mock.Anything, userID).Return(nil, nil).Once()
		mockCatalog.On("PriceOf", mock.Anything, "sku-1").Return(decimal.NewFromInt(20), nil).Once()
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		body, _ := json.Marshal(models.AddItemRequest{ProductID: "sku-1", Quantity: 2})
		req := testutils.CreateTestRequestWithContext("POST", "/api/cart/items", bytes.NewReader(body), userID, nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.AddItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Validation Error", func(t *testing.T) {
		// Arrange
		mockRepo, _, _, cartHandler := setupCartTest()

		body := []byte(`{"quantity": 0}`)
		req := testutils.CreateTestRequestWithContext("POST", "/api/cart/items", bytes.NewReader(body), userID, nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.AddItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
		mockRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestCartHandler_UpdateQuantity(t *testing.T) {
	userID := uuid.New()

	t.Run("Failure - Item Not Found", func(t *testing.T) {
		// Arrange
		mockRepo, _, _, cartHandler := setupCartTest()
		mockRepo.On("Get", mock.Anything, userID).Return(nil, nil).Once()

		body, _ := json.Marshal(models.UpdateQuantityRequest{Quantity: 3})
		req := testutils.CreateTestRequestWithContext("PATCH", "/api/cart/items/sku-unknown", bytes.NewReader(body), userID,
			map[string]string{"productId": "sku-unknown"})
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.UpdateQuantity()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, appErrors.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("Failure - Missing Product ID", func(t *testing.T) {
		// Arrange
		_, _, _, cartHandler := setupCartTest()

		body, _ := json.Marshal(models.UpdateQuantityRequest{Quantity: 3})
		req := testutils.CreateTestRequestWithContext("PATCH", "/api/cart/items/", bytes.NewReader(body), userID, nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.UpdateQuantity()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestCartHandler_ApplyCoupon(t *testing.T) {
	userID := uuid.New()

	t.Run("Failure - Invalid Coupon", func(t *testing.T) {
		// Arrange
		mockRepo, _, mockCoupons, cartHandler := setupCartTest()
		mockCoupons.On("IsValid", "NOPE").Return(false).Once()

		body, _ := json.Marshal(models.ApplyCouponRequest{Code: "NOPE"})
		req := testutils.CreateTestRequestWithContext("POST", "/api/cart/coupons", bytes.NewReader(body), userID, nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.ApplyCoupon()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
		mockRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestCartHandler_ClearCart(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Clear Cart", func(t *testing.T) {
		// Arrange
		mockRepo, _, _, cartHandler := setupCartTest()
		mockRepo.On("Delete", mock.Anything, userID).Return(nil).Once()

		req := testutils.CreateTestRequestWithContext("DELETE", "/api/cart", nil, userID, nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.ClearCart()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockRepo.AssertExpectations(t)
	})
}
