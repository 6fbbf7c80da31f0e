package handlers_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Get(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	return m.Called(ctx, cart).Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type MockWishlistRepository struct {
	mock.Mock
}

func (m *MockWishlistRepository) Get(ctx context.Context, userID uuid.UUID) (*models.WishlistCollection, error) {
	args := m.Called(ctx, userID)
	if collection, ok := args.Get(0).(*models.WishlistCollection); ok {
		return collection, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWishlistRepository) Save(ctx context.Context, collection *models.WishlistCollection) error {
	return m.Called(ctx, collection).Error(0)
}

type MockPriceCatalog struct {
	mock.Mock
}

func (m *MockPriceCatalog) PriceOf(ctx context.Context, productID string) (decimal.Decimal, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockCouponValidator struct {
	mock.Mock
}

func (m *MockCouponValidator) IsValid(code string) bool {
	return m.Called(code).Bool(0)
}
