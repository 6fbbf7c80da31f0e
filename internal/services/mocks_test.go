package service_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v81"
	stripeClient "github.com/kwatiwellness/commerce-platform/pkg/stripe"
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

type MockLoyaltyRepository struct {
	mock.Mock
}

func (m *MockLoyaltyRepository) Get(ctx context.Context, userID uuid.UUID) (*models.LoyaltyProgram, error) {
	args := m.Called(ctx, userID)
	if program, ok := args.Get(0).(*models.LoyaltyProgram); ok {
		return program, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoyaltyRepository) Save(ctx context.Context, program *models.LoyaltyProgram) error {
	return m.Called(ctx, program).Error(0)
}

type MockPriceAlertRepository struct {
	mock.Mock
}

func (m *MockPriceAlertRepository) Get(ctx context.Context, userID uuid.UUID) (*models.PriceAlertSet, error) {
	args := m.Called(ctx, userID)
	if set, ok := args.Get(0).(*models.PriceAlertSet); ok {
		return set, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPriceAlertRepository) Save(ctx context.Context, set *models.PriceAlertSet) error {
	return m.Called(ctx, set).Error(0)
}

type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) Get(ctx context.Context, userID uuid.UUID) (*models.PaymentMethodSet, error) {
	args := m.Called(ctx, userID)
	if set, ok := args.Get(0).(*models.PaymentMethodSet); ok {
		return set, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentMethodRepository) Save(ctx context.Context, set *models.PaymentMethodSet) error {
	return m.Called(ctx, set).Error(0)
}

type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	return m.Called(ctx, donation).Error(0)
}

func (m *MockDonationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Donation, error) {
	args := m.Called(ctx, id)
	if donation, ok := args.Get(0).(*models.Donation); ok {
		return donation, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDonationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]models.Donation, error) {
	args := m.Called(ctx, donorID)
	if donations, ok := args.Get(0).([]models.Donation); ok {
		return donations, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDonationRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Donation, error) {
	args := m.Called(ctx, projectID)
	if donations, ok := args.Get(0).([]models.Donation); ok {
		return donations, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDonationRepository) Update(ctx context.Context, donation *models.Donation) error {
	return m.Called(ctx, donation).Error(0)
}

func (m *MockDonationRepository) Stats(ctx context.Context) (*models.DonationStats, error) {
	args := m.Called(ctx)
	if stats, ok := args.Get(0).(*models.DonationStats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
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

type MockAlertNotifier struct {
	mock.Mock
}

func (m *MockAlertNotifier) SendPriceAlert(ctx context.Context, toEmail, productID string, targetPrice, currentPrice decimal.Decimal) error {
	return m.Called(ctx, toEmail, productID, targetPrice, currentPrice).Error(0)
}

type MockStripeClient struct {
	mock.Mock
}

func (m *MockStripeClient) GetPaymentMethod(token string) (*stripe.PaymentMethod, error) {
	args := m.Called(token)
	if method, ok := args.Get(0).(*stripe.PaymentMethod); ok {
		return method, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStripeClient) CreatePaymentIntent(amount int64, currency string, description string) (*stripe.PaymentIntent, error) {
	args := m.Called(amount, currency, description)
	if intent, ok := args.Get(0).(*stripe.PaymentIntent); ok {
		return intent, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStripeClient) ConfirmPaymentIntent(paymentIntentID string, paymentMethodID string) (*stripe.PaymentIntent, error) {
	args := m.Called(paymentIntentID, paymentMethodID)
	if intent, ok := args.Get(0).(*stripe.PaymentIntent); ok {
		return intent, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStripeClient) RefundPayment(paymentIntentID string, amount int64) (*stripe.Refund, error) {
	args := m.Called(paymentIntentID, amount)
	if refund, ok := args.Get(0).(*stripe.Refund); ok {
		return refund, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStripeClient) VerifyWebhookSignature(payload []byte, signature string) (stripeClient.Event, error) {
	args := m.Called(payload, signature)
	return args.Get(0).(stripeClient.Event), args.Error(1)
}
