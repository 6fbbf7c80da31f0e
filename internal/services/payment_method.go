package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/command"
	"github.com/kwatiwellness/commerce-platform/internal/config"
	"github.com/kwatiwellness/commerce-platform/internal/errors"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	repository "github.com/kwatiwellness/commerce-platform/internal/repositories"
	"github.com/kwatiwellness/commerce-platform/pkg/stripe"
	"github.com/shopspring/decimal"
)

type PaymentMethodService struct {
	repo                repository.PaymentMethodRepository
	gateway             stripe.Client
	supportedCurrencies []string
	runner              *command.Runner
}

func NewPaymentMethodService(repo repository.PaymentMethodRepository, gateway stripe.Client, cfg *config.Config) *PaymentMethodService {
	return &PaymentMethodService{
		repo:                repo,
		gateway:             gateway,
		supportedCurrencies: cfg.Stripe.SupportedCurrencies,
		runner:              command.NewRunner(),
	}
}

func (s *PaymentMethodService) Status() command.Status {
	return s.runner.Status()
}

func (s *PaymentMethodService) ListMethods(ctx context.Context, userID uuid.UUID) (*models.PaymentMethodSet, error) {
	return s.load(ctx, userID)
}

// AddMethod saves a tokenized payment method. For Stripe methods the card
// metadata is resolved from the gateway; other gateways store what the
// request carries. The first method a user saves becomes the default.
func (s *PaymentMethodService) AddMethod(ctx context.Context, userID uuid.UUID, req *models.AddPaymentMethodRequest) (*models.PaymentMethod, error) {

	set, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	method := models.PaymentMethod{
		ID:         uuid.New(),
		Gateway:    req.Gateway,
		GatewayRef: req.Token,
		Last4:      req.Last4,
		Brand:      req.Brand,
		ExpiryDate: req.ExpiryDate,
		AddedAt:    time.Now(),
	}

	if req.Gateway == models.GatewayStripe {

		resolved, err := s.gateway.GetPaymentMethod(req.Token)
		if err != nil {
			return nil, errors.ThirdPartyError("Failed to resolve payment method").WithError(err)
		}

		method.GatewayRef = resolved.ID

		if resolved.Card != nil {
			method.Last4 = resolved.Card.Last4
			method.Brand = string(resolved.Card.Brand)
			method.ExpiryDate = fmt.Sprintf("%02d/%d", resolved.Card.ExpMonth, resolved.Card.ExpYear)
		}
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {
		set.Add(method)
		return s.persist(ctx, set)
	})
	if err != nil {
		return nil, err
	}

	// Add mutates the stored copy (default promotion included), so the stored
	// element is the one to return.
	return set.Find(method.ID), nil
}

// RemoveMethod deletes the saved method. When the removed method was the
// selected one, the selection is cleared; no other method is promoted.
func (s *PaymentMethodService) RemoveMethod(ctx context.Context, userID uuid.UUID, methodID uuid.UUID) (*models.PaymentMethodSet, error) {

	set, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if set.Find(methodID) == nil {
		return nil, errors.NotFoundError("Payment method not found")
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {
		set.Remove(methodID)
		return s.persist(ctx, set)
	})
	if err != nil {
		return nil, err
	}

	return set, nil
}

// SetDefault swaps the default flag to the method in a single write, so at
// most one method is marked default at any time.
func (s *PaymentMethodService) SetDefault(ctx context.Context, userID uuid.UUID, methodID uuid.UUID) (*models.PaymentMethodSet, error) {

	set, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if set.Find(methodID) == nil {
		return nil, errors.NotFoundError("Payment method not found")
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {
		set.SetDefault(methodID)
		return s.persist(ctx, set)
	})
	if err != nil {
		return nil, err
	}

	return set, nil
}

// SelectMethod points the checkout selection at the method without touching
// default flags.
func (s *PaymentMethodService) SelectMethod(ctx context.Context, userID uuid.UUID, methodID uuid.UUID) (*models.PaymentMethodSet, error) {

	set, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if set.Find(methodID) == nil {
		return nil, errors.NotFoundError("Payment method not found")
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {
		set.SelectedID = methodID
		return s.persist(ctx, set)
	})
	if err != nil {
		return nil, err
	}

	return set, nil
}

// ProcessPayment charges the selected method through the gateway. With no
// method selected the charge is refused before the gateway is contacted.
func (s *PaymentMethodService) ProcessPayment(ctx context.Context, userID uuid.UUID, req *models.ProcessPaymentRequest) (*models.PaymentResult, error) {

	if !req.Amount.IsPositive() {
		return nil, errors.ValidationError("Amount must be greater than zero")
	}

	currency := strings.ToLower(req.Currency)

	if !slices.Contains(s.supportedCurrencies, currency) {
		return nil, errors.ValidationError("Unsupported currency").WithDetail(req.Currency)
	}

	set, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	selected := set.Selected()
	if selected == nil {
		return nil, errors.NotFoundError("No payment method selected")
	}

	var result *models.PaymentResult

	err = s.runner.Execute(ctx, func(ctx context.Context) error {

		minorUnits := req.Amount.Mul(decimal.NewFromInt(100)).IntPart()

		description := fmt.Sprintf("Charge for user %s", userID)
		if req.OrderID != "" {
			description = fmt.Sprintf("Charge for order %s", req.OrderID)
		}

		intent, err := s.gateway.CreatePaymentIntent(minorUnits, currency, description)
		if err != nil {
			return errors.ThirdPartyError("Failed to create payment intent").WithError(err)
		}

		confirmed, err := s.gateway.ConfirmPaymentIntent(intent.ID, selected.GatewayRef)
		if err != nil {
			return errors.ThirdPartyError("Failed to confirm payment").WithError(err)
		}

		result = &models.PaymentResult{
			TransactionID: confirmed.ID,
			Status:        string(confirmed.Status),
			Amount:        req.Amount,
			Currency:      currency,
			MethodID:      selected.ID,
			ProcessedAt:   time.Now(),
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *PaymentMethodService) load(ctx context.Context, userID uuid.UUID) (*models.PaymentMethodSet, error) {

	set, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load payment methods").WithError(err)
	}

	if set == nil {
		set = &models.PaymentMethodSet{UserID: userID}
	}

	return set, nil
}

func (s *PaymentMethodService) persist(ctx context.Context, set *models.PaymentMethodSet) error {

	if err := s.repo.Save(ctx, set); err != nil {
		return errors.DatabaseError("Failed to update payment methods").WithError(err)
	}

	return nil
}
