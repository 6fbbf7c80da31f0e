package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/catalog"
	"github.com/kwatiwellness/commerce-platform/internal/command"
	"github.com/kwatiwellness/commerce-platform/internal/errors"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	repository "github.com/kwatiwellness/commerce-platform/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
)

type CartService struct {
	repo      repository.CartRepository
	catalog   catalog.PriceCatalog
	coupons   catalog.CouponValidator
	sanitizer *bluemonday.Policy
	runner    *command.Runner
}

func NewCartService(repo repository.CartRepository, priceCatalog catalog.PriceCatalog, coupons catalog.CouponValidator) *CartService {
	return &CartService{
		repo:      repo,
		catalog:   priceCatalog,
		coupons:   coupons,
		sanitizer: bluemonday.StrictPolicy(),
		runner:    command.NewRunner(),
	}
}

func (s *CartService) Status() command.Status {
	return s.runner.Status()
}

// GetCart returns the user's cart with totals freshly derived. A user with no
// stored cart gets an empty one.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Recalculate()

	return cart, nil
}

// AddItem merges the quantity into any existing line for the same product.
// The unit price is snapshotted from the catalog on first add and kept on
// merge.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {

		item, exists := cart.Items[req.ProductID]

		if exists {
			item.Quantity += req.Quantity
			if req.Options != nil {
				item.Options = req.Options
			}
		} else {

			price, err := s.catalog.PriceOf(ctx, req.ProductID)
			if err != nil {
				return errors.NetworkError("Failed to resolve product price").WithError(err)
			}

			item = models.CartItem{
				ProductID:  req.ProductID,
				Quantity:   req.Quantity,
				Options:    req.Options,
				PriceAtAdd: price,
			}
		}

		cart.Items[req.ProductID] = item

		return s.persist(ctx, cart)
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// RemoveItem drops the line item. Removing a product that is not in the cart
// is a no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) (*models.Cart, error) {

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {
		delete(cart.Items, productID)
		return s.persist(ctx, cart)
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID string, req *models.UpdateQuantityRequest) (*models.Cart, error) {

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, exists := cart.Items[productID]
	if !exists {
		return nil, errors.NotFoundError("Item not found in the cart")
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {
		item.Quantity = req.Quantity
		cart.Items[productID] = item
		return s.persist(ctx, cart)
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *CartService) UpdateItemOptions(ctx context.Context, userID uuid.UUID, productID string, req *models.UpdateOptionsRequest) (*models.Cart, error) {

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, exists := cart.Items[productID]
	if !exists {
		return nil, errors.NotFoundError("Item not found in the cart")
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {
		item.Options = req.Options
		cart.Items[productID] = item
		return s.persist(ctx, cart)
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// ClearCart resets the cart to its initial state: no items, no coupon, no
// shipping selection, no gift options.
func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {

	return s.runner.Execute(ctx, func(ctx context.Context) error {

		if err := s.repo.Delete(ctx, userID); err != nil {
			return errors.DatabaseError("Failed to clear cart").WithError(err)
		}

		return nil
	})
}

// ApplyCoupon validates the code against the active promotions and attaches
// it to the cart. Applying a second coupon replaces the first.
func (s *CartService) ApplyCoupon(ctx context.Context, userID uuid.UUID, req *models.ApplyCouponRequest) (*models.Cart, error) {

	if !s.coupons.IsValid(req.Code) {
		return nil, errors.ValidationError("Invalid coupon code")
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {
		cart.CouponCode = req.Code
		return s.persist(ctx, cart)
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// RemoveCoupon detaches the code when it matches the applied one. Removing a
// coupon that is not applied is a no-op.
func (s *CartService) RemoveCoupon(ctx context.Context, userID uuid.UUID, code string) (*models.Cart, error) {

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {

		if cart.CouponCode == code {
			cart.CouponCode = ""
		}

		return s.persist(ctx, cart)
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *CartService) SetShippingOption(ctx context.Context, userID uuid.UUID, option *models.ShippingOption) (*models.Cart, error) {

	if option.Cost.IsNegative() {
		return nil, errors.ValidationError("Shipping cost cannot be negative")
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {
		cart.ShippingOption = option
		return s.persist(ctx, cart)
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// SetGiftOptions updates the fields present in the request and leaves omitted
// ones unchanged. The message passes through an HTML sanitizer before it is
// stored.
func (s *CartService) SetGiftOptions(ctx context.Context, userID uuid.UUID, req *models.GiftOptionsRequest) (*models.Cart, error) {

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {

		if req.Message != nil {
			cart.GiftMessage = s.sanitizer.Sanitize(*req.Message)
		}

		if req.GiftWrap != nil {
			cart.GiftWrap = *req.GiftWrap
		}

		return s.persist(ctx, cart)
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *CartService) load(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	if cart == nil {
		cart = &models.Cart{
			ID:        uuid.New(),
			UserID:    userID,
			Items:     make(map[string]models.CartItem),
			CreatedAt: time.Now(),
		}
	}

	if cart.Items == nil {
		cart.Items = make(map[string]models.CartItem)
	}

	return cart, nil
}

func (s *CartService) persist(ctx context.Context, cart *models.Cart) error {

	cart.Recalculate()
	cart.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, cart); err != nil {
		return errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return nil
}
