package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pricing policy applied when totals are recalculated.
var (
	taxRate             = decimal.NewFromFloat(0.10)
	couponDiscountRate  = decimal.NewFromFloat(0.10)
	defaultShippingCost = decimal.NewFromInt(5)
)

type CartItem struct {
	ProductID  string            `json:"product_id"`
	Quantity   int               `json:"quantity"`
	Options    map[string]string `json:"options,omitempty"`
	PriceAtAdd decimal.Decimal   `json:"price_at_add"`
}

type ShippingOption struct {
	ID            string          `json:"id" validate:"required"`
	Carrier       string          `json:"carrier" validate:"required"`
	Cost          decimal.Decimal `json:"cost"`
	EstimatedDays int             `json:"estimated_days" validate:"min=0"`
}

type Cart struct {
	ID             uuid.UUID           `json:"id"`
	UserID         uuid.UUID           `json:"user_id"`
	Items          map[string]CartItem `json:"items"`
	CouponCode     string              `json:"coupon_code,omitempty"`
	ShippingOption *ShippingOption     `json:"shipping_option,omitempty"`
	GiftMessage    string              `json:"gift_message,omitempty"`
	GiftWrap       bool                `json:"gift_wrap"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	Discount       decimal.Decimal     `json:"discount"`
	Tax            decimal.Decimal     `json:"tax"`
	ShippingCost   decimal.Decimal     `json:"shipping_cost"`
	Total          decimal.Decimal     `json:"total"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// TotalItems sums the quantities of every line item.
func (c *Cart) TotalItems() int {

	var total int

	for _, item := range c.Items {
		total += item.Quantity
	}

	return total
}

// Recalculate derives subtotal, discount, tax, shipping and total from the
// line items. Invariant: total = subtotal - discount + tax + shipping, never
// negative. Called after every mutation and before every read, so the stored
// derived fields are never stale.
func (c *Cart) Recalculate() {

	subtotal := decimal.Zero

	for _, item := range c.Items {
		subtotal = subtotal.Add(item.PriceAtAdd.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	discount := decimal.Zero
	if c.CouponCode != "" {
		discount = subtotal.Mul(couponDiscountRate).Round(2)
	}

	tax := subtotal.Mul(taxRate).Round(2)

	shipping := decimal.Zero
	switch {
	case c.ShippingOption != nil:
		shipping = c.ShippingOption.Cost
	case subtotal.IsPositive():
		shipping = defaultShippingCost
	}

	total := subtotal.Sub(discount).Add(tax).Add(shipping)
	if total.IsNegative() {
		total = decimal.Zero
	}

	c.Subtotal = subtotal
	c.Discount = discount
	c.Tax = tax
	c.ShippingCost = shipping
	c.Total = total
}

type AddItemRequest struct {
	ProductID string            `json:"product_id" validate:"required"`
	Quantity  int               `json:"quantity"   validate:"required,min=1"`
	Options   map[string]string `json:"options,omitempty"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type UpdateOptionsRequest struct {
	Options map[string]string `json:"options" validate:"required"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// Either field may be omitted to leave the current value unchanged.
type GiftOptionsRequest struct {
	Message  *string `json:"message,omitempty"`
	GiftWrap *bool   `json:"gift_wrap,omitempty"`
}
