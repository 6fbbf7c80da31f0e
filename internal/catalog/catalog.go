package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/kwatiwellness/commerce-platform/internal/config"
	"github.com/kwatiwellness/commerce-platform/internal/utils"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// PriceCatalog resolves the current unit price of a product. Prices are
// published by the catalog pipeline under `price:<productId>` keys.
type PriceCatalog interface {
	PriceOf(ctx context.Context, productID string) (decimal.Decimal, error)
}

// CouponValidator reports whether a coupon code is currently redeemable.
type CouponValidator interface {
	IsValid(code string) bool
}

type redisCatalog struct {
	client *redis.Client
}

func NewPriceCatalog(client *redis.Client) PriceCatalog {
	return &redisCatalog{client: client}
}

// PriceOf returns the published price for the product. A product with no
// published price resolves to zero rather than an error, so stale watches and
// carts keep working while the catalog entry is missing.
func (c *redisCatalog) PriceOf(ctx context.Context, productID string) (decimal.Decimal, error) {

	storeCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	raw, err := c.client.Get(storeCtx, fmt.Sprintf("price:%s", productID)).Result()
	if err != nil {
		if err == redis.Nil {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to look up price for %q: %w", productID, err)
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed price for %q: %w", productID, err)
	}

	return price, nil
}

type configCouponValidator struct {
	codes []string
}

func NewCouponValidator(cfg *config.Config) CouponValidator {
	return &configCouponValidator{codes: cfg.Pricing.CouponCodes}
}

// Coupon codes are matched case-insensitively.
func (v *configCouponValidator) IsValid(code string) bool {
	return slices.ContainsFunc(v.codes, func(known string) bool {
		return strings.EqualFold(known, code)
	})
}
