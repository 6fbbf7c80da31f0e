package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	"github.com/redis/go-redis/v9"
)

type CartRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	client *redis.Client
}

func NewCartRepo(client *redis.Client) CartRepository {
	return &cartRepository{client: client}
}

func cartKey(userID uuid.UUID) string {
	return fmt.Sprintf("cart:%s", userID)
}

// Get returns the user's cart, or (nil, nil) when none has been stored yet.
func (r *cartRepository) Get(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return getAggregate[models.Cart](ctx, r.client, cartKey(userID))
}

func (r *cartRepository) Save(ctx context.Context, cart *models.Cart) error {
	return saveAggregate(ctx, r.client, cartKey(cart.UserID), cart)
}

func (r *cartRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	return deleteAggregate(ctx, r.client, cartKey(userID))
}
