package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	"github.com/redis/go-redis/v9"
)

type WishlistRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.WishlistCollection, error)
	Save(ctx context.Context, collection *models.WishlistCollection) error
}

type wishlistRepository struct {
	client *redis.Client
}

func NewWishlistRepo(client *redis.Client) WishlistRepository {
	return &wishlistRepository{client: client}
}

func wishlistKey(userID uuid.UUID) string {
	return fmt.Sprintf("wishlists:%s", userID)
}

// Get returns the user's wishlist collection, or (nil, nil) when the user has
// never created one.
func (r *wishlistRepository) Get(ctx context.Context, userID uuid.UUID) (*models.WishlistCollection, error) {
	return getAggregate[models.WishlistCollection](ctx, r.client, wishlistKey(userID))
}

func (r *wishlistRepository) Save(ctx context.Context, collection *models.WishlistCollection) error {
	return saveAggregate(ctx, r.client, wishlistKey(collection.UserID), collection)
}
