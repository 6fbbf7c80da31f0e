package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	"github.com/redis/go-redis/v9"
)

type PriceAlertRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.PriceAlertSet, error)
	Save(ctx context.Context, set *models.PriceAlertSet) error
}

type priceAlertRepository struct {
	client *redis.Client
}

func NewPriceAlertRepo(client *redis.Client) PriceAlertRepository {
	return &priceAlertRepository{client: client}
}

func priceAlertKey(userID uuid.UUID) string {
	return fmt.Sprintf("price_alerts:%s", userID)
}

func (r *priceAlertRepository) Get(ctx context.Context, userID uuid.UUID) (*models.PriceAlertSet, error) {
	return getAggregate[models.PriceAlertSet](ctx, r.client, priceAlertKey(userID))
}

func (r *priceAlertRepository) Save(ctx context.Context, set *models.PriceAlertSet) error {
	return saveAggregate(ctx, r.client, priceAlertKey(set.UserID), set)
}
