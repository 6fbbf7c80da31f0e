package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	"github.com/redis/go-redis/v9"
)

type PaymentMethodRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.PaymentMethodSet, error)
	Save(ctx context.Context, set *models.PaymentMethodSet) error
}

type paymentMethodRepository struct {
	client *redis.Client
}

func NewPaymentMethodRepo(client *redis.Client) PaymentMethodRepository {
	return &paymentMethodRepository{client: client}
}

func paymentMethodKey(userID uuid.UUID) string {
	return fmt.Sprintf("payment_methods:%s", userID)
}

func (r *paymentMethodRepository) Get(ctx context.Context, userID uuid.UUID) (*models.PaymentMethodSet, error) {
	return getAggregate[models.PaymentMethodSet](ctx, r.client, paymentMethodKey(userID))
}

func (r *paymentMethodRepository) Save(ctx context.Context, set *models.PaymentMethodSet) error {
	return saveAggregate(ctx, r.client, paymentMethodKey(set.UserID), set)
}
