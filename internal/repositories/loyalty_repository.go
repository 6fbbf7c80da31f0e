package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	"github.com/redis/go-redis/v9"
)

type LoyaltyRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.LoyaltyProgram, error)
	Save(ctx context.Context, program *models.LoyaltyProgram) error
}

type loyaltyRepository struct {
	client *redis.Client
}

func NewLoyaltyRepo(client *redis.Client) LoyaltyRepository {
	return &loyaltyRepository{client: client}
}

func loyaltyKey(userID uuid.UUID) string {
	return fmt.Sprintf("loyalty:%s", userID)
}

func (r *loyaltyRepository) Get(ctx context.Context, userID uuid.UUID) (*models.LoyaltyProgram, error) {
	return getAggregate[models.LoyaltyProgram](ctx, r.client, loyaltyKey(userID))
}

func (r *loyaltyRepository) Save(ctx context.Context, program *models.LoyaltyProgram) error {
	return saveAggregate(ctx, r.client, loyaltyKey(program.UserID), program)
}
