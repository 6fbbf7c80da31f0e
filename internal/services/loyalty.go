package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/command"
	"github.com/kwatiwellness/commerce-platform/internal/errors"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	repository "github.com/kwatiwellness/commerce-platform/internal/repositories"
)

// PointsLedger credits points to another member's balance. Transfers debit the
// sender locally and hand the credit to the ledger, so the sender's aggregate
// never writes another user's state directly.
type PointsLedger interface {
	Credit(ctx context.Context, userID uuid.UUID, points int) error
}

type LoyaltyService struct {
	repo   repository.LoyaltyRepository
	ledger PointsLedger
	runner *command.Runner
}

func NewLoyaltyService(repo repository.LoyaltyRepository, ledger PointsLedger) *LoyaltyService {
	return &LoyaltyService{
		repo:   repo,
		ledger: ledger,
		runner: command.NewRunner(),
	}
}

func (s *LoyaltyService) Status() command.Status {
	return s.runner.Status()
}

func (s *LoyaltyService) GetProgram(ctx context.Context, userID uuid.UUID) (*models.LoyaltyProgram, error) {

	program, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	program.Recalculate()

	return program, nil
}

// UpdatePoints applies the signed delta to the balance. A delta that would
// take the balance below zero is rejected and the balance stays unchanged.
func (s *LoyaltyService) UpdatePoints(ctx context.Context, userID uuid.UUID, req *models.UpdatePointsRequest) (*models.LoyaltyProgram, error) {

	program, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if program.Points+req.Delta < 0 {
		return nil, errors.ValidationError("Points balance cannot go negative")
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {
		program.Points += req.Delta
		return s.persist(ctx, program)
	})
	if err != nil {
		return nil, err
	}

	return program, nil
}

// RedeemPoints deducts the points and appends a redemption record. Redeeming
// more than the balance is rejected with the balance unchanged.
func (s *LoyaltyService) RedeemPoints(ctx context.Context, userID uuid.UUID, req *models.RedeemPointsRequest) (*models.LoyaltyProgram, error) {

	program, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Points > program.Points {
		return nil, errors.ValidationError("Insufficient points balance")
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {

		program.Points -= req.Points
		program.Redemptions = append(program.Redemptions, models.Redemption{
			Points:     req.Points,
			Reward:     req.Reward,
			RedeemedAt: time.Now(),
		})

		return s.persist(ctx, program)
	})
	if err != nil {
		return nil, err
	}

	return program, nil
}

// TransferPoints debits the sender and credits the recipient through the
// ledger. The debit is persisted first; a failed credit surfaces as an error
// after the debit has already been applied.
func (s *LoyaltyService) TransferPoints(ctx context.Context, userID uuid.UUID, req *models.TransferPointsRequest) (*models.LoyaltyProgram, error) {

	if req.TargetUserID == userID {
		return nil, errors.BadRequestError("Cannot transfer points to yourself")
	}

	program, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Points > program.Points {
		return nil, errors.ValidationError("Insufficient points balance")
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {

		program.Points -= req.Points

		if err := s.persist(ctx, program); err != nil {
			return err
		}

		if err := s.ledger.Credit(ctx, req.TargetUserID, req.Points); err != nil {
			return errors.NetworkError("Failed to credit transfer recipient").WithError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return program, nil
}

func (s *LoyaltyService) CheckTierProgress(ctx context.Context, userID uuid.UUID) (*models.TierProgress, error) {

	program, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress := program.TierProgress()

	return &progress, nil
}

func (s *LoyaltyService) load(ctx context.Context, userID uuid.UUID) (*models.LoyaltyProgram, error) {

	program, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load loyalty program").WithError(err)
	}

	if program == nil {
		program = &models.LoyaltyProgram{
			UserID: userID,
			Tier:   models.TierBronze,
		}
	}

	return program, nil
}

func (s *LoyaltyService) persist(ctx context.Context, program *models.LoyaltyProgram) error {

	program.Recalculate()
	program.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, program); err != nil {
		return errors.DatabaseError("Failed to update loyalty program").WithError(err)
	}

	return nil
}

// RepoLedger credits balances through the same loyalty store. It stands in
// for an external points ledger in deployments that keep every member local.
type RepoLedger struct {
	repo repository.LoyaltyRepository
}

func NewRepoLedger(repo repository.LoyaltyRepository) *RepoLedger {
	return &RepoLedger{repo: repo}
}

func (l *RepoLedger) Credit(ctx context.Context, userID uuid.UUID, points int) error {

	program, err := l.repo.Get(ctx, userID)
	if err != nil {
		return err
	}

	if program == nil {
		program = &models.LoyaltyProgram{
			UserID: userID,
			Tier:   models.TierBronze,
		}
	}

	program.Points += points
	program.Recalculate()
	program.UpdatedAt = time.Now()

	return l.repo.Save(ctx, program)
}
