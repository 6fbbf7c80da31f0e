package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/command"
	"github.com/kwatiwellness/commerce-platform/internal/errors"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	repository "github.com/kwatiwellness/commerce-platform/internal/repositories"
)

type DonationService struct {
	repo   repository.DonationRepository
	runner *command.Runner
}

func NewDonationService(repo repository.DonationRepository) *DonationService {
	return &DonationService{
		repo:   repo,
		runner: command.NewRunner(),
	}
}

func (s *DonationService) Status() command.Status {
	return s.runner.Status()
}

func (s *DonationService) CreateDonation(ctx context.Context, donorID uuid.UUID, req *models.CreateDonationRequest) (*models.Donation, error) {

	if !req.Amount.IsPositive() {
		return nil, errors.ValidationError("Amount must be greater than zero")
	}

	donation := &models.Donation{
		ID:        uuid.New(),
		DonorID:   donorID,
		ProjectID: req.ProjectID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Frequency: req.Frequency,
		Status:    models.DonationPending,
		Message:   req.Message,
		Anonymous: req.Anonymous,
	}

	err := s.runner.Execute(ctx, func(ctx context.Context) error {

		if err := s.repo.Create(ctx, donation); err != nil {
			return errors.DatabaseError("Failed to record donation").WithError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return donation, nil
}

func (s *DonationService) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]models.Donation, error) {

	donations, err := s.repo.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list donations").WithError(err)
	}

	return donations, nil
}

func (s *DonationService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Donation, error) {

	donations, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list donations").WithError(err)
	}

	return donations, nil
}

// GenerateReceipt issues the donation's receipt. Receipts are issued once; a
// second request is refused rather than replacing the original.
func (s *DonationService) GenerateReceipt(ctx context.Context, donorID uuid.UUID, donationID uuid.UUID) (*models.Donation, error) {

	donation, err := s.getOwned(ctx, donorID, donationID)
	if err != nil {
		return nil, err
	}

	if donation.Receipt != nil {
		return nil, errors.ConflictError("Receipt has already been issued")
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {

		donation.Receipt = &models.Receipt{
			ID:       uuid.New(),
			IssuedAt: time.Now(),
			URL:      fmt.Sprintf("/receipts/%s.pdf", donation.ID),
		}

		if err := s.repo.Update(ctx, donation); err != nil {
			return errors.DatabaseError("Failed to issue receipt").WithError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return donation, nil
}

// RecordImpact appends an impact metric to the donation. Metrics are never
// rewritten or removed.
func (s *DonationService) RecordImpact(ctx context.Context, donorID uuid.UUID, donationID uuid.UUID, req *models.RecordImpactRequest) (*models.Donation, error) {

	donation, err := s.getOwned(ctx, donorID, donationID)
	if err != nil {
		return nil, err
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {

		donation.Impact = append(donation.Impact, models.ImpactMetric{
			Metric:     req.Metric,
			Value:      req.Value,
			RecordedAt: time.Now(),
			Details:    req.Details,
		})

		if err := s.repo.Update(ctx, donation); err != nil {
			return errors.DatabaseError("Failed to record impact metric").WithError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return donation, nil
}

func (s *DonationService) GetStats(ctx context.Context) (*models.DonationStats, error) {

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to aggregate donation stats").WithError(err)
	}

	return stats, nil
}

func (s *DonationService) getOwned(ctx context.Context, donorID uuid.UUID, donationID uuid.UUID) (*models.Donation, error) {

	donation, err := s.repo.GetByID(ctx, donationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundError("Donation not found")
		}
		return nil, errors.DatabaseError("Failed to load donation").WithError(err)
	}

	if donation.DonorID != donorID {
		return nil, errors.ForbiddenError("Donation belongs to another donor")
	}

	return donation, nil
}
