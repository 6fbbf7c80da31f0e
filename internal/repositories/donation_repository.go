package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	"github.com/kwatiwellness/commerce-platform/internal/utils"
)

type DonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Donation, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]models.Donation, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Donation, error)
	Update(ctx context.Context, donation *models.Donation) error
	Stats(ctx context.Context) (*models.DonationStats, error)
}

type donationRepository struct {
	DB *sql.DB
}

func NewDonationRepo(db *sql.DB) DonationRepository {
	return &donationRepository{DB: db}
}

func (r *donationRepository) Create(ctx context.Context, donation *models.Donation) error {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	impactJSON, err := json.Marshal(donation.Impact)
	if err != nil {
		return fmt.Errorf("failed to marshal impact metrics: %w", err)
	}

	query := `
		INSERT INTO donations (id, donor_id, project_id, amount, currency, frequency, status, message, anonymous, impact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		donation.ID, donation.DonorID, nullableUUID(donation.ProjectID), donation.Amount,
		donation.Currency, donation.Frequency, donation.Status, donation.Message,
		donation.Anonymous, impactJSON,
	).Scan(&donation.CreatedAt, &donation.UpdatedAt)
}

func (r *donationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Donation, error) {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, donor_id, project_id, amount, currency, frequency, status, message, anonymous, receipt, impact, created_at, updated_at
		FROM donations
		WHERE id = $1
	`

	return scanDonation(r.DB.QueryRowContext(dbCtx, query, id))
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]models.Donation, error) {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, donor_id, project_id, amount, currency, frequency, status, message, anonymous, receipt, impact, created_at, updated_at
		FROM donations
		WHERE donor_id = $1
		ORDER BY created_at DESC
	`

	return r.list(dbCtx, query, donorID)
}

func (r *donationRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Donation, error) {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, donor_id, project_id, amount, currency, frequency, status, message, anonymous, receipt, impact, created_at, updated_at
		FROM donations
		WHERE project_id = $1
		ORDER BY created_at DESC
	`

	return r.list(dbCtx, query, projectID)
}

// Update persists the mutable slice of the donation: status, receipt and the
// impact list. Identity and amount fields are immutable once recorded.
func (r *donationRepository) Update(ctx context.Context, donation *models.Donation) error {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	var receiptJSON []byte

	if donation.Receipt != nil {
		payload, err := json.Marshal(donation.Receipt)
		if err != nil {
			return fmt.Errorf("failed to marshal receipt: %w", err)
		}
		receiptJSON = payload
	}

	impactJSON, err := json.Marshal(donation.Impact)
	if err != nil {
		return fmt.Errorf("failed to marshal impact metrics: %w", err)
	}

	query := `
		UPDATE donations
		SET status = $1, receipt = $2, impact = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.DB.ExecContext(dbCtx, query, donation.Status, receiptJSON, impactJSON, time.Now(), donation.ID)
	if err != nil {
		return fmt.Errorf("failed to update the donation: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *donationRepository) Stats(ctx context.Context) (*models.DonationStats, error) {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	stats := &models.DonationStats{
		ByFrequency: make(map[models.DonationFrequency]int),
	}

	query := `
		SELECT COALESCE(SUM(amount), 0), COUNT(DISTINCT donor_id), COUNT(*)
		FROM donations
	`

	err := r.DB.QueryRowContext(dbCtx, query).Scan(&stats.TotalAmount, &stats.TotalDonors, &stats.TotalDonations)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	frequencyQuery := `
		SELECT frequency, COUNT(*)
		FROM donations
		GROUP BY frequency
	`

	rows, err := r.DB.QueryContext(dbCtx, frequencyQuery)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	defer rows.Close()

	for rows.Next() {

		var frequency models.DonationFrequency
		var count int

		if err := rows.Scan(&frequency, &count); err != nil {
			return nil, fmt.Errorf("failed to scan frequency row: %w", err)
		}

		stats.ByFrequency[frequency] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating frequency rows: %w", err)
	}

	return stats, nil
}

func (r *donationRepository) list(ctx context.Context, query string, arg any) ([]models.Donation, error) {

	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	defer rows.Close()

	var donations []models.Donation

	for rows.Next() {

		donation, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}

		donations = append(donations, *donation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating donation rows: %w", err)
	}

	return donations, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDonation(row rowScanner) (*models.Donation, error) {

	donation := &models.Donation{}

	var projectID uuid.NullUUID
	var receiptJSON, impactJSON []byte

	err := row.Scan(&donation.ID, &donation.DonorID, &projectID, &donation.Amount,
		&donation.Currency, &donation.Frequency, &donation.Status, &donation.Message,
		&donation.Anonymous, &receiptJSON, &impactJSON, &donation.CreatedAt, &donation.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	if projectID.Valid {
		donation.ProjectID = projectID.UUID
	}

	if len(receiptJSON) > 0 {
		if err := json.Unmarshal(receiptJSON, &donation.Receipt); err != nil {
			return nil, fmt.Errorf("failed to unmarshal receipt: %w", err)
		}
	}

	if len(impactJSON) > 0 {
		if err := json.Unmarshal(impactJSON, &donation.Impact); err != nil {
			return nil, fmt.Errorf("failed to unmarshal impact metrics: %w", err)
		}
	}

	return donation, nil
}

func nullableUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}
