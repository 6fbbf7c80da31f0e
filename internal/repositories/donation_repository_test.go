package repository_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	repository "github.com/kwatiwellness/commerce-platform/internal/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDonationRepoTest(t *testing.T) (repository.DonationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewDonationRepo(db)
	require.NotNil(t, repo, "NewDonationRepo should not return nil")
	return repo, mock
}

var donationColumns = []string{
	"id", "donor_id", "project_id", "amount", "currency", "frequency",
	"status", "message", "anonymous", "receipt", "impact", "created_at", "updated_at",
}

func TestDonationRepository_Create(t *testing.T) {
	repo, mock := setupDonationRepoTest(t)
	ctx := context.Background()

	donation := &models.Donation{
		ID:        uuid.New(),
		DonorID:   uuid.New(),
		ProjectID: uuid.New(),
		Amount:    decimal.NewFromInt(50),
		Currency:  "usd",
		Frequency: models.FrequencyMonthly,
		Status:    models.DonationPending,
		Message:   "Keep it up",
	}

	expectedSQL := regexp.QuoteMeta(`
		INSERT INTO donations (id, donor_id, project_id, amount, currency, frequency, status, message, anonymous, impact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(expectedSQL).
			WithArgs(donation.ID, donation.DonorID, sqlmock.AnyArg(), donation.Amount, donation.Currency,
				donation.Frequency, donation.Status, donation.Message, donation.Anonymous, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		// Act
		err := repo.Create(ctx, donation)

		// Assert
		assert.NoError(t, err, "Create should succeed")
		assert.WithinDuration(t, now, donation.CreatedAt, time.Second)
		assert.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
	})

	t.Run("Failure - DB Error", func(t *testing.T) {
		dbErr := errors.New("database connection lost")
		mock.ExpectQuery(expectedSQL).
			WithArgs(donation.ID, donation.DonorID, sqlmock.AnyArg(), donation.Amount, donation.Currency,
				donation.Frequency, donation.Status, donation.Message, donation.Anonymous, sqlmock.AnyArg()).
			WillReturnError(dbErr)

		// Act
		err := repo.Create(ctx, donation)

		// Assert
		assert.Error(t, err, "Create should fail")
		assert.ErrorIs(t, err, dbErr, "Error should wrap the original DB error")
		assert.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
	})
}

func TestDonationRepository_GetByID(t *testing.T) {
	repo, mock := setupDonationRepoTest(t)
	ctx := context.Background()
	donationID := uuid.New()
	donorID := uuid.New()

	expectedSQL := regexp.QuoteMeta(`
		SELECT id, donor_id, project_id, amount, currency, frequency, status, message, anonymous, receipt, impact, created_at, updated_at
		FROM donations
		WHERE id = $1
	`)

	t.Run("Success", func(t *testing.T) {
		receipt := &models.Receipt{ID: uuid.New(), IssuedAt: time.Now(), URL: "/receipts/" + donationID.String() + ".pdf"}
		receiptJSON, err := json.Marshal(receipt)
		require.NoError(t, err)

		rows := sqlmock.NewRows(donationColumns).
			AddRow(donationID, donorID, nil, "50", "usd", "monthly", "completed",
				"Keep it up", false, receiptJSON, nil, time.Now(), time.Now())

		mock.ExpectQuery(expectedSQL).WithArgs(donationID).WillReturnRows(rows)

		// Act
		donation, err := repo.GetByID(ctx, donationID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, donationID, donation.ID)
		assert.Equal(t, uuid.Nil, donation.ProjectID)
		assert.True(t, donation.Amount.Equal(decimal.NewFromInt(50)))
		require.NotNil(t, donation.Receipt)
		assert.Equal(t, receipt.URL, donation.Receipt.URL)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mock.ExpectQuery(expectedSQL).WithArgs(donationID).WillReturnError(sql.ErrNoRows)

		// Act
		_, err := repo.GetByID(ctx, donationID)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDonationRepository_ListByDonor(t *testing.T) {
	repo, mock := setupDonationRepoTest(t)
	ctx := context.Background()
	donorID := uuid.New()

	expectedSQL := regexp.QuoteMeta(`
		SELECT id, donor_id, project_id, amount, currency, frequency, status, message, anonymous, receipt, impact, created_at, updated_at
		FROM donations
		WHERE donor_id = $1
		ORDER BY created_at DESC
	`)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(donationColumns).
			AddRow(uuid.New(), donorID, nil, "50", "usd", "monthly", "completed", "", false, nil, nil, time.Now(), time.Now()).
			AddRow(uuid.New(), donorID, nil, "25", "usd", "one_time", "pending", "", true, nil, nil, time.Now().Add(-time.Hour), time.Now())

		mock.ExpectQuery(expectedSQL).WithArgs(donorID).WillReturnRows(rows)

		// Act
		donations, err := repo.ListByDonor(ctx, donorID)

		// Assert
		require.NoError(t, err)
		require.Len(t, donations, 2)
		assert.Equal(t, models.FrequencyMonthly, donations[0].Frequency)
		assert.True(t, donations[1].Anonymous)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - no donations yields an empty list", func(t *testing.T) {
		mock.ExpectQuery(expectedSQL).WithArgs(donorID).WillReturnRows(sqlmock.NewRows(donationColumns))

		// Act
		donations, err := repo.ListByDonor(ctx, donorID)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, donations)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDonationRepository_Update(t *testing.T) {
	repo, mock := setupDonationRepoTest(t)
	ctx := context.Background()

	donation := &models.Donation{
		ID:      uuid.New(),
		DonorID: uuid.New(),
		Amount:  decimal.NewFromInt(50),
		Status:  models.DonationCompleted,
		Receipt: &models.Receipt{ID: uuid.New(), IssuedAt: time.Now(), URL: "/receipts/x.pdf"},
	}

	expectedSQL := regexp.QuoteMeta(`
		UPDATE donations
		SET status = $1, receipt = $2, impact = $3, updated_at = $4
		WHERE id = $5
	`)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).
			WithArgs(donation.Status, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), donation.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.Update(ctx, donation)

		// Assert
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - no rows updated", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).
			WithArgs(donation.Status, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), donation.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.Update(ctx, donation)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDonationRepository_Stats(t *testing.T) {
	repo, mock := setupDonationRepoTest(t)
	ctx := context.Background()

	totalsSQL := regexp.QuoteMeta(`
		SELECT COALESCE(SUM(amount), 0), COUNT(DISTINCT donor_id), COUNT(*)
		FROM donations
	`)

	frequencySQL := regexp.QuoteMeta(`
		SELECT frequency, COUNT(*)
		FROM donations
		GROUP BY frequency
	`)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(totalsSQL).
			WillReturnRows(sqlmock.NewRows([]string{"sum", "donors", "count"}).AddRow("900", 12, 20))
		mock.ExpectQuery(frequencySQL).
			WillReturnRows(sqlmock.NewRows([]string{"frequency", "count"}).
				AddRow("monthly", 15).
				AddRow("one_time", 5))

		// Act
		stats, err := repo.Stats(ctx)

		// Assert
		require.NoError(t, err)
		assert.True(t, stats.TotalAmount.Equal(decimal.NewFromInt(900)))
		assert.Equal(t, 12, stats.TotalDonors)
		assert.Equal(t, 20, stats.TotalDonations)
		assert.Equal(t, 15, stats.ByFrequency[models.FrequencyMonthly])
		assert.Equal(t, 5, stats.ByFrequency[models.FrequencyOneTime])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - DB Error", func(t *testing.T) {
		dbErr := errors.New("database connection lost")
		mock.ExpectQuery(totalsSQL).WillReturnError(dbErr)

		// Act
		_, err := repo.Stats(ctx)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
