package budget

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*BudgetRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewBudgetRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestGetSummaryByTrialComputesRemaining(t *testing.T) {
	repo, mock := newMockRepo(t)
	trialID := uuid.New()

	mock.ExpectQuery(`SELECT(.|\n)+FROM budget_entries WHERE trial_id = \$1`).
		WithArgs(trialID).
		WillReturnRows(sqlmock.NewRows([]string{"planned", "spent", "count", "currency"}).
			AddRow(100000.0, 37500.50, 12, "EUR"))

	mock.ExpectQuery(`SELECT category,(.|\n)+GROUP BY category`).
		WithArgs(trialID).
		WillReturnRows(sqlmock.NewRows([]string{"category", "planned", "spent"}).
			AddRow("site_fees", 60000.0, 20000.0).
			AddRow("lab", 40000.0, 17500.50))

	summary, err := repo.GetSummaryByTrial(trialID)
	require.NoError(t, err)

	assert.Equal(t, 100000.0, summary.Planned)
	assert.Equal(t, 37500.50, summary.Spent)
	assert.InDelta(t, 62499.50, summary.Remaining, 0.001)
	assert.Equal(t, "EUR", summary.Currency)
	assert.Equal(t, 12, summary.EntryCount)
	require.Len(t, summary.ByCategory, 2)
	assert.Equal(t, "site_fees", summary.ByCategory[0].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSummaryByTrialEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)
	trialID := uuid.New()

	mock.ExpectQuery(`SELECT(.|\n)+FROM budget_entries WHERE trial_id = \$1`).
		WithArgs(trialID).
		WillReturnRows(sqlmock.NewRows([]string{"planned", "spent", "count", "currency"}).
			AddRow(0.0, 0.0, 0, "USD"))

	mock.ExpectQuery(`SELECT category,(.|\n)+GROUP BY category`).
		WithArgs(trialID).
		WillReturnRows(sqlmock.NewRows([]string{"category", "planned", "spent"}))

	summary, err := repo.GetSummaryByTrial(trialID)
	require.NoError(t, err)

	assert.Zero(t, summary.Planned)
	assert.Zero(t, summary.Remaining)
	assert.Empty(t, summary.ByCategory)
	assert.NoError(t, mock.ExpectationsWereMet())
}
