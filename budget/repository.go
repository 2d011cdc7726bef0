package budget

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type BudgetRepository struct {
	DB *sqlx.DB
}

func NewBudgetRepository(db *sqlx.DB) *BudgetRepository {
	return &BudgetRepository{DB: db}
}

func (r *BudgetRepository) CreateEntry(e *BudgetEntry) error {
	query := `INSERT INTO budget_entries (trial_id, category, entry_type, description, amount, currency, incurred_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
	err := r.DB.QueryRow(query,
		e.TrialID, e.Category, e.EntryType, e.Description, e.Amount, e.Currency, e.IncurredAt, e.CreatedBy,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create budget entry: %w", err)
	}
	return nil
}

func (r *BudgetRepository) GetEntriesByTrial(trialID uuid.UUID) ([]BudgetEntry, error) {
	var entries []BudgetEntry
	query := `SELECT * FROM budget_entries WHERE trial_id = $1 ORDER BY incurred_at DESC`
	if err := r.DB.Select(&entries, query, trialID); err != nil {
		return nil, fmt.Errorf("failed to get budget entries: %w", err)
	}
	return entries, nil
}

func (r *BudgetRepository) DeleteEntry(id int) error {
	res, err := r.DB.Exec(`DELETE FROM budget_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget entry: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("budget entry not found")
	}
	return nil
}

func (r *BudgetRepository) GetSummaryByTrial(trialID uuid.UUID) (*TrialBudgetSummary, error) {
	summary := &TrialBudgetSummary{TrialID: trialID, Currency: "USD"}

	query := `SELECT
			COALESCE(SUM(amount) FILTER (WHERE entry_type = 'planned'), 0),
			COALESCE(SUM(amount) FILTER (WHERE entry_type = 'actual'), 0),
			COUNT(*),
			COALESCE(MAX(currency), 'USD')
		FROM budget_entries WHERE trial_id = $1`
	err := r.DB.QueryRow(query, trialID).Scan(&summary.Planned, &summary.Spent, &summary.EntryCount, &summary.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget summary: %w", err)
	}
	summary.Remaining = summary.Planned - summary.Spent

	byCategory := []CategoryTotal{}
	catQuery := `SELECT category,
			COALESCE(SUM(amount) FILTER (WHERE entry_type = 'planned'), 0) AS planned,
			COALESCE(SUM(amount) FILTER (WHERE entry_type = 'actual'), 0) AS spent
		FROM budget_entries
		WHERE trial_id = $1 GROUP BY category ORDER BY planned DESC`
	if err := r.DB.Select(&byCategory, catQuery, trialID); err != nil {
		return nil, fmt.Errorf("failed to get category totals: %w", err)
	}
	summary.ByCategory = byCategory
	return summary, nil
}
