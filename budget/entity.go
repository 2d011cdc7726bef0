package budget

import (
	"time"

	"github.com/google/uuid"
)

// EntryType distinguishes what was budgeted from what was spent.
const (
	EntryTypePlanned = "planned"
	EntryTypeActual  = "actual"
)

type BudgetEntry struct {
	ID          int       `db:"id" json:"id"`
	TrialID     uuid.UUID `db:"trial_id" json:"trial_id"`
	Category    string    `db:"category" json:"category"`
	EntryType   string    `db:"entry_type" json:"entry_type"`
	Description string    `db:"description" json:"description"`
	Amount      float64   `db:"amount" json:"amount"`
	Currency    string    `db:"currency" json:"currency"`
	IncurredAt  time.Time `db:"incurred_at" json:"incurred_at"`
	CreatedBy   int       `db:"created_by" json:"created_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CategoryTotal struct {
	Category string  `db:"category" json:"category"`
	Planned  float64 `db:"planned" json:"planned"`
	Spent    float64 `db:"spent" json:"spent"`
}

// TrialBudgetSummary aggregates planned budget against actual spend for
// one trial.
type TrialBudgetSummary struct {
	TrialID    uuid.UUID       `json:"trial_id"`
	Planned    float64         `json:"planned"`
	Spent      float64         `json:"spent"`
	Remaining  float64         `json:"remaining"`
	Currency   string          `json:"currency"`
	EntryCount int             `json:"entry_count"`
	ByCategory []CategoryTotal `json:"by_category"`
}

type CreateEntryRequest struct {
	TrialID     uuid.UUID `json:"trial_id" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	EntryType   string    `json:"entry_type"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount" binding:"required"`
	Currency    string    `json:"currency"`
	IncurredAt  time.Time `json:"incurred_at"`
}

type GenerateEmbedRequest struct {
	TrialID   uuid.UUID `json:"trial_id" binding:"required"`
	Category  string    `json:"category" binding:"required"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
}
