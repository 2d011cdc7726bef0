package patient

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID          int        `db:"id" json:"id"`
	TrialID     uuid.UUID  `db:"trial_id" json:"trial_id"`
	Code        string     `db:"code" json:"code"`
	Status      string     `db:"status" json:"status"`
	EnrolledAt  *time.Time `db:"enrolled_at" json:"enrolled_at"`
	WithdrawnAt *time.Time `db:"withdrawn_at" json:"withdrawn_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

type Visit struct {
	ID          int        `db:"id" json:"id"`
	PatientID   int        `db:"patient_id" json:"patient_id"`
	Name        string     `db:"name" json:"name"`
	ScheduledAt time.Time  `db:"scheduled_at" json:"scheduled_at"`
	Status      string     `db:"status" json:"status"`
	Notes       *string    `db:"notes" json:"notes"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// UpcomingVisit joins a scheduled visit with the patient and trial it
// belongs to, used by reminder queries.
type UpcomingVisit struct {
	VisitID     int       `db:"visit_id" json:"visit_id"`
	VisitName   string    `db:"visit_name" json:"visit_name"`
	ScheduledAt time.Time `db:"scheduled_at" json:"scheduled_at"`
	PatientCode string    `db:"patient_code" json:"patient_code"`
	TrialID     uuid.UUID `db:"trial_id" json:"trial_id"`
	TrialName   string    `db:"trial_name" json:"trial_name"`
}

type CreatePatientRequest struct {
	TrialID uuid.UUID `json:"trial_id" binding:"required"`
	Code    string    `json:"code" binding:"required"`
}

type CreateVisitRequest struct {
	Name        string    `json:"name" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Notes       *string   `json:"notes"`
}

type UpdateVisitRequest struct {
	Name        string     `json:"name"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Status      string     `json:"status"`
	Notes       *string    `json:"notes"`
}
