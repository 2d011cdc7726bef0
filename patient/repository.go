package patient

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PatientRepository struct {
	DB *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) *PatientRepository {
	return &PatientRepository{DB: db}
}

func (r *PatientRepository) CreatePatient(p *Patient) error {
	query := `INSERT INTO patients (trial_id, code, status, enrolled_at)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.DB.QueryRow(query, p.TrialID, p.Code, p.Status, p.EnrolledAt).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *PatientRepository) GetPatientsByTrial(trialID uuid.UUID) ([]Patient, error) {
	var patients []Patient
	query := `SELECT * FROM patients WHERE trial_id = $1 ORDER BY code ASC`
	if err := r.DB.Select(&patients, query, trialID); err != nil {
		return nil, fmt.Errorf("failed to get patients: %w", err)
	}
	return patients, nil
}

func (r *PatientRepository) GetPatientByID(id int) (*Patient, error) {
	var p Patient
	err := r.DB.Get(&p, `SELECT * FROM patients WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &p, nil
}

func (r *PatientRepository) UpdatePatientStatus(id int, status string, withdrawnAt *time.Time) error {
	query := `UPDATE patients SET status = $1, withdrawn_at = $2 WHERE id = $3`
	res, err := r.DB.Exec(query, status, withdrawnAt, id)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("patient not found")
	}
	return nil
}

func (r *PatientRepository) CreateVisit(v *Visit) error {
	query := `INSERT INTO visits (patient_id, name, scheduled_at, status, notes)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.DB.QueryRow(query, v.PatientID, v.Name, v.ScheduledAt, v.Status, v.Notes).
		Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}
	return nil
}

func (r *PatientRepository) GetVisitsByPatient(patientID int) ([]Visit, error) {
	var visits []Visit
	query := `SELECT * FROM visits WHERE patient_id = $1 ORDER BY scheduled_at ASC`
	if err := r.DB.Select(&visits, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to get visits: %w", err)
	}
	return visits, nil
}

func (r *PatientRepository) GetVisitByID(id int) (*Visit, error) {
	var v Visit
	err := r.DB.Get(&v, `SELECT * FROM visits WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}
	return &v, nil
}

func (r *PatientRepository) UpdateVisit(id int, req UpdateVisitRequest) (*Visit, error) {
	setClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	if req.Name != "" {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, req.Name)
		argIndex++
	}
	if req.ScheduledAt != nil {
		setClauses = append(setClauses, fmt.Sprintf("scheduled_at = $%d", argIndex))
		args = append(args, *req.ScheduledAt)
		argIndex++
	}
	if req.Status != "" {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, req.Status)
		argIndex++
		if req.Status == "completed" {
			setClauses = append(setClauses, "completed_at = NOW()")
		}
	}
	if req.Notes != nil {
		setClauses = append(setClauses, fmt.Sprintf("notes = $%d", argIndex))
		args = append(args, *req.Notes)
		argIndex++
	}
	if len(setClauses) == 0 {
		return r.GetVisitByID(id)
	}

	query := "UPDATE visits SET "
	for i, clause := range setClauses {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += fmt.Sprintf(" WHERE id = $%d RETURNING *", argIndex)
	args = append(args, id)

	var v Visit
	if err := r.DB.Get(&v, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update visit: %w", err)
	}
	return &v, nil
}

// GetVisitsDueBetween returns scheduled visits in [from, to) together
// with patient and trial context, for reminder dispatch.
func (r *PatientRepository) GetVisitsDueBetween(from, to time.Time) ([]UpcomingVisit, error) {
	var visits []UpcomingVisit
	query := `SELECT v.id AS visit_id, v.name AS visit_name, v.scheduled_at,
			p.code AS patient_code, p.trial_id, t.name AS trial_name
		FROM visits v
		JOIN patients p ON p.id = v.patient_id
		JOIN trials t ON t.id = p.trial_id
		WHERE v.status = 'scheduled' AND v.scheduled_at >= $1 AND v.scheduled_at < $2
		ORDER BY v.scheduled_at ASC`
	if err := r.DB.Select(&visits, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to get due visits: %w", err)
	}
	return visits, nil
}
