package trial

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TrialRepository struct {
	db *sqlx.DB
}

func NewTrialRepository(db *sqlx.DB) *TrialRepository {
	return &TrialRepository{db: db}
}

func (r *TrialRepository) Create(trial *Trial) error {
	query := `
		INSERT INTO trials (id, organization_id, name, protocol_code, phase, status, sponsor, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(query,
		trial.ID,
		trial.OrganizationID,
		trial.Name,
		trial.ProtocolCode,
		trial.Phase,
		trial.Status,
		trial.Sponsor,
		trial.Description,
	).Scan(&trial.CreatedAt, &trial.UpdatedAt)
}

func (r *TrialRepository) GetAll(filter TrialFilter) ([]Trial, error) {
	conditions, args, argIndex := r.buildFilters(filter)

	query := `
		SELECT id, organization_id, name, protocol_code, phase, status, sponsor,
			description, start_date, end_date, created_at, updated_at
		FROM trials
		WHERE 1=1
	`
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC"

	limit, offset := ensurePagination(filter.Limit, filter.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	var trials []Trial
	if err := r.db.Select(&trials, query, args...); err != nil {
		return nil, err
	}
	return trials, nil
}

func (r *TrialRepository) GetTotal(filter TrialFilter) (int, error) {
	conditions, args, _ := r.buildFilters(filter)

	query := `SELECT COUNT(*) FROM trials WHERE 1=1`
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	var total int
	err := r.db.QueryRow(query, args...).Scan(&total)
	return total, err
}

func (r *TrialRepository) buildFilters(filter TrialFilter) ([]string, []interface{}, int) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.OrganizationID != nil {
		conditions = append(conditions, fmt.Sprintf("organization_id = $%d", argIndex))
		args = append(args, *filter.OrganizationID)
		argIndex++
	}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR protocol_code ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	return conditions, args, argIndex
}

func ensurePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (r *TrialRepository) GetByID(id uuid.UUID) (*Trial, error) {
	var trial Trial
	query := `
		SELECT id, organization_id, name, protocol_code, phase, status, sponsor,
			description, start_date, end_date, created_at, updated_at
		FROM trials
		WHERE id = $1
	`
	err := r.db.Get(&trial, query, id)
	if err != nil {
		return nil, err
	}
	return &trial, nil
}

func (r *TrialRepository) Update(trial *Trial) error {
	query := `
		UPDATE trials
		SET name = $1, phase = $2, status = $3, sponsor = $4, description = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(query,
		trial.Name,
		trial.Phase,
		trial.Status,
		trial.Sponsor,
		trial.Description,
		trial.ID,
	)
	return err
}

func (r *TrialRepository) Delete(id uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM trials WHERE id = $1`, id)
	return err
}

func (r *TrialRepository) AssignMember(assignment *TrialAssignment) error {
	query := `
		INSERT INTO trial_assignments (trial_id, member_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRow(query,
		assignment.TrialID,
		assignment.MemberID,
		assignment.Role,
	).Scan(&assignment.ID, &assignment.CreatedAt)
}

func (r *TrialRepository) GetAssignments(trialID uuid.UUID) ([]TrialAssignment, error) {
	var assignments []TrialAssignment
	query := `
		SELECT ta.id, ta.trial_id, ta.member_id, ta.role, ta.created_at,
			m.display_name AS member_name
		FROM trial_assignments ta
		INNER JOIN members m ON m.id = ta.member_id
		WHERE ta.trial_id = $1
		ORDER BY ta.created_at
	`
	if err := r.db.Select(&assignments, query, trialID); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *TrialRepository) GetAssignmentsByMember(memberID int) ([]TrialAssignment, error) {
	var assignments []TrialAssignment
	query := `
		SELECT ta.id, ta.trial_id, ta.member_id, ta.role, ta.created_at,
			m.display_name AS member_name
		FROM trial_assignments ta
		INNER JOIN members m ON m.id = ta.member_id
		WHERE ta.member_id = $1
		ORDER BY ta.created_at
	`
	if err := r.db.Select(&assignments, query, memberID); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *TrialRepository) RemoveAssignment(id int) error {
	_, err := r.db.Exec(`DELETE FROM trial_assignments WHERE id = $1`, id)
	return err
}
