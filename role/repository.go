package role

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

type RoleRepository struct {
	db *sqlx.DB
}

func NewRoleRepository(db *sqlx.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(role *Role) error {
	query := `
		INSERT INTO roles (name, permissions, organization_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.db.QueryRow(query, role.Name, role.Permissions, role.OrganizationID).Scan(&role.ID)
}

func (r *RoleRepository) GetAll(limit, offset int, search string, organizationID *int) ([]Role, error) {
	var roles []Role
	var args []interface{}
	argCount := 1

	query := `
		SELECT id, name, permissions, organization_id
		FROM roles
		WHERE 1=1
	`

	if search != "" {
		query += fmt.Sprintf(` AND name ILIKE $%d`, argCount)
		args = append(args, "%"+search+"%")
		argCount++
	}

	if organizationID != nil {
		query += fmt.Sprintf(` AND organization_id = $%d`, argCount)
		args = append(args, *organizationID)
		argCount++
	}

	query += fmt.Sprintf(` ORDER BY id LIMIT $%d OFFSET $%d`, argCount, argCount+1)
	args = append(args, limit, offset)

	err := r.db.Select(&roles, query, args...)
	return roles, err
}

func (r *RoleRepository) GetTotal(search string, organizationID *int) (int, error) {
	var total int
	var args []interface{}
	argCount := 1

	query := `SELECT COUNT(*) FROM roles WHERE 1=1`

	if search != "" {
		query += fmt.Sprintf(` AND name ILIKE $%d`, argCount)
		args = append(args, "%"+search+"%")
		argCount++
	}

	if organizationID != nil {
		query += fmt.Sprintf(` AND organization_id = $%d`, argCount)
		args = append(args, *organizationID)
		argCount++
	}

	err := r.db.Get(&total, query, args...)
	return total, err
}

func (r *RoleRepository) GetByID(id int) (*Role, error) {
	var role Role
	err := r.db.Get(&role, `SELECT id, name, permissions, organization_id FROM roles WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) GetByName(organizationID int, name string) (*Role, error) {
	var role Role
	query := `
		SELECT id, name, permissions, organization_id
		FROM roles
		WHERE organization_id = $1 AND name = $2
	`
	err := r.db.Get(&role, query, organizationID, name)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) Update(id int, role *Role) error {
	_, err := r.db.Exec(`
		UPDATE roles
		SET name = $1, permissions = $2
		WHERE id = $3
	`, role.Name, role.Permissions, id)
	return err
}

func (r *RoleRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM roles WHERE id = $1`, id)
	return err
}
