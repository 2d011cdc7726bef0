package organization

import (
	"github.com/jmoiron/sqlx"
)

type OrganizationRepository struct {
	db *sqlx.DB
}

func NewOrganizationRepository(db *sqlx.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(org *Organization) error {
	query := `INSERT INTO organizations (name) VALUES ($1) RETURNING id, created_at`
	return r.db.QueryRow(query, org.Name).Scan(&org.ID, &org.CreatedAt)
}

func (r *OrganizationRepository) GetAll() ([]Organization, error) {
	var orgs []Organization
	err := r.db.Select(&orgs, `SELECT id, name, created_at FROM organizations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *OrganizationRepository) GetByID(id int) (*Organization, error) {
	var org Organization
	err := r.db.Get(&org, `SELECT id, name, created_at FROM organizations WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepository) Update(org *Organization) error {
	_, err := r.db.Exec(`UPDATE organizations SET name = $1 WHERE id = $2`, org.Name, org.ID)
	return err
}

func (r *OrganizationRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM organizations WHERE id = $1`, id)
	return err
}

func (r *OrganizationRepository) CreateMember(member *Member) error {
	query := `
		INSERT INTO members (organization_id, user_id, display_name, default_role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRow(query,
		member.OrganizationID,
		member.UserID,
		member.DisplayName,
		member.DefaultRole,
	).Scan(&member.ID, &member.CreatedAt)
}

func (r *OrganizationRepository) GetMembers(organizationID int) ([]Member, error) {
	var members []Member
	query := `
		SELECT id, organization_id, user_id, display_name, default_role, created_at
		FROM members
		WHERE organization_id = $1
		ORDER BY display_name
	`
	err := r.db.Select(&members, query, organizationID)
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *OrganizationRepository) GetMemberByID(id int) (*Member, error) {
	var member Member
	query := `
		SELECT id, organization_id, user_id, display_name, default_role, created_at
		FROM members
		WHERE id = $1
	`
	err := r.db.Get(&member, query, id)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetMemberByUserID maps an authenticated user to their member identity.
// Uploads and chat sessions are attributed through this lookup.
func (r *OrganizationRepository) GetMemberByUserID(userID int64) (*Member, error) {
	var member Member
	query := `
		SELECT id, organization_id, user_id, display_name, default_role, created_at
		FROM members
		WHERE user_id = $1
		LIMIT 1
	`
	err := r.db.Get(&member, query, userID)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *OrganizationRepository) UpdateMember(member *Member) error {
	query := `UPDATE members SET display_name = $1, default_role = $2 WHERE id = $3`
	_, err := r.db.Exec(query, member.DisplayName, member.DefaultRole, member.ID)
	return err
}

func (r *OrganizationRepository) DeleteMember(id int) error {
	_, err := r.db.Exec(`DELETE FROM members WHERE id = $1`, id)
	return err
}
