package organization

import "time"

type Organization struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Member is the organization-scoped identity, distinct from the auth user
// account. Documents and trial assignments are attributed to members.
type Member struct {
	ID             int       `db:"id" json:"id"`
	OrganizationID int       `db:"organization_id" json:"organization_id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	DisplayName    string    `db:"display_name" json:"display_name"`
	DefaultRole    string    `db:"default_role" json:"default_role"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required"`
}

type InviteMemberRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name"`
	DefaultRole string `json:"default_role"`
}

type UpdateMemberRequest struct {
	DisplayName string `json:"display_name"`
	DefaultRole string `json:"default_role"`
}
