package trial

import (
	"time"

	"github.com/google/uuid"
)

type Trial struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	OrganizationID int        `db:"organization_id" json:"organization_id"`
	Name           string     `db:"name" json:"name"`
	ProtocolCode   string     `db:"protocol_code" json:"protocol_code"`
	Phase          string     `db:"phase" json:"phase"`
	Status         string     `db:"status" json:"status"`
	Sponsor        *string    `db:"sponsor" json:"sponsor"`
	Description    *string    `db:"description" json:"description"`
	StartDate      *time.Time `db:"start_date" json:"start_date"`
	EndDate        *time.Time `db:"end_date" json:"end_date"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// TrialAssignment links a member to a trial with a role.
type TrialAssignment struct {
	ID         int       `db:"id" json:"id"`
	TrialID    uuid.UUID `db:"trial_id" json:"trial_id"`
	MemberID   int       `db:"member_id" json:"member_id"`
	Role       string    `db:"role" json:"role"`
	MemberName string    `db:"member_name" json:"member_name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type TrialFilter struct {
	OrganizationID *int
	Status         string
	Search         string
	Limit          int
	Offset         int
}

type CreateTrialRequest struct {
	OrganizationID int     `json:"organization_id" binding:"required"`
	Name           string  `json:"name" binding:"required"`
	ProtocolCode   string  `json:"protocol_code" binding:"required"`
	Phase          string  `json:"phase"`
	Sponsor        *string `json:"sponsor"`
	Description    *string `json:"description"`
}

type UpdateTrialRequest struct {
	Name        string  `json:"name"`
	Phase       string  `json:"phase"`
	Status      string  `json:"status"`
	Sponsor     *string `json:"sponsor"`
	Description *string `json:"description"`
}

type AssignMemberRequest struct {
	MemberID int    `json:"member_id" binding:"required"`
	Role     string `json:"role" binding:"required"`
}
