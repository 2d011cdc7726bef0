package role

import (
	"github.com/lib/pq"
)

// Role is an organization-scoped trial role (principal_investigator,
// coordinator, monitor, sponsor, admin) carrying a permission list.
type Role struct {
	ID             int            `db:"id" json:"id"`
	Name           string         `db:"name" json:"name"`
	Permissions    pq.StringArray `db:"permissions" json:"permissions"`
	OrganizationID int            `db:"organization_id" json:"organization_id"`
}
