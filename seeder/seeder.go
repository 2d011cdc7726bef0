package seeder

import (
	"github.com/jmoiron/sqlx"
)

func RunSeeder(db *sqlx.DB) {
	organizationSeeder(db)
	roleSeeder(db)
	superadminSeeder(db)
}
