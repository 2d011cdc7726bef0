package seeder

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func roleSeeder(db *sqlx.DB) {
	var count int
	err := db.Get(&count, "SELECT COUNT(*) FROM roles")
	if err != nil {
		log.Fatalf("Failed to check roles table: %v", err)
	}

	if count > 0 {
		log.Println("Roles already seeded.")
		return
	}

	var orgID int
	if err := db.Get(&orgID, "SELECT id FROM organizations ORDER BY id LIMIT 1"); err != nil {
		log.Fatalf("Failed to find default organization: %v", err)
	}

	roles := map[string]pq.StringArray{
		"admin": {
			"trials:create", "trials:read", "trials:update", "trials:delete",
			"documents:create", "documents:read", "documents:update", "documents:delete",
			"patients:create", "patients:read", "patients:update",
			"budget:create", "budget:read", "budget:delete",
			"members:manage", "roles:manage",
		},
		"investigator": {
			"trials:read", "trials:update",
			"documents:create", "documents:read", "documents:update",
			"patients:create", "patients:read", "patients:update",
			"budget:read",
		},
		"coordinator": {
			"trials:read",
			"documents:create", "documents:read",
			"patients:read", "patients:update",
			"budget:read",
		},
		"monitor": {
			"trials:read",
			"documents:read",
			"patients:read",
		},
		"sponsor": {
			"trials:read",
			"documents:read",
			"budget:read",
		},
	}

	for name, permissions := range roles {
		var roleID int
		err := db.QueryRow(`
			INSERT INTO roles (name, permissions, organization_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`, name, permissions, orgID).Scan(&roleID)
		if err != nil {
			log.Fatalf("Failed to create role %q: %v", name, err)
		}
		log.Printf("Created role %q with ID: %d", name, roleID)
	}

	log.Println("Role seeder completed successfully.")
}
