package seeder

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"
)

func organizationSeeder(db *sqlx.DB) {
	var count int
	err := db.Get(&count, "SELECT COUNT(*) FROM organizations")
	if err != nil {
		log.Fatalf("Failed to check organizations table: %v", err)
	}

	if count > 0 {
		log.Println("Organizations already seeded.")
		return
	}

	name := os.Getenv("DEFAULT_ORGANIZATION_NAME")
	if name == "" {
		name = "Default Site"
	}

	var orgID int
	err = db.QueryRow(`INSERT INTO organizations (name) VALUES ($1) RETURNING id`, name).Scan(&orgID)
	if err != nil {
		log.Fatalf("Failed to create default organization: %v", err)
	}

	log.Printf("Created default organization %q with ID: %d", name, orgID)
}
