package seeder

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"themison-be/util"
)

func superadminSeeder(db *sqlx.DB) {
	var userCount int
	err := db.Get(&userCount, "SELECT COUNT(*) FROM users WHERE email = 'admin@themison.com'")
	if err != nil {
		log.Fatalf("Failed to check admin user: %v", err)
	}

	if userCount > 0 {
		log.Println("Admin user already exists.")
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Fatalf("Failed to start transaction: %v", err)
	}
	defer tx.Rollback()

	password := os.Getenv("SUPERADMIN_PASSWORD")
	if password == "" {
		log.Fatal("SUPERADMIN_PASSWORD is not set")
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	var userID int
	err = tx.QueryRow(`
		INSERT INTO users (email, name, password)
		VALUES ($1, $2, $3)
		RETURNING id
	`, "admin@themison.com", "Site Administrator", hashedPassword).Scan(&userID)
	if err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Created admin user with ID: %d", userID)

	var orgID int
	if err := tx.Get(&orgID, "SELECT id FROM organizations ORDER BY id LIMIT 1"); err != nil {
		log.Fatalf("Failed to find default organization: %v", err)
	}

	var memberID int
	err = tx.QueryRow(`
		INSERT INTO members (organization_id, user_id, display_name, default_role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, orgID, userID, "Site Administrator", "admin").Scan(&memberID)
	if err != nil {
		log.Fatalf("Failed to create admin member: %v", err)
	}
	log.Printf("Created admin member with ID: %d", memberID)

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %v", err)
	}

	log.Println("Superadmin seeder completed successfully.")
}
