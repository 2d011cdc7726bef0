package migrate

import (
	"log"

	"github.com/jmoiron/sqlx"
)

func RunMigrations(db *sqlx.DB) {
	log.Println("Starting migrations...")

	query := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		phone VARCHAR(50),
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS organizations (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS members (
		id SERIAL PRIMARY KEY,
		organization_id INT NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		display_name VARCHAR(255) NOT NULL,
		default_role VARCHAR(100) NOT NULL DEFAULT 'coordinator',
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		UNIQUE (organization_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS roles (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		permissions TEXT[],
		organization_id INT REFERENCES organizations(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS trials (
		id UUID PRIMARY KEY,
		organization_id INT NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		protocol_code VARCHAR(100) NOT NULL,
		phase VARCHAR(10) NOT NULL DEFAULT 'I',
		status VARCHAR(50) NOT NULL DEFAULT 'planning',
		sponsor VARCHAR(255),
		description TEXT,
		start_date TIMESTAMP,
		end_date TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS trial_assignments (
		id SERIAL PRIMARY KEY,
		trial_id UUID NOT NULL REFERENCES trials(id) ON DELETE CASCADE,
		member_id INT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		role VARCHAR(100) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		UNIQUE (trial_id, member_id)
	);

	CREATE TABLE IF NOT EXISTS documents (
		id UUID PRIMARY KEY,
		trial_id UUID NOT NULL REFERENCES trials(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		document_type VARCHAR(50) NOT NULL,
		storage_path VARCHAR(1024) NOT NULL,
		url TEXT NOT NULL,
		uploaded_by INT REFERENCES members(id) ON DELETE SET NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'active',
		file_size BIGINT NOT NULL DEFAULT 0,
		mime_type VARCHAR(255) NOT NULL,
		version INT NOT NULL DEFAULT 1,
		is_latest BOOLEAN NOT NULL DEFAULT FALSE,
		description TEXT,
		tags TEXT[],
		amendment_number INT,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_documents_trial_id ON documents(trial_id);
	CREATE INDEX IF NOT EXISTS idx_documents_document_type ON documents(document_type);
	CREATE INDEX IF NOT EXISTS idx_documents_is_latest ON documents(is_latest);
	CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);

	CREATE TABLE IF NOT EXISTS patients (
		id SERIAL PRIMARY KEY,
		trial_id UUID NOT NULL REFERENCES trials(id) ON DELETE CASCADE,
		code VARCHAR(100) NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'screening',
		enrolled_at TIMESTAMP,
		withdrawn_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		UNIQUE (trial_id, code)
	);

	CREATE TABLE IF NOT EXISTS visits (
		id SERIAL PRIMARY KEY,
		patient_id INT NOT NULL REFERENCES patients(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		scheduled_at TIMESTAMP NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'scheduled',
		notes TEXT,
		completed_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_visits_scheduled_at ON visits(scheduled_at);
	CREATE INDEX IF NOT EXISTS idx_visits_status ON visits(status);

	CREATE TABLE IF NOT EXISTS budget_entries (
		id SERIAL PRIMARY KEY,
		trial_id UUID NOT NULL REFERENCES trials(id) ON DELETE CASCADE,
		category VARCHAR(100) NOT NULL,
		entry_type VARCHAR(20) NOT NULL DEFAULT 'actual',
		description TEXT NOT NULL DEFAULT '',
		amount NUMERIC(14,2) NOT NULL,
		currency VARCHAR(10) NOT NULL DEFAULT 'USD',
		incurred_at TIMESTAMP NOT NULL DEFAULT NOW(),
		created_by INT REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_budget_entries_trial_id ON budget_entries(trial_id);

	CREATE TABLE IF NOT EXISTS notifications (
		id SERIAL PRIMARY KEY,
		member_id INT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		body TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_notifications_member_id ON notifications(member_id);

	CREATE TABLE IF NOT EXISTS chat_sessions (
		id UUID PRIMARY KEY,
		member_id INT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		trial_id UUID REFERENCES trials(id) ON DELETE SET NULL,
		title VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS chat_messages (
		id SERIAL PRIMARY KEY,
		session_id UUID NOT NULL REFERENCES chat_sessions(id) ON DELETE CASCADE,
		role VARCHAR(20) NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_chat_messages_session_id ON chat_messages(session_id);

	-- Add amendment_number column if it doesn't exist (for existing databases)
	DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns
					   WHERE table_name='documents' AND column_name='amendment_number') THEN
			ALTER TABLE documents ADD COLUMN amendment_number INT;
		END IF;
	END $$;

	-- Add default_role column if it doesn't exist (for existing databases)
	DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns
					   WHERE table_name='members' AND column_name='default_role') THEN
			ALTER TABLE members ADD COLUMN default_role VARCHAR(100);
			UPDATE members SET default_role = 'coordinator' WHERE default_role IS NULL;
			ALTER TABLE members ALTER COLUMN default_role SET NOT NULL;
		END IF;
	END $$;
	`

	if _, err := db.Exec(query); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully")
}
