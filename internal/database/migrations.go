package database

import (
	"fmt"
	"log"
)

// RunMigrations creates the necessary database tables
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}

	// Create verification_runs table
	createRunsTable := `
	CREATE TABLE IF NOT EXISTS verification_runs (
		id UUID PRIMARY KEY,
		search_term VARCHAR(255) NOT NULL,
		sort_option VARCHAR(100) NOT NULL,
		item_count INTEGER NOT NULL,
		violation_count INTEGER NOT NULL,
		sorted BOOLEAN NOT NULL,
		cart_passed BOOLEAN NOT NULL,
		displayed_cart_total NUMERIC(12, 2) NOT NULL,
		calculated_cart_total NUMERIC(12, 2) NOT NULL,
		status VARCHAR(20) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_verification_runs_status ON verification_runs(status);
	CREATE INDEX IF NOT EXISTS idx_verification_runs_created_at ON verification_runs(created_at);
	`

	_, err := DB.Exec(createRunsTable)
	if err != nil {
		return fmt.Errorf("failed to create verification_runs table: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}
