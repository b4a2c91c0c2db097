package repository

import (
	"database/sql"
	"fmt"

	"github.com/shopprobe/shopprobe/internal/database"
	"github.com/shopprobe/shopprobe/internal/models"
)

// RunRepository handles database operations for verification runs
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository() *RunRepository {
	return &RunRepository{
		db: database.DB,
	}
}

// NewRunRepositoryWithDB creates a new run repository with a specific database connection
func NewRunRepositoryWithDB(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// CreateRun stores a verification run report
func (r *RunRepository) CreateRun(report *models.VerificationReport) error {
	query := `
		INSERT INTO verification_runs (id, search_term, sort_option, item_count, violation_count,
		                               sorted, cart_passed, displayed_cart_total, calculated_cart_total,
		                               status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(query,
		report.ID,
		report.SearchTerm,
		report.SortOption,
		report.ItemCount,
		report.ViolationCount,
		report.Sorted,
		report.CartPassed,
		report.DisplayedCartTotal,
		report.CalculatedCartTotal,
		report.Status,
		report.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create run report: %w", err)
	}

	return nil
}

// GetRun retrieves a run report by its ID
func (r *RunRepository) GetRun(id string) (*models.VerificationReport, error) {
	query := `
		SELECT id, search_term, sort_option, item_count, violation_count,
		       sorted, cart_passed, displayed_cart_total, calculated_cart_total,
		       status, created_at
		FROM verification_runs
		WHERE id = $1
	`

	report := &models.VerificationReport{}
	err := r.db.QueryRow(query, id).Scan(
		&report.ID,
		&report.SearchTerm,
		&report.SortOption,
		&report.ItemCount,
		&report.ViolationCount,
		&report.Sorted,
		&report.CartPassed,
		&report.DisplayedCartTotal,
		&report.CalculatedCartTotal,
		&report.Status,
		&report.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return report, nil
}

// ListRuns retrieves the most recent run reports, newest first
func (r *RunRepository) ListRuns(limit int) ([]*models.VerificationReport, error) {
	query := `
		SELECT id, search_term, sort_option, item_count, violation_count,
		       sorted, cart_passed, displayed_cart_total, calculated_cart_total,
		       status, created_at
		FROM verification_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var reports []*models.VerificationReport
	for rows.Next() {
		report := &models.VerificationReport{}
		if err := rows.Scan(
			&report.ID,
			&report.SearchTerm,
			&report.SortOption,
			&report.ItemCount,
			&report.ViolationCount,
			&report.Sorted,
			&report.CartPassed,
			&report.DisplayedCartTotal,
			&report.CalculatedCartTotal,
			&report.Status,
			&report.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return reports, nil
}
