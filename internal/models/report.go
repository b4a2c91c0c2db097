package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the final outcome of a verification run
type RunStatus string

// Run statuses
const (
	RunStatusPassed RunStatus = "passed"
	RunStatusFailed RunStatus = "failed"
)

// VerificationReport is the persisted record of one verification run against
// the storefront: what was searched, what the sort check found, and how cart
// reconciliation and the total comparison came out.
type VerificationReport struct {
	ID                  string
	SearchTerm          string
	SortOption          string
	ItemCount           int
	ViolationCount      int
	Sorted              bool
	CartPassed          bool
	DisplayedCartTotal  float64
	CalculatedCartTotal float64
	Status              RunStatus
	CreatedAt           time.Time
}

// Domain errors
var (
	ErrEmptySearchTerm   = errors.New("search term cannot be empty")
	ErrNegativeItemCount = errors.New("item count cannot be negative")
	ErrNegativeTotal     = errors.New("cart totals cannot be negative")
	ErrInvalidViolations = errors.New("violation count inconsistent with sorted flag")
)

// NewVerificationReport creates a run report with validation. The status is
// derived: a run passes only when the listing was sorted and the cart check
// passed.
func NewVerificationReport(searchTerm, sortOption string, sort SortReport, cartPassed bool, displayedTotal, calculatedTotal float64) (*VerificationReport, error) {
	if searchTerm == "" {
		return nil, ErrEmptySearchTerm
	}
	if sort.TotalItems < 0 {
		return nil, ErrNegativeItemCount
	}
	if displayedTotal < 0 || calculatedTotal < 0 {
		return nil, ErrNegativeTotal
	}
	if sort.IsSorted != (len(sort.Violations) == 0) {
		return nil, ErrInvalidViolations
	}

	status := RunStatusFailed
	if sort.IsSorted && cartPassed {
		status = RunStatusPassed
	}

	return &VerificationReport{
		ID:                  uuid.New().String(),
		SearchTerm:          searchTerm,
		SortOption:          sortOption,
		ItemCount:           sort.TotalItems,
		ViolationCount:      len(sort.Violations),
		Sorted:              sort.IsSorted,
		CartPassed:          cartPassed,
		DisplayedCartTotal:  displayedTotal,
		CalculatedCartTotal: calculatedTotal,
		Status:              status,
		CreatedAt:           time.Now(),
	}, nil
}

// Passed returns true if the run passed
func (r *VerificationReport) Passed() bool {
	return r.Status == RunStatusPassed
}
