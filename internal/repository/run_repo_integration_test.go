//go:build integration
// +build integration

package repository

import (
	"testing"

	"github.com/google/uuid"

	"github.com/shopprobe/shopprobe/internal/models"
	"github.com/shopprobe/shopprobe/internal/repository/testutil"
)

func passedReport(searchTerm string) *models.VerificationReport {
	report, err := models.NewVerificationReport(searchTerm, "price_asc", models.NewSortReport(12, nil), true, 3650, 3500)
	if err != nil {
		panic(err)
	}
	return report
}

func TestRunRepository_CreateRun_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepositoryWithDB(testDB.DB)

	tests := []struct {
		name    string
		report  *models.VerificationReport
		wantErr bool
	}{
		{
			name:    "create passing run",
			report:  passedReport("running shoes"),
			wantErr: false,
		},
		{
			name: "create failing run",
			report: func() *models.VerificationReport {
				r := passedReport("laptops")
				r.Sorted = false
				r.ViolationCount = 3
				r.Status = models.RunStatusFailed
				return r
			}(),
			wantErr: false,
		},
		{
			name: "invalid id rejected",
			report: func() *models.VerificationReport {
				r := passedReport("running shoes")
				r.ID = "" // not a valid UUID
				return r
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.CreateRun(tt.report)

			if (err != nil) != tt.wantErr {
				t.Errorf("CreateRun() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunRepository_GetRun_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepositoryWithDB(testDB.DB)

	created := passedReport("running shoes")
	if err := repo.CreateRun(created); err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}

	got, err := repo.GetRun(created.ID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}

	if got.SearchTerm != created.SearchTerm {
		t.Errorf("SearchTerm = %q, want %q", got.SearchTerm, created.SearchTerm)
	}
	if got.Status != created.Status {
		t.Errorf("Status = %s, want %s", got.Status, created.Status)
	}
	if got.DisplayedCartTotal != created.DisplayedCartTotal {
		t.Errorf("DisplayedCartTotal = %v, want %v", got.DisplayedCartTotal, created.DisplayedCartTotal)
	}
	if got.ItemCount != created.ItemCount {
		t.Errorf("ItemCount = %d, want %d", got.ItemCount, created.ItemCount)
	}

	if _, err := repo.GetRun(uuid.New().String()); err == nil {
		t.Error("GetRun() expected error for unknown id")
	}
}

func TestRunRepository_ListRuns_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepositoryWithDB(testDB.DB)

	for _, term := range []string{"first", "second", "third"} {
		if err := repo.CreateRun(passedReport(term)); err != nil {
			t.Fatalf("CreateRun(%q) error = %v", term, err)
		}
	}

	runs, err := repo.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("got %d runs, want 2", len(runs))
	}
}
