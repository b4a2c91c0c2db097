package services

import (
	"fmt"
	"log"

	"github.com/shopprobe/shopprobe/internal/config"
	"github.com/shopprobe/shopprobe/internal/models"
	"github.com/shopprobe/shopprobe/internal/validate"
)

// Storefront defines the browser-driving collaborator the service needs
type Storefront interface {
	Open() error
	Search(term string) error
	ApplySort(option string) error
	CollectListings(pageLimit int) ([]models.PricedItem, error)
	AddToCart(position int) error
	OpenCart() error
	CartEntries() ([]models.PricedItem, error)
	DisplayedCartTotal() (float64, error)
}

// RunRepository defines the interface for run report persistence
type RunRepository interface {
	CreateRun(report *models.VerificationReport) error
	ListRuns(limit int) ([]*models.VerificationReport, error)
}

// VerifyResult carries everything one run produced: the persisted report and
// the structured verdicts behind it.
type VerifyResult struct {
	Report       *models.VerificationReport
	Listings     []models.PricedItem
	Sort         models.SortReport
	ListingTotal *models.TotalComparison
	Cart         models.ReconciliationReport
	CartTotal    models.TotalComparison
}

// VerifyService runs a verification scenario against the storefront
type VerifyService interface {
	Run(scenario *config.Scenario) (*VerifyResult, error)
}

// VerifyServiceImpl implements VerifyService
type VerifyServiceImpl struct {
	store      Storefront
	runs       RunRepository
	reconciler validate.Reconciler
}

// NewVerifyService creates a verify service. A nil repository skips
// persistence, which keeps the harness usable without a database.
func NewVerifyService(store Storefront, runs RunRepository) VerifyService {
	return &VerifyServiceImpl{
		store:      store,
		runs:       runs,
		reconciler: validate.NewReconciler(),
	}
}

// Run executes one scenario end to end: search, sort, scrape, validate the
// listing order, add the configured products, and reconcile the cart. The
// returned result is complete even when the run fails its checks; an error is
// returned only when the browser flow itself breaks or a scenario position is
// out of range of what was scraped.
func (s *VerifyServiceImpl) Run(scenario *config.Scenario) (*VerifyResult, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if err := s.store.Open(); err != nil {
		return nil, err
	}
	if err := s.store.Search(scenario.SearchTerm); err != nil {
		return nil, err
	}
	if scenario.SortOption != "" {
		if err := s.store.ApplySort(scenario.SortOption); err != nil {
			return nil, err
		}
	}

	listings, err := s.store.CollectListings(scenario.PageLimit)
	if err != nil {
		return nil, err
	}
	log.Printf("Scraped %d listings for %q", len(listings), scenario.SearchTerm)

	sortReport := validate.ValidateAscending(listings)
	if !sortReport.IsSorted {
		log.Printf("Sort check failed with %d violations", len(sortReport.Violations))
	}

	result := &VerifyResult{
		Listings: listings,
		Sort:     sortReport,
	}

	listingPassed := true
	if scenario.ExpectedListingTotal > 0 {
		calculated := validate.CalculateTotal(prices(listings))
		cmp := validate.CompareTotal(calculated, calculated, scenario.ExpectedListingTotal, scenario.ListingTolerance)
		result.ListingTotal = &cmp
		listingPassed = cmp.CalculatedWithinTolerance()
	}

	expected, err := s.addToCart(scenario, listings)
	if err != nil {
		return nil, err
	}

	if err := s.store.OpenCart(); err != nil {
		return nil, err
	}
	actual, err := s.store.CartEntries()
	if err != nil {
		return nil, err
	}
	displayedTotal, err := s.store.DisplayedCartTotal()
	if err != nil {
		return nil, err
	}

	result.Cart = s.reconciler.Reconcile(expected, actual)

	calculatedTotal := validate.CalculateTotal(prices(actual))
	expectedTotal := validate.CalculateTotal(prices(expected))
	result.CartTotal = validate.CompareTotal(displayedTotal, calculatedTotal, expectedTotal, scenario.CartTolerance)

	cartPassed := result.Cart.Passed &&
		result.CartTotal.DisplayedWithinTolerance() &&
		result.CartTotal.CalculatedWithinTolerance() &&
		listingPassed

	report, err := models.NewVerificationReport(scenario.SearchTerm, scenario.SortOption, sortReport, cartPassed, displayedTotal, calculatedTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to build run report: %w", err)
	}
	result.Report = report

	if s.runs != nil {
		if err := s.runs.CreateRun(report); err != nil {
			return nil, fmt.Errorf("failed to store run report: %w", err)
		}
		log.Printf("Stored run %s with status %s", report.ID, report.Status)
	}

	return result, nil
}

// addToCart adds the scenario's configured listing positions to the cart and
// returns the expected cart contents taken from the scraped listings.
func (s *VerifyServiceImpl) addToCart(scenario *config.Scenario, listings []models.PricedItem) ([]models.PricedItem, error) {
	expected := make([]models.PricedItem, 0, len(scenario.ProductsToAdd))
	for _, position := range scenario.ProductsToAdd {
		if position > len(listings) {
			return nil, fmt.Errorf("product position %d exceeds the %d scraped listings", position, len(listings))
		}
		if err := s.store.AddToCart(position); err != nil {
			return nil, err
		}
		expected = append(expected, listings[position-1])
	}
	return expected, nil
}

func prices(items []models.PricedItem) []float64 {
	out := make([]float64, len(items))
	for i, item := range items {
		out[i] = item.Price
	}
	return out
}
