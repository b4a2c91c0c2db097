package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Default tolerance ratios for total comparisons. Listing totals are pure
// sums of scraped prices; cart totals absorb taxes and delivery fees, so
// they get the wider band.
const (
	DefaultListingTolerance = 0.10
	DefaultCartTolerance    = 0.15
)

// Scenario describes one verification run: what to search, how to sort, how
// many listing pages to scrape, and which 1-based listing positions to add
// to the cart. ExpectedListingTotal of 0 skips the listing total check.
type Scenario struct {
	SearchTerm           string  `json:"searchTerm"`
	SortOption           string  `json:"sortOption"`
	PageLimit            int     `json:"pageLimit"`
	ProductsToAdd        []int   `json:"productsToAdd"`
	ExpectedListingTotal float64 `json:"expectedListingTotal"`
	ListingTolerance     float64 `json:"listingTolerance"`
	CartTolerance        float64 `json:"cartTolerance"`
}

// LoadScenario reads and validates a scenario from a JSON file. Tolerances
// left unset default to 10% for listing totals and 15% for cart totals.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}

	if scenario.ListingTolerance == 0 {
		scenario.ListingTolerance = DefaultListingTolerance
	}
	if scenario.CartTolerance == 0 {
		scenario.CartTolerance = DefaultCartTolerance
	}

	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Validate checks scenario preconditions before any browser work starts, so
// the validation core never sees out-of-range positions or limits.
func (s *Scenario) Validate() error {
	if s.SearchTerm == "" {
		return fmt.Errorf("searchTerm is required")
	}
	if s.PageLimit < 1 {
		return fmt.Errorf("pageLimit must be a positive integer, got %d", s.PageLimit)
	}
	for _, position := range s.ProductsToAdd {
		if position < 1 {
			return fmt.Errorf("productsToAdd positions are 1-based and must be positive, got %d", position)
		}
	}
	if s.ListingTolerance < 0 || s.ListingTolerance > 1 {
		return fmt.Errorf("listingTolerance must be between 0 and 1, got %v", s.ListingTolerance)
	}
	if s.CartTolerance < 0 || s.CartTolerance > 1 {
		return fmt.Errorf("cartTolerance must be between 0 and 1, got %v", s.CartTolerance)
	}
	if s.ExpectedListingTotal < 0 {
		return fmt.Errorf("expectedListingTotal cannot be negative, got %v", s.ExpectedListingTotal)
	}
	return nil
}
