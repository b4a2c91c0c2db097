package e2e

import (
	"testing"

	"github.com/shopprobe/shopprobe/internal/config"
	"github.com/shopprobe/shopprobe/internal/models"
)

// TestCartReconciliation verifies add-to-cart and fuzzy reconciliation
// Feature: Cart Verification
//
//	Scenario: Added products appear in the cart under longer names
//	  Given products show extended names and slightly different prices in the cart
//	  When I add the first and third products and open the cart
//	  Then both expected items reconcile as MATCH
//	  And the displayed total with delivery fee is inside the 15% band
func TestCartReconciliation(t *testing.T) {
	f := newFixtureStore(t, []fixtureProduct{
		{Name: "Budget Runner", Price: 999, CartName: "Budget Runner Lightweight Mesh", CartPrice: 1020},
		{Name: "Trail Sneaker", Price: 1499},
		{Name: "Premium Trainer", Price: 2499, CartName: "Premium Trainer Pro Edition", CartPrice: 2450},
	}, true)
	f.deliveryFee = 80

	service := newHarness(t, f)
	result, err := service.Run(&config.Scenario{
		SearchTerm:       "running shoes",
		SortOption:       "Price -- Low to High",
		PageLimit:        1,
		ProductsToAdd:    []int{1, 3},
		ListingTolerance: config.DefaultListingTolerance,
		CartTolerance:    config.DefaultCartTolerance,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !result.Cart.Passed {
		t.Fatalf("reconciliation failed, verdicts: %+v", result.Cart.Verdicts)
	}
	if len(result.Cart.Verdicts) != 2 {
		t.Fatalf("got %d verdicts, want 2", len(result.Cart.Verdicts))
	}
	for i, verdict := range result.Cart.Verdicts {
		if verdict.Status != models.VerdictMatch {
			t.Errorf("verdict %d = %s (%s), want MATCH", i, verdict.Status, verdict.Detail)
		}
	}

	// 1020 + 2450 + 80 delivery against expected 999 + 2499
	if !result.CartTotal.DisplayedWithinTolerance() {
		t.Errorf("displayed total %v should be within 15%% of %v",
			result.CartTotal.DisplayedTotal, result.CartTotal.ExpectedTotal)
	}
	if !result.Report.Passed() {
		t.Errorf("report status = %s, want passed", result.Report.Status)
	}
}

// TestCartMissingProductFails verifies NOT_FOUND handling
// Feature: Cart Verification
//
//	Scenario: The cart silently drops a product
//	  Given the storefront renames one product beyond recognition in the cart
//	  When I add two products and open the cart
//	  Then the renamed product reports NOT_FOUND
//	  And the run fails
func TestCartMissingProductFails(t *testing.T) {
	f := newFixtureStore(t, []fixtureProduct{
		{Name: "Budget Runner", Price: 999},
		{Name: "Premium Trainer", Price: 2499, CartName: "Clearance Mystery Item"},
	}, true)

	service := newHarness(t, f)
	result, err := service.Run(&config.Scenario{
		SearchTerm:       "running shoes",
		SortOption:       "Price -- Low to High",
		PageLimit:        1,
		ProductsToAdd:    []int{1, 2},
		ListingTolerance: config.DefaultListingTolerance,
		CartTolerance:    config.DefaultCartTolerance,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Cart.Passed {
		t.Fatal("reconciliation should fail for the renamed product")
	}

	var notFound bool
	for _, verdict := range result.Cart.Verdicts {
		if verdict.Status == models.VerdictNotFound && verdict.Expected.Name == "Premium Trainer" {
			notFound = true
		}
	}
	if !notFound {
		t.Errorf("expected a NOT_FOUND verdict for Premium Trainer, got: %+v", result.Cart.Verdicts)
	}
	if result.Report.Passed() {
		t.Error("run must fail on a missing cart item")
	}
}

// TestCartTotalOutsideToleranceFails verifies the total band
// Feature: Cart Verification
//
//	Scenario: An oversized delivery fee breaks the total band
//	  Given the cart adds a delivery fee above 15% of the expected total
//	  When I add one product and open the cart
//	  Then the items reconcile but the displayed total is out of band
//	  And the run fails
func TestCartTotalOutsideToleranceFails(t *testing.T) {
	f := newFixtureStore(t, []fixtureProduct{
		{Name: "Budget Runner", Price: 999},
	}, true)
	f.deliveryFee = 400

	service := newHarness(t, f)
	result, err := service.Run(&config.Scenario{
		SearchTerm:       "running shoes",
		SortOption:       "Price -- Low to High",
		PageLimit:        1,
		ProductsToAdd:    []int{1},
		ListingTolerance: config.DefaultListingTolerance,
		CartTolerance:    config.DefaultCartTolerance,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !result.Cart.Passed {
		t.Fatalf("reconciliation should pass, verdicts: %+v", result.Cart.Verdicts)
	}
	if result.CartTotal.DisplayedWithinTolerance() {
		t.Errorf("displayed total %v should be outside 15%% of %v",
			result.CartTotal.DisplayedTotal, result.CartTotal.ExpectedTotal)
	}
	if result.Report.Passed() {
		t.Error("run must fail when the displayed total is out of band")
	}
}
