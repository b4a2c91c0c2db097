package validate

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopprobe/shopprobe/internal/models"
)

// PriceTolerance is the absolute per-item allowance, in currency units, when
// comparing a matched cart entry's price against the expected price. Listing
// and cart prices for the same product routinely differ by small offers and
// rounding.
const PriceTolerance = 100.0

// namePrefixLength is how many characters of a product name are considered
// when matching listing names against cart names. The storefront truncates
// names differently in the grid and the cart, so only a prefix is reliable.
const namePrefixLength = 20

// NameMatcher decides whether an expected product name and a scraped cart
// entry name refer to the same product.
type NameMatcher interface {
	Match(expected, actual string) bool
}

// PrefixMatcher matches names case-insensitively by checking whether the
// first PrefixLen characters of either name appear as a substring of the
// other. The check runs in both directions because either context may hold
// the shorter form. Known limitation: short or similarly-prefixed names can
// produce false positives.
type PrefixMatcher struct {
	PrefixLen int
}

// Match implements NameMatcher.
func (m PrefixMatcher) Match(expected, actual string) bool {
	n := m.PrefixLen
	if n <= 0 {
		n = namePrefixLength
	}
	e := strings.ToLower(expected)
	a := strings.ToLower(actual)
	return strings.Contains(a, prefix(e, n)) || strings.Contains(e, prefix(a, n))
}

func prefix(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Reconciler matches expected cart contents against scraped cart contents.
// The zero value is not usable; construct with NewReconciler or
// ReconcilerWith.
type Reconciler struct {
	matcher   NameMatcher
	tolerance float64
}

// NewReconciler returns a reconciler with the default prefix matcher and
// per-item price tolerance.
func NewReconciler() Reconciler {
	return Reconciler{
		matcher:   PrefixMatcher{PrefixLen: namePrefixLength},
		tolerance: PriceTolerance,
	}
}

// ReconcilerWith returns a reconciler with a substitute matching strategy
// and absolute price tolerance, leaving the reconciliation flow untouched.
func ReconcilerWith(matcher NameMatcher, tolerance float64) Reconciler {
	return Reconciler{matcher: matcher, tolerance: tolerance}
}

// Reconcile matches each expected item against the scraped cart entries and
// produces one verdict per expected item. Candidates are taken first-match
// in cart order, not best-match, so duplicate names can pair up wrongly;
// that ambiguity is accepted. Verdicts are independent: a NOT_FOUND does not
// stop evaluation of the remaining expected items. An expected price of 0
// means the price was never captured and any matched candidate price is
// accepted. The report passes only when every expected item is a MATCH.
func (r Reconciler) Reconcile(expected, actual []models.PricedItem) models.ReconciliationReport {
	passed := true
	verdicts := make([]models.ReconciliationVerdict, 0, len(expected))

	for _, exp := range expected {
		var match *models.PricedItem
		for i := range actual {
			if r.matcher.Match(exp.Name, actual[i].Name) {
				match = &actual[i]
				break
			}
		}

		if match == nil {
			passed = false
			verdicts = append(verdicts, models.ReconciliationVerdict{
				Status:   models.VerdictNotFound,
				Expected: exp,
				Detail:   fmt.Sprintf("no cart entry matched %q", exp.DisplayName(namePrefixLength)),
			})
			continue
		}

		diff := math.Abs(match.Price - exp.Price)
		if exp.Price == 0 || diff < r.tolerance {
			verdicts = append(verdicts, models.ReconciliationVerdict{
				Status:   models.VerdictMatch,
				Expected: exp,
				Actual:   match,
				Detail:   fmt.Sprintf("matched %q at %s (expected %s)", match.Name, FormatPrice(match.Price), FormatPrice(exp.Price)),
			})
			continue
		}

		passed = false
		verdicts = append(verdicts, models.ReconciliationVerdict{
			Status:   models.VerdictPriceMismatch,
			Expected: exp,
			Actual:   match,
			Detail:   fmt.Sprintf("price for %q differs by %s, beyond the %s allowance", match.Name, FormatPrice(diff), FormatPrice(r.tolerance)),
		})
	}

	return models.ReconciliationReport{Passed: passed, Verdicts: verdicts}
}

// Reconcile matches expected cart contents against actual cart contents with
// the default matcher and tolerance.
func Reconcile(expected, actual []models.PricedItem) models.ReconciliationReport {
	return NewReconciler().Reconcile(expected, actual)
}

// CompareTotal builds a TotalComparison for a displayed cart total, a locally
// calculated line-item total, and the expected amount. The tolerance ratio is
// caller-supplied: call sites use 10% for pure listing totals and 15% when
// cart line items carry taxes or delivery fees.
func CompareTotal(displayed, calculated, expected, toleranceRatio float64) models.TotalComparison {
	return models.TotalComparison{
		DisplayedTotal:  displayed,
		CalculatedTotal: calculated,
		ExpectedTotal:   expected,
		ToleranceRatio:  toleranceRatio,
	}
}
