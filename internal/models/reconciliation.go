package models

import "math"

// VerdictStatus classifies the outcome of matching one expected cart item
// against the scraped cart contents.
type VerdictStatus string

// Verdict statuses
const (
	VerdictMatch         VerdictStatus = "MATCH"
	VerdictPriceMismatch VerdictStatus = "PRICE_MISMATCH"
	VerdictNotFound      VerdictStatus = "NOT_FOUND"
)

// ReconciliationVerdict is the per-item result of cart reconciliation.
// Actual is nil when no cart entry matched the expected item's name.
type ReconciliationVerdict struct {
	Status   VerdictStatus
	Expected PricedItem
	Actual   *PricedItem
	Detail   string
}

// ReconciliationReport is the overall result of reconciling expected cart
// contents against scraped cart contents. Passed is true only when every
// expected item resolved to a MATCH verdict.
type ReconciliationReport struct {
	Passed   bool
	Verdicts []ReconciliationVerdict
}

// TotalComparison compares a scraped cart total and a locally calculated
// total against an expected amount, with a fractional tolerance to absorb
// taxes and delivery fees.
type TotalComparison struct {
	DisplayedTotal  float64
	CalculatedTotal float64
	ExpectedTotal   float64
	ToleranceRatio  float64
}

// DisplayedWithinTolerance reports whether the total shown on the page is
// within the tolerance band around the expected total.
func (c TotalComparison) DisplayedWithinTolerance() bool {
	return math.Abs(c.DisplayedTotal-c.ExpectedTotal) <= c.ExpectedTotal*c.ToleranceRatio
}

// CalculatedWithinTolerance reports whether the locally summed line items are
// within the tolerance band around the expected total.
func (c TotalComparison) CalculatedWithinTolerance() bool {
	return math.Abs(c.CalculatedTotal-c.ExpectedTotal) <= c.ExpectedTotal*c.ToleranceRatio
}
