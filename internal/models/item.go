package models

// PricedItem is a single name/price pair scraped from a product listing or a
// cart row. Price is the normalized numeric value; 0 means the raw text could
// not be parsed ("unknown"), not "free". RawPriceText keeps the scraped text
// so reports can show what failed to parse.
type PricedItem struct {
	Name         string
	Price        float64
	RawPriceText string
}

// DisplayName returns the item name truncated to max runes for report output.
// A non-positive max returns the name unchanged.
func (p PricedItem) DisplayName(max int) string {
	if max <= 0 {
		return p.Name
	}
	runes := []rune(p.Name)
	if len(runes) <= max {
		return p.Name
	}
	return string(runes[:max]) + "..."
}

// OrderViolation records one adjacent pair whose second price is strictly
// lower than the first in a sequence expected to ascend. Position is the
// 1-based position of Current in the scraped sequence, so it is always >= 2.
type OrderViolation struct {
	Position int
	Current  PricedItem
	Previous PricedItem
}

// SortReport is the result of checking a listing for ascending price order.
type SortReport struct {
	TotalItems int
	Violations []OrderViolation
	IsSorted   bool
}

// NewSortReport builds a SortReport, deriving IsSorted from the violation
// list so the two can never disagree.
func NewSortReport(totalItems int, violations []OrderViolation) SortReport {
	return SortReport{
		TotalItems: totalItems,
		Violations: violations,
		IsSorted:   len(violations) == 0,
	}
}
