package validate

import "github.com/shopprobe/shopprobe/internal/models"

// ValidateAscending scans a scraped listing for ascending price order and
// reports every adjacent-pair inversion. Each item is compared only against
// its immediate predecessor in the original sequence, so a single dip can
// flag more than one pair; violations are reported left to right with the
// 1-based position of the offending item. Equal adjacent prices are ordered
// correctly. Items whose price failed to parse (price 0) still participate
// and will usually register as violations between positive prices; that is
// deliberate, so unparsed prices surface in the report instead of being
// skipped.
func ValidateAscending(items []models.PricedItem) models.SortReport {
	var violations []models.OrderViolation
	for i := 1; i < len(items); i++ {
		if items[i].Price < items[i-1].Price {
			violations = append(violations, models.OrderViolation{
				Position: i + 1,
				Current:  items[i],
				Previous: items[i-1],
			})
		}
	}
	return models.NewSortReport(len(items), violations)
}
