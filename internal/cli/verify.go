package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/shopprobe/shopprobe/internal/config"
	"github.com/shopprobe/shopprobe/internal/services"
	"github.com/shopprobe/shopprobe/internal/validate"
)

// displayNameLength bounds product names in CLI output
const displayNameLength = 40

// ErrVerificationFailed is returned when the run completed but a check failed,
// so the command can exit non-zero without masking browser errors.
var ErrVerificationFailed = errors.New("verification failed")

// VerifyDependencies holds all dependencies needed for a verification run
type VerifyDependencies struct {
	Service  services.VerifyService
	Scenario *config.Scenario
	Out      io.Writer
}

// RunVerify executes the scenario and writes a human-readable summary. It
// returns ErrVerificationFailed when checks failed and a wrapped error when
// the run itself broke.
func RunVerify(deps VerifyDependencies) error {
	result, err := deps.Service.Run(deps.Scenario)
	if err != nil {
		return fmt.Errorf("run aborted: %w", err)
	}

	writeSummary(deps.Out, deps.Scenario, result)

	if !result.Report.Passed() {
		return ErrVerificationFailed
	}
	return nil
}

func writeSummary(w io.Writer, scenario *config.Scenario, result *services.VerifyResult) {
	fmt.Fprintf(w, "Search %q, sort %q: %d listings scraped\n", scenario.SearchTerm, scenario.SortOption, result.Sort.TotalItems)

	if result.Sort.IsSorted {
		fmt.Fprintln(w, "Sort order: OK")
	} else {
		fmt.Fprintf(w, "Sort order: %d violations\n", len(result.Sort.Violations))
		for _, v := range result.Sort.Violations {
			fmt.Fprintf(w, "  position %d: %q at %s after %q at %s\n",
				v.Position,
				v.Current.DisplayName(displayNameLength), validate.FormatPrice(v.Current.Price),
				v.Previous.DisplayName(displayNameLength), validate.FormatPrice(v.Previous.Price))
		}
	}

	if result.ListingTotal != nil {
		fmt.Fprintf(w, "Listing total: calculated %s, expected %s (±%.0f%%): %s\n",
			validate.FormatPrice(result.ListingTotal.CalculatedTotal),
			validate.FormatPrice(result.ListingTotal.ExpectedTotal),
			result.ListingTotal.ToleranceRatio*100,
			okOrFailed(result.ListingTotal.CalculatedWithinTolerance()))
	}

	if len(scenario.ProductsToAdd) > 0 {
		fmt.Fprintf(w, "Cart reconciliation: %s\n", okOrFailed(result.Cart.Passed))
		for _, verdict := range result.Cart.Verdicts {
			fmt.Fprintf(w, "  [%s] %s\n", verdict.Status, verdict.Detail)
		}
		fmt.Fprintf(w, "Cart total: displayed %s, calculated %s, expected %s (±%.0f%%): %s\n",
			validate.FormatPrice(result.CartTotal.DisplayedTotal),
			validate.FormatPrice(result.CartTotal.CalculatedTotal),
			validate.FormatPrice(result.CartTotal.ExpectedTotal),
			result.CartTotal.ToleranceRatio*100,
			okOrFailed(result.CartTotal.DisplayedWithinTolerance() && result.CartTotal.CalculatedWithinTolerance()))
	}

	fmt.Fprintf(w, "Run %s: %s\n", result.Report.ID, result.Report.Status)
}

func okOrFailed(ok bool) string {
	if ok {
		return "OK"
	}
	return "FAILED"
}

// RunList writes the most recent stored runs, newest first
func RunList(runs services.RunRepository, limit int, w io.Writer) error {
	reports, err := runs.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(reports) == 0 {
		fmt.Fprintln(w, "No stored runs")
		return nil
	}

	for _, report := range reports {
		fmt.Fprintf(w, "%s  %s  %-6s  %q sorted=%v cart=%v items=%d violations=%d\n",
			report.CreatedAt.Format("2006-01-02 15:04:05"),
			report.ID,
			report.Status,
			report.SearchTerm,
			report.Sorted,
			report.CartPassed,
			report.ItemCount,
			report.ViolationCount)
	}
	return nil
}
