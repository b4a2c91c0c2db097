// Package browser drives the storefront under test through Playwright. It is
// deliberately site-specific: the selector table targets one storefront's DOM
// and there is no general selector-resolution machinery. Scraped text is
// normalized into models.PricedItem values for the validation core.
package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/shopprobe/shopprobe/internal/config"
)

// Driver owns the Playwright process and browser for one harness run
type Driver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	timeout float64
}

// Launch starts Playwright and a Chromium browser. Set HEADLESS=false in the
// environment to watch the run for debugging.
func Launch(cfg *config.BrowserConfig) (*Driver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return &Driver{pw: pw, browser: browser, timeout: cfg.TimeoutMs}, nil
}

// NewPage opens a fresh page with the configured default timeout applied to
// every locator action.
func (d *Driver) NewPage() (playwright.Page, error) {
	page, err := d.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	page.SetDefaultTimeout(d.timeout)
	return page, nil
}

// Close releases the browser and the Playwright process
func (d *Driver) Close() error {
	if err := d.browser.Close(); err != nil {
		d.pw.Stop()
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return d.pw.Stop()
}
