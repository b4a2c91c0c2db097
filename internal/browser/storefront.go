package browser

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/shopprobe/shopprobe/internal/config"
	"github.com/shopprobe/shopprobe/internal/models"
	"github.com/shopprobe/shopprobe/internal/validate"
)

// Selector table for the storefront under test. One site's DOM, fixed
// selectors.
const (
	selSearchInput    = "input[name='q']"
	selSearchSubmit   = "button[type='submit']"
	selSortOption     = ".sort-option"
	selProductCard    = ".product-card"
	selProductName    = ".product-name"
	selProductPrice   = ".product-price"
	selAddToCart      = ".add-to-cart"
	selPaginationNext = ".pagination-next"
	selCartItem       = ".cart-item"
	selCartItemName   = ".cart-item-name"
	selCartItemPrice  = ".cart-item-price"
	selCartTotal      = ".cart-total"
)

// Storefront is a page object over one storefront tab. It scrapes raw text
// and hands back normalized PricedItem values; all verdicts about that data
// belong to the validate package.
type Storefront struct {
	page      playwright.Page
	baseURL   string
	searchURL string
}

// NewStorefront wraps an open page for the storefront at cfg.BaseURL
func NewStorefront(page playwright.Page, cfg *config.BrowserConfig) *Storefront {
	return &Storefront{
		page:    page,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Open navigates to the storefront landing page
func (s *Storefront) Open() error {
	if _, err := s.page.Goto(s.baseURL + "/"); err != nil {
		return fmt.Errorf("failed to open storefront: %w", err)
	}
	return nil
}

// Search submits the search form and waits for the results page. The results
// URL is remembered so later cart additions can return to the first page of
// the grid.
func (s *Storefront) Search(term string) error {
	if err := s.page.Locator(selSearchInput).Fill(term); err != nil {
		return fmt.Errorf("failed to fill search input: %w", err)
	}
	if err := s.page.Locator(selSearchSubmit).Click(); err != nil {
		return fmt.Errorf("failed to submit search: %w", err)
	}
	if err := s.page.WaitForURL("**/search**"); err != nil {
		return fmt.Errorf("search results did not load: %w", err)
	}
	s.searchURL = s.page.URL()
	return nil
}

// ApplySort clicks the sort option with the given visible text, e.g.
// "Price -- Low to High"
func (s *Storefront) ApplySort(option string) error {
	locator := s.page.Locator(fmt.Sprintf("%s:has-text('%s')", selSortOption, option))
	if err := locator.Click(); err != nil {
		return fmt.Errorf("failed to apply sort option %q: %w", option, err)
	}
	if err := s.page.WaitForURL("**sort=**"); err != nil {
		return fmt.Errorf("sorted results did not load: %w", err)
	}
	s.searchURL = s.page.URL()
	return nil
}

// CollectListings scrapes product name and price text from up to pageLimit
// result pages, following the next-page link between pages. Prices that fail
// to parse are kept with price 0 so the sort validator can surface them.
// After paging it returns to the first results page, so cart positions keep
// referring to the first page's grid.
func (s *Storefront) CollectListings(pageLimit int) ([]models.PricedItem, error) {
	var listings []models.PricedItem
	visited := 0

	for {
		pageItems, err := s.scrapeListingPage()
		if err != nil {
			return nil, err
		}
		listings = append(listings, pageItems...)
		visited++

		if visited >= pageLimit {
			break
		}

		next := s.page.Locator(selPaginationNext)
		visible, err := next.IsVisible()
		if err != nil {
			return nil, fmt.Errorf("failed to check for next page: %w", err)
		}
		if !visible {
			break
		}
		if err := next.Click(); err != nil {
			return nil, fmt.Errorf("failed to open next page: %w", err)
		}
		if err := s.page.WaitForLoadState(); err != nil {
			return nil, fmt.Errorf("next page did not load: %w", err)
		}
	}

	if visited > 1 && s.searchURL != "" {
		if _, err := s.page.Goto(s.searchURL); err != nil {
			return nil, fmt.Errorf("failed to return to first results page: %w", err)
		}
	}

	return listings, nil
}

// scrapeListingPage reads every product card on the current results page
func (s *Storefront) scrapeListingPage() ([]models.PricedItem, error) {
	cards := s.page.Locator(selProductCard)
	count, err := cards.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count product cards: %w", err)
	}

	items := make([]models.PricedItem, 0, count)
	for i := 0; i < count; i++ {
		card := cards.Nth(i)

		name, err := card.Locator(selProductName).TextContent()
		if err != nil {
			return nil, fmt.Errorf("failed to read name of product %d: %w", i+1, err)
		}
		priceText, err := card.Locator(selProductPrice).TextContent()
		if err != nil {
			return nil, fmt.Errorf("failed to read price of product %d: %w", i+1, err)
		}

		name = strings.TrimSpace(name)
		priceText = strings.TrimSpace(priceText)
		items = append(items, models.PricedItem{
			Name:         name,
			Price:        validate.ExtractPrice(priceText),
			RawPriceText: priceText,
		})
	}

	return items, nil
}

// AddToCart clicks the add-to-cart control of the product at the given
// 1-based position in the current results grid
func (s *Storefront) AddToCart(position int) error {
	cards := s.page.Locator(selProductCard)
	count, err := cards.Count()
	if err != nil {
		return fmt.Errorf("failed to count product cards: %w", err)
	}
	if position < 1 || position > count {
		return fmt.Errorf("product position %d is out of range, page has %d products", position, count)
	}

	if err := cards.Nth(position - 1).Locator(selAddToCart).Click(); err != nil {
		return fmt.Errorf("failed to add product %d to cart: %w", position, err)
	}
	if err := s.page.WaitForLoadState(); err != nil {
		return fmt.Errorf("page did not settle after adding product %d: %w", position, err)
	}
	return nil
}

// OpenCart navigates to the cart page
func (s *Storefront) OpenCart() error {
	if _, err := s.page.Goto(s.baseURL + "/cart"); err != nil {
		return fmt.Errorf("failed to open cart: %w", err)
	}
	return nil
}

// CartEntries scrapes every cart row into a PricedItem
func (s *Storefront) CartEntries() ([]models.PricedItem, error) {
	rows := s.page.Locator(selCartItem)
	count, err := rows.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count cart rows: %w", err)
	}

	entries := make([]models.PricedItem, 0, count)
	for i := 0; i < count; i++ {
		row := rows.Nth(i)

		name, err := row.Locator(selCartItemName).TextContent()
		if err != nil {
			return nil, fmt.Errorf("failed to read name of cart row %d: %w", i+1, err)
		}
		priceText, err := row.Locator(selCartItemPrice).TextContent()
		if err != nil {
			return nil, fmt.Errorf("failed to read price of cart row %d: %w", i+1, err)
		}

		name = strings.TrimSpace(name)
		priceText = strings.TrimSpace(priceText)
		entries = append(entries, models.PricedItem{
			Name:         name,
			Price:        validate.ExtractPrice(priceText),
			RawPriceText: priceText,
		})
	}

	return entries, nil
}

// DisplayedCartTotal reads the total amount shown on the cart page
func (s *Storefront) DisplayedCartTotal() (float64, error) {
	text, err := s.page.Locator(selCartTotal).TextContent()
	if err != nil {
		return 0, fmt.Errorf("failed to read cart total: %w", err)
	}
	return validate.ExtractPrice(text), nil
}
