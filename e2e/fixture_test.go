package e2e

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/shopprobe/shopprobe/internal/validate"
)

// fixtureProduct is one product on the fixture storefront. CartName lets a
// product show a differently truncated or extended name in the cart, the way
// real storefronts do, and CartPrice lets the cart price drift from the grid
// price. Zero values fall back to Name and Price.
type fixtureProduct struct {
	Name      string
	Price     float64
	CartName  string
	CartPrice float64
}

func (p fixtureProduct) cartName() string {
	if p.CartName != "" {
		return p.CartName
	}
	return p.Name
}

func (p fixtureProduct) cartPrice() float64 {
	if p.CartPrice != 0 {
		return p.CartPrice
	}
	return p.Price
}

// fixtureStore serves a minimal storefront whose DOM matches the harness
// selector table: a search form, a sortable paginated product grid, and a
// cart with a running total.
type fixtureStore struct {
	mu          sync.Mutex
	products    []fixtureProduct
	honorSort   bool
	perPage     int
	deliveryFee float64
	cart        []fixtureProduct
	server      *httptest.Server
}

func newFixtureStore(t *testing.T, products []fixtureProduct, honorSort bool) *fixtureStore {
	t.Helper()
	f := &fixtureStore{
		products:  products,
		honorSort: honorSort,
		perPage:   len(products),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", f.handleHome)
	mux.HandleFunc("/search", f.handleSearch)
	mux.HandleFunc("/cart/add", f.handleCartAdd)
	mux.HandleFunc("/cart", f.handleCart)

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fixtureStore) url() string {
	return f.server.URL
}

// ordered returns the grid order for the given sort parameter
func (f *fixtureStore) ordered(sortParam string) []fixtureProduct {
	out := make([]fixtureProduct, len(f.products))
	copy(out, f.products)
	if f.honorSort && sortParam == "price_asc" {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	}
	return out
}

func (f *fixtureStore) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	fmt.Fprint(w, `<html><body>
		<form action="/search" method="get">
			<input name="q" type="text">
			<button type="submit">Search</button>
		</form>
	</body></html>`)
}

func (f *fixtureStore) handleSearch(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	query := r.URL.Query()
	q := query.Get("q")
	sortParam := query.Get("sort")
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}

	ordered := f.ordered(sortParam)
	start := (page - 1) * f.perPage
	end := start + f.perPage
	if start > len(ordered) {
		start = len(ordered)
	}
	if end > len(ordered) {
		end = len(ordered)
	}

	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, `<a class="sort-option" href="/search?q=%s&sort=price_asc">Price -- Low to High</a>`,
		url.QueryEscape(q))

	for i, p := range ordered[start:end] {
		global := start + i
		fmt.Fprintf(&b, `<div class="product-card">
			<span class="product-name">%s</span>
			<span class="product-price">%s</span>
			<a class="add-to-cart" href="/cart/add?i=%d&q=%s&sort=%s&page=%d">Add to Cart</a>
		</div>`, p.Name, validate.FormatPrice(p.Price), global, url.QueryEscape(q), sortParam, page)
	}

	if end < len(ordered) {
		fmt.Fprintf(&b, `<a class="pagination-next" href="/search?q=%s&sort=%s&page=%d">Next</a>`,
			url.QueryEscape(q), sortParam, page+1)
	}
	b.WriteString("</body></html>")
	fmt.Fprint(w, b.String())
}

func (f *fixtureStore) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()

	query := r.URL.Query()
	index, _ := strconv.Atoi(query.Get("i"))
	ordered := f.ordered(query.Get("sort"))
	if index >= 0 && index < len(ordered) {
		f.cart = append(f.cart, ordered[index])
	}
	f.mu.Unlock()

	back := fmt.Sprintf("/search?q=%s&sort=%s&page=%s",
		url.QueryEscape(query.Get("q")), query.Get("sort"), query.Get("page"))
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (f *fixtureStore) handleCart(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var b strings.Builder
	b.WriteString("<html><body>")
	total := f.deliveryFee
	for _, p := range f.cart {
		total += p.cartPrice()
		fmt.Fprintf(&b, `<div class="cart-item">
			<span class="cart-item-name">%s</span>
			<span class="cart-item-price">%s</span>
		</div>`, p.cartName(), validate.FormatPrice(p.cartPrice()))
	}
	fmt.Fprintf(&b, `<div class="cart-total">%s</div>`, validate.FormatPrice(total))
	b.WriteString("</body></html>")
	fmt.Fprint(w, b.String())
}
