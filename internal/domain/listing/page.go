// internal/domain/listing/page.go
package listing

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/coffee-storefront/internal/domain/catalog"
	"github.com/your-org/coffee-storefront/internal/domain/filter"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the observable state of a listing page
type Snapshot struct {
	Loading          bool                     `json:"loading"`
	Error            string                   `json:"error,omitempty"`
	Products         []catalog.Product        `json:"products"`
	Total            int                      `json:"total"`
	Categories       []catalog.CategoryOption `json:"categories"`
	Sidebar          filter.Sidebar           `json:"sidebar"`
	Filter           filter.State             `json:"filter"`
	HasActiveFilters bool                     `json:"has_active_filters"`
}

// Page models one view of the product listing: the fetched catalog, the
// filter selection over it and the products that selection lets through.
type Page struct {
	source  catalog.Source
	log     logrus.FieldLogger
	selects func([]catalog.Product) []catalog.Product
	panel   func([]catalog.Product) filter.Sidebar

	mu         sync.RWMutex
	loading    bool
	err        error
	all        []catalog.Product
	categories []catalog.CategoryOption
	sidebar    filter.Sidebar
	state      filter.State
	visible    []catalog.Product
}

// NewPage creates a page that has not loaded yet
func NewPage(source catalog.Source, log logrus.FieldLogger) *Page {
	return buildPage(source, log, allProducts, filter.BuildSidebar)
}

// NewDiscountPage creates the special discounts listing: only products on
// sale, filtered through the static discount sidebar.
func NewDiscountPage(source catalog.Source, log logrus.FieldLogger) *Page {
	return buildPage(source, log, catalog.Discounted, func([]catalog.Product) filter.Sidebar {
		return filter.DiscountSidebar()
	})
}

func buildPage(source catalog.Source, log logrus.FieldLogger, selects func([]catalog.Product) []catalog.Product, panel func([]catalog.Product) filter.Sidebar) *Page {
	sidebar := panel(nil)
	return &Page{
		source:     source,
		log:        log,
		selects:    selects,
		panel:      panel,
		categories: catalog.FallbackCategories(),
		sidebar:    sidebar,
		state:      filter.NewState(sidebar.MinPrice, sidebar.MaxPrice),
	}
}

func allProducts(products []catalog.Product) []catalog.Product {
	return products
}

// Load fetches categories and products concurrently and rebuilds the page.
// A failed fetch degrades to an empty catalog with the fallback categories
// and returns the error. A cancelled fetch changes nothing and returns
// catalog.ErrCanceled. Overlapping loads are not sequenced: whichever
// resolves last wins.
func (p *Page) Load(ctx context.Context) error {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	var (
		products   []catalog.Product
		categories []catalog.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = p.source.Categories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = p.source.Products(gctx)
		return err
	})
	err := g.Wait()

	if catalog.IsCanceled(err) || (err != nil && ctx.Err() != nil) {
		p.log.Debug("Listing load canceled")
		return catalog.ErrCanceled
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false

	if err != nil {
		p.log.WithError(err).Warn("Listing load failed, showing fallback catalog")
		p.err = err
		p.all = nil
		p.categories = catalog.FallbackCategories()
		p.sidebar = p.panel(nil)
		p.state = filter.ResetPrice(p.state, p.sidebar.MinPrice, p.sidebar.MaxPrice)
		p.refresh()
		return err
	}

	products = p.selects(products)
	p.err = nil
	p.all = products
	p.categories = catalog.ActiveCategories(categories, products)
	p.sidebar = p.panel(products)
	p.state = filter.ResetPrice(p.state, p.sidebar.MinPrice, p.sidebar.MaxPrice)
	p.refresh()

	p.log.WithFields(logrus.Fields{
		"products":   len(products),
		"categories": len(p.categories),
	}).Debug("Listing loaded")
	return nil
}

// Dispatch applies a filter transition and recomputes the visible products
func (p *Page) Dispatch(a filter.Action) (filter.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, err := filter.Dispatch(p.state, a, filter.BoundsOf(p.sidebar))
	if err != nil {
		return p.state, err
	}
	p.state = next
	p.refresh()
	return next, nil
}

// SetFilter replaces the whole filter selection
func (p *Page) SetFilter(s filter.State) filter.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = filter.Normalize(s)
	p.refresh()
	return p.state
}

// Snapshot returns the current observable state
func (p *Page) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap := Snapshot{
		Loading:          p.loading,
		Products:         p.visible,
		Total:            len(p.all),
		Categories:       p.categories,
		Sidebar:          p.sidebar,
		Filter:           p.state,
		HasActiveFilters: filter.HasActive(p.state, p.sidebar.MinPrice, p.sidebar.MaxPrice),
	}
	if snap.Products == nil {
		snap.Products = []catalog.Product{}
	}
	if p.err != nil {
		snap.Error = p.err.Error()
	}
	return snap
}

// refresh recomputes the visible products; callers hold the write lock
func (p *Page) refresh() {
	p.visible = filter.Apply(p.all, p.state)
}
