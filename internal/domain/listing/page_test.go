package listing

import (
	"context"
	"fmt"
	"sync"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/coffee-storefront/internal/domain/catalog"
	"github.com/your-org/coffee-storefront/internal/domain/filter"
)

type fakeSource struct {
	products    []catalog.Product
	categories  []catalog.Category
	productsErr error
	block       bool
	entered     chan struct{}
	once        sync.Once
}

func (f *fakeSource) wait(ctx context.Context) error {
	if !f.block {
		return nil
	}
	f.once.Do(func() { close(f.entered) })
	<-ctx.Done()
	return fmt.Errorf("%w: test", catalog.ErrCanceled)
}

func (f *fakeSource) Products(ctx context.Context) ([]catalog.Product, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	return f.products, nil
}

func (f *fakeSource) Categories(ctx context.Context) ([]catalog.Category, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.categories, nil
}

func (f *fakeSource) Articles(ctx context.Context) ([]catalog.Article, error) {
	return nil, nil
}

func sampleSource() *fakeSource {
	return &fakeSource{
		products: []catalog.Product{
			{ID: "p1", Price: 100_000, Brand: "Illy", Rating: 4.5, Category: "قهوه ترک"},
			{ID: "p2", Price: 250_000, Brand: "Lavazza", Rating: 3.1, Category: "قهوه اسپرسو"},
			{ID: "p3", Price: 400_000, Rating: 2, Category: "قهوه ترک"},
		},
		categories: []catalog.Category{
			{ID: "c1", Name: "قهوه ترک", IsActive: true},
			{ID: "c2", Name: "قهوه اسپرسو", IsActive: true},
		},
		entered: make(chan struct{}),
	}
}

func newPage(src catalog.Source) *Page {
	log, _ := logtest.NewNullLogger()
	return NewPage(src, log)
}

func TestLoadBuildsPage(t *testing.T) {
	page := newPage(sampleSource())
	require.NoError(t, page.Load(context.Background()))

	snap := page.Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)
	assert.Equal(t, 3, snap.Total)
	assert.Len(t, snap.Products, 3)
	require.Len(t, snap.Categories, 3)
	assert.Equal(t, catalog.AllCategoriesID, snap.Categories[0].ID)
	assert.Equal(t, 2, snap.Categories[1].Count)
	assert.Equal(t, []string{"Illy", "Lavazza"}, snap.Sidebar.Brands)
	assert.Equal(t, int64(100_000), snap.Filter.Low)
	assert.Equal(t, int64(400_000), snap.Filter.High)
	assert.False(t, snap.HasActiveFilters)
}

func TestLoadFailureFallsBack(t *testing.T) {
	src := sampleSource()
	src.productsErr = fmt.Errorf("%w: status 502", catalog.ErrFetchFailed)
	page := newPage(src)

	err := page.Load(context.Background())
	assert.ErrorIs(t, err, catalog.ErrFetchFailed)

	snap := page.Snapshot()
	assert.False(t, snap.Loading)
	assert.NotEmpty(t, snap.Error)
	assert.Empty(t, snap.Products)
	assert.Equal(t, catalog.FallbackCategories(), snap.Categories)
	assert.Equal(t, filter.DefaultRanges(), snap.Sidebar.PriceRanges)
}

func TestCanceledLoadChangesNothing(t *testing.T) {
	src := sampleSource()
	page := newPage(src)
	require.NoError(t, page.Load(context.Background()))
	_, err := page.Dispatch(filter.Action{Type: filter.ActionToggleBrand, Brand: "Illy"})
	require.NoError(t, err)

	src.block = true
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- page.Load(ctx) }()

	<-src.entered
	before := page.Snapshot()
	cancel()
	err = <-done

	assert.ErrorIs(t, err, catalog.ErrCanceled)
	assert.Equal(t, before, page.Snapshot())
	assert.Equal(t, 3, before.Total)
	assert.Equal(t, []string{"Illy"}, before.Filter.Brands)
}

func TestDispatchRecomputesVisible(t *testing.T) {
	page := newPage(sampleSource())
	require.NoError(t, page.Load(context.Background()))

	_, err := page.Dispatch(filter.Action{Type: filter.ActionToggleCategory, CategoryID: "c1", CategoryName: "قهوه ترک"})
	require.NoError(t, err)
	snap := page.Snapshot()
	assert.Len(t, snap.Products, 2)
	assert.True(t, snap.HasActiveFilters)

	_, err = page.Dispatch(filter.Action{Type: filter.ActionToggleRating, Rating: 4})
	require.NoError(t, err)
	snap = page.Snapshot()
	require.Len(t, snap.Products, 1)
	assert.Equal(t, "p1", snap.Products[0].ID)

	state, err := page.Dispatch(filter.Action{Type: "bogus"})
	assert.ErrorIs(t, err, filter.ErrUnknownAction)
	assert.Equal(t, snap.Filter, state)

	_, err = page.Dispatch(filter.Action{Type: filter.ActionClearAll})
	require.NoError(t, err)
	assert.Len(t, page.Snapshot().Products, 3)
}

func TestSetFilterNormalizes(t *testing.T) {
	page := newPage(sampleSource())
	require.NoError(t, page.Load(context.Background()))

	state := page.SetFilter(filter.State{Brands: []string{"Lavazza", "Illy", "Illy"}, Low: 300_000, High: 0})
	assert.Equal(t, []string{"Illy", "Lavazza"}, state.Brands)
	assert.Equal(t, int64(0), state.Low)
	assert.Len(t, page.Snapshot().Products, 2)
	assert.Equal(t, 3, page.Snapshot().Total)
}

func TestDiscountPageKeepsProductsOnSale(t *testing.T) {
	original := int64(500_000)
	src := sampleSource()
	src.products = append(src.products,
		catalog.Product{ID: "d1", Price: 80_000, Discount: 20, Brand: "لاوازا", Rating: 4, Category: "قهوه ترک"},
		catalog.Product{ID: "d2", Price: 400_000, OriginalPrice: &original, Rating: 3, Category: "قهوه اسپرسو"},
	)
	log, _ := logtest.NewNullLogger()
	page := NewDiscountPage(src, log)
	require.NoError(t, page.Load(context.Background()))

	snap := page.Snapshot()
	require.Len(t, snap.Products, 2)
	assert.Equal(t, "d1", snap.Products[0].ID)
	assert.Equal(t, "d2", snap.Products[1].ID)
	assert.Equal(t, 2, snap.Total)
	assert.Equal(t, filter.DiscountSidebar(), snap.Sidebar)
	assert.Equal(t, int64(filter.DefaultMaxPrice), snap.Filter.High)
	assert.Equal(t, 2, snap.Categories[0].Count)

	_, err := page.Dispatch(filter.Action{Type: filter.ActionSetCustomPrice, MinPrice: "100000"})
	require.NoError(t, err)
	snap = page.Snapshot()
	require.Len(t, snap.Products, 1)
	assert.Equal(t, "d2", snap.Products[0].ID)
	assert.Equal(t, int64(filter.DefaultMaxPrice), snap.Filter.High)
}

func TestDiscountPageFailureKeepsStaticSidebar(t *testing.T) {
	src := sampleSource()
	src.productsErr = catalog.ErrFetchFailed
	log, _ := logtest.NewNullLogger()
	page := NewDiscountPage(src, log)

	assert.ErrorIs(t, page.Load(context.Background()), catalog.ErrFetchFailed)
	snap := page.Snapshot()
	assert.Empty(t, snap.Products)
	assert.Equal(t, filter.DiscountBrands, snap.Sidebar.Brands)
}
