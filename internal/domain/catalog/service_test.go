package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveCategoriesRecountsAndPrependsAll(t *testing.T) {
	categories := []Category{
		{ID: "c1", Name: "قهوه ترک", IsActive: true, ProductsCount: 99},
		{ID: "c2", Name: "قهوه اسپرسو", IsActive: false},
		{ID: "c3", Name: "دانه قهوه", IsActive: true},
	}
	products := []Product{
		{ID: "p1", Category: "قهوه ترک"},
		{ID: "p2", Category: "قهوه ترک"},
		{ID: "p3", Category: "قهوه اسپرسو"},
	}

	options := ActiveCategories(categories, products)
	require.Len(t, options, 3)
	assert.Equal(t, CategoryOption{ID: AllCategoriesID, Name: AllCategoriesName, Count: 3, Active: true}, options[0])
	assert.Equal(t, CategoryOption{ID: "c1", Name: "قهوه ترک", Count: 2}, options[1])
	assert.Equal(t, CategoryOption{ID: "c3", Name: "دانه قهوه", Count: 0}, options[2])
}

func TestFallbackCategories(t *testing.T) {
	options := FallbackCategories()
	require.Len(t, options, 4)
	assert.Equal(t, AllCategoriesName, options[0].Name)
	for _, o := range options {
		assert.Zero(t, o.Count)
	}
}

func TestFindProductAndRelated(t *testing.T) {
	products := []Product{
		{ID: "p1", Category: "a"},
		{ID: "p2", Category: "a"},
		{ID: "p3", Category: "b"},
		{ID: "p4", Category: "a"},
		{ID: "p5", Category: "a"},
		{ID: "p6", Category: "a"},
		{ID: "p7", Category: "a"},
	}

	current, ok := FindProduct(products, "p2")
	require.True(t, ok)

	related := Related(products, current, 4)
	ids := make([]string, 0, len(related))
	for _, p := range related {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p1", "p4", "p5", "p6"}, ids)

	_, ok = FindProduct(products, "missing")
	assert.False(t, ok)
}

type countingSource struct {
	calls int
	err   error
}

func (s *countingSource) Products(ctx context.Context) ([]Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []Product{{ID: "p1"}}, nil
}

func (s *countingSource) Categories(ctx context.Context) ([]Category, error) {
	s.calls++
	return nil, s.err
}

func (s *countingSource) Articles(ctx context.Context) ([]Article, error) {
	s.calls++
	return nil, s.err
}

func TestCacheServesWithinTTL(t *testing.T) {
	src := &countingSource{}
	cache := NewCache(src, time.Minute)
	now := time.Now()
	cache.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		products, err := cache.Products(context.Background())
		require.NoError(t, err)
		assert.Len(t, products, 1)
	}
	assert.Equal(t, 1, src.calls)

	now = now.Add(2 * time.Minute)
	_, err := cache.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestCacheDoesNotStoreFailures(t *testing.T) {
	src := &countingSource{err: ErrFetchFailed}
	cache := NewCache(src, time.Minute)

	_, err := cache.Products(context.Background())
	assert.True(t, errors.Is(err, ErrFetchFailed))

	src.err = nil
	products, err := cache.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 2, src.calls)
}

func TestCacheDisabledWithZeroTTL(t *testing.T) {
	src := &countingSource{}
	cache := NewCache(src, 0)
	_, _ = cache.Articles(context.Background())
	_, _ = cache.Articles(context.Background())
	assert.Equal(t, 2, src.calls)
}

func TestDiscounted(t *testing.T) {
	original := int64(120_000)
	products := []Product{
		{ID: "p1", Price: 100_000},
		{ID: "p2", Price: 100_000, Discount: 15},
		{ID: "p3", Price: 100_000, OriginalPrice: &original},
		{ID: "p4", Price: 130_000, OriginalPrice: &original},
	}

	discounted := Discounted(products)
	require.Len(t, discounted, 2)
	assert.Equal(t, "p2", discounted[0].ID)
	assert.Equal(t, "p3", discounted[1].ID)
	assert.Empty(t, Discounted(nil))
}
