package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceRecord(id string, price float64) domain.RawRecord {
	return domain.RawRecord{
		ID:     id,
		Title:  "Listado " + id,
		Price:  f(price),
		Source: "test",
	}
}

func TestQuery_PriceRangeBoundsAreInclusive(t *testing.T) {
	store := NewListingStore([]domain.RawRecord{
		priceRecord("below", 999999),
		priceRecord("low-edge", 1000000),
		priceRecord("mid", 1500000),
		priceRecord("high-edge", 2000000),
		priceRecord("above", 2000001),
	})

	desc := query.Descriptor{
		Predicates: []query.Predicate{
			{Field: query.FieldPrice, Op: query.OpGTE, Value: float64(1000000)},
			{Field: query.FieldPrice, Op: query.OpLTE, Value: float64(2000000)},
		},
		Take: 10,
	}

	page, total, err := store.Query(context.Background(), desc)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	ids := make([]string, 0, len(page))
	for _, rec := range page {
		ids = append(ids, rec.ID)
	}
	assert.Equal(t, []string{"low-edge", "mid", "high-edge"}, ids)
}

func TestQuery_FixtureFilters(t *testing.T) {
	store := NewListingStore(SeedListings())

	t.Run("land filter finds the one land listing", func(t *testing.T) {
		desc := query.Descriptor{
			Predicates: []query.Predicate{
				{Field: query.FieldType, Op: query.OpEquals, Value: "land"},
			},
			Take: 20,
		}
		page, total, err := store.Query(context.Background(), desc)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, page, 1)
		assert.Equal(t, "5", page[0].ID)
	})

	t.Run("city contains is case-insensitive", func(t *testing.T) {
		desc := query.Descriptor{
			Predicates: []query.Predicate{
				{Field: query.FieldCity, Op: query.OpContains, Value: "guadalajara"},
			},
			Take: 20,
		}
		_, total, err := store.Query(context.Background(), desc)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("absent field never matches", func(t *testing.T) {
		// Fixture 5 has no bathrooms; a bathroom bound must exclude it.
		desc := query.Descriptor{
			Predicates: []query.Predicate{
				{Field: query.FieldBathrooms, Op: query.OpGTE, Value: 1},
			},
			Take: 20,
		}
		page, total, err := store.Query(context.Background(), desc)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		for _, rec := range page {
			assert.NotEqual(t, "5", rec.ID)
		}
	})
}

func TestQuery_Ordering(t *testing.T) {
	store := NewListingStore(SeedListings())

	t.Run("price ascending", func(t *testing.T) {
		desc := query.Descriptor{
			Order: &query.OrderSpec{Field: query.FieldPrice},
			Take:  20,
		}
		page, _, err := store.Query(context.Background(), desc)
		require.NoError(t, err)
		require.NotEmpty(t, page)
		for i := 1; i < len(page); i++ {
			assert.LessOrEqual(t, *page[i-1].Price, *page[i].Price)
		}
	})

	t.Run("newest first", func(t *testing.T) {
		desc := query.Descriptor{
			Order: &query.OrderSpec{Field: query.FieldCreatedAt, Descending: true},
			Take:  20,
		}
		page, _, err := store.Query(context.Background(), desc)
		require.NoError(t, err)
		require.Len(t, page, 6)
		assert.Equal(t, "6", page[0].ID)
		assert.Equal(t, "1", page[5].ID)
	})

	t.Run("nil order keeps insertion order", func(t *testing.T) {
		desc := query.Descriptor{Take: 20}
		page, _, err := store.Query(context.Background(), desc)
		require.NoError(t, err)
		require.Len(t, page, 6)
		assert.Equal(t, "1", page[0].ID)
	})
}

func TestQuery_Paging(t *testing.T) {
	records := make([]domain.RawRecord, 0, 45)
	for i := 1; i <= 45; i++ {
		records = append(records, priceRecord(fmt.Sprintf("%d", i), float64(i)*100000))
	}
	store := NewListingStore(records)

	t.Run("last partial page", func(t *testing.T) {
		desc := query.Descriptor{Skip: 40, Take: 20}
		page, total, err := store.Query(context.Background(), desc)
		require.NoError(t, err)
		assert.Equal(t, 45, total)
		assert.Len(t, page, 5)
	})

	t.Run("page past the end is empty, total intact", func(t *testing.T) {
		desc := query.Descriptor{Skip: 100, Take: 20}
		page, total, err := store.Query(context.Background(), desc)
		require.NoError(t, err)
		assert.Equal(t, 45, total)
		assert.Empty(t, page)
	})
}

func TestGetByID(t *testing.T) {
	store := NewListingStore(SeedListings())

	t.Run("hit", func(t *testing.T) {
		rec, err := store.GetByID(context.Background(), "3")
		require.NoError(t, err)
		assert.Equal(t, "Casa en condominio privado", rec.Title)
	})

	t.Run("miss returns NotFoundError", func(t *testing.T) {
		_, err := store.GetByID(context.Background(), "does-not-exist")
		require.Error(t, err)

		var notFound *domain.NotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "does-not-exist", notFound.ID)
	})
}

func TestBatchUpsert(t *testing.T) {
	store := NewListingStore(nil)

	first, err := store.BatchUpsert(context.Background(), []domain.RawRecord{
		priceRecord("a", 100), priceRecord("b", 200),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created)
	assert.Equal(t, 0, first.Updated)

	recA, err := store.GetByID(context.Background(), "a")
	require.NoError(t, err)
	require.NotNil(t, recA.CreatedAt)
	originalCreated := *recA.CreatedAt

	second, err := store.BatchUpsert(context.Background(), []domain.RawRecord{
		priceRecord("a", 150), priceRecord("c", 300),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Created)
	assert.Equal(t, 1, second.Updated)

	recA, err = store.GetByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, float64(150), *recA.Price)
	// Refreshing a record never rewrites its creation time.
	assert.Equal(t, originalCreated, *recA.CreatedAt)
}
