package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/normalize"
	"listing-service/internal/core/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	raws     []domain.RawRecord
	total    int
	err      error
	lastDesc query.Descriptor
}

func (s *fakeStorage) Query(ctx context.Context, desc query.Descriptor) ([]domain.RawRecord, int, error) {
	s.lastDesc = desc
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.raws, s.total, nil
}

func (s *fakeStorage) GetByID(ctx context.Context, id string) (*domain.RawRecord, error) {
	for _, rec := range s.raws {
		if rec.ID == id {
			found := rec
			return &found, nil
		}
	}
	return nil, &domain.NotFoundError{ID: id}
}

func (s *fakeStorage) BatchUpsert(ctx context.Context, records []domain.RawRecord) (*domain.IngestStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.IngestStats{Created: len(records)}, nil
}

func testClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }

func validRaw(id string, price float64) domain.RawRecord {
	return domain.RawRecord{
		ID:     id,
		Title:  "Casa en Querétaro",
		Price:  floatPtr(price),
		Source: "test",
	}
}

func TestSearchListings_Execute(t *testing.T) {
	normalizer := normalize.New(testClock)

	t.Run("assembles the page in storage order", func(t *testing.T) {
		storage := &fakeStorage{
			raws:  []domain.RawRecord{validRaw("b", 200), validRaw("a", 100)},
			total: 12,
		}
		uc := NewSearchListingsUseCase(storage, normalizer)

		result, err := uc.Execute(context.Background(), domain.SearchFilters{})
		require.NoError(t, err)

		require.Len(t, result.Listings, 2)
		assert.Equal(t, "b", result.Listings[0].ID)
		assert.Equal(t, "a", result.Listings[1].ID)
		assert.Equal(t, 12, result.TotalCount)
		assert.Equal(t, domain.DefaultPage, result.Page)
		assert.Equal(t, domain.DefaultLimit, result.PerPage)
	})

	t.Run("echoes the applied filters with normalized paging", func(t *testing.T) {
		storage := &fakeStorage{total: 0}
		uc := NewSearchListingsUseCase(storage, normalizer)

		filters := domain.SearchFilters{City: "Cancún", Page: 0, Limit: 500}
		result, err := uc.Execute(context.Background(), filters)
		require.NoError(t, err)

		assert.Equal(t, "Cancún", result.AppliedFilters.City)
		assert.Equal(t, 1, result.AppliedFilters.Page)
		assert.Equal(t, domain.MaxLimit, result.AppliedFilters.Limit)
	})

	t.Run("passes the compiled descriptor to storage", func(t *testing.T) {
		storage := &fakeStorage{}
		uc := NewSearchListingsUseCase(storage, normalizer)

		_, err := uc.Execute(context.Background(), domain.SearchFilters{
			City: "Monterrey",
			Page: 3,
		})
		require.NoError(t, err)

		assert.Equal(t, 40, storage.lastDesc.Skip)
		require.Len(t, storage.lastDesc.Predicates, 1)
		assert.Equal(t, query.FieldCity, storage.lastDesc.Predicates[0].Field)
	})

	t.Run("one malformed record fails the whole page", func(t *testing.T) {
		malformed := domain.RawRecord{ID: "broken", Title: "Sin precio", Source: "test"}
		storage := &fakeStorage{
			raws:  []domain.RawRecord{validRaw("ok", 100), malformed},
			total: 2,
		}
		uc := NewSearchListingsUseCase(storage, normalizer)

		result, err := uc.Execute(context.Background(), domain.SearchFilters{})
		require.Error(t, err)
		assert.Nil(t, result)

		var validationErr *domain.ValidationError
		assert.True(t, errors.As(err, &validationErr))
		assert.Contains(t, err.Error(), "broken")
	})

	t.Run("storage errors propagate", func(t *testing.T) {
		storage := &fakeStorage{err: &domain.StorageError{Op: "query", Err: errors.New("connection refused")}}
		uc := NewSearchListingsUseCase(storage, normalizer)

		_, err := uc.Execute(context.Background(), domain.SearchFilters{})
		require.Error(t, err)

		var storageErr *domain.StorageError
		assert.True(t, errors.As(err, &storageErr))
	})
}

func TestGetListing_Execute(t *testing.T) {
	normalizer := normalize.New(testClock)

	t.Run("normalizes the stored record", func(t *testing.T) {
		raw := validRaw("10", 3000000)
		raw.PropertyType = strPtr("casa")
		storage := &fakeStorage{raws: []domain.RawRecord{raw}}
		uc := NewGetListingUseCase(storage, normalizer)

		listing, err := uc.Execute(context.Background(), "10")
		require.NoError(t, err)
		assert.Equal(t, domain.TypeHouse, listing.Features.Type)
		assert.Equal(t, "MXN", listing.Currency)
	})

	t.Run("miss surfaces NotFoundError", func(t *testing.T) {
		storage := &fakeStorage{}
		uc := NewGetListingUseCase(storage, normalizer)

		_, err := uc.Execute(context.Background(), "missing")
		require.Error(t, err)

		var notFound *domain.NotFoundError
		assert.True(t, errors.As(err, &notFound))
	})
}
