// Package memory implements the listing storage port over a plain slice.
// It backs tests and database-less local runs; the descriptor semantics
// mirror what the postgres adapter asks of the real collection.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/query"
)

type ListingStore struct {
	mu      sync.RWMutex
	records []domain.RawRecord
	now     func() time.Time
}

func NewListingStore(seed []domain.RawRecord) *ListingStore {
	records := make([]domain.RawRecord, len(seed))
	copy(records, seed)
	return &ListingStore{records: records, now: time.Now}
}

func (s *ListingStore) Query(ctx context.Context, desc query.Descriptor) ([]domain.RawRecord, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.RawRecord, 0, len(s.records))
	for _, rec := range s.records {
		ok, err := matches(rec, desc.Predicates)
		if err != nil {
			return nil, 0, &domain.StorageError{Op: "query", Err: err}
		}
		if ok {
			matched = append(matched, rec)
		}
	}

	// Nil order keeps insertion order, the collection's default.
	if desc.Order != nil {
		if err := orderRecords(matched, *desc.Order); err != nil {
			return nil, 0, &domain.StorageError{Op: "query", Err: err}
		}
	}

	total := len(matched)
	start := desc.Skip
	if start > total {
		start = total
	}
	end := start + desc.Take
	if end > total {
		end = total
	}

	page := make([]domain.RawRecord, end-start)
	copy(page, matched[start:end])
	return page, total, nil
}

func (s *ListingStore) GetByID(ctx context.Context, id string) (*domain.RawRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.ID == id {
			found := rec
			return &found, nil
		}
	}
	return nil, &domain.NotFoundError{ID: id}
}

func (s *ListingStore) BatchUpsert(ctx context.Context, records []domain.RawRecord) (*domain.IngestStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &domain.IngestStats{}
	now := s.now()
	for _, rec := range records {
		if rec.CreatedAt == nil {
			stamped := now
			rec.CreatedAt = &stamped
		}
		stamped := now
		rec.UpdatedAt = &stamped

		replaced := false
		for i, existing := range s.records {
			if existing.Source == rec.Source && existing.ID == rec.ID {
				rec.CreatedAt = existing.CreatedAt
				s.records[i] = rec
				replaced = true
				break
			}
		}
		if replaced {
			stats.Updated++
		} else {
			s.records = append(s.records, rec)
			stats.Created++
		}
	}
	return stats, nil
}

func matches(rec domain.RawRecord, predicates []query.Predicate) (bool, error) {
	for _, p := range predicates {
		ok, err := matchPredicate(rec, p)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// matchPredicate evaluates one predicate. Absent fields never match a
// constraint, mirroring SQL NULL comparison semantics.
func matchPredicate(rec domain.RawRecord, p query.Predicate) (bool, error) {
	switch p.Op {
	case query.OpContains:
		value, present := stringField(rec, p.Field)
		if !present {
			return false, nil
		}
		return strings.Contains(strings.ToLower(value), strings.ToLower(fmt.Sprintf("%v", p.Value))), nil
	case query.OpEquals:
		value, present := stringField(rec, p.Field)
		if !present {
			return false, nil
		}
		return value == fmt.Sprintf("%v", p.Value), nil
	case query.OpGTE, query.OpLTE:
		value, present := numericField(rec, p.Field)
		if !present {
			return false, nil
		}
		bound, err := numericValue(p.Value)
		if err != nil {
			return false, err
		}
		if p.Op == query.OpGTE {
			return value >= bound, nil
		}
		return value <= bound, nil
	default:
		return false, fmt.Errorf("unknown predicate operator %q", p.Op)
	}
}

func stringField(rec domain.RawRecord, field string) (string, bool) {
	switch field {
	case query.FieldCity:
		if rec.City != nil {
			return *rec.City, true
		}
		if rec.Location != nil {
			return *rec.Location, true
		}
		return "", false
	case query.FieldType:
		if rec.PropertyType != nil {
			return *rec.PropertyType, true
		}
		return "", false
	default:
		return "", false
	}
}

func numericField(rec domain.RawRecord, field string) (float64, bool) {
	switch field {
	case query.FieldPrice:
		if rec.Price != nil {
			return *rec.Price, true
		}
	case query.FieldBedrooms:
		if rec.Bedrooms != nil {
			return float64(*rec.Bedrooms), true
		}
	case query.FieldBathrooms:
		if rec.Bathrooms != nil {
			return *rec.Bathrooms, true
		}
	case query.FieldArea:
		if rec.Size != nil {
			return *rec.Size, true
		}
	}
	return 0, false
}

func numericValue(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("non-numeric predicate value %v", v)
	}
}

func orderRecords(records []domain.RawRecord, order query.OrderSpec) error {
	var key func(domain.RawRecord) float64
	switch order.Field {
	case query.FieldPrice:
		key = func(r domain.RawRecord) float64 {
			if r.Price != nil {
				return *r.Price
			}
			return 0
		}
	case query.FieldCreatedAt:
		key = func(r domain.RawRecord) float64 {
			if r.CreatedAt != nil {
				return float64(r.CreatedAt.UnixNano())
			}
			return 0
		}
	default:
		return fmt.Errorf("unknown order field %q", order.Field)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if order.Descending {
			return key(records[i]) > key(records[j])
		}
		return key(records[i]) < key(records[j])
	})
	return nil
}
