package postgres

import (
	"testing"

	"listing-service/internal/core/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQueryParts(t *testing.T) {
	t.Run("empty descriptor yields no clauses", func(t *testing.T) {
		where, order, args, err := buildQueryParts(query.Descriptor{})
		require.NoError(t, err)
		assert.Empty(t, where)
		assert.Empty(t, order)
		assert.Empty(t, args)
	})

	t.Run("predicates become numbered conditions", func(t *testing.T) {
		desc := query.Descriptor{
			Predicates: []query.Predicate{
				{Field: query.FieldCity, Op: query.OpContains, Value: "Cancún"},
				{Field: query.FieldPrice, Op: query.OpGTE, Value: float64(1000000)},
				{Field: query.FieldPrice, Op: query.OpLTE, Value: float64(2000000)},
				{Field: query.FieldType, Op: query.OpEquals, Value: "apartment"},
			},
		}

		where, _, args, err := buildQueryParts(desc)
		require.NoError(t, err)

		assert.Equal(t, "WHERE l.city ILIKE $1 AND l.price >= $2 AND l.price <= $3 AND l.property_type = $4", where)
		require.Len(t, args, 4)
		assert.Equal(t, "%Cancún%", args[0])
		assert.Equal(t, float64(1000000), args[1])
		assert.Equal(t, float64(2000000), args[2])
		assert.Equal(t, "apartment", args[3])
	})

	t.Run("order clause includes the id tiebreak", func(t *testing.T) {
		desc := query.Descriptor{
			Order: &query.OrderSpec{Field: query.FieldPrice, Descending: true},
		}
		_, order, _, err := buildQueryParts(desc)
		require.NoError(t, err)
		assert.Equal(t, "ORDER BY l.price DESC, l.id ASC", order)
	})

	t.Run("ascending order", func(t *testing.T) {
		desc := query.Descriptor{
			Order: &query.OrderSpec{Field: query.FieldCreatedAt},
		}
		_, order, _, err := buildQueryParts(desc)
		require.NoError(t, err)
		assert.Equal(t, "ORDER BY l.created_at ASC, l.id ASC", order)
	})

	t.Run("nil order yields no ORDER BY", func(t *testing.T) {
		_, order, _, err := buildQueryParts(query.Descriptor{})
		require.NoError(t, err)
		assert.Empty(t, order)
	})

	t.Run("unknown filter field is rejected", func(t *testing.T) {
		desc := query.Descriptor{
			Predicates: []query.Predicate{
				{Field: "owner_email", Op: query.OpEquals, Value: "x"},
			},
		}
		_, _, _, err := buildQueryParts(desc)
		assert.Error(t, err)
	})

	t.Run("unknown order field is rejected", func(t *testing.T) {
		desc := query.Descriptor{
			Order: &query.OrderSpec{Field: "owner_email"},
		}
		_, _, _, err := buildQueryParts(desc)
		assert.Error(t, err)
	})
}
