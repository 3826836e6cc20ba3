package query

import (
	"testing"

	"listing-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestCompile_Predicates(t *testing.T) {
	t.Run("empty request compiles to no predicates", func(t *testing.T) {
		desc := Compile(domain.SearchFilters{})
		assert.Empty(t, desc.Predicates)
	})

	t.Run("price range becomes two bounds", func(t *testing.T) {
		desc := Compile(domain.SearchFilters{
			PriceMin: floatPtr(1000000),
			PriceMax: floatPtr(2000000),
		})
		require.Len(t, desc.Predicates, 2)
		assert.Equal(t, Predicate{FieldPrice, OpGTE, float64(1000000)}, desc.Predicates[0])
		assert.Equal(t, Predicate{FieldPrice, OpLTE, float64(2000000)}, desc.Predicates[1])
	})

	t.Run("city is a case-insensitive contains", func(t *testing.T) {
		desc := Compile(domain.SearchFilters{City: "Monterrey"})
		require.Len(t, desc.Predicates, 1)
		assert.Equal(t, Predicate{FieldCity, OpContains, "Monterrey"}, desc.Predicates[0])
	})

	t.Run("bedrooms and bathrooms are at-least filters", func(t *testing.T) {
		desc := Compile(domain.SearchFilters{
			Bedrooms:  intPtr(3),
			Bathrooms: intPtr(2),
		})
		require.Len(t, desc.Predicates, 2)
		assert.Equal(t, Predicate{FieldBedrooms, OpGTE, 3}, desc.Predicates[0])
		assert.Equal(t, Predicate{FieldBathrooms, OpGTE, 2}, desc.Predicates[1])
	})

	t.Run("area bounds map to the size field", func(t *testing.T) {
		desc := Compile(domain.SearchFilters{
			AreaMin: floatPtr(100),
			AreaMax: floatPtr(300),
		})
		require.Len(t, desc.Predicates, 2)
		assert.Equal(t, Predicate{FieldArea, OpGTE, float64(100)}, desc.Predicates[0])
		assert.Equal(t, Predicate{FieldArea, OpLTE, float64(300)}, desc.Predicates[1])
	})

	t.Run("property type is an equality", func(t *testing.T) {
		desc := Compile(domain.SearchFilters{PropertyType: domain.TypeLand})
		require.Len(t, desc.Predicates, 1)
		assert.Equal(t, Predicate{FieldType, OpEquals, "land"}, desc.Predicates[0])
	})

	t.Run("unknown property type compiles to nothing", func(t *testing.T) {
		desc := Compile(domain.SearchFilters{PropertyType: domain.PropertyType("castle")})
		assert.Empty(t, desc.Predicates)
	})

	t.Run("amenities never compile", func(t *testing.T) {
		desc := Compile(domain.SearchFilters{Amenities: []string{"pool", "gym"}})
		assert.Empty(t, desc.Predicates)
	})
}

func TestCompile_Order(t *testing.T) {
	cases := []struct {
		name string
		sort domain.SortOrder
		want *OrderSpec
	}{
		{"price ascending", domain.SortPriceAsc, &OrderSpec{Field: FieldPrice}},
		{"price descending", domain.SortPriceDesc, &OrderSpec{Field: FieldPrice, Descending: true}},
		{"date is newest first", domain.SortDate, &OrderSpec{Field: FieldCreatedAt, Descending: true}},
		{"relevance imposes no order", domain.SortRelevance, nil},
		{"unset falls back to date", domain.SortOrder(""), &OrderSpec{Field: FieldCreatedAt, Descending: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			desc := Compile(domain.SearchFilters{Sort: tc.sort})
			assert.Equal(t, tc.want, desc.Order)
		})
	}
}

func TestCompile_Paging(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		desc := Compile(domain.SearchFilters{})
		assert.Equal(t, 0, desc.Skip)
		assert.Equal(t, domain.DefaultLimit, desc.Take)
	})

	t.Run("page two skips one page", func(t *testing.T) {
		desc := Compile(domain.SearchFilters{Page: 2, Limit: 20})
		assert.Equal(t, 20, desc.Skip)
		assert.Equal(t, 20, desc.Take)
	})

	t.Run("limit is capped", func(t *testing.T) {
		desc := Compile(domain.SearchFilters{Page: 1, Limit: 500})
		assert.Equal(t, domain.MaxLimit, desc.Take)
	})

	t.Run("non-positive values fall back to defaults", func(t *testing.T) {
		desc := Compile(domain.SearchFilters{Page: -3, Limit: 0})
		assert.Equal(t, 0, desc.Skip)
		assert.Equal(t, domain.DefaultLimit, desc.Take)
	})
}

func TestNormalizePaging(t *testing.T) {
	page, limit := NormalizePaging(0, 0)
	assert.Equal(t, domain.DefaultPage, page)
	assert.Equal(t, domain.DefaultLimit, limit)

	page, limit = NormalizePaging(7, 1000)
	assert.Equal(t, 7, page)
	assert.Equal(t, domain.MaxLimit, limit)
}
