package normalize

import (
	"errors"
	"testing"
	"time"

	"listing-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func strPtr(v string) *string    { return &v }
func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int          { return &v }

func TestNormalize_SparseRecord(t *testing.T) {
	n := New(fixedClock)

	raw := domain.RawRecord{
		ID:       "42",
		Title:    "Casa en Monterrey",
		Price:    floatPtr(2500000),
		Bedrooms: intPtr(3),
		Source:   "lamudi",
	}

	listing, err := n.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, domain.TypeHouse, listing.Features.Type)
	assert.Equal(t, "Monterrey", listing.Location.City)
	assert.Equal(t, "México", listing.Location.State)
	assert.Equal(t, "Monterrey", listing.Location.Address)
	assert.Nil(t, listing.Location.Coordinates)

	// Absent bathrooms: derived from bedrooms.
	assert.Equal(t, float64(2), listing.Features.Bathrooms)

	assert.Equal(t, []string{placeholderImages[domain.TypeHouse]}, listing.Images)
	assert.Equal(t, "MXN", listing.Currency)
	assert.Equal(t, "m²", listing.Features.AreaUnit)
	assert.Equal(t, domain.NoExternalLink, listing.URL)
	assert.Equal(t, []string{}, listing.Features.Amenities)

	assert.Equal(t, fixedClock(), listing.CreatedAt)
	assert.Equal(t, fixedClock(), listing.UpdatedAt)

	assert.Equal(t, "Propiedad en venta ubicada en Monterrey. 3 recámaras, 2 baños.", listing.Description)
}

func TestNormalize_IsPureAndDeterministic(t *testing.T) {
	n := New(fixedClock)

	raw := domain.RawRecord{
		ID:     "7",
		Title:  "Departamento en Condesa",
		Price:  floatPtr(3200000),
		Source: "inmuebles24",
	}

	first, err := n.Normalize(raw)
	require.NoError(t, err)
	second, err := n.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNormalize_PropertyTypeResolution(t *testing.T) {
	n := New(fixedClock)

	cases := []struct {
		name         string
		title        string
		propertyType *string
		bedrooms     *int
		want         domain.PropertyType
	}{
		{"explicit departamento", "whatever", strPtr("departamento"), intPtr(2), domain.TypeApartment},
		{"explicit casa", "whatever", strPtr("casa"), intPtr(2), domain.TypeHouse},
		{"explicit penthouse maps to condo", "whatever", strPtr("penthouse"), intPtr(2), domain.TypeCondo},
		{"explicit terreno", "whatever", strPtr("terreno"), nil, domain.TypeLand},
		{"explicit oficina", "whatever", strPtr("oficina"), nil, domain.TypeCommercial},
		{"explicit uppercase", "whatever", strPtr("CASA"), intPtr(2), domain.TypeHouse},
		{"explicit unknown falls back to apartment", "whatever", strPtr("castillo"), intPtr(2), domain.TypeApartment},

		{"title casa", "Casa en Coyoacán", nil, intPtr(2), domain.TypeHouse},
		{"title finca", "Finca con huerto", nil, intPtr(2), domain.TypeHouse},
		{"title departamento", "Departamento céntrico", nil, intPtr(2), domain.TypeApartment},
		{"title terreno", "Terreno plano", nil, nil, domain.TypeLand},
		{"title local", "Local en avenida principal", nil, intPtr(1), domain.TypeCommercial},
		{"no keyword zero bedrooms", "Propiedad única", nil, intPtr(0), domain.TypeCommercial},
		{"no keyword with bedrooms", "Hogar acogedor con vista", nil, intPtr(2), domain.TypeApartment},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := domain.RawRecord{
				ID:           "1",
				Title:        tc.title,
				Price:        floatPtr(1000000),
				PropertyType: tc.propertyType,
				Bedrooms:     tc.bedrooms,
				Source:       "test",
			}
			listing, err := n.Normalize(raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, listing.Features.Type)
		})
	}
}

func TestNormalize_CanonicalTypesAreFixedPoints(t *testing.T) {
	n := New(fixedClock)

	for _, canonical := range []domain.PropertyType{
		domain.TypeApartment, domain.TypeHouse, domain.TypeCondo, domain.TypeLand, domain.TypeCommercial,
	} {
		raw := domain.RawRecord{
			ID:           "1",
			Title:        "Listado",
			Price:        floatPtr(500000),
			PropertyType: strPtr(string(canonical)),
			Source:       "test",
		}
		listing, err := n.Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, canonical, listing.Features.Type)
	}
}

func TestNormalize_LocationResolution(t *testing.T) {
	n := New(fixedClock)

	t.Run("capital listings keep the CDMX state", func(t *testing.T) {
		raw := domain.RawRecord{
			ID:       "1",
			Title:    "Departamento",
			Price:    floatPtr(4000000),
			Location: strPtr("Roma Norte, Ciudad de México"),
			Source:   "test",
		}
		listing, err := n.Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, "Ciudad de México", listing.Location.City)
		assert.Equal(t, "CDMX", listing.Location.State)
		assert.Equal(t, "Roma Norte, Ciudad de México", listing.Location.Address)
	})

	t.Run("no location and no extractable city defaults to the capital", func(t *testing.T) {
		raw := domain.RawRecord{
			ID:     "1",
			Title:  "Departamento moderno",
			Price:  floatPtr(4000000),
			Source: "test",
		}
		listing, err := n.Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, "Ciudad de México", listing.Location.City)
		assert.Equal(t, "CDMX", listing.Location.State)
	})

	t.Run("delimiter-only location counts as absent", func(t *testing.T) {
		raw := domain.RawRecord{
			ID:       "1",
			Title:    "Casa en Puebla",
			Price:    floatPtr(2000000),
			Location: strPtr(" , "),
			Source:   "test",
		}
		listing, err := n.Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, "Puebla", listing.Location.City)
	})

	t.Run("feed state overrides the inferred one", func(t *testing.T) {
		raw := domain.RawRecord{
			ID:       "1",
			Title:    "Casa",
			Price:    floatPtr(2000000),
			Location: strPtr("Zapopan"),
			State:    strPtr("Jalisco"),
			Source:   "test",
		}
		listing, err := n.Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, "Zapopan", listing.Location.City)
		assert.Equal(t, "Jalisco", listing.Location.State)
	})

	t.Run("coordinates carry over when both are present", func(t *testing.T) {
		raw := domain.RawRecord{
			ID:       "1",
			Title:    "Casa",
			Price:    floatPtr(2000000),
			Location: strPtr("Cancún"),
			Lat:      floatPtr(21.1619),
			Lng:      floatPtr(-86.8515),
			Source:   "test",
		}
		listing, err := n.Normalize(raw)
		require.NoError(t, err)
		require.NotNil(t, listing.Location.Coordinates)
		assert.Equal(t, 21.1619, listing.Location.Coordinates.Lat)
		assert.Equal(t, -86.8515, listing.Location.Coordinates.Lng)
	})
}

func TestNormalize_Bathrooms(t *testing.T) {
	n := New(fixedClock)

	cases := []struct {
		name      string
		bedrooms  *int
		bathrooms *float64
		want      float64
	}{
		{"explicit value wins", intPtr(4), floatPtr(3.5), 3.5},
		{"zero counts as absent", intPtr(4), floatPtr(0), 3},
		{"derived from four bedrooms", intPtr(4), nil, 3},
		{"derived from one bedroom", intPtr(1), nil, 1},
		{"never below one", intPtr(0), nil, 1},
		{"absent bedrooms", nil, nil, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := domain.RawRecord{
				ID:        "1",
				Title:     "Casa en Toluca",
				Price:     floatPtr(1500000),
				Bedrooms:  tc.bedrooms,
				Bathrooms: tc.bathrooms,
				Source:    "test",
			}
			listing, err := n.Normalize(raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, listing.Features.Bathrooms)
		})
	}
}

func TestNormalize_Images(t *testing.T) {
	n := New(fixedClock)

	t.Run("image list passes through", func(t *testing.T) {
		images := []string{"https://example.com/a.jpg", "https://example.com/b.jpg"}
		raw := domain.RawRecord{
			ID: "1", Title: "Casa", Price: floatPtr(1000000), Images: images, Source: "test",
		}
		listing, err := n.Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, images, listing.Images)
	})

	t.Run("legacy single image is promoted", func(t *testing.T) {
		raw := domain.RawRecord{
			ID: "1", Title: "Casa", Price: floatPtr(1000000),
			Image:  strPtr("https://example.com/only.jpg"),
			Source: "test",
		}
		listing, err := n.Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/only.jpg"}, listing.Images)
	})

	t.Run("placeholder matches the resolved type", func(t *testing.T) {
		raw := domain.RawRecord{
			ID: "1", Title: "Terreno en Mérida", Price: floatPtr(800000), Source: "test",
		}
		listing, err := n.Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, []string{placeholderImages[domain.TypeLand]}, listing.Images)
	})
}

func TestNormalize_Description(t *testing.T) {
	n := New(fixedClock)

	t.Run("feed description passes through", func(t *testing.T) {
		raw := domain.RawRecord{
			ID: "1", Title: "Casa", Price: floatPtr(1000000),
			Description: strPtr("Tal cual llegó del feed."),
			Source:      "test",
		}
		listing, err := n.Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, "Tal cual llegó del feed.", listing.Description)
	})

	t.Run("rental wording from the title", func(t *testing.T) {
		raw := domain.RawRecord{
			ID: "1", Title: "Departamento en renta en Polanco", Price: floatPtr(25000),
			Bedrooms: intPtr(2),
			Source:   "test",
		}
		listing, err := n.Normalize(raw)
		require.NoError(t, err)
		assert.Contains(t, listing.Description, "en renta")
	})

	t.Run("low price implies rental", func(t *testing.T) {
		raw := domain.RawRecord{
			ID: "1", Title: "Departamento en Narvarte", Price: floatPtr(18000),
			Source: "test",
		}
		listing, err := n.Normalize(raw)
		require.NoError(t, err)
		assert.Contains(t, listing.Description, "en renta")
	})

	t.Run("commercial wording", func(t *testing.T) {
		raw := domain.RawRecord{
			ID: "1", Title: "Oficina en Reforma", Price: floatPtr(9000000),
			Source: "test",
		}
		listing, err := n.Normalize(raw)
		require.NoError(t, err)
		assert.Contains(t, listing.Description, "Espacio comercial")
	})

	t.Run("fractional bathrooms keep one decimal", func(t *testing.T) {
		raw := domain.RawRecord{
			ID: "1", Title: "Casa en Saltillo", Price: floatPtr(2000000),
			Bedrooms:  intPtr(3),
			Bathrooms: floatPtr(2.5),
			Source:    "test",
		}
		listing, err := n.Normalize(raw)
		require.NoError(t, err)
		assert.Contains(t, listing.Description, "2.5 baños")
	})
}

func TestNormalize_NegativeValuesClampToZero(t *testing.T) {
	n := New(fixedClock)

	bedrooms := -2
	raw := domain.RawRecord{
		ID:       "1",
		Title:    "Casa en Tijuana",
		Price:    floatPtr(-500),
		Bedrooms: &bedrooms,
		Size:     floatPtr(-30),
		Source:   "test",
	}

	listing, err := n.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, float64(0), listing.Price)
	assert.Equal(t, 0, listing.Features.Bedrooms)
	assert.Equal(t, float64(0), listing.Features.Area)
}

func TestNormalize_PreservesFeedTimestamps(t *testing.T) {
	n := New(fixedClock)

	created := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)
	raw := domain.RawRecord{
		ID: "1", Title: "Casa", Price: floatPtr(1000000),
		CreatedAt: &created,
		UpdatedAt: &updated,
		Source:    "test",
	}

	listing, err := n.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, created, listing.CreatedAt)
	assert.Equal(t, updated, listing.UpdatedAt)
}

func TestNormalize_MissingRequiredFields(t *testing.T) {
	n := New(fixedClock)

	raw := domain.RawRecord{ID: "1", Source: "test"}

	_, err := n.Normalize(raw)
	require.Error(t, err)

	var validationErr *domain.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.ElementsMatch(t, []string{"title", "price"}, validationErr.Missing)
}
