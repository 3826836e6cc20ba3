package memory

import (
	"time"

	"listing-service/internal/core/domain"
)

// SeedListings returns the fixture set used by tests and database-less
// local runs: six raw records across the usual feeds, one per property
// type plus duplicates, with deliberately uneven field coverage.
func SeedListings() []domain.RawRecord {
	return []domain.RawRecord{
		{
			ID:           "1",
			Title:        "Casa moderna en Polanco",
			Price:        f(15000000),
			Currency:     s("MXN"),
			Location:     s("Polanco, Miguel Hidalgo"),
			City:         s("Ciudad de México"),
			State:        s("CDMX"),
			Lat:          f(19.4326),
			Lng:          f(-99.1332),
			Bedrooms:     i(4),
			Bathrooms:    f(3),
			Size:         f(350),
			PropertyType: s("house"),
			Images: []string{
				"https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?w=800",
				"https://images.unsplash.com/photo-1600607687939-ce8a6c25118c?w=800",
			},
			Features:    []string{"pool", "garage", "garden", "security"},
			Description: s("Hermosa casa con acabados de lujo en la mejor zona de Polanco. Cuenta con amplios espacios, cocina integral, jardín y alberca."),
			Source:      "inmuebles24",
			Link:        s("https://example.com/property1"),
			CreatedAt:   t("2025-05-18T10:00:00Z"),
			UpdatedAt:   t("2025-05-18T10:00:00Z"),
		},
		{
			ID:           "2",
			Title:        "Departamento con vista al mar",
			Price:        f(8500000),
			Currency:     s("MXN"),
			Location:     s("Zona Hotelera"),
			City:         s("Cancún"),
			State:        s("Quintana Roo"),
			Lat:          f(21.1619),
			Lng:          f(-86.8515),
			Bedrooms:     i(3),
			Bathrooms:    f(2),
			Size:         f(180),
			PropertyType: s("apartment"),
			Images: []string{
				"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800",
			},
			Features:    []string{"pool", "gym", "security", "furnished"},
			Description: s("Espectacular departamento frente al mar en la zona hotelera de Cancún. Totalmente amueblado y equipado."),
			Source:      "vivanuncios",
			Link:        s("https://example.com/property2"),
			CreatedAt:   t("2025-05-20T10:00:00Z"),
			UpdatedAt:   t("2025-05-20T10:00:00Z"),
		},
		{
			// Legacy feed shape: single image field, no explicit type.
			ID:        "3",
			Title:     "Casa en condominio privado",
			Price:     f(3500000),
			Location:  s("Zapopan"),
			City:      s("Guadalajara"),
			State:     s("Jalisco"),
			Bedrooms:  i(3),
			Bathrooms: f(2.5),
			Size:      f(200),
			Image:     s("https://images.unsplash.com/photo-1583608205776-bfd35f0d9f83?w=800"),
			Features:  []string{"garage", "garden", "security"},
			Source:    "lamudi",
			Link:      s("https://example.com/property3"),
			CreatedAt: t("2025-05-22T10:00:00Z"),
			UpdatedAt: t("2025-05-22T10:00:00Z"),
		},
		{
			ID:           "4",
			Title:        "Penthouse de lujo en Santa Fe",
			Price:        f(25000000),
			Currency:     s("MXN"),
			Location:     s("Santa Fe"),
			City:         s("Ciudad de México"),
			State:        s("CDMX"),
			Bedrooms:     i(3),
			Bathrooms:    f(3),
			Size:         f(280),
			PropertyType: s("penthouse"),
			Images: []string{
				"https://images.unsplash.com/photo-1600607687644-c7171b42498b?w=800",
				"https://images.unsplash.com/photo-1600607687920-4e2a09cf159d?w=800",
			},
			Features:    []string{"pool", "gym", "terrace", "elevator"},
			Description: s("Impresionante penthouse con terraza panorámica y vistas espectaculares de la ciudad."),
			Source:      "inmuebles24",
			Link:        s("https://example.com/property4"),
			CreatedAt:   t("2025-05-24T10:00:00Z"),
			UpdatedAt:   t("2025-05-24T10:00:00Z"),
		},
		{
			ID:           "5",
			Title:        "Terreno en desarrollo residencial",
			Price:        f(2000000),
			Location:     s("Carretera Nacional"),
			City:         s("Monterrey"),
			State:        s("Nuevo León"),
			Bedrooms:     i(0),
			Size:         f(500),
			PropertyType: s("land"),
			Images: []string{
				"https://images.unsplash.com/photo-1500382017468-9049fed747ef?w=800",
			},
			Description: s("Excelente terreno para construir la casa de tus sueños en zona residencial exclusiva."),
			Source:      "propiedades.com",
			Link:        s("https://example.com/property5"),
			CreatedAt:   t("2025-05-26T10:00:00Z"),
			UpdatedAt:   t("2025-05-26T10:00:00Z"),
		},
		{
			ID:           "6",
			Title:        "Departamento en Roma Norte",
			Price:        f(4500000),
			Currency:     s("MXN"),
			Location:     s("Roma Norte, Cuauhtémoc"),
			City:         s("Ciudad de México"),
			State:        s("CDMX"),
			Bedrooms:     i(2),
			Bathrooms:    f(2),
			Size:         f(120),
			PropertyType: s("departamento"),
			Images: []string{
				"https://images.unsplash.com/photo-1560185893-a55cbc8c57e8?w=800",
				"https://images.unsplash.com/photo-1554995207-c18c203602cb?w=800",
			},
			Features:    []string{"elevator", "terrace"},
			Description: s("Moderno departamento en el corazón de Roma Norte, cerca de restaurantes y cafeterías."),
			Source:      "vivanuncios",
			Link:        s("https://example.com/property6"),
			CreatedAt:   t("2025-05-28T10:00:00Z"),
			UpdatedAt:   t("2025-05-28T10:00:00Z"),
		},
	}
}

func s(v string) *string   { return &v }
func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func t(v string) *time.Time {
	parsed, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return &parsed
}
