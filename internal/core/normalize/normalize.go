// Package normalize converts raw upstream listing records into the
// canonical model, filling the gaps each feed leaves with deterministic
// heuristics. Same raw input always yields the same canonical output.
package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"listing-service/internal/core/domain"
)

const (
	defaultCurrency = "MXN"
	defaultCity     = "Ciudad de México"
	defaultState    = "México"
	capitalState    = "CDMX"
	areaUnit        = "m²"

	// Listings priced below this are assumed to be rentals even when the
	// title does not say so. Only affects synthesized description text.
	rentalPriceThreshold = 100000
)

// explicitTypeLookup maps the property-type strings the feeds send to the
// canonical enumeration. Canonical values map to themselves so that
// re-normalizing an already-canonical record is a fixed point.
var explicitTypeLookup = map[string]domain.PropertyType{
	"departamento": domain.TypeApartment,
	"casa":         domain.TypeHouse,
	"penthouse":    domain.TypeCondo,
	"terreno":      domain.TypeLand,
	"oficina":      domain.TypeCommercial,
	"local":        domain.TypeCommercial,
	"edificio":     domain.TypeCommercial,

	"apartment":  domain.TypeApartment,
	"house":      domain.TypeHouse,
	"condo":      domain.TypeCondo,
	"land":       domain.TypeLand,
	"commercial": domain.TypeCommercial,
}

// placeholderImages is the deterministic substitute used when a feed sends
// no images at all, keyed by the resolved property type.
var placeholderImages = map[domain.PropertyType]string{
	domain.TypeApartment:  "https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800&h=600&fit=crop",
	domain.TypeHouse:      "https://images.unsplash.com/photo-1564013799919-ab600027ffc6?w=800&h=600&fit=crop",
	domain.TypeCommercial: "https://images.unsplash.com/photo-1497366216548-37526070297c?w=800&h=600&fit=crop",
	domain.TypeLand:       "https://images.unsplash.com/photo-1500382017468-9049fed747ef?w=800&h=600&fit=crop",
	domain.TypeCondo:      "https://images.unsplash.com/photo-1545324418-cc1a3fa10c00?w=800&h=600&fit=crop",
}

// cityFromTitle extracts a city-like token from titles shaped like
// "Casa en Monterrey" or "Departamento en renta en Polanco".
var cityFromTitle = regexp.MustCompile(`(?i)en\s+([A-Za-zÀ-ÿ\s]+)`)

// Normalizer turns RawRecords into canonical Listings. The clock is
// injectable because timestamp defaulting is the one non-pure input.
type Normalizer struct {
	now func() time.Time
}

func New(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// Normalize builds the canonical listing for one raw record. It never
// fails for missing optional fields; only the absence of id, title or
// price is an error.
func (n *Normalizer) Normalize(raw domain.RawRecord) (domain.Listing, error) {
	if err := raw.ValidateRequired(); err != nil {
		return domain.Listing{}, err
	}

	propertyType := resolvePropertyType(raw)
	location := resolveLocation(raw)
	bedrooms := max(0, intValue(raw.Bedrooms))
	bathrooms := resolveBathrooms(raw.Bathrooms, bedrooms)
	price := math.Max(0, *raw.Price)
	area := math.Max(0, floatValue(raw.Size))

	now := n.now()

	return domain.Listing{
		ID:          raw.ID,
		Title:       raw.Title,
		Description: resolveDescription(raw, propertyType, location, price, bedrooms, bathrooms),
		Price:       price,
		Currency:    stringValue(raw.Currency, defaultCurrency),
		Location:    location,
		Images:      resolveImages(raw, propertyType),
		Features: domain.Features{
			Bedrooms:  bedrooms,
			Bathrooms: bathrooms,
			Area:      area,
			AreaUnit:  areaUnit,
			Type:      propertyType,
			Amenities: amenities(raw.Features),
		},
		Source:    raw.Source,
		URL:       stringValue(raw.Link, domain.NoExternalLink),
		CreatedAt: timeValue(raw.CreatedAt, now),
		UpdatedAt: timeValue(raw.UpdatedAt, now),
	}, nil
}

// resolvePropertyType prefers the explicit feed value, then keyword
// matching on the title, and defaults to apartment when nothing matches.
func resolvePropertyType(raw domain.RawRecord) domain.PropertyType {
	if raw.PropertyType != nil {
		if t, ok := explicitTypeLookup[strings.ToLower(*raw.PropertyType)]; ok {
			return t
		}
		return domain.TypeApartment
	}

	title := strings.ToLower(raw.Title)
	switch {
	case containsAny(title, "casa", "finca"):
		return domain.TypeHouse
	case containsAny(title, "departamento", "penthouse", "ph"):
		return domain.TypeApartment
	case strings.Contains(title, "terreno"):
		return domain.TypeLand
	case containsAny(title, "oficina", "local", "edificio") || intValue(raw.Bedrooms) == 0:
		return domain.TypeCommercial
	}
	return domain.TypeApartment
}

// resolveLocation works from the free-form location string, falling back
// to a pre-split city when a feed sends one. An empty or delimiter-only
// string triggers extraction from the title.
func resolveLocation(raw domain.RawRecord) domain.Location {
	locStr := stringValue(raw.Location, "")
	if locStr == "" && raw.City != nil {
		locStr = *raw.City
	}

	if strings.TrimSpace(strings.Trim(locStr, ",")) == "" {
		if m := cityFromTitle.FindStringSubmatch(raw.Title); m != nil {
			locStr = strings.TrimSpace(m[1])
		} else {
			locStr = defaultCity
		}
	}

	loc := domain.Location{Address: locStr}
	if strings.Contains(locStr, defaultCity) || strings.Contains(locStr, capitalState) {
		loc.City = defaultCity
		loc.State = capitalState
	} else {
		loc.City = locStr
		loc.State = defaultState
	}
	if raw.State != nil && *raw.State != "" {
		loc.State = *raw.State
	}

	if raw.Lat != nil && raw.Lng != nil {
		loc.Coordinates = &domain.Coordinates{Lat: *raw.Lat, Lng: *raw.Lng}
	}
	return loc
}

func resolveImages(raw domain.RawRecord, t domain.PropertyType) []string {
	if len(raw.Images) > 0 {
		return raw.Images
	}
	if raw.Image != nil && *raw.Image != "" {
		return []string{*raw.Image}
	}
	return []string{placeholderImages[t]}
}

// resolveBathrooms estimates a bathroom count from bedrooms when the feed
// sends none. A feed value of zero counts as absent.
func resolveBathrooms(explicit *float64, bedrooms int) float64 {
	if explicit != nil && *explicit > 0 {
		return *explicit
	}
	return math.Max(1, math.Floor(float64(bedrooms)/2)+1)
}

func resolveDescription(raw domain.RawRecord, t domain.PropertyType, loc domain.Location, price float64, bedrooms int, bathrooms float64) string {
	if raw.Description != nil && *raw.Description != "" {
		return *raw.Description
	}

	kind := "Propiedad"
	if t == domain.TypeCommercial {
		kind = "Espacio comercial"
	}
	deal := "venta"
	if isRental(raw.Title, price) {
		deal = "renta"
	}

	desc := fmt.Sprintf("%s en %s ubicada en %s.", kind, deal, loc.Address)
	if bedrooms > 0 {
		desc += fmt.Sprintf(" %d recámaras, %s baños.", bedrooms, formatCount(bathrooms))
	}
	return desc
}

// isRental is a heuristic used only for description text, never stored.
func isRental(title string, price float64) bool {
	return strings.Contains(strings.ToLower(title), "renta") || price < rentalPriceThreshold
}

func formatCount(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func amenities(features []string) []string {
	if features == nil {
		return []string{}
	}
	return features
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func stringValue(p *string, fallback string) string {
	if p != nil && *p != "" {
		return *p
	}
	return fallback
}

func intValue(p *int) int {
	if p != nil {
		return *p
	}
	return 0
}

func floatValue(p *float64) float64 {
	if p != nil {
		return *p
	}
	return 0
}

func timeValue(p *time.Time, fallback time.Time) time.Time {
	if p != nil {
		return *p
	}
	return fallback
}
