package domain

import "time"

// RawRecord is a listing exactly as an upstream feed shaped it. Every feed
// names and fills fields differently, so everything beyond the identifying
// trio is optional and must be checked field-by-field at the normalizer
// boundary. Pointer fields distinguish "absent" from zero.
type RawRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	Price    *float64 `json:"price,omitempty"`
	Currency *string  `json:"currency,omitempty"`

	// Location is the free-form location string most feeds send. A few
	// feeds send a pre-split city/state pair instead.
	Location *string `json:"location,omitempty"`
	City     *string `json:"city,omitempty"`
	State    *string `json:"state,omitempty"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`

	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *float64 `json:"bathrooms,omitempty"`
	Size         *float64 `json:"size,omitempty"`
	PropertyType *string  `json:"propertyType,omitempty"`

	// Images is the modern multi-image list; Image is the legacy
	// single-image field some feeds still send.
	Images []string `json:"images,omitempty"`
	Image  *string  `json:"image,omitempty"`

	Features    []string `json:"features,omitempty"`
	Description *string  `json:"description,omitempty"`

	Source string  `json:"source"`
	Link   *string `json:"link,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// ValidateRequired rejects records lacking the fields a canonical listing
// cannot be built without.
func (r RawRecord) ValidateRequired() error {
	var missing []string
	if r.ID == "" {
		missing = append(missing, "id")
	}
	if r.Title == "" {
		missing = append(missing, "title")
	}
	if r.Price == nil {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return NewValidationError(missing...)
	}
	return nil
}
