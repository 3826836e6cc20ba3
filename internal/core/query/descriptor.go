// Package query compiles a filter request into a backend-agnostic query
// descriptor: a conjunction of field predicates plus ordering and paging.
// The descriptor is created fresh per request and consumed once by the
// storage adapter that executes it.
package query

// Op enumerates the predicate operators the storage collaborator supports.
type Op string

const (
	OpEquals   Op = "eq"
	OpContains Op = "contains" // case-insensitive substring
	OpGTE      Op = "gte"
	OpLTE      Op = "lte"
)

// Canonical field names predicates and order specs refer to. Storage
// adapters translate these to their own column/attribute names.
const (
	FieldCity      = "city"
	FieldPrice     = "price"
	FieldBedrooms  = "bedrooms"
	FieldBathrooms = "bathrooms"
	FieldArea      = "size"
	FieldType      = "property_type"
	FieldCreatedAt = "created_at"
)

type Predicate struct {
	Field string
	Op    Op
	Value interface{}
}

type OrderSpec struct {
	Field      string
	Descending bool
}

// Descriptor is the compiled form of one filter request. A nil Order means
// the storage collaborator's default ordering (effectively arbitrary).
type Descriptor struct {
	Predicates []Predicate
	Order      *OrderSpec
	Skip       int
	Take       int
}
