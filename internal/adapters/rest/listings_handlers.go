package rest

import (
	"errors"
	"net/http"
	"strings"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
	"listing-service/internal/core/query"

	"github.com/go-chi/chi/v5"
)

type ListingsHandler struct {
	searchUC usecases_port.SearchListingsUseCase
	getUC    usecases_port.GetListingUseCase
	cache    *searchCache
}

func NewListingsHandler(searchUC usecases_port.SearchListingsUseCase,
	getUC usecases_port.GetListingUseCase,
	cache *searchCache) *ListingsHandler {
	return &ListingsHandler{
		searchUC: searchUC,
		getUC:    getUC,
		cache:    cache,
	}
}

// SearchProperties handles GET /properties.
func (h *ListingsHandler) SearchProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	filters := parseSearchFilters(r)

	result, err := h.lookup(r, filters)
	if err != nil {
		logger.Error("Property search failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to fetch properties", CodeFetchError)
		return
	}

	RespondWithJSON(w, http.StatusOK, toSearchEnvelope(result))
}

// lookup serves the search from the result cache when it can, otherwise
// through the use case (at most once per distinct filter key at a time).
func (h *ListingsHandler) lookup(r *http.Request, filters domain.SearchFilters) (*domain.SearchResult, error) {
	if h.cache == nil {
		return h.searchUC.Execute(r.Context(), filters)
	}
	return h.cache.GetOrFetch(filters, func() (*domain.SearchResult, error) {
		return h.searchUC.Execute(r.Context(), filters)
	})
}

// GetProperty handles GET /properties/{propertyID}.
func (h *ListingsHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	id := chi.URLParam(r, "propertyID")
	listing, err := h.getUC.Execute(r.Context(), id)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			WriteJSONError(w, http.StatusNotFound, "Property not found", CodeNotFound)
			return
		}
		logger.Error("Property lookup failed", err, port.Fields{"listing_id": id})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to fetch property", CodeFetchError)
		return
	}

	RespondWithJSON(w, http.StatusOK, SuccessEnvelope{
		Status: "success",
		Data:   toListingResponse(*listing),
	})
}

// Health handles GET /health.
func (h *ListingsHandler) Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func parseSearchFilters(r *http.Request) domain.SearchFilters {
	q := r.URL.Query()

	filters := domain.SearchFilters{
		City:      q.Get("city"),
		PriceMin:  parseFloatOrAbsent(q, "priceMin"),
		PriceMax:  parseFloatOrAbsent(q, "priceMax"),
		Bedrooms:  parseIntOrAbsent(q, "bedrooms"),
		Bathrooms: parseIntOrAbsent(q, "bathrooms"),
		AreaMin:   parseFloatOrAbsent(q, "areaMin"),
		AreaMax:   parseFloatOrAbsent(q, "areaMax"),
	}

	if t := domain.PropertyType(q.Get("propertyType")); t.Valid() {
		filters.PropertyType = t
	}
	if amenities := q.Get("amenities"); amenities != "" {
		filters.Amenities = strings.Split(amenities, ",")
	}

	filters.Page, filters.Limit = query.NormalizePaging(
		parseIntOrDefault(q, "page", domain.DefaultPage),
		parseIntOrDefault(q, "limit", domain.DefaultLimit),
	)

	// The HTTP entry point defaults to date ordering; relevance is only
	// used when a client asks for it explicitly.
	switch sort := domain.SortOrder(q.Get("sort")); sort {
	case domain.SortRelevance, domain.SortPriceAsc, domain.SortPriceDesc, domain.SortDate:
		filters.Sort = sort
	default:
		filters.Sort = domain.SortDate
	}

	return filters
}
