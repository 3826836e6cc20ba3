package constants

// Queue names
const (
	QueueRawListings = "raw_listings"
)

// Exchanges
const (
	ExchangeListings = "listings_exchange"
)

// Routing keys
const (
	RoutingKeyRawListings   = "listings.raw.ingest"
	RoutingKeyIngestReports = "listings.ingest.report"
)
