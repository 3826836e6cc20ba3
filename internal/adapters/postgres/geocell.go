package postgres

import (
	"listing-service/internal/core/domain"

	"github.com/mmcloughlin/geohash"
)

// geocellPrecision gives cells of roughly 5m, enough to treat two records
// at the same geocell as the same physical location.
const geocellPrecision = 9

// geocellFor returns the geohash cell for records that carry exact
// coordinates, nil otherwise. Stamped at ingest only; the read path
// round-trips raw coordinates untouched.
func geocellFor(rec domain.RawRecord) *string {
	if rec.Lat == nil || rec.Lng == nil {
		return nil
	}
	cell := geohash.EncodeWithPrecision(*rec.Lat, *rec.Lng, geocellPrecision)
	return &cell
}
