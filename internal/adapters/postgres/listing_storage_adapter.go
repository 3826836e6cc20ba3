package postgres

import (
	"context"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/query"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const listingColumns = `l.external_id, l.title, l.description, l.price, l.currency,
		l.location, l.city, l.state, l.lat, l.lng,
		l.bedrooms, l.bathrooms, l.size, l.property_type,
		l.images, l.image, l.features, l.source, l.link,
		l.created_at, l.updated_at`

// ListingStorageAdapter implements ListingStoragePort on a listings table
// whose columns mirror the heterogeneous upstream shape: most of them
// nullable, normalized only on read.
type ListingStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewListingStorageAdapter(pool *pgxpool.Pool) (*ListingStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ListingStorageAdapter{pool: pool}, nil
}

// Query runs the compiled descriptor. Count and page fetch are two
// independent reads on the pool, so total and page may disagree under
// concurrent writes, which the contract accepts.
func (a *ListingStorageAdapter) Query(ctx context.Context, desc query.Descriptor) ([]domain.RawRecord, int, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ListingStorageAdapter",
		"method":    "Query",
		"skip":      desc.Skip,
		"take":      desc.Take,
	})

	whereClause, orderClause, args, err := buildQueryParts(desc)
	if err != nil {
		return nil, 0, &domain.StorageError{Op: "query", Err: err}
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM listings l %s", whereClause)
	var total int
	if err := a.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		repoLogger.Error("Failed to count listings", err, port.Fields{"query": countQuery})
		return nil, 0, &domain.StorageError{Op: "count", Err: err}
	}

	if total == 0 {
		return []domain.RawRecord{}, 0, nil
	}

	pageQuery := fmt.Sprintf("SELECT %s FROM listings l %s %s LIMIT $%d OFFSET $%d",
		listingColumns, whereClause, orderClause, len(args)+1, len(args)+2)
	pageArgs := append(args, desc.Take, desc.Skip)

	rows, err := a.pool.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		repoLogger.Error("Failed to fetch listings page", err, port.Fields{"query": pageQuery})
		return nil, 0, &domain.StorageError{Op: "fetch", Err: err}
	}
	defer rows.Close()

	records := make([]domain.RawRecord, 0, desc.Take)
	for rows.Next() {
		rec, err := scanRawRecord(rows)
		if err != nil {
			return nil, 0, &domain.StorageError{Op: "scan", Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, &domain.StorageError{Op: "fetch", Err: err}
	}

	repoLogger.Debug("Listings page fetched", port.Fields{"total": total, "count": len(records)})
	return records, total, nil
}

func (a *ListingStorageAdapter) GetByID(ctx context.Context, id string) (*domain.RawRecord, error) {
	q := fmt.Sprintf("SELECT %s FROM listings l WHERE l.external_id = $1", listingColumns)

	rows, err := a.pool.Query(ctx, q, id)
	if err != nil {
		return nil, &domain.StorageError{Op: "get", Err: err}
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, &domain.StorageError{Op: "get", Err: err}
		}
		return nil, &domain.NotFoundError{ID: id}
	}

	rec, err := scanRawRecord(rows)
	if err != nil {
		return nil, &domain.StorageError{Op: "scan", Err: err}
	}
	return &rec, nil
}

func scanRawRecord(rows pgx.Rows) (domain.RawRecord, error) {
	var rec domain.RawRecord
	err := rows.Scan(
		&rec.ID, &rec.Title, &rec.Description, &rec.Price, &rec.Currency,
		&rec.Location, &rec.City, &rec.State, &rec.Lat, &rec.Lng,
		&rec.Bedrooms, &rec.Bathrooms, &rec.Size, &rec.PropertyType,
		&rec.Images, &rec.Image, &rec.Features, &rec.Source, &rec.Link,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return domain.RawRecord{}, fmt.Errorf("failed to scan listing row: %w", err)
	}
	return rec, nil
}

// BatchUpsert saves one feed batch in a single transaction. Conflicts on
// (source, external_id) refresh the stored record; created_at is stamped
// once at first insert so date sorting stays stable.
func (a *ListingStorageAdapter) BatchUpsert(ctx context.Context, records []domain.RawRecord) (*domain.IngestStats, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":    "ListingStorageAdapter",
		"method":       "BatchUpsert",
		"record_count": len(records),
	})

	stats := &domain.IngestStats{}
	if len(records) == 0 {
		return stats, nil
	}

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "begin", Err: err}
	}
	defer tx.Rollback(ctx)

	const upsert = `
		INSERT INTO listings (
			external_id, source, title, description, price, currency,
			location, city, state, lat, lng, geocell,
			bedrooms, bathrooms, size, property_type,
			images, image, features, link, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, now(), now()
		)
		ON CONFLICT (source, external_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			currency = EXCLUDED.currency,
			location = EXCLUDED.location,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			geocell = EXCLUDED.geocell,
			bedrooms = EXCLUDED.bedrooms,
			bathrooms = EXCLUDED.bathrooms,
			size = EXCLUDED.size,
			property_type = EXCLUDED.property_type,
			images = EXCLUDED.images,
			image = EXCLUDED.image,
			features = EXCLUDED.features,
			link = EXCLUDED.link,
			updated_at = now()
		RETURNING (xmax = 0) AS inserted`

	for _, rec := range records {
		var inserted bool
		err := tx.QueryRow(ctx, upsert,
			rec.ID, rec.Source, rec.Title, rec.Description, rec.Price, rec.Currency,
			rec.Location, rec.City, rec.State, rec.Lat, rec.Lng, geocellFor(rec),
			rec.Bedrooms, rec.Bathrooms, rec.Size, rec.PropertyType,
			rec.Images, rec.Image, rec.Features, rec.Link,
		).Scan(&inserted)
		if err != nil {
			repoLogger.Error("Failed to upsert feed record", err, port.Fields{
				"record_id": rec.ID,
				"source":    rec.Source,
			})
			return nil, &domain.StorageError{Op: "upsert", Err: err}
		}
		if inserted {
			stats.Created++
		} else {
			stats.Updated++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &domain.StorageError{Op: "commit", Err: err}
	}

	repoLogger.Info("Feed batch saved", port.Fields{
		"created": stats.Created,
		"updated": stats.Updated,
	})
	return stats, nil
}
