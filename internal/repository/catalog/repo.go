// Package catalog reads active listings, events and offers from PostgreSQL.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/nexa-app/nexa/internal/domain/catalog"
)

// statusCodes maps stored enum ordinals to listing statuses.
var statusCodes = []catalog.ListingStatus{
	catalog.ListingActive,
	catalog.ListingSold,
	catalog.ListingExpired,
	catalog.ListingDraft,
}

func statusFromCode(code int) catalog.ListingStatus {
	if code < 0 || code >= len(statusCodes) {
		return catalog.ListingStatus(fmt.Sprintf("Unknown(%d)", code))
	}
	return statusCodes[code]
}

// Repo is the storage collaborator of the content sources.
type Repo struct {
	db           *sql.DB
	queryTimeout time.Duration
	now          func() time.Time
}

// New creates a catalog repository. queryTimeout <= 0 disables the per-query deadline.
func New(db *sql.DB, queryTimeout time.Duration) *Repo {
	return &Repo{db: db, queryTimeout: queryTimeout, now: time.Now}
}

// WithClock sets the time source for the event and offer expiry cut-off.
func (r *Repo) WithClock(now func() time.Time) *Repo {
	if now != nil {
		r.now = now
	}
	return r
}

// FetchActiveListings returns listings with status Active, newest first.
func (r *Repo) FetchActiveListings(ctx context.Context, category string) ([]catalog.Listing, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, listingsQuery, 0, category)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []catalog.Listing
	for rows.Next() {
		var (
			l      catalog.Listing
			status int
		)
		if err := rows.Scan(
			&l.ID, &l.Title, &l.Description, &l.Category, pq.Array(&l.Tags), pq.Array(&l.ImageURLs),
			&l.Price, &l.PriceMin, &l.PriceMax, &status, &l.Latitude, &l.Longitude,
			&l.LikeCount, &l.SaveCount, &l.CreatedAt, &l.BusinessName,
		); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		l.Status = statusFromCode(status)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return out, nil
}

// FetchActiveEvents returns events that have not ended, by start date.
func (r *Repo) FetchActiveEvents(ctx context.Context, category string) ([]catalog.Event, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, eventsQuery, r.now().UTC(), category)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []catalog.Event
	for rows.Next() {
		var e catalog.Event
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Category, pq.Array(&e.Tags), &e.ImageURL,
			&e.Latitude, &e.Longitude, &e.StartDate, &e.EndDate, &e.Price,
			&e.LikeCount, &e.SaveCount, &e.CreatedAt, &e.BusinessName,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

// FetchActiveOffers returns offers ending after now, soonest-ending first.
func (r *Repo) FetchActiveOffers(ctx context.Context, category string) ([]catalog.Offer, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, offersQuery, r.now().UTC(), category)
	if err != nil {
		return nil, fmt.Errorf("query offers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []catalog.Offer
	for rows.Next() {
		var o catalog.Offer
		if err := rows.Scan(
			&o.ID, &o.Title, &o.Description, &o.Category, pq.Array(&o.Tags), &o.ImageURL,
			&o.OriginalPrice, &o.DiscountedPrice, &o.Latitude, &o.Longitude,
			&o.StartDate, &o.EndDate, &o.LikeCount, &o.SaveCount, &o.CreatedAt, &o.BusinessName,
		); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate offers: %w", err)
	}
	return out, nil
}

func (r *Repo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}
