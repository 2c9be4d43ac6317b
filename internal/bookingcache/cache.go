// Package bookingcache memoizes hotel booking-option detail payloads keyed by
// (hotel id, detail link).
//
// Entries never expire here; staleness is the owner's concern. A failed fetch
// must simply not be Put, so failures are never cached. The cache does not
// coalesce concurrent misses for the same key; callers that care wrap it
// (see service.BookingService).
package bookingcache

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// Cache is safe for concurrent use. Construct one per owner with New; there is
// no package-level instance.
type Cache struct {
	items *gocache.Cache
	now   func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the clock used to stamp FetchedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New returns an empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		// No default expiration and no janitor goroutine.
		items: gocache.New(gocache.NoExpiration, 0),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key is the cache identity of a booking-options lookup.
// The NUL separator cannot occur in a UUID string, so keys never collide.
func Key(hotelID uuid.UUID, detailLink string) string {
	return hotelID.String() + "\x00" + detailLink
}

// Get returns the stored entry for (hotelID, detailLink) with Cached set.
func (c *Cache) Get(hotelID uuid.UUID, detailLink string) (domain.BookingOptions, bool) {
	v, ok := c.items.Get(Key(hotelID, detailLink))
	if !ok {
		return domain.BookingOptions{}, false
	}
	entry := v.(domain.BookingOptions)
	entry.Cached = true
	return entry, true
}

// Put stores payload stamped with the current time and returns the entry with
// Cached unset, as seen by the call that performed the fetch.
func (c *Cache) Put(hotelID uuid.UUID, detailLink string, payload json.RawMessage) domain.BookingOptions {
	return c.Load(domain.BookingOptions{
		HotelID:    hotelID,
		DetailLink: detailLink,
		Payload:    payload,
		FetchedAt:  c.now().UTC(),
	})
}

// Load stores an entry that was fetched earlier, keeping its FetchedAt.
// It is used to seed the cache from persisted payloads.
func (c *Cache) Load(entry domain.BookingOptions) domain.BookingOptions {
	entry.Cached = false
	entry.Payload = append(json.RawMessage(nil), entry.Payload...)
	c.items.Set(Key(entry.HotelID, entry.DetailLink), entry, gocache.NoExpiration)
	return entry
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	return c.items.ItemCount()
}
