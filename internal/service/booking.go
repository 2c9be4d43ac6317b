package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/pkordes/itinerary-planner/internal/bookingcache"
	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/repo"
)

// Fetcher retrieves the booking detail payload behind a detail link.
// *bookingapi.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, detailLink string) (json.RawMessage, error)
}

// BookingService serves hotel booking options through the in-memory cache.
//
// A payload is fetched at most once per (hotel, detail link) for the life of
// the process: concurrent misses for the same key share one fetch, and the
// first successful result is kept and written through to the database so
// that a restarted process can warm its cache. Failed fetches are not cached.
type BookingService struct {
	hotels  repo.HotelRepo
	stored  repo.BookingRepo
	cache   *bookingcache.Cache
	fetcher Fetcher
	log     *slog.Logger

	group  singleflight.Group
	warmed sync.Map // uuid.UUID -> struct{}
	warmMu sync.Mutex
}

// NewBookingService constructs a BookingService.
func NewBookingService(hotels repo.HotelRepo, stored repo.BookingRepo, cache *bookingcache.Cache, fetcher Fetcher, log *slog.Logger) *BookingService {
	return &BookingService{
		hotels:  hotels,
		stored:  stored,
		cache:   cache,
		fetcher: fetcher,
		log:     log,
	}
}

// Get returns the booking options for a hotel of a trip. An empty detailLink
// falls back to the hotel's own detail link; any other link must point at the
// same scheme and host as the hotel's link. The link is used exactly as given
// as part of the cache key.
// Returns domain.ErrNotFound if the hotel is not part of the trip,
// domain.ErrValidation for a missing or foreign link and
// domain.ErrExternalFetch if the payload had to be fetched and the fetch failed.
func (s *BookingService) Get(ctx context.Context, tripID, hotelID uuid.UUID, detailLink string) (domain.BookingOptions, error) {
	hotel, err := s.hotels.GetByID(ctx, tripID, hotelID)
	if err != nil {
		return domain.BookingOptions{}, fmt.Errorf("service.BookingService.Get: %w", err)
	}
	if hotel.DetailLink == "" {
		return domain.BookingOptions{}, fmt.Errorf("service.BookingService.Get: %w: hotel has no detail link", domain.ErrValidation)
	}
	link := detailLink
	if link == "" {
		link = hotel.DetailLink
	} else if !sameOrigin(link, hotel.DetailLink) {
		return domain.BookingOptions{}, fmt.Errorf("service.BookingService.Get: %w: link is not on the hotel's detail host", domain.ErrValidation)
	}

	s.warm(ctx, tripID)

	if hit, ok := s.cache.Get(hotelID, link); ok {
		s.log.DebugContext(ctx, "booking options cache hit", "hotel_id", hotelID)
		return hit, nil
	}

	// Only the caller whose function ran performed the fetch; everyone else
	// that shared its result is served from the cache.
	var fetched bool
	v, err, _ := s.group.Do(bookingcache.Key(hotelID, link), func() (any, error) {
		// A caller that lost the race to an earlier flight may find the value
		// already stored.
		if hit, ok := s.cache.Get(hotelID, link); ok {
			return hit, nil
		}
		s.log.DebugContext(ctx, "booking options cache miss", "hotel_id", hotelID)
		// Detached so that one caller going away does not fail the others.
		detached := context.WithoutCancel(ctx)
		payload, err := s.fetcher.Fetch(detached, link)
		if err != nil {
			return nil, err
		}
		fetched = true
		entry := s.cache.Put(hotelID, link, payload)
		if err := s.stored.Upsert(detached, entry); err != nil {
			s.log.ErrorContext(ctx, "persist booking options", "hotel_id", hotelID, "error", err)
		}
		return entry, nil
	})
	if err != nil {
		return domain.BookingOptions{}, fmt.Errorf("service.BookingService.Get: %w", err)
	}
	entry := v.(domain.BookingOptions)
	entry.Cached = !fetched
	return entry, nil
}

// warm loads the persisted payloads of a trip into the cache the first time
// the trip is seen. A failed load is logged and retried on the next call.
func (s *BookingService) warm(ctx context.Context, tripID uuid.UUID) {
	if _, ok := s.warmed.Load(tripID); ok {
		return
	}
	s.warmMu.Lock()
	defer s.warmMu.Unlock()
	if _, ok := s.warmed.Load(tripID); ok {
		return
	}
	entries, err := s.stored.ListByTrip(ctx, tripID)
	if err != nil {
		s.log.WarnContext(ctx, "load stored booking options", "trip_id", tripID, "error", err)
		return
	}
	for _, e := range entries {
		if _, ok := s.cache.Get(e.HotelID, e.DetailLink); !ok {
			s.cache.Load(e)
		}
	}
	s.warmed.Store(tripID, struct{}{})
	s.log.DebugContext(ctx, "booking options warmed", "trip_id", tripID, "entries", len(entries))
}

// sameOrigin reports whether two absolute http(s) links share scheme and host.
func sameOrigin(link, ref string) bool {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return false
	}
	r, err := url.Parse(ref)
	if err != nil || r.Host == "" {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") &&
		strings.EqualFold(u.Scheme, r.Scheme) && strings.EqualFold(u.Host, r.Host)
}
