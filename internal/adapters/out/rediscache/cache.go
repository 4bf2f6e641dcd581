// Package rediscache decorates the external address lookups with a Redis
// read-through cache. Only successful answers are stored, so an unknown
// postal code or an empty geocode is asked upstream again next time.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/core/ports"
)

// DefaultTTL keeps entries for a week; postal data changes rarely.
const DefaultTTL = 7 * 24 * time.Hour

const keyPrefix = "deliverytracker:"

type store struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func newStore(rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger, component string) store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return store{rdb: rdb, ttl: ttl, logger: logger.With("component", component)}
}

// load reports whether key was found and decoded into dst.
// Redis failures are logged and treated as a miss.
func (s store) load(ctx context.Context, key string, dst any) bool {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		s.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		return false
	}
	if err = json.Unmarshal(raw, dst); err != nil {
		s.logger.WarnContext(ctx, "cache entry is corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (s store) save(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err = s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

type postalEntry struct {
	PostalCode string `json:"postal_code"`
	Street     string `json:"street"`
	District   string `json:"district"`
	City       string `json:"city"`
	Region     string `json:"region"`
}

// PostalCodeLookup caches a ports.PostalCodeLookup.
type PostalCodeLookup struct {
	next  ports.PostalCodeLookup
	store store
}

// NewPostalCodeLookup wraps next. A non-positive ttl selects DefaultTTL.
func NewPostalCodeLookup(next ports.PostalCodeLookup, rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger) *PostalCodeLookup {
	return &PostalCodeLookup{
		next:  next,
		store: newStore(rdb, ttl, logger, "postal_code_cache"),
	}
}

// Lookup implements ports.PostalCodeLookup.
func (c *PostalCodeLookup) Lookup(ctx context.Context, code kernel.PostalCode) (ports.PostalAddress, error) {
	key := keyPrefix + "cep:" + code.String()

	var entry postalEntry
	if c.store.load(ctx, key, &entry) {
		if pc, err := kernel.NewPostalCode(entry.PostalCode); err == nil {
			return ports.PostalAddress{
				PostalCode: pc,
				Street:     entry.Street,
				District:   entry.District,
				City:       entry.City,
				Region:     entry.Region,
			}, nil
		}
	}

	found, err := c.next.Lookup(ctx, code)
	if err != nil {
		return ports.PostalAddress{}, err
	}

	c.store.save(ctx, key, postalEntry{
		PostalCode: found.PostalCode.String(),
		Street:     found.Street,
		District:   found.District,
		City:       found.City,
		Region:     found.Region,
	})
	return found, nil
}

type coordinatesEntry struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Geocoder caches a ports.Geocoder.
type Geocoder struct {
	next  ports.Geocoder
	store store
}

// NewGeocoder wraps next. A non-positive ttl selects DefaultTTL.
func NewGeocoder(next ports.Geocoder, rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger) *Geocoder {
	return &Geocoder{
		next:  next,
		store: newStore(rdb, ttl, logger, "geocode_cache"),
	}
}

// GeocodeAddress implements ports.Geocoder.
func (g *Geocoder) GeocodeAddress(ctx context.Context, query ports.GeocodeQuery) (kernel.Coordinates, error) {
	key := keyPrefix + "geo:addr:" + strings.ToLower(strings.Join(
		[]string{query.Street, query.Number, query.City, query.Region}, "|"))

	return g.cached(ctx, key, func() (kernel.Coordinates, error) {
		return g.next.GeocodeAddress(ctx, query)
	})
}

// GeocodePostalCode implements ports.Geocoder.
func (g *Geocoder) GeocodePostalCode(ctx context.Context, code kernel.PostalCode) (kernel.Coordinates, error) {
	return g.cached(ctx, keyPrefix+"geo:cep:"+code.String(), func() (kernel.Coordinates, error) {
		return g.next.GeocodePostalCode(ctx, code)
	})
}

func (g *Geocoder) cached(ctx context.Context, key string, fetch func() (kernel.Coordinates, error)) (kernel.Coordinates, error) {
	var entry coordinatesEntry
	if g.store.load(ctx, key, &entry) {
		if coords, err := kernel.NewCoordinates(entry.Latitude, entry.Longitude); err == nil {
			return coords, nil
		}
	}

	coords, err := fetch()
	if err != nil {
		return kernel.Coordinates{}, err
	}

	g.store.save(ctx, key, coordinatesEntry{Latitude: coords.Latitude(), Longitude: coords.Longitude()})
	return coords, nil
}
