package addressing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"deliverytracker/internal/core/domain/model/address"
	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/core/ports"
	"deliverytracker/internal/pkg/guard"
)

// DefaultCallTimeout bounds every external call when no timeout is configured.
const DefaultCallTimeout = 10 * time.Second

// Resolver turns Requests into addresses using a postal-code lookup and a geocoder.
//
// Only postal-code failures are surfaced, always as kernel.InvalidPostalCodeError.
// Geocoding failures degrade to an address without coordinates.
type Resolver struct {
	postal   ports.PostalCodeLookup
	geocoder ports.Geocoder
	timeout  time.Duration
	logger   *slog.Logger
}

// NewResolver creates a Resolver. A non-positive timeout falls back to DefaultCallTimeout.
func NewResolver(
	postal ports.PostalCodeLookup,
	geocoder ports.Geocoder,
	timeout time.Duration,
	logger *slog.Logger,
) *Resolver {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &Resolver{
		postal:   postal,
		geocoder: geocoder,
		timeout:  timeout,
		logger:   logger.With("component", "address_resolver"),
	}
}

// ResolveRoute resolves origin then destination. Both must succeed.
func (r *Resolver) ResolveRoute(ctx context.Context, origin, destination Request) (ResolvedRoute, error) {
	from, err := r.Resolve(ctx, origin)
	if err != nil {
		return ResolvedRoute{}, err
	}

	to, err := r.Resolve(ctx, destination)
	if err != nil {
		return ResolvedRoute{}, err
	}

	return ResolvedRoute{origin: from, destination: to, guard: guard.NewConstructorGuard()}, nil
}

// Resolve looks up the postal code, then geocodes the full address, falling
// back to the postal code alone. The returned address is transient.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*address.Address, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	found, err := r.lookup(ctx, req.PostalCode())
	if err != nil {
		return nil, err
	}

	street := found.Street
	if street == "" {
		street = address.StreetNotProvided
	}

	coordinates := r.geocode(ctx, req, street, found)

	resolved, err := address.NewAddress(req.PostalCode(), address.Fields{
		Street:     street,
		Number:     req.Number(),
		Complement: req.Complement(),
		City:       found.City,
		Region:     found.Region,
	}, coordinates)
	if err != nil {
		// The lookup answered with data that does not form a valid address.
		return nil, kernel.NewInvalidPostalCodeErrorWithCause(req.PostalCode().String(), err)
	}

	return resolved, nil
}

func (r *Resolver) lookup(ctx context.Context, code kernel.PostalCode) (ports.PostalAddress, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	found, err := r.postal.Lookup(callCtx, code)
	if err == nil {
		return found, nil
	}

	if errors.Is(err, kernel.ErrInvalidPostalCode) {
		r.logger.InfoContext(ctx, "Postal code not found", "postal_code", code.String())
		return ports.PostalAddress{}, err
	}

	r.logger.WarnContext(ctx, "Postal code lookup failed", "postal_code", code.String(), "error", err)
	return ports.PostalAddress{}, kernel.NewInvalidPostalCodeErrorWithCause(code.String(), err)
}

func (r *Resolver) geocode(
	ctx context.Context,
	req Request,
	street string,
	found ports.PostalAddress,
) *kernel.Coordinates {
	query := ports.GeocodeQuery{
		Street: street,
		Number: req.Number(),
		City:   found.City,
		Region: found.Region,
	}

	if c, ok := r.try(ctx, "address", func(callCtx context.Context) (kernel.Coordinates, error) {
		return r.geocoder.GeocodeAddress(callCtx, query)
	}); ok {
		return &c
	}

	if c, ok := r.try(ctx, "postal_code", func(callCtx context.Context) (kernel.Coordinates, error) {
		return r.geocoder.GeocodePostalCode(callCtx, req.PostalCode())
	}); ok {
		return &c
	}

	return nil
}

func (r *Resolver) try(
	ctx context.Context,
	strategy string,
	call func(context.Context) (kernel.Coordinates, error),
) (kernel.Coordinates, bool) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	c, err := call(callCtx)
	if err == nil {
		if validErr := c.Validate(); validErr == nil {
			return c, true
		}
		err = errors.New("geocoder returned unconstructed coordinates")
	}

	if errors.Is(err, ports.ErrNoGeocodeMatch) {
		r.logger.DebugContext(ctx, "Geocoding found no match", "strategy", strategy)
	} else {
		r.logger.WarnContext(ctx, "Geocoding failed", "strategy", strategy, "error", err)
	}
	return kernel.Coordinates{}, false
}
