package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/bundle"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/facet"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/provider"
)

var ErrSuperseded = pkgerror.NewBusiness("search superseded by a newer request", pkgerror.CodeConflict)

type TripsInput struct {
	Request       entity.SearchRequest
	Filters       facet.Filters
	Columns       facet.Columns
	Sort          facet.SortKey
	IncludeHotels bool
	// SessionID groups searches from one client; only the latest search of
	// a session may return results.
	SessionID string
}

type LegResult struct {
	Offers         []entity.FlightOffer
	TotalOffers    int
	Source         entity.Source
	FallbackReason string
	Attempts       []Attempt
}

type TripsMetadata struct {
	RejectedPairs int
	HotelsFound   int
	HotelError    string
	SearchTimeMs  int64
	CacheHit      bool
}

type TripsOutput struct {
	SearchID   string
	Request    entity.SearchRequest
	Outbound   LegResult
	Return     *LegResult
	RoundTrips []entity.RoundTripPackage
	Vacations  []entity.VacationPackage
	Metadata   TripsMetadata
}

// resolvedTrip is the facet-independent part of a search, cached per request.
type resolvedTrip struct {
	outbound      Resolution
	inbound       *Resolution
	roundTrips    []entity.RoundTripPackage
	vacations     []entity.VacationPackage
	rejectedPairs int
	hotelsFound   int
	hotelError    string
}

func (u *Usecase) Trips(ctx context.Context, in TripsInput) (*TripsOutput, error) {
	start := time.Now()
	today := entity.DateOnly(u.now())
	req := in.Request.Normalized()
	if err := entity.ValidateSearchRequest(req, today); err != nil {
		return nil, err
	}

	gen := u.generations.Begin(in.SessionID)
	defer u.generations.Done(in.SessionID, gen)

	key := buildCacheKey(req, in.IncludeHotels, today)
	trip, hit := u.cache.Get(key)
	if !hit {
		var err error
		trip, err = u.resolve(ctx, req, in, today, gen)
		if err != nil {
			return nil, err
		}
		u.cache.Set(key, trip, u.cacheTTL)
	}

	if !u.generations.IsLatest(in.SessionID, gen) {
		slog.InfoContext(ctx, "discarding superseded search", "session", in.SessionID)
		return nil, ErrSuperseded
	}

	out := &TripsOutput{
		SearchID:   u.uuid.Generate(),
		Request:    req,
		Outbound:   legResult(trip.outbound, in),
		RoundTrips: trip.roundTrips,
		Vacations:  trip.vacations,
		Metadata: TripsMetadata{
			RejectedPairs: trip.rejectedPairs,
			HotelsFound:   trip.hotelsFound,
			HotelError:    trip.hotelError,
			SearchTimeMs:  time.Since(start).Milliseconds(),
			CacheHit:      hit,
		},
	}
	if trip.inbound != nil {
		ret := legResult(*trip.inbound, in)
		out.Return = &ret
	}
	return out, nil
}

// resolve runs each stage only after the previous one finished, since each
// consumes the full output of the one before.
func (u *Usecase) resolve(ctx context.Context, req entity.SearchRequest, in TripsInput, today time.Time, gen uint64) (*resolvedTrip, error) {
	outLeg, _ := req.Leg(entity.LegOutbound)
	trip := &resolvedTrip{outbound: u.resolver.Resolve(ctx, req, outLeg, today)}

	retLeg, roundTrip := req.Leg(entity.LegReturn)
	if !roundTrip {
		return trip, nil
	}
	if !u.generations.IsLatest(in.SessionID, gen) {
		return nil, ErrSuperseded
	}

	inbound := u.resolver.Resolve(ctx, req, retLeg, today)
	trip.inbound = &inbound

	paired := bundle.PairRoundTrips(trip.outbound.Offers, inbound.Offers, req)
	trip.roundTrips = paired.Packages
	trip.rejectedPairs = paired.Rejected
	if paired.Rejected > 0 {
		slog.InfoContext(ctx, "round trip pairs rejected", "rejected", paired.Rejected)
	}

	if !in.IncludeHotels || len(trip.roundTrips) == 0 || u.hotels == nil {
		trip.vacations = []entity.VacationPackage{}
		return trip, nil
	}
	if !u.generations.IsLatest(in.SessionID, gen) {
		return nil, ErrSuperseded
	}

	hotels, err := u.searchHotels(ctx, req, len(trip.outbound.Offers))
	if err != nil {
		slog.WarnContext(ctx, "hotel search failed", "error", err)
		trip.hotelError = err.Error()
		trip.vacations = []entity.VacationPackage{}
		return trip, nil
	}
	trip.hotelsFound = len(hotels)
	trip.vacations = bundle.Vacations(trip.roundTrips, hotels)
	return trip, nil
}

func (u *Usecase) searchHotels(ctx context.Context, req entity.SearchRequest, flightCount int) ([]entity.HotelOffer, error) {
	callCtx := ctx
	if u.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	hotels, err := u.hotels.SearchHotels(callCtx, provider.HotelRequest{
		AirportCode:  req.Destination,
		CheckInDate:  req.DepartureDate,
		CheckOutDate: *req.ReturnDate,
		Adults:       req.Passengers.Adults,
		Children:     req.Passengers.Children,
		Rooms:        1,
		Currency:     req.Currency,
	})
	if err != nil {
		return nil, err
	}
	if limit := bundle.HotelCandidateLimit(flightCount); len(hotels) > limit {
		hotels = hotels[:limit]
	}
	return hotels, nil
}

func legResult(res Resolution, in TripsInput) LegResult {
	return LegResult{
		Offers:         facet.Apply(res.Offers, in.Filters, in.Columns, in.Sort),
		TotalOffers:    len(res.Offers),
		Source:         res.Source,
		FallbackReason: res.FallbackReason,
		Attempts:       res.Attempts,
	}
}
