package provider

import (
	"context"
	"errors"
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
)

var (
	// ErrUnavailable means the source is not configured and was skipped.
	ErrUnavailable = errors.New("offer source unavailable")
	// ErrRejected means the source answered but reported failure.
	ErrRejected = errors.New("offer source rejected search")
)

// SearchRequest is one leg's query as sent to an offer source.
type SearchRequest struct {
	Leg           entity.Leg
	Origin        string
	Destination   string
	DepartureDate time.Time
	ReturnDate    *time.Time
	Passengers    entity.Passengers
	CabinClass    string
	Currency      string
	CheckedBags   int
	Filters       entity.RequestFilters
	Preferences   entity.Preferences
}

// NewSearchRequest builds the query for one leg. Only the outbound leg
// carries the trip's return date.
func NewSearchRequest(req entity.SearchRequest, leg entity.LegQuery) SearchRequest {
	out := SearchRequest{
		Leg:           leg.Leg,
		Origin:        leg.Origin,
		Destination:   leg.Destination,
		DepartureDate: leg.Date,
		Passengers:    req.Passengers,
		CabinClass:    req.CabinClass,
		Currency:      req.Currency,
		CheckedBags:   req.CheckedBags,
		Filters:       req.Filters,
		Preferences:   req.Preferences,
	}
	if leg.Leg == entity.LegOutbound {
		out.ReturnDate = req.ReturnDate
	}
	return out
}

// OfferSource is one tier of the fallback chain. Records it returns are
// normalized and filtered by the caller.
type OfferSource interface {
	Name() entity.Source
	Search(ctx context.Context, req SearchRequest) ([]entity.RawOffer, error)
}

type HotelRequest struct {
	AirportCode  string
	CheckInDate  time.Time
	CheckOutDate time.Time
	Adults       int
	Children     int
	Rooms        int
	Currency     string
}

func (r HotelRequest) Nights() int {
	nights := entity.DaysBetween(r.CheckInDate, r.CheckOutDate)
	if nights < 1 {
		return 1
	}
	return nights
}

type HotelSource interface {
	SearchHotels(ctx context.Context, req HotelRequest) ([]entity.HotelOffer, error)
}
