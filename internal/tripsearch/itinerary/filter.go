// Package itinerary decides whether a normalized offer belongs to a leg.
package itinerary

import (
	"strings"
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
)

// DateWindowDays is how far, in either direction, an offer may depart from
// the requested date. Providers often answer with near-date alternatives.
const DateWindowDays = 14

type Reason string

const (
	ReasonAccepted      Reason = ""
	ReasonRouteMismatch Reason = "route_mismatch"
	ReasonInPast        Reason = "departure_in_past"
	ReasonOutsideWindow Reason = "outside_date_window"
)

type Filter struct {
	request entity.SearchRequest
	today   time.Time
}

// New binds the filter to one search. today is truncated to midnight once.
func New(request entity.SearchRequest, today time.Time) Filter {
	return Filter{request: request, today: entity.DateOnly(today)}
}

func (f Filter) Accept(offer entity.FlightOffer, leg entity.Leg) bool {
	return f.Check(offer, leg) == ReasonAccepted
}

// Check returns the first failed rule, or ReasonAccepted.
func (f Filter) Check(offer entity.FlightOffer, leg entity.Leg) Reason {
	query, ok := f.request.Leg(leg)
	if !ok {
		return ReasonRouteMismatch
	}
	if !strings.EqualFold(offer.Departure.Airport, query.Origin) || !strings.EqualFold(offer.Arrival.Airport, query.Destination) {
		return ReasonRouteMismatch
	}
	if entity.DaysBetween(f.today, offer.Departure.Date) < 0 {
		return ReasonInPast
	}
	if diff := entity.DaysBetween(query.Date, offer.Departure.Date); diff > DateWindowDays || diff < -DateWindowDays {
		return ReasonOutsideWindow
	}
	return ReasonAccepted
}

// Result holds what survived filtering and why the rest did not.
type Result struct {
	Accepted []entity.FlightOffer
	Rejected map[Reason]int
}

func (r Result) RejectedCount() int {
	total := 0
	for _, n := range r.Rejected {
		total += n
	}
	return total
}

// Apply keeps offers in input order and counts rejections per reason.
func (f Filter) Apply(offers []entity.FlightOffer, leg entity.Leg) Result {
	res := Result{Accepted: make([]entity.FlightOffer, 0, len(offers)), Rejected: map[Reason]int{}}
	for _, offer := range offers {
		reason := f.Check(offer, leg)
		if reason != ReasonAccepted {
			res.Rejected[reason]++
			continue
		}
		res.Accepted = append(res.Accepted, offer)
	}
	return res
}
