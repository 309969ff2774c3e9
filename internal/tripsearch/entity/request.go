package entity

import (
	"strings"
	"time"
)

const (
	DefaultCabinClass = "economy"
	DefaultCurrency   = "USD"
)

type Passengers struct {
	Adults   int
	Children int
	Infants  int
}

func (p Passengers) Total() int {
	return p.Adults + p.Children + p.Infants
}

// RequestFilters and Preferences are forwarded to the backend provider untouched.
type RequestFilters struct {
	MaxPrice *float64
	MaxStops *int
	Airlines []string
}

type Preferences struct {
	PreferredAirlines []string
	SortBy            string
}

// SearchRequest is immutable for the duration of one search.
type SearchRequest struct {
	Origin        string
	Destination   string
	DepartureDate time.Time
	ReturnDate    *time.Time
	Passengers    Passengers
	CabinClass    string
	Currency      string
	CheckedBags   int
	Filters       RequestFilters
	Preferences   Preferences
}

// Normalized returns a copy with trimmed upper-case airport codes, dates
// truncated to midnight and cabin/currency defaults applied.
func (r SearchRequest) Normalized() SearchRequest {
	out := r
	out.Origin = strings.ToUpper(strings.TrimSpace(r.Origin))
	out.Destination = strings.ToUpper(strings.TrimSpace(r.Destination))
	if !r.DepartureDate.IsZero() {
		out.DepartureDate = DateOnly(r.DepartureDate)
	}
	if r.ReturnDate != nil {
		ret := DateOnly(*r.ReturnDate)
		out.ReturnDate = &ret
	}
	out.CabinClass = strings.ToLower(strings.TrimSpace(r.CabinClass))
	if out.CabinClass == "" {
		out.CabinClass = DefaultCabinClass
	}
	out.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	if out.Currency == "" {
		out.Currency = DefaultCurrency
	}
	return out
}

// LegQuery is the route and date searched for one leg.
type LegQuery struct {
	Leg         Leg
	Origin      string
	Destination string
	Date        time.Time
}

// Leg returns the query for the given leg. The return leg swaps the
// airports and uses the return date; ok is false when no return date is set.
func (r SearchRequest) Leg(leg Leg) (LegQuery, bool) {
	if leg == LegReturn {
		if r.ReturnDate == nil {
			return LegQuery{}, false
		}
		return LegQuery{Leg: LegReturn, Origin: r.Destination, Destination: r.Origin, Date: *r.ReturnDate}, true
	}
	return LegQuery{Leg: LegOutbound, Origin: r.Origin, Destination: r.Destination, Date: r.DepartureDate}, true
}
