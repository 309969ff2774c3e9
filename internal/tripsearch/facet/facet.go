// Package facet filters and orders a flat offer list for display. It keeps
// no state and never modifies its input.
package facet

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
)

type SortKey string

const (
	SortPriceAsc     SortKey = "price-asc"
	SortPriceDesc    SortKey = "price-desc"
	SortDurationAsc  SortKey = "duration-asc"
	SortDurationDesc SortKey = "duration-desc"
	SortDepartureAsc SortKey = "departure-asc"
	SortRecommended  SortKey = "recommended"
)

// ParseSortKey falls back to SortRecommended for empty or unknown keys.
func ParseSortKey(value string) SortKey {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(value))); key {
	case SortPriceAsc, SortPriceDesc, SortDurationAsc, SortDurationDesc, SortDepartureAsc, SortRecommended:
		return key
	default:
		return SortRecommended
	}
}

// Filters are structured predicates; nil/zero fields are not applied.
type Filters struct {
	MinPrice      *float64
	MaxPrice      *float64
	MaxStops      *int
	DirectOnly    bool
	Refundable    bool
	CabinClass    string
	DepartureFrom *time.Time
	DepartureTo   *time.Time
	Text          string
}

// Columns are per-column substring filters, matched case-insensitively.
type Columns struct {
	Airline      string
	FlightNumber string
	Price        string
	Duration     string
	Stops        string
	Departure    string
	Arrival      string
}

func Apply(offers []entity.FlightOffer, filters Filters, columns Columns, key SortKey) []entity.FlightOffer {
	out := make([]entity.FlightOffer, 0, len(offers))
	for _, offer := range offers {
		if matchFilters(offer, filters) && matchColumns(offer, columns) {
			out = append(out, offer)
		}
	}
	Sort(out, key)
	return out
}

// Sort orders offers in place. Equal keys keep their relative order.
func Sort(offers []entity.FlightOffer, key SortKey) {
	var compare func(a, b entity.FlightOffer) int
	switch key {
	case SortPriceAsc:
		compare = func(a, b entity.FlightOffer) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceDesc:
		compare = func(a, b entity.FlightOffer) int { return cmp.Compare(b.Price, a.Price) }
	case SortDurationAsc:
		compare = func(a, b entity.FlightOffer) int { return cmp.Compare(a.DurationMinutes, b.DurationMinutes) }
	case SortDurationDesc:
		compare = func(a, b entity.FlightOffer) int { return cmp.Compare(b.DurationMinutes, a.DurationMinutes) }
	case SortDepartureAsc:
		compare = func(a, b entity.FlightOffer) int {
			return a.Departure.Timestamp().Compare(b.Departure.Timestamp())
		}
	default:
		compare = func(a, b entity.FlightOffer) int { return cmp.Compare(b.Score, a.Score) }
	}
	slices.SortStableFunc(offers, compare)
}

func matchFilters(o entity.FlightOffer, f Filters) bool {
	if f.MinPrice != nil && o.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && o.Price > *f.MaxPrice {
		return false
	}
	if f.MaxStops != nil && o.Stops > *f.MaxStops {
		return false
	}
	if f.DirectOnly && o.Stops != 0 {
		return false
	}
	if f.Refundable && !o.Refundable {
		return false
	}
	if f.CabinClass != "" && !strings.EqualFold(strings.TrimSpace(f.CabinClass), o.CabinClass) {
		return false
	}
	if f.DepartureFrom != nil && entity.DaysBetween(*f.DepartureFrom, o.Departure.Date) < 0 {
		return false
	}
	if f.DepartureTo != nil && entity.DaysBetween(o.Departure.Date, *f.DepartureTo) < 0 {
		return false
	}
	if f.Text != "" && !containsAny(f.Text, o.Airline, o.FlightNumber, o.Departure.Airport, o.Arrival.Airport) {
		return false
	}
	return true
}

func matchColumns(o entity.FlightOffer, c Columns) bool {
	return contains(o.Airline, c.Airline) &&
		contains(o.FlightNumber, c.FlightNumber) &&
		contains(strconv.FormatFloat(o.Price, 'f', -1, 64), c.Price) &&
		contains(o.Duration, c.Duration) &&
		contains(strconv.Itoa(o.Stops), c.Stops) &&
		contains(endpointText(o.Departure), c.Departure) &&
		contains(endpointText(o.Arrival), c.Arrival)
}

// endpointText is what the departure/arrival columns display.
func endpointText(e entity.Endpoint) string {
	return strings.Join([]string{e.Airport, e.City, e.Date.Format(entity.DateLayout), e.Time}, " ")
}

func contains(value, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(needle))
}

func containsAny(needle string, values ...string) bool {
	for _, v := range values {
		if contains(v, needle) {
			return true
		}
	}
	return false
}
