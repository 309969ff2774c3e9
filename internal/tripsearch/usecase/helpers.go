package usecase

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
)

func buildCacheKey(req entity.SearchRequest, includeHotels bool, today time.Time) string {
	return fmt.Sprintf(
		"%s|%s|%s|%s|%d/%d/%d|%s|%s|%d|%s|%s|%t|%s",
		req.Origin,
		req.Destination,
		req.DepartureDate.Format(entity.DateLayout),
		formatOptionalDate(req.ReturnDate),
		req.Passengers.Adults,
		req.Passengers.Children,
		req.Passengers.Infants,
		req.CabinClass,
		req.Currency,
		req.CheckedBags,
		formatRequestFilters(req.Filters),
		formatPreferences(req.Preferences),
		includeHotels,
		today.Format(entity.DateLayout),
	)
}

func formatOptionalDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(entity.DateLayout)
}

func formatRequestFilters(f entity.RequestFilters) string {
	price := ""
	if f.MaxPrice != nil {
		price = fmt.Sprintf("%g", *f.MaxPrice)
	}
	stops := ""
	if f.MaxStops != nil {
		stops = fmt.Sprintf("%d", *f.MaxStops)
	}
	return price + "," + stops + "," + formatCodes(f.Airlines)
}

func formatPreferences(p entity.Preferences) string {
	return formatCodes(p.PreferredAirlines) + "," + strings.ToLower(p.SortBy)
}

func formatCodes(values []string) string {
	clean := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.ToUpper(strings.TrimSpace(value)); trimmed != "" {
			clean = append(clean, trimmed)
		}
	}
	slices.Sort(clean)
	return strings.Join(clean, "|")
}

func cloneResolvedTrip(value *resolvedTrip) *resolvedTrip {
	if value == nil {
		return nil
	}
	clone := &resolvedTrip{
		outbound:      cloneResolution(value.outbound),
		roundTrips:    slices.Clone(value.roundTrips),
		vacations:     slices.Clone(value.vacations),
		rejectedPairs: value.rejectedPairs,
		hotelsFound:   value.hotelsFound,
		hotelError:    value.hotelError,
	}
	if value.inbound != nil {
		inbound := cloneResolution(*value.inbound)
		clone.inbound = &inbound
	}
	return clone
}

func cloneResolution(r Resolution) Resolution {
	out := r
	out.Offers = slices.Clone(r.Offers)
	out.Attempts = make([]Attempt, len(r.Attempts))
	for i, a := range r.Attempts {
		a.Rejected = maps.Clone(a.Rejected)
		out.Attempts[i] = a
	}
	return out
}
