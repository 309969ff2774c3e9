package inbound

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/facet"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/usecase"
)

const HeaderSessionID = "X-Session-ID"

// parseTripsInput only rejects malformed values. Missing or inconsistent
// fields are left for request validation to report together.
func parseTripsInput(r *http.Request) (usecase.TripsInput, error) {
	q := r.URL.Query()

	departureDate, err := parseDate(q, "departureDate", "departure_date")
	if err != nil {
		return usecase.TripsInput{}, err
	}
	var zero time.Time
	if departureDate == nil {
		departureDate = &zero
	}
	returnDate, err := parseDate(q, "returnDate", "return_date")
	if err != nil {
		return usecase.TripsInput{}, err
	}

	adults := 1
	if err := parseInt(q, "adults", "passengers", &adults); err != nil {
		return usecase.TripsInput{}, err
	}
	var children, infants, checkedBags int
	if err := parseInt(q, "children", "", &children); err != nil {
		return usecase.TripsInput{}, err
	}
	if err := parseInt(q, "infants", "", &infants); err != nil {
		return usecase.TripsInput{}, err
	}
	if err := parseInt(q, "checkedBags", "checked_bags", &checkedBags); err != nil {
		return usecase.TripsInput{}, err
	}

	includeHotels, err := parseBool(q, "includeHotels", "include_hotels")
	if err != nil {
		return usecase.TripsInput{}, err
	}

	filters, err := parseFacetFilters(q)
	if err != nil {
		return usecase.TripsInput{}, err
	}

	request := entity.SearchRequest{
		Origin:        strings.TrimSpace(q.Get("origin")),
		Destination:   strings.TrimSpace(q.Get("destination")),
		DepartureDate: *departureDate,
		ReturnDate:    returnDate,
		Passengers:    entity.Passengers{Adults: adults, Children: children, Infants: infants},
		CabinClass:    strings.TrimSpace(firstNotEmpty(q.Get("cabinClass"), q.Get("cabin_class"))),
		Currency:      strings.TrimSpace(q.Get("currency")),
		CheckedBags:   checkedBags,
		Filters: entity.RequestFilters{
			MaxPrice: filters.MaxPrice,
			MaxStops: filters.MaxStops,
			Airlines: parseList(q, "airlines", "airline"),
		},
		Preferences: entity.Preferences{
			PreferredAirlines: parseList(q, "preferredAirlines", "preferred_airlines"),
			SortBy:            strings.TrimSpace(q.Get("sort")),
		},
	}

	return usecase.TripsInput{
		Request:       request,
		Filters:       filters,
		Columns:       parseColumns(q),
		Sort:          facet.ParseSortKey(q.Get("sort")),
		IncludeHotels: includeHotels,
		SessionID:     strings.TrimSpace(firstNotEmpty(r.Header.Get(HeaderSessionID), q.Get("sessionId"))),
	}, nil
}

func parseFacetFilters(q url.Values) (facet.Filters, error) {
	filters := facet.Filters{
		CabinClass: strings.TrimSpace(firstNotEmpty(q.Get("facetCabinClass"), q.Get("facet_cabin_class"))),
		Text:       strings.TrimSpace(q.Get("q")),
	}
	var err error
	if filters.MinPrice, err = parseFloatPtr(q, "minPrice", "min_price"); err != nil {
		return filters, err
	}
	if filters.MaxPrice, err = parseFloatPtr(q, "maxPrice", "max_price"); err != nil {
		return filters, err
	}
	if filters.MaxStops, err = parseIntPtr(q, "maxStops", "max_stops"); err != nil {
		return filters, err
	}
	if filters.DirectOnly, err = parseBool(q, "directOnly", "direct_only"); err != nil {
		return filters, err
	}
	if filters.Refundable, err = parseBool(q, "refundable", ""); err != nil {
		return filters, err
	}
	if filters.DepartureFrom, err = parseDate(q, "departFrom", "depart_from"); err != nil {
		return filters, err
	}
	if filters.DepartureTo, err = parseDate(q, "departTo", "depart_to"); err != nil {
		return filters, err
	}
	return filters, nil
}

func parseColumns(q url.Values) facet.Columns {
	col := func(name string) string { return strings.TrimSpace(q.Get("col." + name)) }
	return facet.Columns{
		Airline:      col("airline"),
		FlightNumber: col("flightNumber"),
		Price:        col("price"),
		Duration:     col("duration"),
		Stops:        col("stops"),
		Departure:    col("departure"),
		Arrival:      col("arrival"),
	}
}

func lookup(q url.Values, key, altKey string) string {
	if altKey == "" {
		return strings.TrimSpace(q.Get(key))
	}
	return strings.TrimSpace(firstNotEmpty(q.Get(key), q.Get(altKey)))
}

func invalid(key string) error {
	return pkgerror.NewBusiness("invalid "+key, pkgerror.CodeInvalidInput)
}

func parseDate(q url.Values, key, altKey string) (*time.Time, error) {
	value := lookup(q, key, altKey)
	if value == "" {
		return nil, nil
	}
	parsed, err := entity.ParseDate(value, time.Local)
	if err != nil {
		return nil, invalid(key)
	}
	return &parsed, nil
}

func parseInt(q url.Values, key, altKey string, target *int) error {
	value := lookup(q, key, altKey)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return invalid(key)
	}
	*target = parsed
	return nil
}

func parseIntPtr(q url.Values, key, altKey string) (*int, error) {
	var value int
	if lookup(q, key, altKey) == "" {
		return nil, nil
	}
	if err := parseInt(q, key, altKey, &value); err != nil {
		return nil, err
	}
	return &value, nil
}

func parseFloatPtr(q url.Values, key, altKey string) (*float64, error) {
	value := lookup(q, key, altKey)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, invalid(key)
	}
	return &parsed, nil
}

func parseBool(q url.Values, key, altKey string) (bool, error) {
	value := lookup(q, key, altKey)
	if value == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, invalid(key)
	}
	return parsed, nil
}

func parseList(q url.Values, key, altKey string) []string {
	value := lookup(q, key, altKey)
	if value == "" {
		return nil
	}
	out := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func firstNotEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func formatOptionalDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(entity.DateLayout)
	return &formatted
}
