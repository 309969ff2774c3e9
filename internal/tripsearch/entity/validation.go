package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ValidationError collects every problem found in a search request.
type ValidationError struct {
	fields map[string][]string
}

func newValidationError() *ValidationError {
	return &ValidationError{fields: make(map[string][]string)}
}

func IsValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

func (ve *ValidationError) add(field, msg string) {
	ve.fields[field] = append(ve.fields[field], msg)
}

func (ve *ValidationError) Fields() map[string][]string {
	return ve.fields
}

func (ve *ValidationError) Error() string {
	keys := make([]string, 0, len(ve.fields))
	for k := range ve.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(ve.fields[k], "; ")))
	}
	return "invalid search request: " + strings.Join(parts, ", ")
}

// ValidateSearchRequest checks a normalized request. today must already be
// truncated to midnight.
func ValidateSearchRequest(r SearchRequest, today time.Time) error {
	ve := newValidationError()

	validateAirport(ve, "origin", r.Origin)
	validateAirport(ve, "destination", r.Destination)
	if r.Origin != "" && r.Origin == r.Destination {
		ve.add("destination", "destination must differ from origin")
	}

	switch {
	case r.DepartureDate.IsZero():
		ve.add("departureDate", "departureDate is required")
	case DaysBetween(today, r.DepartureDate) < 0:
		ve.add("departureDate", "departureDate must not be in the past")
	}

	if r.ReturnDate != nil && !r.DepartureDate.IsZero() && DaysBetween(r.DepartureDate, *r.ReturnDate) < 0 {
		ve.add("returnDate", "returnDate must not be before departureDate")
	}

	if r.Passengers.Adults < 1 {
		ve.add("passengers.adults", "at least one adult is required")
	}
	if r.Passengers.Children < 0 {
		ve.add("passengers.children", "children must not be negative")
	}
	if r.Passengers.Infants < 0 {
		ve.add("passengers.infants", "infants must not be negative")
	}
	if r.Passengers.Infants > r.Passengers.Adults && r.Passengers.Adults >= 1 {
		ve.add("passengers.infants", "each infant must travel with an adult")
	}
	if r.CheckedBags < 0 {
		ve.add("checkedBags", "checkedBags must not be negative")
	}

	if len(ve.fields) > 0 {
		return ve
	}
	return nil
}

func validateAirport(ve *ValidationError, field, code string) {
	if code == "" {
		ve.add(field, field+" is required")
		return
	}
	if len(code) != 3 {
		ve.add(field, field+" must be a 3-letter IATA code")
		return
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			ve.add(field, field+" must be a 3-letter IATA code")
			return
		}
	}
}
