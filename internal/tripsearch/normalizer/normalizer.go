// Package normalizer turns provider records into complete FlightOffer values.
package normalizer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
)

const (
	DefaultPrice           = 299.0
	DefaultDurationMinutes = 120
	DefaultMaxCheckedBags  = 2
	SentinelTime           = "00:00"
	UnknownAirline         = "Unknown Airline"
	UnknownAirport         = "N/A"

	maxCount = 100000
)

// Normalizer fills gaps in raw records using the leg being searched. Airports
// are never filled in.
type Normalizer struct {
	Leg        entity.LegQuery
	Currency   string
	CabinClass string
}

func New(leg entity.LegQuery, currency, cabinClass string) Normalizer {
	return Normalizer{Leg: leg, Currency: currency, CabinClass: cabinClass}
}

// NormalizeAll converts records and assigns a batch relative score to
// offers whose record carried none.
func (n Normalizer) NormalizeAll(raws []entity.RawOffer, source entity.Source) []entity.FlightOffer {
	offers := make([]entity.FlightOffer, 0, len(raws))
	scored := make([]bool, 0, len(raws))
	for i, raw := range raws {
		offer := n.Normalize(raw, source)
		if raw.ID == "" {
			offer.ID = fmt.Sprintf("%s-%d", offer.ID, i)
		}
		offers = append(offers, offer)
		scored = append(scored, hasScore(raw))
	}
	applyRelevanceScore(offers, scored)
	return offers
}

// Normalize never returns a partially populated offer.
func (n Normalizer) Normalize(raw entity.RawOffer, source entity.Source) entity.FlightOffer {
	depDate, depTime, depOK := parseEndpoint(raw.Departure, n.location())
	if !depOK.date {
		depDate = entity.DateOnly(n.Leg.Date)
	}
	if !depOK.time {
		depTime = SentinelTime
	}

	arrDate, arrTime, arrOK := parseEndpoint(raw.Arrival, n.location())

	departure := entity.Endpoint{
		Airport:  airportCode(raw.Departure.Airport),
		Date:     depDate,
		Time:     depTime,
		Terminal: strings.TrimSpace(raw.Departure.Terminal),
	}
	departure.City = cityOr(raw.Departure.City, departure.Airport)

	minutes := resolveDuration(raw, departure, arrDate, arrTime, arrOK)

	arrival := entity.Endpoint{
		Airport:  airportCode(raw.Arrival.Airport),
		Terminal: strings.TrimSpace(raw.Arrival.Terminal),
	}
	arrival.City = cityOr(raw.Arrival.City, arrival.Airport)
	switch {
	case arrOK.date && arrOK.time:
		arrival.Date, arrival.Time = arrDate, arrTime
	case arrOK.time:
		landing := departure.Timestamp().Add(time.Duration(minutes) * time.Minute)
		arrival.Date, arrival.Time = entity.DateOnly(landing), arrTime
	default:
		landing := departure.Timestamp().Add(time.Duration(minutes) * time.Minute)
		arrival.Date, arrival.Time = entity.DateOnly(landing), landing.Format(entity.TimeLayout)
	}
	if entity.DaysBetween(departure.Date, arrival.Date) < 0 {
		arrival.Date = departure.Date
	}

	airline := firstNonEmpty(raw.Airline, raw.AirlineCode, UnknownAirline)
	flightNumber := strings.ToUpper(strings.ReplaceAll(firstNonEmpty(raw.FlightNumber, raw.AirlineCode, "N/A"), " ", ""))

	offer := entity.FlightOffer{
		ID:              raw.ID,
		Airline:         strings.TrimSpace(airline),
		FlightNumber:    flightNumber,
		Departure:       departure,
		Arrival:         arrival,
		DurationMinutes: minutes,
		Duration:        FormatDuration(minutes),
		Price:           price(raw.Price),
		Currency:        strings.ToUpper(firstNonEmpty(raw.Currency, n.Currency, entity.DefaultCurrency)),
		CabinClass:      strings.ToLower(firstNonEmpty(raw.CabinClass, n.CabinClass, entity.DefaultCabinClass)),
		Stops:           nonNegativeInt(raw.Stops, 0),
		Baggage:         baggage(raw.Baggage),
		Refundable:      raw.Refundable != nil && *raw.Refundable,
		Changeable:      raw.Changeable != nil && *raw.Changeable,
		Source:          source,
	}
	if aircraft := strings.TrimSpace(raw.Aircraft); aircraft != "" {
		offer.Aircraft = &aircraft
	}
	if offer.ID == "" {
		offer.ID = strings.ToLower(fmt.Sprintf("%s-%s-%s-%s",
			source, offer.FlightNumber, departure.Date.Format(entity.DateLayout), strings.ReplaceAll(departure.Time, ":", "")))
	}
	if hasScore(raw) {
		offer.Score = raw.Score.Value
	}

	return offer
}

func (n Normalizer) location() *time.Location {
	if n.Leg.Date.IsZero() {
		return time.Local
	}
	return n.Leg.Date.Location()
}

func resolveDuration(raw entity.RawOffer, departure entity.Endpoint, arrDate time.Time, arrTime string, arrOK parsed) int {
	if minutes, ok := boundedInt(raw.DurationMinutes); ok && minutes > 0 {
		return minutes
	}
	if minutes, ok := ParseDuration(raw.Duration); ok {
		return minutes
	}
	if arrOK.date && arrOK.time {
		landing := entity.Endpoint{Date: arrDate, Time: arrTime}.Timestamp()
		return durationMinutes(departure.Timestamp(), landing, DefaultDurationMinutes)
	}
	return DefaultDurationMinutes
}

func durationMinutes(depart, arrive time.Time, fallback int) int {
	if depart.IsZero() || arrive.IsZero() {
		return fallback
	}
	diff := int(arrive.Sub(depart).Minutes())
	if diff <= 0 {
		return fallback
	}
	return diff
}

func price(n entity.Number) float64 {
	if !finite(n) || n.Value < 0 {
		return DefaultPrice
	}
	return entity.RoundCents(n.Value)
}

func nonNegativeInt(n entity.Number, fallback int) int {
	v, ok := boundedInt(n)
	if !ok || n.Value < 0 {
		return fallback
	}
	return v
}

// boundedInt rejects magnitudes above maxCount so the int conversion cannot
// overflow.
func boundedInt(n entity.Number) (int, bool) {
	if !finite(n) || math.Abs(n.Value) > maxCount {
		return 0, false
	}
	return int(n.Value), true
}

func finite(n entity.Number) bool {
	return n.Valid && !math.IsNaN(n.Value) && !math.IsInf(n.Value, 0)
}

func nonNegativeFloat(n entity.Number) float64 {
	if !finite(n) || n.Value < 0 {
		return 0
	}
	return entity.RoundCents(n.Value)
}

func baggage(raw *entity.RawBaggage) entity.Baggage {
	if raw == nil {
		return entity.Baggage{Carry: true, MaxCheckedBags: DefaultMaxCheckedBags}
	}
	checked := nonNegativeInt(raw.Checked, 0)
	maxBags := nonNegativeInt(raw.MaxCheckedBags, DefaultMaxCheckedBags)
	if maxBags < checked {
		maxBags = checked
	}
	return entity.Baggage{
		Carry:          raw.Carry == nil || *raw.Carry,
		Checked:        checked,
		CheckedBagCost: nonNegativeFloat(raw.CheckedBagCost),
		MaxCheckedBags: maxBags,
	}
}

func hasScore(raw entity.RawOffer) bool {
	return raw.Score.Valid && raw.Score.Value >= 0 && raw.Score.Value <= 1
}

// airportCode never borrows the searched airport, so a record without one
// fails the route check.
func airportCode(value string) string {
	code := strings.ToUpper(strings.TrimSpace(value))
	if code == "" {
		return UnknownAirport
	}
	return code
}

func cityOr(city, airport string) string {
	if c := strings.TrimSpace(city); c != "" {
		return c
	}
	if c := cityFromAirport(airport); c != "" {
		return c
	}
	return airport
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if v := strings.TrimSpace(value); v != "" {
			return v
		}
	}
	return ""
}
