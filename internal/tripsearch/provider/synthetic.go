package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/normalizer"
)

const DefaultSyntheticCount = 8

type syntheticAirline struct {
	name     string
	code     string
	aircraft string
}

var syntheticAirlines = []syntheticAirline{
	{name: "SkyWays", code: "SW", aircraft: "Airbus A320"},
	{name: "AeroNova", code: "AN", aircraft: "Boeing 737-800"},
	{name: "Blue Horizon", code: "BH", aircraft: "Airbus A321neo"},
	{name: "Transoceanic", code: "TO", aircraft: "Boeing 787-9"},
	{name: "Polar Air", code: "PA", aircraft: "Airbus A350-900"},
}

// SyntheticProvider makes up plausible offers without touching the network.
// The shape is fixed; prices, times and stops vary with a seed derived from
// the route and date, so the same search yields the same offers.
type SyntheticProvider struct {
	count int
}

func NewSyntheticProvider(count int) *SyntheticProvider {
	if count <= 0 {
		count = DefaultSyntheticCount
	}
	return &SyntheticProvider{count: count}
}

func (s *SyntheticProvider) Name() entity.Source {
	return entity.SourceMock
}

func (s *SyntheticProvider) Search(_ context.Context, req SearchRequest) ([]entity.RawOffer, error) {
	return syntheticRecords(s.count, req.Origin, req.Destination, req.DepartureDate, req.CabinClass, req.Currency), nil
}

// Generate returns count normalized offers for the route on date. It never
// returns an empty slice.
func Generate(count int, origin, destination string, date time.Time) []entity.FlightOffer {
	if count <= 0 {
		count = DefaultSyntheticCount
	}
	leg := entity.LegQuery{Leg: entity.LegOutbound, Origin: origin, Destination: destination, Date: date}
	records := syntheticRecords(count, origin, destination, date, entity.DefaultCabinClass, entity.DefaultCurrency)
	return normalizer.New(leg, entity.DefaultCurrency, entity.DefaultCabinClass).NormalizeAll(records, entity.SourceMock)
}

func syntheticRecords(count int, origin, destination string, date time.Time, cabinClass, currency string) []entity.RawOffer {
	rng := seedFor(origin, destination, date)
	day := date.Format(entity.DateLayout)

	records := make([]entity.RawOffer, 0, count)
	for i := 0; i < count; i++ {
		airline := syntheticAirlines[i%len(syntheticAirlines)]
		stops := 0
		if roll := rng.Intn(10); roll >= 6 {
			stops = 1 + roll%2
		}
		duration := rng.Between(90, 600) + stops*rng.Between(45, 150)
		depHour := rng.Between(5, 22)
		depMinute := rng.Intn(12) * 5
		price := float64(rng.Between(120, 900)) + float64(rng.Intn(100))/100
		refundable := rng.Intn(3) == 0
		changeable := refundable || rng.Intn(2) == 0
		carry := true
		checked := rng.Intn(3)

		records = append(records, entity.RawOffer{
			ID:              fmt.Sprintf("mock-%s-%s-%s-%d", origin, destination, day, i+1),
			Airline:         airline.name,
			AirlineCode:     airline.code,
			FlightNumber:    fmt.Sprintf("%s%d", airline.code, 100+rng.Intn(900)),
			Aircraft:        airline.aircraft,
			Departure:       entity.RawEndpoint{Airport: origin, Date: day, Time: fmt.Sprintf("%02d:%02d", depHour, depMinute)},
			Arrival:         entity.RawEndpoint{Airport: destination},
			DurationMinutes: entity.NewNumber(float64(duration)),
			Price:           entity.NewNumber(price),
			Currency:        currency,
			CabinClass:      cabinClass,
			Stops:           entity.NewNumber(float64(stops)),
			Baggage: &entity.RawBaggage{
				Carry:          &carry,
				Checked:        entity.NewNumber(float64(checked)),
				CheckedBagCost: entity.NewNumber(float64(rng.Between(25, 75))),
				MaxCheckedBags: entity.NewNumber(2),
			},
			Refundable: &refundable,
			Changeable: &changeable,
		})
	}
	return records
}
