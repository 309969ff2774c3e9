package entity

import "time"

type Source string

const (
	SourceLive    Source = "live"
	SourceBackend Source = "backend"
	SourceMock    Source = "mock"
)

type Leg string

const (
	LegOutbound Leg = "outbound"
	LegReturn   Leg = "return"
)

type Endpoint struct {
	Airport  string
	City     string
	Time     string // HH:MM, 24h
	Date     time.Time
	Terminal string
}

// Timestamp combines Date and Time in the location of Date.
func (e Endpoint) Timestamp() time.Time {
	clock, err := time.Parse(TimeLayout, e.Time)
	if err != nil {
		return e.Date
	}
	return time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), clock.Hour(), clock.Minute(), 0, 0, e.Date.Location())
}

type Baggage struct {
	Carry          bool
	Checked        int
	CheckedBagCost float64
	MaxCheckedBags int
}

// FlightOffer is produced by the normalizer only and treated as read-only afterwards.
type FlightOffer struct {
	ID              string
	Airline         string
	FlightNumber    string
	Aircraft        *string
	Departure       Endpoint
	Arrival         Endpoint
	DurationMinutes int
	Duration        string
	Price           float64
	Currency        string
	CabinClass      string
	Stops           int
	Baggage         Baggage
	Refundable      bool
	Changeable      bool
	Source          Source
	Score           float64
}
