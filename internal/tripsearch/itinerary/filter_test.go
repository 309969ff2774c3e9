package itinerary

import (
	"testing"
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, err := entity.ParseDate(s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func offer(from, to, date string) entity.FlightOffer {
	return entity.FlightOffer{
		Departure: entity.Endpoint{Airport: from, Date: day(date), Time: "10:00"},
		Arrival:   entity.Endpoint{Airport: to, Date: day(date), Time: "18:00"},
	}
}

func request() entity.SearchRequest {
	ret := day("2025-06-10")
	return entity.SearchRequest{
		Origin:        "JFK",
		Destination:   "CDG",
		DepartureDate: day("2025-06-01"),
		ReturnDate:    &ret,
	}
}

func TestFilter_Check(t *testing.T) {
	f := New(request(), time.Date(2025, 5, 20, 15, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		offer entity.FlightOffer
		leg   entity.Leg
		want  Reason
	}{
		{name: "exact date", offer: offer("JFK", "CDG", "2025-06-01"), leg: entity.LegOutbound, want: ReasonAccepted},
		{name: "nine days later", offer: offer("JFK", "CDG", "2025-06-10"), leg: entity.LegOutbound, want: ReasonAccepted},
		{name: "window edge inclusive", offer: offer("JFK", "CDG", "2025-06-15"), leg: entity.LegOutbound, want: ReasonAccepted},
		{name: "fifteen days later", offer: offer("JFK", "CDG", "2025-06-16"), leg: entity.LegOutbound, want: ReasonOutsideWindow},
		{name: "21 days later", offer: offer("JFK", "CDG", "2025-06-22"), leg: entity.LegOutbound, want: ReasonOutsideWindow},
		{name: "earlier but not past", offer: offer("JFK", "CDG", "2025-05-25"), leg: entity.LegOutbound, want: ReasonAccepted},
		{name: "in the past", offer: offer("JFK", "CDG", "2025-05-19"), leg: entity.LegOutbound, want: ReasonInPast},
		{name: "today", offer: offer("JFK", "CDG", "2025-05-20"), leg: entity.LegOutbound, want: ReasonAccepted},
		{name: "wrong origin", offer: offer("EWR", "CDG", "2025-06-01"), leg: entity.LegOutbound, want: ReasonRouteMismatch},
		{name: "reversed route on outbound", offer: offer("CDG", "JFK", "2025-06-01"), leg: entity.LegOutbound, want: ReasonRouteMismatch},
		{name: "return leg", offer: offer("CDG", "JFK", "2025-06-10"), leg: entity.LegReturn, want: ReasonAccepted},
		{name: "return leg window uses return date", offer: offer("CDG", "JFK", "2025-06-24"), leg: entity.LegReturn, want: ReasonAccepted},
		{name: "return leg outside window", offer: offer("CDG", "JFK", "2025-06-25"), leg: entity.LegReturn, want: ReasonOutsideWindow},
		{name: "outbound route on return leg", offer: offer("JFK", "CDG", "2025-06-10"), leg: entity.LegReturn, want: ReasonRouteMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Check(tt.offer, tt.leg))
			assert.Equal(t, tt.want == ReasonAccepted, f.Accept(tt.offer, tt.leg))
		})
	}
}

func TestFilter_ReturnLegWithoutReturnDate(t *testing.T) {
	req := request()
	req.ReturnDate = nil
	f := New(req, day("2025-05-20"))

	assert.False(t, f.Accept(offer("CDG", "JFK", "2025-06-10"), entity.LegReturn))
}

func TestFilter_Apply(t *testing.T) {
	f := New(request(), day("2025-05-20"))
	offers := []entity.FlightOffer{
		offer("JFK", "CDG", "2025-06-02"),
		offer("JFK", "CDG", "2025-06-22"),
		offer("LHR", "CDG", "2025-06-01"),
		offer("JFK", "CDG", "2025-06-01"),
	}

	res := f.Apply(offers, entity.LegOutbound)

	assert.Equal(t, []entity.FlightOffer{offers[0], offers[3]}, res.Accepted)
	assert.Equal(t, map[Reason]int{ReasonOutsideWindow: 1, ReasonRouteMismatch: 1}, res.Rejected)
	assert.Equal(t, 2, res.RejectedCount())
	assert.Len(t, offers, 4)
}
