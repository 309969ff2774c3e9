package bundle

import (
	"fmt"
	"testing"
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := entity.ParseDate(s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func request() entity.SearchRequest {
	ret := day("2025-06-10")
	return entity.SearchRequest{Origin: "JFK", Destination: "CDG", DepartureDate: day("2025-06-01"), ReturnDate: &ret}
}

func flight(id, from, to string, price float64) entity.FlightOffer {
	return entity.FlightOffer{
		ID:        id,
		Price:     price,
		Departure: entity.Endpoint{Airport: from},
		Arrival:   entity.Endpoint{Airport: to},
	}
}

func outbound(prices ...float64) []entity.FlightOffer {
	out := make([]entity.FlightOffer, 0, len(prices))
	for i, p := range prices {
		out = append(out, flight(fmt.Sprintf("o%d", i), "JFK", "CDG", p))
	}
	return out
}

func inbound(prices ...float64) []entity.FlightOffer {
	out := make([]entity.FlightOffer, 0, len(prices))
	for i, p := range prices {
		out = append(out, flight(fmt.Sprintf("r%d", i), "CDG", "JFK", p))
	}
	return out
}

func totals(pkgs []entity.RoundTripPackage) []float64 {
	out := make([]float64, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, p.TotalPrice)
	}
	return out
}

func TestPairRoundTrips_PositionalScenario(t *testing.T) {
	res := PairRoundTrips(outbound(400, 550, 300), inbound(500, 420), request())

	require.Len(t, res.Packages, 2)
	assert.Equal(t, []float64{900, 970}, totals(res.Packages))
	assert.Equal(t, "o0", res.Packages[0].Outbound.ID)
	assert.Equal(t, "r0", res.Packages[0].Return.ID)
	assert.Equal(t, "o1", res.Packages[1].Outbound.ID)
	assert.Equal(t, "r1", res.Packages[1].Return.ID)
	for _, p := range res.Packages {
		assert.Equal(t, BookingFee, p.Savings)
	}
	assert.Zero(t, res.Rejected)
}

func TestPairRoundTrips_SortedByTotal(t *testing.T) {
	res := PairRoundTrips(outbound(800, 200, 500), inbound(300, 150, 100), request())
	assert.Equal(t, []float64{350, 600, 1100}, totals(res.Packages))
}

func TestPairRoundTrips_RoundsTotal(t *testing.T) {
	res := PairRoundTrips(outbound(400.45), inbound(499.30), request())
	assert.Equal(t, []float64{900}, totals(res.Packages))
}

func TestPairRoundTrips_SkipsInvalidWithoutRepadding(t *testing.T) {
	out := outbound(400, 500, 600)
	out[1] = flight("bad", "EWR", "CDG", 100)
	ret := inbound(300, 300, 300)
	ret[2] = flight("bad-return", "CDG", "LGA", 100)

	res := PairRoundTrips(out, ret, request())

	require.Len(t, res.Packages, 1)
	assert.Equal(t, 2, res.Rejected)
	assert.Equal(t, "o0", res.Packages[0].Outbound.ID)
}

func TestPairRoundTrips_RouteInvariant(t *testing.T) {
	req := request()
	out := append(outbound(1, 2, 3), flight("x", "CDG", "JFK", 4))
	ret := append(inbound(1, 2), flight("y", "JFK", "CDG", 3), flight("z", "CDG", "JFK", 4))

	for _, p := range PairRoundTrips(out, ret, req).Packages {
		assert.Equal(t, req.Origin, p.Outbound.Departure.Airport)
		assert.Equal(t, req.Destination, p.Outbound.Arrival.Airport)
		assert.Equal(t, req.Destination, p.Return.Departure.Airport)
		assert.Equal(t, req.Origin, p.Return.Arrival.Airport)
	}
}

func TestPairRoundTrips_CapsAtTen(t *testing.T) {
	prices := make([]float64, 15)
	for i := range prices {
		prices[i] = float64(100 + i)
	}
	res := PairRoundTrips(outbound(prices...), inbound(prices...), request())
	assert.Len(t, res.Packages, MaxPairs)
}

func TestPairRoundTrips_Empty(t *testing.T) {
	res := PairRoundTrips(nil, inbound(100), request())
	assert.NotNil(t, res.Packages)
	assert.Empty(t, res.Packages)
}

func hotels(prices ...float64) []entity.HotelOffer {
	out := make([]entity.HotelOffer, 0, len(prices))
	for i, p := range prices {
		out = append(out, entity.HotelOffer{ID: fmt.Sprintf("h%d", i), TotalPrice: p})
	}
	return out
}

func packages(totals ...float64) []entity.RoundTripPackage {
	out := make([]entity.RoundTripPackage, 0, len(totals))
	for _, total := range totals {
		out = append(out, entity.RoundTripPackage{TotalPrice: total, Savings: BookingFee})
	}
	return out
}

func TestVacations(t *testing.T) {
	got := Vacations(packages(900, 970, 1200), hotels(1350.6, 800.2))

	require.Len(t, got, 2)
	assert.Equal(t, 970.0, got[0].FlightPrice)
	assert.Equal(t, 800.0, got[0].HotelPrice)
	assert.Equal(t, 1770.0, got[0].TotalPrice)
	assert.Equal(t, FixedBundleDiscount+BookingFee, got[0].Savings)
	assert.Equal(t, 1645.0, got[0].PriceWithDiscount)

	assert.Equal(t, 900.0, got[1].FlightPrice)
	assert.Equal(t, 1351.0, got[1].HotelPrice)
	assert.Equal(t, 2126.0, got[1].PriceWithDiscount)

	for _, v := range got {
		assert.Equal(t, v.TotalPrice-v.Savings, v.PriceWithDiscount)
		assert.Equal(t, v.FlightPrice+v.HotelPrice, v.TotalPrice)
	}
}

func TestVacations_Count(t *testing.T) {
	tests := []struct {
		packages int
		hotels   int
		want     int
	}{
		{packages: 0, hotels: 5, want: 0},
		{packages: 5, hotels: 0, want: 0},
		{packages: 3, hotels: 7, want: 3},
		{packages: 12, hotels: 20, want: 10},
		{packages: 10, hotels: 4, want: 4},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d", tt.packages, tt.hotels), func(t *testing.T) {
			p := make([]float64, tt.packages)
			h := make([]float64, tt.hotels)
			for i := range p {
				p[i] = float64(500 + 10*i)
			}
			for i := range h {
				h[i] = float64(300 + 7*i)
			}
			got := Vacations(packages(p...), hotels(h...))
			assert.Len(t, got, min(tt.packages, tt.hotels, MaxPairs))
			for i := 1; i < len(got); i++ {
				assert.LessOrEqual(t, got[i-1].PriceWithDiscount, got[i].PriceWithDiscount)
			}
		})
	}
}

func TestHotelCandidateLimit(t *testing.T) {
	assert.Equal(t, 10, HotelCandidateLimit(0))
	assert.Equal(t, 10, HotelCandidateLimit(9))
	assert.Equal(t, 20, HotelCandidateLimit(10))
	assert.Equal(t, 20, HotelCandidateLimit(35))
}
