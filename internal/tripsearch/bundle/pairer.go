// Package bundle combines ranked offer lists into round trips and vacation packages.
package bundle

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
)

const (
	// MaxPairs caps both round-trip and vacation output.
	MaxPairs = 10
	// BookingFee is the per-leg fee saved by booking both legs together.
	BookingFee = 25.0
)

// PairResult carries the packages and how many rank-i candidates were dropped.
type PairResult struct {
	Packages []entity.RoundTripPackage
	Rejected int
}

// PairRoundTrips pairs outbound[i] with inbound[i] for the first MaxPairs
// ranks. Pairs that do not close the loop origin -> destination -> origin are
// skipped and not replaced. Result is sorted by total price, cheapest first.
func PairRoundTrips(outbound, inbound []entity.FlightOffer, req entity.SearchRequest) PairResult {
	n := min(len(outbound), len(inbound), MaxPairs)
	res := PairResult{Packages: make([]entity.RoundTripPackage, 0, n)}

	for i := 0; i < n; i++ {
		out, ret := outbound[i], inbound[i]
		if !validRoute(out, ret, req) {
			res.Rejected++
			continue
		}
		res.Packages = append(res.Packages, entity.RoundTripPackage{
			Outbound:   out,
			Return:     ret,
			TotalPrice: entity.SumPrice(out.Price, ret.Price),
			Savings:    BookingFee,
		})
	}

	slices.SortStableFunc(res.Packages, func(a, b entity.RoundTripPackage) int {
		return cmp.Compare(a.TotalPrice, b.TotalPrice)
	})
	return res
}

func validRoute(out, ret entity.FlightOffer, req entity.SearchRequest) bool {
	return strings.EqualFold(out.Departure.Airport, req.Origin) &&
		strings.EqualFold(out.Arrival.Airport, req.Destination) &&
		strings.EqualFold(ret.Departure.Airport, req.Destination) &&
		strings.EqualFold(ret.Arrival.Airport, req.Origin)
}
