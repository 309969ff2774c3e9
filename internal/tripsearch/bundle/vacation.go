package bundle

import (
	"cmp"
	"slices"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
)

// FixedBundleDiscount is taken off every flight+hotel bundle on top of the
// round trip's own savings.
const FixedBundleDiscount = 100.0

// HotelCandidateLimit bounds hotel lookups by how many flights were found.
func HotelCandidateLimit(flightCount int) int {
	if flightCount < 10 {
		return 10
	}
	return 20
}

// Vacations pairs packages[i] with hotels[i] for the first MaxPairs ranks,
// cheapest discounted price first. Either side empty yields an empty list.
func Vacations(packages []entity.RoundTripPackage, hotels []entity.HotelOffer) []entity.VacationPackage {
	n := min(len(packages), len(hotels), MaxPairs)
	out := make([]entity.VacationPackage, 0, n)

	for i := 0; i < n; i++ {
		flightPrice := entity.RoundPrice(packages[i].TotalPrice)
		hotelPrice := entity.RoundPrice(hotels[i].TotalPrice)
		total := flightPrice + hotelPrice
		savings := FixedBundleDiscount + packages[i].Savings

		out = append(out, entity.VacationPackage{
			Flight:            packages[i],
			Hotel:             hotels[i],
			FlightPrice:       flightPrice,
			HotelPrice:        hotelPrice,
			TotalPrice:        total,
			Savings:           savings,
			PriceWithDiscount: entity.SumPrice(total, -savings),
		})
	}

	slices.SortStableFunc(out, func(a, b entity.VacationPackage) int {
		return cmp.Compare(a.PriceWithDiscount, b.PriceWithDiscount)
	})
	return out
}
