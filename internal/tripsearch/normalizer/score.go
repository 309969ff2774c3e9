package normalizer

import "github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"

const stopPenalty = 0.1

// applyRelevanceScore fills Score for offers whose record had none: cheaper,
// shorter and more direct flights score closer to 1.
func applyRelevanceScore(offers []entity.FlightOffer, scored []bool) {
	if len(offers) == 0 {
		return
	}
	minPrice, maxPrice := offers[0].Price, offers[0].Price
	minDuration, maxDuration := offers[0].DurationMinutes, offers[0].DurationMinutes
	for _, f := range offers[1:] {
		minPrice = min(minPrice, f.Price)
		maxPrice = max(maxPrice, f.Price)
		minDuration = min(minDuration, f.DurationMinutes)
		maxDuration = max(maxDuration, f.DurationMinutes)
	}

	priceRange := maxPrice - minPrice
	durationRange := float64(maxDuration - minDuration)
	if priceRange == 0 {
		priceRange = 1
	}
	if durationRange == 0 {
		durationRange = 1
	}

	for i := range offers {
		if scored[i] {
			continue
		}
		priceScore := (offers[i].Price - minPrice) / priceRange
		durationScore := float64(offers[i].DurationMinutes-minDuration) / durationRange
		score := 1 - (priceScore*0.6 + durationScore*0.4) - float64(offers[i].Stops)*stopPenalty
		offers[i].Score = entity.RoundCents(min(1, max(0, score)))
	}
}
