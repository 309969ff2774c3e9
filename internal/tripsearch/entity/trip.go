package entity

type RoundTripPackage struct {
	Outbound   FlightOffer
	Return     FlightOffer
	TotalPrice float64
	Savings    float64
}

// HotelOffer comes from the hotel provider; only TotalPrice matters for bundling.
type HotelOffer struct {
	ID            string
	Name          string
	Address       string
	Rating        float64
	PricePerNight float64
	TotalPrice    float64
	Currency      string
	Amenities     []string
}

type VacationPackage struct {
	Flight            RoundTripPackage
	Hotel             HotelOffer
	FlightPrice       float64
	HotelPrice        float64
	TotalPrice        float64
	Savings           float64
	PriceWithDiscount float64
}
