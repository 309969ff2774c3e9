package inbound

import (
	"context"
	"errors"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/usecase"
)

type HealthResponse struct {
	Status string `json:"status"`
}

type TripsResponse struct {
	SearchID       string                 `json:"search_id"`
	SearchCriteria SearchCriteriaResponse `json:"search_criteria"`
	Metadata       MetadataResponse       `json:"metadata"`
	Outbound       LegResponse            `json:"outbound"`
	Return         *LegResponse           `json:"return,omitempty"`
	RoundTrips     []RoundTripResponse    `json:"round_trips"`
	Vacations      []VacationResponse     `json:"vacations"`
}

type SearchCriteriaResponse struct {
	Origin        string             `json:"origin"`
	Destination   string             `json:"destination"`
	DepartureDate string             `json:"departure_date"`
	ReturnDate    *string            `json:"return_date,omitempty"`
	Passengers    PassengersResponse `json:"passengers"`
	CabinClass    string             `json:"cabin_class"`
	Currency      string             `json:"currency"`
	CheckedBags   int                `json:"checked_bags"`
}

type PassengersResponse struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

type MetadataResponse struct {
	RejectedPairs int    `json:"rejected_pairs"`
	HotelsFound   int    `json:"hotels_found"`
	HotelError    string `json:"hotel_error,omitempty"`
	SearchTimeMs  int64  `json:"search_time_ms"`
	CacheHit      bool   `json:"cache_hit"`
}

type LegResponse struct {
	Source         string            `json:"source"`
	FallbackReason string            `json:"fallback_reason"`
	TotalResults   int               `json:"total_results"`
	Attempts       []AttemptResponse `json:"attempts"`
	Flights        []FlightResponse  `json:"flights"`
}

type AttemptResponse struct {
	Source     string         `json:"source"`
	Received   int            `json:"received"`
	Accepted   int            `json:"accepted"`
	Rejected   map[string]int `json:"rejected,omitempty"`
	Error      string         `json:"error,omitempty"`
	DurationMs int64          `json:"duration_ms"`
}

type FlightResponse struct {
	ID           string           `json:"id"`
	Source       string           `json:"source"`
	Airline      string           `json:"airline"`
	FlightNumber string           `json:"flight_number"`
	Aircraft     *string          `json:"aircraft"`
	Departure    FlightPoint      `json:"departure"`
	Arrival      FlightPoint      `json:"arrival"`
	Duration     DurationResponse `json:"duration"`
	Stops        int              `json:"stops"`
	Price        PriceResponse    `json:"price"`
	CabinClass   string           `json:"cabin_class"`
	Baggage      BaggageResponse  `json:"baggage"`
	Refundable   bool             `json:"refundable"`
	Changeable   bool             `json:"changeable"`
	Score        float64          `json:"score"`
}

type FlightPoint struct {
	Airport   string `json:"airport"`
	City      string `json:"city"`
	Terminal  string `json:"terminal,omitempty"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Timestamp int64  `json:"timestamp"`
}

type DurationResponse struct {
	TotalMinutes int    `json:"total_minutes"`
	Formatted    string `json:"formatted"`
}

type PriceResponse struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type BaggageResponse struct {
	CarryOn        bool    `json:"carry_on"`
	Checked        int     `json:"checked"`
	CheckedBagCost float64 `json:"checked_bag_cost"`
	MaxCheckedBags int     `json:"max_checked_bags"`
}

type RoundTripResponse struct {
	Outbound   FlightResponse `json:"outbound"`
	Return     FlightResponse `json:"return"`
	TotalPrice float64        `json:"total_price"`
	Savings    float64        `json:"savings"`
}

type HotelResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Address       string   `json:"address,omitempty"`
	Rating        float64  `json:"rating"`
	PricePerNight float64  `json:"price_per_night"`
	TotalPrice    float64  `json:"total_price"`
	Currency      string   `json:"currency"`
	Amenities     []string `json:"amenities"`
}

type VacationResponse struct {
	Flight            RoundTripResponse `json:"flight"`
	Hotel             HotelResponse     `json:"hotel"`
	FlightPrice       float64           `json:"flight_price"`
	HotelPrice        float64           `json:"hotel_price"`
	TotalPrice        float64           `json:"total_price"`
	Savings           float64           `json:"savings"`
	PriceWithDiscount float64           `json:"price_with_discount"`
}

func NewTripsResponse(out *usecase.TripsOutput) TripsResponse {
	req := out.Request
	resp := TripsResponse{
		SearchID: out.SearchID,
		SearchCriteria: SearchCriteriaResponse{
			Origin:        req.Origin,
			Destination:   req.Destination,
			DepartureDate: req.DepartureDate.Format(entity.DateLayout),
			ReturnDate:    formatOptionalDate(req.ReturnDate),
			Passengers: PassengersResponse{
				Adults:   req.Passengers.Adults,
				Children: req.Passengers.Children,
				Infants:  req.Passengers.Infants,
			},
			CabinClass:  req.CabinClass,
			Currency:    req.Currency,
			CheckedBags: req.CheckedBags,
		},
		Metadata: MetadataResponse{
			RejectedPairs: out.Metadata.RejectedPairs,
			HotelsFound:   out.Metadata.HotelsFound,
			HotelError:    out.Metadata.HotelError,
			SearchTimeMs:  out.Metadata.SearchTimeMs,
			CacheHit:      out.Metadata.CacheHit,
		},
		Outbound:   mapLeg(out.Outbound),
		RoundTrips: make([]RoundTripResponse, 0, len(out.RoundTrips)),
		Vacations:  make([]VacationResponse, 0, len(out.Vacations)),
	}
	if out.Return != nil {
		ret := mapLeg(*out.Return)
		resp.Return = &ret
	}
	for _, p := range out.RoundTrips {
		resp.RoundTrips = append(resp.RoundTrips, mapRoundTrip(p))
	}
	for _, v := range out.Vacations {
		resp.Vacations = append(resp.Vacations, VacationResponse{
			Flight:            mapRoundTrip(v.Flight),
			Hotel:             mapHotel(v.Hotel),
			FlightPrice:       v.FlightPrice,
			HotelPrice:        v.HotelPrice,
			TotalPrice:        v.TotalPrice,
			Savings:           v.Savings,
			PriceWithDiscount: v.PriceWithDiscount,
		})
	}
	return resp
}

func mapLeg(leg usecase.LegResult) LegResponse {
	resp := LegResponse{
		Source:         string(leg.Source),
		FallbackReason: leg.FallbackReason,
		TotalResults:   leg.TotalOffers,
		Attempts:       make([]AttemptResponse, 0, len(leg.Attempts)),
		Flights:        mapFlightResponses(leg.Offers),
	}
	for _, a := range leg.Attempts {
		attempt := AttemptResponse{
			Source:     string(a.Source),
			Received:   a.Received,
			Accepted:   a.Accepted,
			DurationMs: a.Duration.Milliseconds(),
		}
		if len(a.Rejected) > 0 {
			attempt.Rejected = make(map[string]int, len(a.Rejected))
			for reason, count := range a.Rejected {
				attempt.Rejected[string(reason)] = count
			}
		}
		if a.Err != nil {
			attempt.Error = attemptError(a.Err)
		}
		resp.Attempts = append(resp.Attempts, attempt)
	}
	return resp
}

// attemptError keeps provider internals such as URLs out of the response.
func attemptError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "unavailable"
}

func mapFlightResponses(offers []entity.FlightOffer) []FlightResponse {
	resp := make([]FlightResponse, 0, len(offers))
	for _, offer := range offers {
		resp = append(resp, mapFlight(offer))
	}
	return resp
}

func mapFlight(o entity.FlightOffer) FlightResponse {
	return FlightResponse{
		ID:           o.ID,
		Source:       string(o.Source),
		Airline:      o.Airline,
		FlightNumber: o.FlightNumber,
		Aircraft:     o.Aircraft,
		Departure:    mapFlightPoint(o.Departure),
		Arrival:      mapFlightPoint(o.Arrival),
		Duration:     DurationResponse{TotalMinutes: o.DurationMinutes, Formatted: o.Duration},
		Stops:        o.Stops,
		Price:        PriceResponse{Amount: o.Price, Currency: o.Currency},
		CabinClass:   o.CabinClass,
		Baggage: BaggageResponse{
			CarryOn:        o.Baggage.Carry,
			Checked:        o.Baggage.Checked,
			CheckedBagCost: o.Baggage.CheckedBagCost,
			MaxCheckedBags: o.Baggage.MaxCheckedBags,
		},
		Refundable: o.Refundable,
		Changeable: o.Changeable,
		Score:      o.Score,
	}
}

func mapFlightPoint(e entity.Endpoint) FlightPoint {
	return FlightPoint{
		Airport:   e.Airport,
		City:      e.City,
		Terminal:  e.Terminal,
		Date:      e.Date.Format(entity.DateLayout),
		Time:      e.Time,
		Timestamp: e.Timestamp().Unix(),
	}
}

func mapRoundTrip(p entity.RoundTripPackage) RoundTripResponse {
	return RoundTripResponse{
		Outbound:   mapFlight(p.Outbound),
		Return:     mapFlight(p.Return),
		TotalPrice: p.TotalPrice,
		Savings:    p.Savings,
	}
}

func mapHotel(h entity.HotelOffer) HotelResponse {
	return HotelResponse{
		ID:            h.ID,
		Name:          h.Name,
		Address:       h.Address,
		Rating:        h.Rating,
		PricePerNight: h.PricePerNight,
		TotalPrice:    h.TotalPrice,
		Currency:      h.Currency,
		Amenities:     append([]string{}, h.Amenities...),
	}
}
