package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
)

type LiveConfig struct {
	BaseURL    string
	APIKey     string
	MaxResults int
	Client     *http.Client
}

// LiveProvider queries a flight-offers shopping API and flattens each
// itinerary into a RawOffer.
type LiveProvider struct {
	baseURL    string
	apiKey     string
	maxResults int
	client     *http.Client
}

func NewLiveProvider(cfg LiveConfig) *LiveProvider {
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}
	return &LiveProvider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		maxResults: maxResults,
		client:     client,
	}
}

func (l *LiveProvider) Name() entity.Source {
	return entity.SourceLive
}

func (l *LiveProvider) Search(ctx context.Context, req SearchRequest) ([]entity.RawOffer, error) {
	if l.baseURL == "" {
		return nil, fmt.Errorf("live search: %w", ErrUnavailable)
	}

	q := url.Values{}
	q.Set("originLocationCode", req.Origin)
	q.Set("destinationLocationCode", req.Destination)
	q.Set("departureDate", req.DepartureDate.Format(entity.DateLayout))
	if req.ReturnDate != nil {
		q.Set("returnDate", req.ReturnDate.Format(entity.DateLayout))
	}
	q.Set("adults", strconv.Itoa(req.Passengers.Adults))
	if req.Passengers.Children > 0 {
		q.Set("children", strconv.Itoa(req.Passengers.Children))
	}
	if req.Passengers.Infants > 0 {
		q.Set("infants", strconv.Itoa(req.Passengers.Infants))
	}
	if req.CheckedBags > 0 {
		q.Set("includedCheckedBagsOnly", "true")
	}
	if cabin := liveCabin(req.CabinClass); cabin != "" {
		q.Set("travelClass", cabin)
	}
	if req.Currency != "" {
		q.Set("currencyCode", req.Currency)
	}
	q.Set("max", strconv.Itoa(l.maxResults))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/v2/shopping/flight-offers?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("live build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if l.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+l.apiKey)
	}

	resp, err := l.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("live request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("live search: unexpected status %d", resp.StatusCode)
	}

	var body liveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("live decode: %w", err)
	}

	records := make([]entity.RawOffer, 0, len(body.Data))
	for _, offer := range body.Data {
		if raw, ok := offer.flatten(body.Dictionaries.Carriers, body.Dictionaries.Aircraft); ok {
			records = append(records, raw)
		}
	}
	return records, nil
}

type liveResponse struct {
	Data         []liveOffer `json:"data"`
	Dictionaries struct {
		Carriers map[string]string `json:"carriers"`
		Aircraft map[string]string `json:"aircraft"`
	} `json:"dictionaries"`
}

type liveOffer struct {
	ID          string `json:"id"`
	Itineraries []struct {
		Duration string        `json:"duration"`
		Segments []liveSegment `json:"segments"`
	} `json:"itineraries"`
	Price struct {
		Total    entity.Number `json:"total"`
		Currency string        `json:"currency"`
	} `json:"price"`
	PricingOptions struct {
		RefundableFare bool `json:"refundableFare"`
		NoRestriction  bool `json:"noRestrictionFare"`
	} `json:"pricingOptions"`
	TravelerPricings []struct {
		FareDetailsBySegment []struct {
			Cabin               string `json:"cabin"`
			IncludedCheckedBags struct {
				Quantity entity.Number `json:"quantity"`
			} `json:"includedCheckedBags"`
		} `json:"fareDetailsBySegment"`
	} `json:"travelerPricings"`
}

type liveSegment struct {
	Departure     liveStop `json:"departure"`
	Arrival       liveStop `json:"arrival"`
	CarrierCode   string   `json:"carrierCode"`
	Number        string   `json:"number"`
	NumberOfStops int      `json:"numberOfStops"`
	Aircraft      struct {
		Code string `json:"code"`
	} `json:"aircraft"`
}

type liveStop struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"`
}

// flatten uses the first itinerary only, which is the leg that was queried.
func (o liveOffer) flatten(carriers, aircraft map[string]string) (entity.RawOffer, bool) {
	if len(o.Itineraries) == 0 || len(o.Itineraries[0].Segments) == 0 {
		return entity.RawOffer{}, false
	}
	itinerary := o.Itineraries[0]
	first := itinerary.Segments[0]
	last := itinerary.Segments[len(itinerary.Segments)-1]

	stops := len(itinerary.Segments) - 1
	for _, seg := range itinerary.Segments {
		stops += seg.NumberOfStops
	}

	raw := entity.RawOffer{
		ID:           o.ID,
		Airline:      firstNonEmpty(carriers[first.CarrierCode], first.CarrierCode),
		AirlineCode:  first.CarrierCode,
		FlightNumber: first.CarrierCode + first.Number,
		Aircraft:     firstNonEmpty(aircraft[first.Aircraft.Code], first.Aircraft.Code),
		Departure:    entity.RawEndpoint{Airport: first.Departure.IataCode, DateTime: first.Departure.At, Terminal: first.Departure.Terminal},
		Arrival:      entity.RawEndpoint{Airport: last.Arrival.IataCode, DateTime: last.Arrival.At, Terminal: last.Arrival.Terminal},
		Duration:     itinerary.Duration,
		Price:        o.Price.Total,
		Currency:     o.Price.Currency,
		Stops:        entity.NewNumber(float64(stops)),
	}

	refundable := o.PricingOptions.RefundableFare
	changeable := o.PricingOptions.NoRestriction || refundable
	raw.Refundable = &refundable
	raw.Changeable = &changeable

	if len(o.TravelerPricings) > 0 && len(o.TravelerPricings[0].FareDetailsBySegment) > 0 {
		fare := o.TravelerPricings[0].FareDetailsBySegment[0]
		raw.CabinClass = strings.ToLower(strings.ReplaceAll(fare.Cabin, "_", " "))
		carry := true
		raw.Baggage = &entity.RawBaggage{Carry: &carry, Checked: fare.IncludedCheckedBags.Quantity}
	}

	return raw, true
}

func liveCabin(cabin string) string {
	switch strings.ToLower(cabin) {
	case "economy":
		return "ECONOMY"
	case "premium economy", "premium_economy", "premium":
		return "PREMIUM_ECONOMY"
	case "business":
		return "BUSINESS"
	case "first":
		return "FIRST"
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
