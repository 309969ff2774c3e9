package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
)

type HotelConfig struct {
	BaseURL string
	Client  *http.Client
}

type HotelProvider struct {
	baseURL string
	client  *http.Client
}

func NewHotelProvider(cfg HotelConfig) *HotelProvider {
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	return &HotelProvider{baseURL: strings.TrimRight(cfg.BaseURL, "/"), client: client}
}

type hotelRequest struct {
	AirportCode  string `json:"airportCode"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Adults       int    `json:"adults"`
	Children     int    `json:"children"`
	Rooms        int    `json:"rooms"`
	Currency     string `json:"currency"`
}

type hotelResponse struct {
	Hotels         []rawHotel      `json:"hotels"`
	SearchMetadata json.RawMessage `json:"searchMetadata"`
}

type rawHotel struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Address       string        `json:"address"`
	Rating        entity.Number `json:"rating"`
	PricePerNight entity.Number `json:"pricePerNight"`
	TotalPrice    entity.Number `json:"totalPrice"`
	Currency      string        `json:"currency"`
	Amenities     []string      `json:"amenities"`
}

func (h *HotelProvider) SearchHotels(ctx context.Context, req HotelRequest) ([]entity.HotelOffer, error) {
	if h.baseURL == "" {
		return nil, fmt.Errorf("hotel search: %w", ErrUnavailable)
	}

	body, err := json.Marshal(hotelRequest{
		AirportCode:  req.AirportCode,
		CheckInDate:  req.CheckInDate.Format(entity.DateLayout),
		CheckOutDate: req.CheckOutDate.Format(entity.DateLayout),
		Adults:       req.Adults,
		Children:     req.Children,
		Rooms:        req.Rooms,
		Currency:     req.Currency,
	})
	if err != nil {
		return nil, fmt.Errorf("hotel encode: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/hotels/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("hotel build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("hotel request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("hotel search: unexpected status %d", resp.StatusCode)
	}

	var out hotelResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("hotel decode: %w", err)
	}

	return toHotelOffers(out.Hotels, req), nil
}

// toHotelOffers drops hotels without any usable price and derives the
// missing one of totalPrice/pricePerNight from the stay length.
func toHotelOffers(raws []rawHotel, req HotelRequest) []entity.HotelOffer {
	nights := float64(req.Nights())
	hotels := make([]entity.HotelOffer, 0, len(raws))
	for i, raw := range raws {
		total, perNight := raw.TotalPrice, raw.PricePerNight
		switch {
		case total.Valid && total.Value >= 0 && !perNight.Valid:
			perNight = entity.NewNumber(total.Value / nights)
		case !total.Valid && perNight.Valid && perNight.Value >= 0:
			total = entity.NewNumber(perNight.Value * nights)
		}
		if !total.Valid || total.Value < 0 {
			continue
		}

		id := raw.ID
		if id == "" {
			id = fmt.Sprintf("hotel-%s-%d", strings.ToLower(req.AirportCode), i+1)
		}
		hotels = append(hotels, entity.HotelOffer{
			ID:            id,
			Name:          firstNonEmpty(raw.Name, "Hotel "+req.AirportCode),
			Address:       raw.Address,
			Rating:        raw.Rating.Value,
			PricePerNight: entity.RoundCents(perNight.Value),
			TotalPrice:    entity.RoundCents(total.Value),
			Currency:      strings.ToUpper(firstNonEmpty(raw.Currency, req.Currency)),
			Amenities:     append([]string{}, raw.Amenities...),
		})
	}
	return hotels
}

var syntheticHotelNames = []string{
	"Grand Central Hotel",
	"Riverside Suites",
	"The Harbour Inn",
	"Old Town Residence",
	"Skyline Tower Hotel",
	"Garden Court",
}

var syntheticAmenities = []string{"wifi", "breakfast", "pool", "gym", "spa", "parking"}

// SyntheticHotelProvider stands in for the hotel API when none is configured.
type SyntheticHotelProvider struct {
	count int
}

func NewSyntheticHotelProvider(count int) *SyntheticHotelProvider {
	if count <= 0 {
		count = len(syntheticHotelNames)
	}
	return &SyntheticHotelProvider{count: count}
}

func (s *SyntheticHotelProvider) SearchHotels(_ context.Context, req HotelRequest) ([]entity.HotelOffer, error) {
	rng := NewSeededRand("hotel", strings.ToUpper(req.AirportCode), req.CheckInDate.Format(entity.DateLayout), req.CheckOutDate.Format(entity.DateLayout))
	nights := float64(req.Nights())
	rooms := max(req.Rooms, 1)

	hotels := make([]entity.HotelOffer, 0, s.count)
	for i := 0; i < s.count; i++ {
		perNight := float64(rng.Between(60, 350))
		amenities := make([]string, 0, 3)
		for j := 0; j < 3; j++ {
			amenities = append(amenities, syntheticAmenities[(i+j*2)%len(syntheticAmenities)])
		}
		hotels = append(hotels, entity.HotelOffer{
			ID:            fmt.Sprintf("mock-hotel-%s-%d", strings.ToLower(req.AirportCode), i+1),
			Name:          syntheticHotelNames[i%len(syntheticHotelNames)],
			Rating:        float64(rng.Between(30, 50)) / 10,
			PricePerNight: perNight,
			TotalPrice:    perNight * nights * float64(rooms),
			Currency:      firstNonEmpty(req.Currency, entity.DefaultCurrency),
			Amenities:     amenities,
		})
	}
	return hotels, nil
}
