package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() SearchRequest {
	ret := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	return SearchRequest{
		Leg:           entity.LegOutbound,
		Origin:        "JFK",
		Destination:   "CDG",
		DepartureDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate:    &ret,
		Passengers:    entity.Passengers{Adults: 2, Children: 1},
		CabinClass:    "economy",
		Currency:      "USD",
		CheckedBags:   1,
	}
}

const liveFixture = `{
  "data": [
    {
      "id": "1",
      "itineraries": [{
        "duration": "PT9H40M",
        "segments": [
          {"departure": {"iataCode": "JFK", "terminal": "4", "at": "2025-06-01T17:00:00"},
           "arrival": {"iataCode": "AMS", "at": "2025-06-02T06:30:00"},
           "carrierCode": "KL", "number": "642", "aircraft": {"code": "789"}},
          {"departure": {"iataCode": "AMS", "at": "2025-06-02T08:10:00"},
           "arrival": {"iataCode": "CDG", "terminal": "2F", "at": "2025-06-02T09:40:00"},
           "carrierCode": "KL", "number": "1227", "aircraft": {"code": "73H"}}
        ]
      }],
      "price": {"total": "612.30", "currency": "USD"},
      "pricingOptions": {"refundableFare": false, "noRestrictionFare": true},
      "travelerPricings": [{"fareDetailsBySegment": [{"cabin": "ECONOMY", "includedCheckedBags": {"quantity": 1}}]}]
    },
    {"id": "2", "itineraries": []}
  ],
  "dictionaries": {"carriers": {"KL": "KLM"}, "aircraft": {"789": "Boeing 787-9"}}
}`

func TestLiveProvider_Search(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(liveFixture))
	}))
	defer srv.Close()

	p := NewLiveProvider(LiveConfig{BaseURL: srv.URL + "/", APIKey: "secret", Client: srv.Client()})
	records, err := p.Search(context.Background(), testRequest())
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/v2/shopping/flight-offers", got.URL.Path)
	assert.Equal(t, "Bearer secret", got.Header.Get("Authorization"))
	q := got.URL.Query()
	assert.Equal(t, "JFK", q.Get("originLocationCode"))
	assert.Equal(t, "CDG", q.Get("destinationLocationCode"))
	assert.Equal(t, "2025-06-01", q.Get("departureDate"))
	assert.Equal(t, "2025-06-10", q.Get("returnDate"))
	assert.Equal(t, "2", q.Get("adults"))
	assert.Equal(t, "1", q.Get("children"))
	assert.Equal(t, "true", q.Get("includedCheckedBagsOnly"))
	assert.Equal(t, "ECONOMY", q.Get("travelClass"))

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "KLM", rec.Airline)
	assert.Equal(t, "KL642", rec.FlightNumber)
	assert.Equal(t, "Boeing 787-9", rec.Aircraft)
	assert.Equal(t, "JFK", rec.Departure.Airport)
	assert.Equal(t, "4", rec.Departure.Terminal)
	assert.Equal(t, "CDG", rec.Arrival.Airport)
	assert.Equal(t, "2025-06-02T09:40:00", rec.Arrival.DateTime)
	assert.Equal(t, "PT9H40M", rec.Duration)
	assert.Equal(t, entity.NewNumber(612.3), rec.Price)
	assert.Equal(t, entity.NewNumber(1), rec.Stops)
	assert.Equal(t, "economy", rec.CabinClass)
	require.NotNil(t, rec.Baggage)
	assert.Equal(t, entity.NewNumber(1), rec.Baggage.Checked)
	require.NotNil(t, rec.Changeable)
	assert.True(t, *rec.Changeable)
	assert.False(t, *rec.Refundable)
}

func TestLiveProvider_ReturnLegIsOneWay(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	req := testRequest()
	req.Leg, req.Origin, req.Destination = entity.LegReturn, "CDG", "JFK"
	req.DepartureDate, req.ReturnDate = *req.ReturnDate, nil

	_, err := NewLiveProvider(LiveConfig{BaseURL: srv.URL, Client: srv.Client()}).Search(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, got)
	q := got.URL.Query()
	assert.Equal(t, "2025-06-10", q.Get("departureDate"))
	assert.False(t, q.Has("returnDate"))
}

func TestLiveProvider_Failures(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		_, err := NewLiveProvider(LiveConfig{}).Search(context.Background(), testRequest())
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := NewLiveProvider(LiveConfig{BaseURL: srv.URL}).Search(context.Background(), testRequest())
		assert.ErrorContains(t, err, "429")
	})

	t.Run("bad payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"data": [`))
		}))
		defer srv.Close()

		_, err := NewLiveProvider(LiveConfig{BaseURL: srv.URL}).Search(context.Background(), testRequest())
		assert.ErrorContains(t, err, "live decode")
	})
}

func TestBackendProvider_Search(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/flights/search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{
			"success": true,
			"flights": [{"id": "b1", "airline": "Delta", "flightNumber": "DL264", "price": 530,
				"departure": {"airport": "JFK", "date": "2025-06-01", "time": "19:15"},
				"arrival": {"airport": "CDG", "date": "2025-06-02", "time": "08:40"}}],
			"totalResults": 1, "searchId": "s-1", "searchTime": 120,
			"recommendations": [], "fallbackUsed": false, "fallbackReason": ""
		}`))
	}))
	defer srv.Close()

	records, err := NewBackendProvider(BackendConfig{BaseURL: srv.URL}).Search(context.Background(), testRequest())
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "DL264", records[0].FlightNumber)
	assert.Equal(t, entity.NewNumber(530), records[0].Price)

	assert.Equal(t, "JFK", body["origin"])
	assert.Equal(t, "2025-06-10", body["returnDate"])
	assert.Equal(t, "economy", body["cabinClass"])
	assert.Equal(t, map[string]any{"adults": 2.0, "children": 1.0, "infants": 0.0}, body["passengers"])
	assert.Contains(t, body, "filters")
	assert.Contains(t, body, "preferences")
	assert.Contains(t, body, "userContext")
}

func TestBackendProvider_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "success false", status: http.StatusOK, body: `{"success": false, "message": "no inventory"}`, wantErr: ErrRejected},
		{name: "server error", status: http.StatusBadGateway, body: `{}`},
		{name: "bad json", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			records, err := NewBackendProvider(BackendConfig{BaseURL: srv.URL}).Search(context.Background(), testRequest())
			require.Error(t, err)
			assert.Nil(t, records)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	_, err := NewBackendProvider(BackendConfig{}).Search(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSyntheticProvider(t *testing.T) {
	req := testRequest()
	p := NewSyntheticProvider(0)
	assert.Equal(t, entity.SourceMock, p.Name())

	first, err := p.Search(context.Background(), req)
	require.NoError(t, err)
	second, err := p.Search(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, first, DefaultSyntheticCount)
	assert.Equal(t, first, second)
	for _, rec := range first {
		assert.Equal(t, "JFK", rec.Departure.Airport)
		assert.Equal(t, "CDG", rec.Arrival.Airport)
		assert.Equal(t, "2025-06-01", rec.Departure.Date)
	}

	req.DepartureDate = req.DepartureDate.AddDate(0, 0, 1)
	other, err := p.Search(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, first[0].Price, other[0].Price)
}

func TestGenerate(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	offers := Generate(3, "LHR", "JFK", date)

	require.Len(t, offers, 3)
	for _, o := range offers {
		assert.Equal(t, entity.SourceMock, o.Source)
		assert.Equal(t, "LHR", o.Departure.Airport)
		assert.Equal(t, "JFK", o.Arrival.Airport)
		assert.Equal(t, date, o.Departure.Date)
		assert.Greater(t, o.DurationMinutes, 0)
		assert.Greater(t, o.Price, 0.0)
	}

	assert.Len(t, Generate(0, "LHR", "JFK", date), DefaultSyntheticCount)
}

func TestHotelProvider_SearchHotels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "CDG", req["airportCode"])
		assert.Equal(t, "2025-06-01", req["checkInDate"])
		assert.Equal(t, "2025-06-10", req["checkOutDate"])
		_, _ = w.Write([]byte(`{"hotels": [
			{"id": "h1", "name": "Le Marais", "rating": 4.5, "totalPrice": 1350.4},
			{"id": "h2", "name": "Per Night Only", "pricePerNight": "100"},
			{"id": "h3", "name": "No Price"}
		], "searchMetadata": {"total": 3}}`))
	}))
	defer srv.Close()

	hotels, err := NewHotelProvider(HotelConfig{BaseURL: srv.URL}).SearchHotels(context.Background(), HotelRequest{
		AirportCode:  "CDG",
		CheckInDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Adults:       2,
		Rooms:        1,
		Currency:     "EUR",
	})
	require.NoError(t, err)

	require.Len(t, hotels, 2)
	assert.Equal(t, 1350.4, hotels[0].TotalPrice)
	assert.Equal(t, 150.04, hotels[0].PricePerNight)
	assert.Equal(t, 900.0, hotels[1].TotalPrice)
	assert.Equal(t, "EUR", hotels[1].Currency)
}

func TestSyntheticHotelProvider(t *testing.T) {
	req := HotelRequest{
		AirportCode:  "CDG",
		CheckInDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		Rooms:        1,
	}
	hotels, err := NewSyntheticHotelProvider(4).SearchHotels(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, hotels, 4)
	for _, h := range hotels {
		assert.Equal(t, h.PricePerNight*3, h.TotalPrice)
	}
}

type countingSource struct {
	calls []time.Time
}

func (c *countingSource) Name() entity.Source { return entity.SourceLive }

func (c *countingSource) Search(context.Context, SearchRequest) ([]entity.RawOffer, error) {
	c.calls = append(c.calls, time.Now())
	return nil, nil
}

func TestRateLimitedSource(t *testing.T) {
	inner := &countingSource{}
	s := NewRateLimitedSource(inner, 30*time.Millisecond)
	assert.Equal(t, entity.SourceLive, s.Name())

	for i := 0; i < 3; i++ {
		_, err := s.Search(context.Background(), testRequest())
		require.NoError(t, err)
	}

	require.Len(t, inner.calls, 3)
	assert.GreaterOrEqual(t, inner.calls[2].Sub(inner.calls[0]), 55*time.Millisecond)
}

func TestRateLimitedSource_ContextCancelled(t *testing.T) {
	s := NewRateLimitedSource(&countingSource{}, time.Hour)
	_, err := s.Search(context.Background(), testRequest())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Search(ctx, testRequest())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewSearchRequest(t *testing.T) {
	ret := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	req := entity.SearchRequest{Origin: "JFK", Destination: "CDG", DepartureDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), ReturnDate: &ret}

	out, _ := req.Leg(entity.LegOutbound)
	back, _ := req.Leg(entity.LegReturn)

	assert.Equal(t, &ret, NewSearchRequest(req, out).ReturnDate)
	returnQuery := NewSearchRequest(req, back)
	assert.Nil(t, returnQuery.ReturnDate)
	assert.Equal(t, "CDG", returnQuery.Origin)
	assert.Equal(t, ret, returnQuery.DepartureDate)
}
