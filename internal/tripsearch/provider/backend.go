package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkglog"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
)

type BackendConfig struct {
	BaseURL string
	Client  *http.Client
}

// BackendProvider calls the in-house flight search API.
type BackendProvider struct {
	baseURL string
	client  *http.Client
}

func NewBackendProvider(cfg BackendConfig) *BackendProvider {
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	return &BackendProvider{baseURL: strings.TrimRight(cfg.BaseURL, "/"), client: client}
}

func (b *BackendProvider) Name() entity.Source {
	return entity.SourceBackend
}

type backendRequest struct {
	Origin        string             `json:"origin"`
	Destination   string             `json:"destination"`
	DepartureDate string             `json:"departureDate"`
	ReturnDate    *string            `json:"returnDate"`
	Passengers    backendPassengers  `json:"passengers"`
	CabinClass    string             `json:"cabinClass"`
	Currency      string             `json:"currency"`
	Filters       backendFilters     `json:"filters"`
	Preferences   backendPreferences `json:"preferences"`
	UserContext   backendUserContext `json:"userContext"`
}

type backendPassengers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

type backendFilters struct {
	MaxPrice    *float64 `json:"maxPrice,omitempty"`
	MaxStops    *int     `json:"maxStops,omitempty"`
	Airlines    []string `json:"airlines,omitempty"`
	CheckedBags int      `json:"checkedBags"`
}

type backendPreferences struct {
	PreferredAirlines []string `json:"preferredAirlines,omitempty"`
	SortBy            string   `json:"sortBy,omitempty"`
}

type backendUserContext struct {
	RequestID string `json:"requestId,omitempty"`
	Leg       string `json:"leg"`
}

type backendResponse struct {
	Success         bool              `json:"success"`
	Flights         []entity.RawOffer `json:"flights"`
	TotalResults    int               `json:"totalResults"`
	SearchID        string            `json:"searchId"`
	SearchTime      entity.Number     `json:"searchTime"`
	Recommendations json.RawMessage   `json:"recommendations"`
	FallbackUsed    bool              `json:"fallbackUsed"`
	FallbackReason  string            `json:"fallbackReason"`
	Message         string            `json:"message"`
}

func (b *BackendProvider) Search(ctx context.Context, req SearchRequest) ([]entity.RawOffer, error) {
	if b.baseURL == "" {
		return nil, fmt.Errorf("backend search: %w", ErrUnavailable)
	}

	payload := backendRequest{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate.Format(entity.DateLayout),
		Passengers: backendPassengers{
			Adults:   req.Passengers.Adults,
			Children: req.Passengers.Children,
			Infants:  req.Passengers.Infants,
		},
		CabinClass: req.CabinClass,
		Currency:   req.Currency,
		Filters: backendFilters{
			MaxPrice:    req.Filters.MaxPrice,
			MaxStops:    req.Filters.MaxStops,
			Airlines:    req.Filters.Airlines,
			CheckedBags: req.CheckedBags,
		},
		Preferences: backendPreferences{
			PreferredAirlines: req.Preferences.PreferredAirlines,
			SortBy:            req.Preferences.SortBy,
		},
		UserContext: backendUserContext{RequestID: pkglog.RequestID(ctx), Leg: string(req.Leg)},
	}
	if req.ReturnDate != nil {
		value := req.ReturnDate.Format(entity.DateLayout)
		payload.ReturnDate = &value
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("backend encode: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/flights/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("backend build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("backend search: unexpected status %d", resp.StatusCode)
	}

	var out backendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("backend decode: %w", err)
	}
	if !out.Success {
		return nil, fmt.Errorf("backend search %q: %w", out.Message, ErrRejected)
	}

	return out.Flights, nil
}
