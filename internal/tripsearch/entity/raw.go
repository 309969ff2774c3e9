package entity

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawOffer is the loosely typed record a provider hands to the normalizer.
// Every field may be missing or malformed.
type RawOffer struct {
	ID              string      `json:"id"`
	Airline         string      `json:"airline"`
	AirlineCode     string      `json:"airlineCode"`
	FlightNumber    string      `json:"flightNumber"`
	Aircraft        string      `json:"aircraft"`
	Departure       RawEndpoint `json:"departure"`
	Arrival         RawEndpoint `json:"arrival"`
	DurationMinutes Number      `json:"durationMinutes"`
	Duration        string      `json:"duration"`
	Price           Number      `json:"price"`
	Currency        string      `json:"currency"`
	CabinClass      string      `json:"cabinClass"`
	Stops           Number      `json:"stops"`
	Baggage         *RawBaggage `json:"baggage"`
	Refundable      *bool       `json:"refundable"`
	Changeable      *bool       `json:"changeable"`
	Score           Number      `json:"score"`
}

type RawEndpoint struct {
	Airport  string `json:"airport"`
	City     string `json:"city"`
	Time     string `json:"time"`
	Date     string `json:"date"`
	DateTime string `json:"dateTime"`
	Terminal string `json:"terminal"`
}

type RawBaggage struct {
	Carry          *bool  `json:"carry"`
	Checked        Number `json:"checked"`
	CheckedBagCost Number `json:"checkedBagCost"`
	MaxCheckedBags Number `json:"maxCheckedBags"`
}

// Number accepts JSON numbers and numeric strings. Anything else decodes as
// an invalid (missing) value instead of failing the whole payload.
type Number struct {
	Value float64
	Valid bool
}

func NewNumber(v float64) Number {
	return Number{Value: v, Valid: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var text string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return nil //nolint:nilerr // malformed string is a missing value
		}
	} else {
		text = string(data)
	}

	text = strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil //nolint:nilerr // non numeric is a missing value
	}
	*n = Number{Value: value, Valid: true}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
