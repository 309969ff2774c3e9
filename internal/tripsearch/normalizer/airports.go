package normalizer

import "strings"

var airportCities = map[string]string{
	"AMS": "Amsterdam",
	"ATL": "Atlanta",
	"BCN": "Barcelona",
	"BKK": "Bangkok",
	"BOS": "Boston",
	"CDG": "Paris",
	"CGK": "Jakarta",
	"DFW": "Dallas",
	"DPS": "Denpasar",
	"DXB": "Dubai",
	"FCO": "Rome",
	"FRA": "Frankfurt",
	"HND": "Tokyo",
	"IST": "Istanbul",
	"JFK": "New York",
	"LAX": "Los Angeles",
	"LGA": "New York",
	"LHR": "London",
	"MAD": "Madrid",
	"MIA": "Miami",
	"MUC": "Munich",
	"NRT": "Tokyo",
	"ORD": "Chicago",
	"ORY": "Paris",
	"SFO": "San Francisco",
	"SIN": "Singapore",
	"SYD": "Sydney",
	"YYZ": "Toronto",
}

func cityFromAirport(code string) string {
	return airportCities[strings.ToUpper(code)]
}

// CityFromAirport returns the served city for known IATA codes, or "".
func CityFromAirport(code string) string {
	return cityFromAirport(code)
}
