package catalog

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/poiesic/mergen/core"
)

type rawFlight struct {
	FlightID string `json:"flight_id"`
	Carrier  string `json:"carrier"`
	FlightNo string `json:"flight_no"`
	Leg      struct {
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
		Departure   string `json:"departure"`
		Arrival     string `json:"arrival"`
	} `json:"leg"`
	Pricing struct {
		Amount    amount `json:"amount"`
		Currency  string `json:"currency"`
		FareClass string `json:"fare_class"`
		Cabin     string `json:"cabin"`
	} `json:"pricing"`
	Baggage       string     `json:"baggage"`
	TransferZones stringList `json:"transfer_zones"`
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseTime parses the timestamp layouts found in the flight catalog.
// Timestamps without a zone are read as UTC.
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LoadFlights reads the flight catalog at path. Flights with an unparseable
// departure keep a zero Departure and never match a time-of-day preference.
func LoadFlights(path string, opts ...Option) ([]*core.Flight, LoadStats, error) {
	o := buildOptions("flights", opts)

	records, err := readRecords(path, "flights", o.logger)
	if err != nil {
		return nil, LoadStats{}, err
	}

	var stats LoadStats
	flights := make([]*core.Flight, 0, len(records))
	for i, record := range records {
		var raw rawFlight
		if err := json.Unmarshal(record, &raw); err != nil {
			o.logger.Warn("skipping unreadable flight", "index", i, "err", err)
			stats.Skipped++
			continue
		}

		flight, backfilled := normalizeFlight(&raw)
		if err := core.ValidateFlight(flight); err != nil {
			o.logger.Warn("skipping invalid flight", "index", i, "id", flight.ID, "err", err)
			stats.Skipped++
			continue
		}
		if backfilled {
			stats.Backfilled++
		}
		flights = append(flights, flight)
	}

	stats.Loaded = len(flights)
	o.logger.Info("flight catalog loaded", "path", path, "loaded", stats.Loaded, "skipped", stats.Skipped, "backfilled", stats.Backfilled)
	return flights, stats, nil
}

func normalizeFlight(raw *rawFlight) (*core.Flight, bool) {
	backfilled := false

	departure, ok := parseTime(raw.Leg.Departure)
	if !ok {
		backfilled = true
	}
	arrival, ok := parseTime(raw.Leg.Arrival)
	if !ok {
		backfilled = true
	}

	fare, substituted := price(raw.Pricing.Amount)
	if substituted {
		backfilled = true
	}

	currency := strings.ToUpper(strings.TrimSpace(raw.Pricing.Currency))
	if currency == "" {
		currency = core.DefaultCurrency
	}

	carrier := strings.ToUpper(strings.TrimSpace(raw.Carrier))
	number := strings.TrimSpace(raw.FlightNo)
	id := strings.TrimSpace(raw.FlightID)
	if id == "" {
		id = carrier + number
	}

	return &core.Flight{
		ID:            id,
		Carrier:       carrier,
		Number:        number,
		Origin:        strings.ToUpper(strings.TrimSpace(raw.Leg.Origin)),
		Destination:   strings.ToUpper(strings.TrimSpace(raw.Leg.Destination)),
		Departure:     departure,
		Arrival:       arrival,
		Cabin:         strings.ToUpper(strings.TrimSpace(raw.Pricing.Cabin)),
		FareClass:     strings.TrimSpace(raw.Pricing.FareClass),
		Price:         fare,
		Currency:      currency,
		Baggage:       strings.TrimSpace(raw.Baggage),
		TransferZones: dedupe(raw.TransferZones),
	}, backfilled
}
