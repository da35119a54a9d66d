package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Hotel IDs are derived from their content so that re-indexing the same
// catalog produces the same keys.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DefaultCurrency is the single currency every monetary amount is expressed in.
const DefaultCurrency = "TRY"

// UnknownCity is the sentinel used when neither the user nor the catalog names a city.
const UnknownCity = "unknown"

// TravelStyle drives selection preferences for flights and transfers.
type TravelStyle string

const (
	// StyleEconomical prefers the cheapest options.
	StyleEconomical TravelStyle = "ekonomik"
	// StyleLuxury prefers premium cabins and vehicles.
	StyleLuxury TravelStyle = "lüks"
	// StyleFamily is the default style.
	StyleFamily TravelStyle = "aile"
)

// TimePreference is an optional departure time-of-day bucket.
type TimePreference string

const (
	TimeAny       TimePreference = ""
	TimeMorning   TimePreference = "morning"
	TimeAfternoon TimePreference = "afternoon"
	TimeEvening   TimePreference = "evening"
	TimeNight     TimePreference = "night"
)

// MatchTier is the location granularity at which a transfer route matched a hotel.
type MatchTier string

const (
	TierArea       MatchTier = "AREA"
	TierDistrict   MatchTier = "DISTRICT"
	TierCity       MatchTier = "CITY"
	TierCityRegion MatchTier = "CITY_REGION"
	TierDefault    MatchTier = "DEFAULT"
)

// Hotel is a strict, ingestion-normalized hotel record.
type Hotel struct {
	Id          ID       `json:"id"`
	Name        string   `json:"name"`
	City        string   `json:"city"`
	District    string   `json:"district"`
	Area        string   `json:"area"`
	Concept     string   `json:"concept"`
	Price       float64  `json:"price"` // nightly
	Description string   `json:"description"`
	Amenities   []string `json:"amenities"`
}

// Document returns the searchable text embedded for the hotel.
func (h *Hotel) Document() string {
	doc := h.Name + " " + h.City + " " + h.District + " " + h.Concept + " " + h.Description
	for _, a := range h.Amenities {
		doc += " " + a
	}
	return doc
}

// IndexedHotel is a hotel as stored in the hotel index: the record, the
// searchable document text and its embedding.
type IndexedHotel struct {
	Hotel    Hotel
	Document string
	Vector   []float32
}

// SearchResult is a hotel returned from a nearest-neighbor query with its similarity score.
type SearchResult struct {
	Hotel *Hotel
	Score float32
}

// Flight is a single scheduled flight leg from the flight catalog.
type Flight struct {
	ID            string    `json:"flight_id"`
	Carrier       string    `json:"carrier"`
	Number        string    `json:"flight_no"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	Departure     time.Time `json:"departure"`
	Arrival       time.Time `json:"arrival"`
	Cabin         string    `json:"cabin"`
	FareClass     string    `json:"fare_class,omitempty"`
	Price         float64   `json:"price"`
	Currency      string    `json:"currency"`
	Baggage       string    `json:"baggage,omitempty"`
	TransferZones []string  `json:"transfer_zones,omitempty"`
}

// Vehicle describes the vehicle serving a transfer route.
type Vehicle struct {
	Category string   `json:"category"`
	MaxPax   int      `json:"max_pax"`
	Features []string `json:"features,omitempty"`
}

// TransferRoute is an airport-to-area ground transfer offer.
type TransferRoute struct {
	ServiceCode     string  `json:"service_code"`
	OperatorID      string  `json:"operator_id"`
	FromCode        string  `json:"from_code"`
	FromName        string  `json:"from_name,omitempty"`
	ToAreaCode      string  `json:"to_area_code"`
	ToAreaName      string  `json:"to_area_name"`
	DurationMinutes int     `json:"estimated_duration"`
	Vehicle         Vehicle `json:"vehicle"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	HotelCoverage   int     `json:"hotel_coverage"`
}

// Transfer is a transfer route selected for a hotel together with the tier it matched at.
type Transfer struct {
	Route TransferRoute `json:"route"`
	Tier  MatchTier     `json:"tier"`
}

// TravelIntent is the structured reading of a free-text user request.
type TravelIntent struct {
	DestinationCity string         `json:"destination_city"`
	DestinationIATA string         `json:"destination_iata"`
	OriginIATA      string         `json:"origin_iata"`
	Style           TravelStyle    `json:"travel_style"`
	TimePreference  TimePreference `json:"time_preference,omitempty"`
	WantsFlight     bool           `json:"wants_flight"`
	WantsTransfer   bool           `json:"wants_transfer"`
	WantsHotel      bool           `json:"wants_hotel"`
	Preferences     []string       `json:"preferences,omitempty"`
	ExplicitCity    bool           `json:"explicit_city"`
}

// PriceBreakdown is the per-component price of a package.
// Total always equals Hotel + Flight + Transfer.
type PriceBreakdown struct {
	Hotel    float64 `json:"hotel"`
	Flight   float64 `json:"flight"`
	Transfer float64 `json:"transfer"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

// Package is one assembled recommendation.
type Package struct {
	ID        string         `json:"id"`
	Hotel     Hotel          `json:"hotel"`
	Flight    *Flight        `json:"flight"`
	Transfer  *Transfer      `json:"transfer"`
	Airport   string         `json:"airport"`
	Breakdown PriceBreakdown `json:"breakdown"`
	Summary   string         `json:"summary"`
}

// Plan is the outcome of a single planning request. Message is set when no
// package could be produced.
type Plan struct {
	Query    string       `json:"query"`
	Intent   TravelIntent `json:"intent"`
	Packages []*Package   `json:"packages"`
	Message  string       `json:"message,omitempty"`
}
