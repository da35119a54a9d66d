package catalog

import (
	"encoding/json"
	"strings"

	"github.com/poiesic/mergen/core"
)

type rawLocation struct {
	City     string `json:"city"`
	District string `json:"district"`
	Area     string `json:"area"`
}

type rawHotel struct {
	HotelName     string       `json:"hotel_name"`
	Name          string       `json:"name"`
	Location      *rawLocation `json:"location"`
	City          string       `json:"city"`
	District      string       `json:"district"`
	Area          string       `json:"area"`
	Concept       string       `json:"concept"`
	PricePerNight amount       `json:"price_per_night"`
	Price         amount       `json:"price"`
	Description   string       `json:"description"`
	Amenities     stringList   `json:"amenities"`
}

// LoadHotels reads the hotel catalog at path.
func LoadHotels(path string, opts ...Option) ([]*core.Hotel, LoadStats, error) {
	o := buildOptions("hotels", opts)

	records, err := readRecords(path, "hotels", o.logger)
	if err != nil {
		return nil, LoadStats{}, err
	}

	var stats LoadStats
	hotels := make([]*core.Hotel, 0, len(records))
	for i, record := range records {
		var raw rawHotel
		if err := json.Unmarshal(record, &raw); err != nil {
			o.logger.Warn("skipping unreadable hotel", "index", i, "err", err)
			stats.Skipped++
			continue
		}

		hotel, backfilled := normalizeHotel(&raw)
		if err := core.ValidateHotel(hotel); err != nil {
			o.logger.Warn("skipping invalid hotel", "index", i, "name", hotel.Name, "err", err)
			stats.Skipped++
			continue
		}
		if backfilled {
			stats.Backfilled++
		}
		hotels = append(hotels, hotel)
	}

	stats.Loaded = len(hotels)
	o.logger.Info("hotel catalog loaded", "path", path, "loaded", stats.Loaded, "skipped", stats.Skipped, "backfilled", stats.Backfilled)
	return hotels, stats, nil
}

// normalizeHotel turns a raw record into a strict Hotel. Missing district
// and area fall back to the next coarser level, a missing city becomes
// UnknownCity and a missing price becomes 0.
func normalizeHotel(raw *rawHotel) (*core.Hotel, bool) {
	backfilled := false

	loc := rawLocation{City: raw.City, District: raw.District, Area: raw.Area}
	if raw.Location != nil {
		loc = *raw.Location
	}

	name := firstNonEmpty(raw.HotelName, raw.Name)
	city := strings.TrimSpace(loc.City)
	if city == "" {
		city = UnknownCity
		backfilled = true
	}
	district := strings.TrimSpace(loc.District)
	if district == "" {
		district = city
		backfilled = true
	}
	area := strings.TrimSpace(loc.Area)
	if area == "" {
		area = district
		backfilled = true
	}

	nightly, substituted := price(raw.PricePerNight, raw.Price)
	if substituted {
		backfilled = true
	}

	hotel := &core.Hotel{
		Name:        name,
		City:        city,
		District:    district,
		Area:        area,
		Concept:     strings.TrimSpace(raw.Concept),
		Price:       nightly,
		Description: strings.TrimSpace(raw.Description),
		Amenities:   dedupe(raw.Amenities),
	}
	if name != "" {
		hotel.Id = core.IDFromContent(name + "|" + city)
	}
	return hotel, backfilled
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
