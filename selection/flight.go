package selection

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/mergen/core"
)

// premiumCabins are the cabin markers preferred for luxury travel.
var premiumCabins = []string{"BUSINESS", "FIRST", "PREMIUM"}

// FlightSelector chooses a flight for a route from the flight catalog.
type FlightSelector struct {
	byRoute map[string][]*core.Flight
	logger  *slog.Logger
}

// FlightOption configures a FlightSelector.
type FlightOption func(*FlightSelector)

// WithFlightLogger sets a custom logger.
// Default is slog.Default().
func WithFlightLogger(logger *slog.Logger) FlightOption {
	return func(s *FlightSelector) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFlightSelector indexes flights by route. Nil entries are ignored.
func NewFlightSelector(flights []*core.Flight, opts ...FlightOption) *FlightSelector {
	s := &FlightSelector{
		byRoute: make(map[string][]*core.Flight),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "flight-selector")

	for _, f := range flights {
		if f == nil {
			continue
		}
		key := routeKey(f.Origin, f.Destination)
		s.byRoute[key] = append(s.byRoute[key], f)
	}
	return s
}

// Select returns the cheapest flight from origin to destination matching
// the time preference, or nil. Luxury travel prefers premium cabins when the
// route offers any. Ties on price go to the earlier departure.
func (s *FlightSelector) Select(origin, destination string, style core.TravelStyle, pref core.TimePreference) *core.Flight {
	candidates := s.byRoute[routeKey(origin, destination)]

	if pref != core.TimeAny {
		timed := make([]*core.Flight, 0, len(candidates))
		for _, f := range candidates {
			if !f.Departure.IsZero() && InTimeBucket(f.Departure.Hour(), pref) {
				timed = append(timed, f)
			}
		}
		candidates = timed
	}

	if style == core.StyleLuxury {
		var premium []*core.Flight
		for _, f := range candidates {
			if IsPremiumCabin(f.Cabin) {
				premium = append(premium, f)
			}
		}
		if len(premium) > 0 {
			candidates = premium
		}
	}

	if len(candidates) == 0 {
		s.logger.Debug("no flight for route", "origin", origin, "destination", destination, "time", pref)
		return nil
	}

	best := make([]*core.Flight, len(candidates))
	copy(best, candidates)
	sort.SliceStable(best, func(i, j int) bool {
		a, b := best[i], best[j]
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		if !a.Departure.Equal(b.Departure) {
			return a.Departure.Before(b.Departure)
		}
		return a.ID < b.ID
	})
	return best[0]
}

// InTimeBucket reports whether a departure hour falls in the bucket for
// pref: morning 06-12, afternoon 12-17, evening 17-24 and night the rest.
func InTimeBucket(hour int, pref core.TimePreference) bool {
	switch pref {
	case core.TimeMorning:
		return hour >= 6 && hour < 12
	case core.TimeAfternoon:
		return hour >= 12 && hour < 17
	case core.TimeEvening:
		return hour >= 17 && hour < 24
	case core.TimeNight:
		return hour >= 0 && hour < 6
	default:
		return true
	}
}

// IsPremiumCabin reports whether cabin names a premium class.
func IsPremiumCabin(cabin string) bool {
	c := strings.ToUpper(cabin)
	for _, p := range premiumCabins {
		if strings.Contains(c, p) {
			return true
		}
	}
	return false
}

func routeKey(origin, destination string) string {
	return strings.ToUpper(strings.TrimSpace(origin)) + "-" + strings.ToUpper(strings.TrimSpace(destination))
}
