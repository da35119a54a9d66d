package selection

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/mergen/core"
	"github.com/poiesic/mergen/location"
)

// minCodeMatch is the shortest area code compared against hotel locations.
const minCodeMatch = 3

// TransferSelector chooses the ground transfer from an airport to a hotel.
type TransferSelector struct {
	byAirport map[string][]*core.TransferRoute
	logger    *slog.Logger
}

// TransferOption configures a TransferSelector.
type TransferOption func(*TransferSelector)

// WithTransferLogger sets a custom logger.
// Default is slog.Default().
func WithTransferLogger(logger *slog.Logger) TransferOption {
	return func(s *TransferSelector) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewTransferSelector indexes routes by departure airport. Nil entries are ignored.
func NewTransferSelector(routes []*core.TransferRoute, opts ...TransferOption) *TransferSelector {
	s := &TransferSelector{
		byAirport: make(map[string][]*core.TransferRoute),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "transfer-selector")

	for _, r := range routes {
		if r == nil {
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(r.FromCode))
		s.byAirport[key] = append(s.byAirport[key], r)
	}
	return s
}

// Select returns the best transfer from airport to hotel, or nil.
//
// Routes are matched against the hotel's area, then its district, then its
// city (and the resort regions of that city), then any city-center route.
// The first tier with a candidate wins. An area equal to the district, or a
// district equal to the city, was backfilled at load time and is skipped so
// the match is reported at the level the catalog actually named. Inside it luxury travel ranks by
// vehicle quality before price; other styles rank by price first.
func (s *TransferSelector) Select(airport string, hotel *core.Hotel, style core.TravelStyle) *core.Transfer {
	if hotel == nil {
		return nil
	}
	routes := s.byAirport[strings.ToUpper(strings.TrimSpace(airport))]
	if len(routes) == 0 {
		s.logger.Debug("no transfer routes from airport", "airport", airport)
		return nil
	}

	area, district := hotel.Area, hotel.District
	if location.Normalize(area) == location.Normalize(district) {
		area = ""
	}
	if location.Normalize(district) == location.Normalize(hotel.City) {
		district = ""
	}

	tiers := []struct {
		tier  core.MatchTier
		match func(*core.TransferRoute) bool
	}{
		{core.TierArea, func(r *core.TransferRoute) bool { return routeMatches(area, r) }},
		{core.TierDistrict, func(r *core.TransferRoute) bool { return routeMatches(district, r) }},
		{core.TierCity, func(r *core.TransferRoute) bool { return routeMatches(hotel.City, r) }},
		{core.TierCityRegion, func(r *core.TransferRoute) bool { return location.InRegion(hotel.City, r.ToAreaName) }},
		{core.TierDefault, func(r *core.TransferRoute) bool { return location.IsCityCenter(r.ToAreaName) }},
	}

	for _, t := range tiers {
		var matched []*core.TransferRoute
		for _, r := range routes {
			if t.match(r) {
				matched = append(matched, r)
			}
		}
		if len(matched) == 0 {
			continue
		}

		best := rankRoutes(matched, style)[0]
		s.logger.Debug("transfer matched", "hotel", hotel.Name, "tier", t.tier, "route", best.ServiceCode, "candidates", len(matched))
		return &core.Transfer{Route: *best, Tier: t.tier}
	}

	s.logger.Debug("no transfer for hotel", "hotel", hotel.Name, "airport", airport)
	return nil
}

// routeMatches compares a hotel location against a route's area name and,
// when it is long enough to be meaningful, its area code.
func routeMatches(place string, r *core.TransferRoute) bool {
	if place == "" {
		return false
	}
	if location.Matches(place, r.ToAreaName) {
		return true
	}
	return len(r.ToAreaCode) >= minCodeMatch && location.Matches(place, r.ToAreaCode)
}

// rankRoutes returns routes sorted best first for style.
func rankRoutes(routes []*core.TransferRoute, style core.TravelStyle) []*core.TransferRoute {
	ranked := make([]*core.TransferRoute, len(routes))
	copy(ranked, routes)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		ra, rb := VehicleRank(a.Vehicle.Category), VehicleRank(b.Vehicle.Category)
		if style == core.StyleLuxury {
			if ra != rb {
				return ra < rb
			}
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		} else {
			if a.Price != b.Price {
				return a.Price < b.Price
			}
			if ra != rb {
				return ra < rb
			}
		}
		if a.DurationMinutes != b.DurationMinutes {
			return a.DurationMinutes < b.DurationMinutes
		}
		return a.ServiceCode < b.ServiceCode
	})
	return ranked
}
