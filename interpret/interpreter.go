package interpret

import (
	"context"
	"strings"

	"github.com/poiesic/mergen/core"
	"github.com/poiesic/mergen/location"
)

// Interpreter reads a user's travel request.
type Interpreter interface {
	// Interpret never fails; unreadable requests yield a default intent.
	Interpret(ctx context.Context, query string) core.TravelIntent
}

const maxPreferences = 6

// DefaultIntent is the intent used when a request cannot be read at all.
func DefaultIntent(homeAirport string) core.TravelIntent {
	return core.TravelIntent{
		DestinationCity: location.DefaultDestinationCity,
		DestinationIATA: location.DefaultDestinationIATA,
		OriginIATA:      homeAirport,
		Style:           core.StyleFamily,
		WantsFlight:     false,
		WantsTransfer:   false,
		WantsHotel:      true,
	}
}

// resolveDestination picks the airport for city. The place table wins over
// a suggested code; an unknown city with no usable suggestion falls back to
// the default destination airport.
func resolveDestination(city, suggested string) string {
	if code, ok := location.AirportFor(city); ok {
		return code
	}
	suggested = strings.ToUpper(strings.TrimSpace(suggested))
	if location.IsKnownAirport(suggested) {
		return suggested
	}
	return location.DefaultDestinationIATA
}

func dedupePreferences(prefs []string) []string {
	seen := make(map[string]struct{}, len(prefs))
	out := make([]string, 0, len(prefs))
	for _, p := range prefs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key := location.Normalize(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
		if len(out) == maxPreferences {
			break
		}
	}
	return out
}
