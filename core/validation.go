// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"math"
	"strings"
)

// ValidateHotel validates a Hotel according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Price must be a non-negative number
//   - Amenities must not contain duplicates
//
// NOT validated (backfilled during ingestion):
//   - City, District, Area
//   - ID (derived from content when 0)
func ValidateHotel(hotel *Hotel) error {
	if hotel == nil {
		return fmt.Errorf("%w: hotel is nil", ErrInvalidHotel)
	}

	if strings.TrimSpace(hotel.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidHotel, ErrEmptyName)
	}

	if !IsValidAmount(hotel.Price) {
		return fmt.Errorf("%w: %w", ErrInvalidHotel, ErrNegativePrice)
	}

	seen := make(map[string]struct{}, len(hotel.Amenities))
	for _, a := range hotel.Amenities {
		if _, ok := seen[a]; ok {
			return fmt.Errorf("%w: %w: %q", ErrInvalidHotel, ErrDuplicateAmenity, a)
		}
		seen[a] = struct{}{}
	}

	return nil
}

// ValidateFlight validates a Flight according to domain rules.
func ValidateFlight(flight *Flight) error {
	if flight == nil {
		return fmt.Errorf("%w: flight is nil", ErrInvalidFlight)
	}
	if !IsValidIATA(flight.Origin) || !IsValidIATA(flight.Destination) {
		return fmt.Errorf("%w: %w: %s->%s", ErrInvalidFlight, ErrInvalidIATA, flight.Origin, flight.Destination)
	}
	if !IsValidAmount(flight.Price) {
		return fmt.Errorf("%w: %w", ErrInvalidFlight, ErrNegativePrice)
	}
	return nil
}

// ValidateTransferRoute validates a TransferRoute according to domain rules.
func ValidateTransferRoute(route *TransferRoute) error {
	if route == nil {
		return fmt.Errorf("%w: route is nil", ErrInvalidTransfer)
	}
	if !IsValidIATA(route.FromCode) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidTransfer, ErrInvalidIATA, route.FromCode)
	}
	if strings.TrimSpace(route.ToAreaName) == "" && strings.TrimSpace(route.ToAreaCode) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTransfer, ErrEmptyName)
	}
	if !IsValidAmount(route.Price) {
		return fmt.Errorf("%w: %w", ErrInvalidTransfer, ErrNegativePrice)
	}
	return nil
}

// IsValidIATA reports whether code looks like a three-letter upper-case airport code.
func IsValidIATA(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// IsValidAmount reports whether v is a usable monetary amount.
func IsValidAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// ParseTravelStyle maps free-form style names (Turkish or English) onto the closed set.
// Unknown values report false.
func ParseTravelStyle(s string) (TravelStyle, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ekonomik", "economical", "economy", "budget", "ucuz":
		return StyleEconomical, true
	case "lüks", "luks", "lux", "luxury":
		return StyleLuxury, true
	case "aile", "family":
		return StyleFamily, true
	}
	return StyleFamily, false
}

// ParseTimePreference maps a time-of-day name onto a TimePreference.
func ParseTimePreference(s string) (TimePreference, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning", "sabah":
		return TimeMorning, true
	case "afternoon", "öğle", "ogle", "öğleden sonra":
		return TimeAfternoon, true
	case "evening", "akşam", "aksam":
		return TimeEvening, true
	case "night", "gece":
		return TimeNight, true
	}
	return TimeAny, false
}
