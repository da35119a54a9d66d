package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestValidateHotel(t *testing.T) {
	tests := []struct {
		name    string
		hotel   *Hotel
		wantErr error
	}{
		{
			name:    "valid hotel",
			hotel:   &Hotel{Name: "Lara Palace", City: "Antalya", Price: 4500, Amenities: []string{"Havuz", "Spa"}},
			wantErr: nil,
		},
		{
			name:    "valid hotel with zero price",
			hotel:   &Hotel{Name: "Lara Palace", Price: 0},
			wantErr: nil,
		},
		{
			name:    "nil hotel",
			hotel:   nil,
			wantErr: ErrInvalidHotel,
		},
		{
			name:    "empty name",
			hotel:   &Hotel{Name: "  ", Price: 100},
			wantErr: ErrEmptyName,
		},
		{
			name:    "negative price",
			hotel:   &Hotel{Name: "Otel", Price: -1},
			wantErr: ErrNegativePrice,
		},
		{
			name:    "NaN price",
			hotel:   &Hotel{Name: "Otel", Price: math.NaN()},
			wantErr: ErrNegativePrice,
		},
		{
			name:    "duplicate amenities",
			hotel:   &Hotel{Name: "Otel", Amenities: []string{"Spa", "Spa"}},
			wantErr: ErrDuplicateAmenity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHotel(tt.hotel)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateHotel() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateHotel() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFlight(t *testing.T) {
	dep := time.Date(2026, 6, 15, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		flight  *Flight
		wantErr error
	}{
		{
			name:   "valid flight",
			flight: &Flight{Origin: "IST", Destination: "AYT", Departure: dep, Price: 2500},
		},
		{
			name:    "lower case origin",
			flight:  &Flight{Origin: "ist", Destination: "AYT", Price: 2500},
			wantErr: ErrInvalidIATA,
		},
		{
			name:    "negative price",
			flight:  &Flight{Origin: "IST", Destination: "AYT", Price: -5},
			wantErr: ErrNegativePrice,
		},
		{
			name:    "nil flight",
			wantErr: ErrInvalidFlight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFlight(tt.flight)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateFlight() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFlight() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTransferRoute(t *testing.T) {
	valid := &TransferRoute{FromCode: "AYT", ToAreaName: "Lara", Price: 750}
	if err := ValidateTransferRoute(valid); err != nil {
		t.Errorf("ValidateTransferRoute() error = %v, want nil", err)
	}

	noArea := &TransferRoute{FromCode: "AYT", Price: 750}
	if err := ValidateTransferRoute(noArea); !errors.Is(err, ErrEmptyName) {
		t.Errorf("ValidateTransferRoute() error = %v, want %v", err, ErrEmptyName)
	}

	badAirport := &TransferRoute{FromCode: "AY", ToAreaName: "Lara"}
	if err := ValidateTransferRoute(badAirport); !errors.Is(err, ErrInvalidIATA) {
		t.Errorf("ValidateTransferRoute() error = %v, want %v", err, ErrInvalidIATA)
	}
}

func TestParseTravelStyle(t *testing.T) {
	tests := []struct {
		in     string
		want   TravelStyle
		wantOK bool
	}{
		{"lüks", StyleLuxury, true},
		{"LUXURY", StyleLuxury, true},
		{"ekonomik", StyleEconomical, true},
		{" budget ", StyleEconomical, true},
		{"aile", StyleFamily, true},
		{"romantik", StyleFamily, false},
		{"", StyleFamily, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTravelStyle(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseTravelStyle(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseTimePreference(t *testing.T) {
	tests := []struct {
		in   string
		want TimePreference
	}{
		{"sabah", TimeMorning},
		{"Evening", TimeEvening},
		{"akşam", TimeEvening},
		{"gece", TimeNight},
		{"öğle", TimeAfternoon},
		{"whenever", TimeAny},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, _ := ParseTimePreference(tt.in)
			if got != tt.want {
				t.Errorf("ParseTimePreference(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
