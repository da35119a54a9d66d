package interpret

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/mergen/core"
	"github.com/poiesic/mergen/location"
)

func newKeyword(t *testing.T, opts ...KeywordOption) *KeywordInterpreter {
	t.Helper()
	k, err := NewKeywordInterpreter(opts...)
	require.NoError(t, err)
	return k
}

func TestKeywordInterpreter_Destination(t *testing.T) {
	k := newKeyword(t)

	tests := []struct {
		name     string
		query    string
		city     string
		iata     string
		explicit bool
	}{
		{"city with suffix", "Antalya'da ailemle, deniz manzaralı otel", "Antalya", "AYT", true},
		{"attached suffix", "antalyada bir otel", "Antalya", "AYT", true},
		{"upper case with dotted I", "İZMİR otelleri", "İzmir", "ADB", true},
		{"resort area", "Çeşme'de sörf yapılacak yer", "Çeşme", "ADB", true},
		{"satellite airport", "Fethiye Ölüdeniz tatili", "Fethiye", "DLM", true},
		{"short name needs whole token", "Kaş'ta sessiz pansiyon", "Kaş", "AYT", true},
		{"short name not a prefix", "kasım ayında tatil", location.DefaultDestinationCity, location.DefaultDestinationIATA, false},
		{"unknown city", "Atlantis'te bir otel", location.DefaultDestinationCity, location.DefaultDestinationIATA, false},
		{"empty query", "", location.DefaultDestinationCity, location.DefaultDestinationIATA, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := k.Interpret(context.Background(), tt.query)
			assert.Equal(t, tt.city, intent.DestinationCity)
			assert.Equal(t, tt.iata, intent.DestinationIATA)
			assert.Equal(t, tt.explicit, intent.ExplicitCity)
			assert.True(t, intent.WantsHotel)
		})
	}
}

func TestKeywordInterpreter_Origin(t *testing.T) {
	k := newKeyword(t)

	t.Run("default home airport", func(t *testing.T) {
		intent := k.Interpret(context.Background(), "Bodrum'da otel")
		assert.Equal(t, location.HomeAirport, intent.OriginIATA)
	})

	t.Run("departure marked by ablative", func(t *testing.T) {
		intent := k.Interpret(context.Background(), "Ankara'dan Bodrum'a uçak ve otel")
		assert.Equal(t, "ESB", intent.OriginIATA)
		assert.Equal(t, "Bodrum", intent.DestinationCity)
		assert.Equal(t, "BJV", intent.DestinationIATA)
	})

	t.Run("attached ablative", func(t *testing.T) {
		intent := k.Interpret(context.Background(), "gaziantepten antalyaya")
		assert.Equal(t, "GZT", intent.OriginIATA)
		assert.Equal(t, "Antalya", intent.DestinationCity)
	})

	t.Run("configured home airport", func(t *testing.T) {
		k := newKeyword(t, WithKeywordHomeAirport("saw"))
		intent := k.Interpret(context.Background(), "Didim")
		assert.Equal(t, "SAW", intent.OriginIATA)
	})
}

func TestKeywordInterpreter_Style(t *testing.T) {
	k := newKeyword(t)

	tests := []struct {
		query string
		want  core.TravelStyle
	}{
		{"lüks bir otel", core.StyleLuxury},
		{"VIP transferli tatil", core.StyleLuxury},
		{"ucuz otel", core.StyleEconomical},
		{"ekonomik paket", core.StyleEconomical},
		{"bütçe dostu", core.StyleEconomical},
		{"çocuklarla tatil", core.StyleFamily},
		{"", core.StyleFamily},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, k.Interpret(context.Background(), tt.query).Style)
		})
	}
}

func TestKeywordInterpreter_Time(t *testing.T) {
	k := newKeyword(t)

	tests := []struct {
		query string
		want  core.TimePreference
	}{
		{"sabah uçuşu", core.TimeMorning},
		{"öğleden sonra kalkış", core.TimeAfternoon},
		{"akşamüstü varış", core.TimeEvening},
		{"gece uçağı", core.TimeNight},
		{"3 gece konaklama", core.TimeAny},
		{"sabah kahvaltısı dahil otel", core.TimeAny},
		{"akşam yemeği olan otel", core.TimeAny},
		{"gece kulübüne yakın otel", core.TimeAny},
		{"sabah kahvaltısı dahil, akşam uçuşu", core.TimeEvening},
		{"otel", core.TimeAny},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, k.Interpret(context.Background(), tt.query).TimePreference)
		})
	}
}

func TestKeywordInterpreter_Services(t *testing.T) {
	k := newKeyword(t)

	tests := []struct {
		query            string
		flight, transfer bool
	}{
		{"İzmir'e uçak bileti ve otel", true, false},
		{"havalimanı transferi olan otel", false, true},
		{"uçuş ve transfer", true, true},
		{"Antalya'da otel", true, true},
		{"oda servisi olan otel", true, true},
		{"oda servisi olan otel ve uçak bileti", true, false},
		{"ücretsiz araç parkı olan otel", true, true},
		{"havalimanı servisi", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			intent := k.Interpret(context.Background(), tt.query)
			assert.Equal(t, tt.flight, intent.WantsFlight)
			assert.Equal(t, tt.transfer, intent.WantsTransfer)
		})
	}
}

func TestKeywordInterpreter_Preferences(t *testing.T) {
	k := newKeyword(t)

	intent := k.Interpret(context.Background(), "Denize sıfır, aquaparklı, her şey dahil; AQUAPARK şart")
	assert.Equal(t, []string{"denize sıfır", "her şey dahil", "aquapark"}, intent.Preferences)
}

func TestNewKeywordInterpreter_InvalidHomeAirport(t *testing.T) {
	_, err := NewKeywordInterpreter(WithKeywordHomeAirport("istanbul"))
	assert.ErrorIs(t, err, ErrInvalidAirport)
}
