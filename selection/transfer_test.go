package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/mergen/core"
)

func route(code, from, areaCode, areaName, category string, price float64) *core.TransferRoute {
	return &core.TransferRoute{
		ServiceCode:     code,
		OperatorID:      "OP1",
		FromCode:        from,
		ToAreaCode:      areaCode,
		ToAreaName:      areaName,
		DurationMinutes: 45,
		Vehicle:         core.Vehicle{Category: category, MaxPax: 6},
		Price:           price,
		Currency:        core.DefaultCurrency,
	}
}

var antalyaRoutes = []*core.TransferRoute{
	route("AREA-LARA", "AYT", "LAR", "Lara", "VAN_STANDARD", 900),
	route("DIST-MURAT", "AYT", "MRT", "Muratpaşa", "VAN_STANDARD", 700),
	route("CITY-ANT", "AYT", "ANT", "Antalya", "SHUTTLE", 400),
	route("REG-BELEK", "AYT", "BLK", "Belek", "VAN_STANDARD", 1200),
	route("CENTER", "AYT", "CTR", "Şehir Merkezi", "SHUTTLE", 300),
	route("OTHER-AIRPORT", "GZP", "LAR", "Lara", "SHUTTLE", 100),
}

func TestTransferSelector_TierPrecedence(t *testing.T) {
	s := NewTransferSelector(antalyaRoutes)

	tests := []struct {
		name  string
		hotel *core.Hotel
		want  string
		tier  core.MatchTier
	}{
		{
			name:  "area beats coarser tiers",
			hotel: &core.Hotel{Name: "A", City: "Antalya", District: "Muratpaşa", Area: "Lara"},
			want:  "AREA-LARA",
			tier:  core.TierArea,
		},
		{
			name:  "district when area has no route",
			hotel: &core.Hotel{Name: "B", City: "Antalya", District: "Muratpaşa", Area: "Güzeloba"},
			want:  "DIST-MURAT",
			tier:  core.TierDistrict,
		},
		{
			name:  "city when district has no route",
			hotel: &core.Hotel{Name: "C", City: "Antalya", District: "Döşemealtı", Area: "Yeniköy"},
			want:  "CITY-ANT",
			tier:  core.TierCity,
		},
		{
			name:  "backfilled district and area match at city tier",
			hotel: &core.Hotel{Name: "D", City: "Antalya", District: "Antalya", Area: "Antalya"},
			want:  "CITY-ANT",
			tier:  core.TierCity,
		},
		{
			name:  "backfilled area matches at district tier",
			hotel: &core.Hotel{Name: "F", City: "Antalya", District: "Muratpaşa", Area: "MURATPASA"},
			want:  "DIST-MURAT",
			tier:  core.TierDistrict,
		},
		{
			name:  "fuzzy spelling matches area",
			hotel: &core.Hotel{Name: "E", City: "Antalya", District: "Muratpasa", Area: "LARA KUNDU"},
			want:  "AREA-LARA",
			tier:  core.TierArea,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Select("AYT", tt.hotel, core.StyleFamily)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Route.ServiceCode)
			assert.Equal(t, tt.tier, got.Tier)
		})
	}
}

func TestTransferSelector_CityRegionAndDefault(t *testing.T) {
	t.Run("resort region of the hotel city", func(t *testing.T) {
		s := NewTransferSelector([]*core.TransferRoute{
			route("REG-BELEK", "AYT", "BLK", "Belek", "VAN_STANDARD", 1200),
			route("CENTER", "AYT", "CTR", "Şehir Merkezi", "SHUTTLE", 300),
		})
		got := s.Select("AYT", &core.Hotel{Name: "R", City: "Antalya", District: "Kepez", Area: "Kepez"}, core.StyleFamily)
		require.NotNil(t, got)
		assert.Equal(t, "REG-BELEK", got.Route.ServiceCode)
		assert.Equal(t, core.TierCityRegion, got.Tier)
	})

	t.Run("city center as last resort", func(t *testing.T) {
		s := NewTransferSelector([]*core.TransferRoute{
			route("CENTER", "ADB", "CTR", "Genel Şehir Transferi", "SHUTTLE", 300),
			route("ELSEWHERE", "ADB", "CSM", "Çeşme", "VAN_VIP", 900),
		})
		got := s.Select("ADB", &core.Hotel{Name: "S", City: "Manisa", District: "Manisa", Area: "Manisa"}, core.StyleFamily)
		require.NotNil(t, got)
		assert.Equal(t, "CENTER", got.Route.ServiceCode)
		assert.Equal(t, core.TierDefault, got.Tier)
	})

	t.Run("no route for an unrelated area", func(t *testing.T) {
		s := NewTransferSelector([]*core.TransferRoute{
			route("ELSEWHERE", "ADB", "CSM", "Çeşme", "VAN_VIP", 900),
		})
		assert.Nil(t, s.Select("ADB", &core.Hotel{Name: "T", City: "Manisa", District: "Manisa", Area: "Manisa"}, core.StyleFamily))
	})

	t.Run("no routes from airport", func(t *testing.T) {
		s := NewTransferSelector(antalyaRoutes)
		assert.Nil(t, s.Select("VAN", &core.Hotel{Name: "U", City: "Van", Area: "Van"}, core.StyleFamily))
	})

	t.Run("nil hotel", func(t *testing.T) {
		s := NewTransferSelector(antalyaRoutes)
		assert.Nil(t, s.Select("AYT", nil, core.StyleFamily))
	})
}

func TestTransferSelector_StyleOrdering(t *testing.T) {
	s := NewTransferSelector([]*core.TransferRoute{
		route("SHUTTLE", "BJV", "GMB", "Gümbet", "SHUTTLE", 250),
		route("STANDARD", "BJV", "GMB", "Gümbet", "VAN_STANDARD", 600),
		route("VIP", "BJV", "GMB", "Gümbet", "VAN_VIP", 1400),
		route("VIP-CHEAP", "BJV", "GMB", "Gümbet", "CAR_PREMIUM", 1100),
	})
	hotel := &core.Hotel{Name: "G", City: "Muğla", District: "Bodrum", Area: "Gümbet"}

	tests := []struct {
		style core.TravelStyle
		want  string
	}{
		{core.StyleLuxury, "VIP-CHEAP"},
		{core.StyleEconomical, "SHUTTLE"},
		{core.StyleFamily, "SHUTTLE"},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			got := s.Select("bjv", hotel, tt.style)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Route.ServiceCode)
		})
	}
}

func TestTransferSelector_PriceTieUsesVehicleRank(t *testing.T) {
	s := NewTransferSelector([]*core.TransferRoute{
		route("ECO", "DLM", "FTH", "Fethiye", "CAR_ECONOMY", 800),
		route("COMFORT", "DLM", "FTH", "Fethiye", "CAR_COMFORT", 800),
	})

	got := s.Select("DLM", &core.Hotel{Name: "F", City: "Muğla", District: "Fethiye", Area: "Fethiye"}, core.StyleEconomical)
	require.NotNil(t, got)
	assert.Equal(t, "COMFORT", got.Route.ServiceCode)
}

func TestVehicleRank(t *testing.T) {
	tests := []struct {
		category string
		want     int
	}{
		{"VAN_VIP", RankPremium},
		{"CAR_PREMIUM", RankPremium},
		{"luxury", RankPremium},
		{"VAN_STANDARD", RankStandard},
		{"CAR_COMFORT", RankStandard},
		{"SHUTTLE", RankEconomy},
		{"CAR_ECONOMY", RankEconomy},
		{"SUV", RankUnknown},
		{"", RankUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, VehicleRank(tt.category))
		})
	}
}
