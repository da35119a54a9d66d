package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/mergen/ai/mock"
	"github.com/poiesic/mergen/core"
	"github.com/poiesic/mergen/location"
	"github.com/poiesic/mergen/storage"
	"github.com/poiesic/mergen/storage/badger"
)

type hotelSpec struct {
	city, district, description string
	count                       int
}

func hotel(name, city, district, description string) *core.Hotel {
	return &core.Hotel{
		Id:          core.IDFromContent(name + "|" + city),
		Name:        name,
		City:        city,
		District:    district,
		Area:        district,
		Concept:     "Otel",
		Price:       1500,
		Description: description,
	}
}

func seedIndex(t *testing.T, specs ...hotelSpec) storage.HotelIndex {
	t.Helper()
	index, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })

	var entries []*core.IndexedHotel
	for _, s := range specs {
		for i := 0; i < s.count; i++ {
			h := hotel(fmt.Sprintf("%s Tesis %d", s.district, i), s.city, s.district, s.description)
			entries = append(entries, &core.IndexedHotel{
				Hotel:    *h,
				Document: h.Document(),
				Vector:   mock.BagOfWords(h.Document(), mock.Dimensions),
			})
		}
	}
	require.NoError(t, index.Upsert(context.Background(), entries...))
	return index
}

func newMatcher(t *testing.T, index storage.HotelIndex) *Matcher {
	t.Helper()
	m, err := NewMatcher(index, mock.NewMockEmbedder())
	require.NoError(t, err)
	return m
}

func cities(hotels []*core.Hotel) map[string]int {
	out := make(map[string]int)
	for _, h := range hotels {
		out[location.Normalize(h.City)]++
	}
	return out
}

type recordingMonitor struct {
	noopMonitor
	rounds   [][2]int
	scanned  int
	finished *Result
}

func (r *recordingMonitor) DiversityRound(fetched, cities int) {
	r.rounds = append(r.rounds, [2]int{fetched, cities})
}
func (r *recordingMonitor) AfterFullScan(scanned int, _ []*core.Hotel) { r.scanned = scanned }
func (r *recordingMonitor) Finish(result *Result)                      { r.finished = result }

func TestNewMatcher_Validation(t *testing.T) {
	index := seedIndex(t)

	_, err := NewMatcher(nil, mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrIndexRequired)

	_, err = NewMatcher(index, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewMatcher(index, mock.NewMockEmbedder(), WithScanLimit(0))
	assert.Error(t, err)
}

func TestClampTopK(t *testing.T) {
	tests := []struct{ in, want int }{
		{-5, -5}, {0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 3}, {100, 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, ClampTopK(tt.in))
		})
	}
}

func TestMatcher_CityFromNearestNeighbors(t *testing.T) {
	index := seedIndex(t,
		hotelSpec{"Antalya", "Lara", "denize sıfır aquapark", 4},
		hotelSpec{"İzmir", "Çeşme", "rüzgar sörf", 4},
	)
	m := newMatcher(t, index)

	result, err := m.FindHotels(context.Background(), "denize sıfır aquapark", "ANTALYA", 2)
	require.NoError(t, err)

	assert.Equal(t, StageSemantic, result.Stage)
	assert.Empty(t, result.Message)
	require.Len(t, result.Hotels, 2)
	for _, h := range result.Hotels {
		assert.Equal(t, "Antalya", h.City)
	}
}

func TestMatcher_CityFromFullScan(t *testing.T) {
	index := seedIndex(t,
		hotelSpec{"İzmir", "Çeşme", "rüzgar sörf kitesurf", 8},
		hotelSpec{"Van", "Edremit", "göl kenarı kahvaltı", 1},
	)
	m := newMatcher(t, index)
	monitor := &recordingMonitor{}

	result, err := m.FindHotelsWithMonitor(context.Background(), "rüzgar sörf kitesurf", "Van", 1, monitor)
	require.NoError(t, err)

	assert.Equal(t, StageFullScan, result.Stage)
	require.Len(t, result.Hotels, 1)
	assert.Equal(t, "Van", result.Hotels[0].City)
	assert.Equal(t, 9, monitor.scanned)
	assert.Same(t, result, monitor.finished)
}

func TestMatcher_StrictCityLock(t *testing.T) {
	index := seedIndex(t,
		hotelSpec{"Antalya", "Lara", "denize sıfır", 3},
		hotelSpec{"Muğla", "Bodrum", "koy manzarası", 3},
	)
	m := newMatcher(t, index)

	result, err := m.FindHotels(context.Background(), "Trabzon'da yayla evi", "Trabzon", 3)
	require.NoError(t, err)

	assert.Empty(t, result.Hotels)
	assert.NotNil(t, result.Hotels)
	assert.Equal(t, StageNone, result.Stage)
	assert.Equal(t, "Trabzon için uygun otel bulunamadı", result.Message)
}

func TestMatcher_CityMatchesDistrict(t *testing.T) {
	index := seedIndex(t,
		hotelSpec{"Muğla", "Bodrum", "koy manzarası", 2},
		hotelSpec{"Muğla", "Fethiye", "yamaç paraşütü", 2},
	)
	m := newMatcher(t, index)

	result, err := m.FindHotels(context.Background(), "sakin otel", "Bodrum", 3)
	require.NoError(t, err)

	require.Len(t, result.Hotels, 2)
	for _, h := range result.Hotels {
		assert.Equal(t, "Bodrum", h.District)
	}
}

func TestMatcher_DiversityAcrossCities(t *testing.T) {
	index := seedIndex(t,
		hotelSpec{"Antalya", "Lara", "aquapark animasyon", 6},
		hotelSpec{"İzmir", "Çeşme", "sakin koy", 2},
		hotelSpec{"Muğla", "Bodrum", "gece hayatı", 2},
	)
	m := newMatcher(t, index)

	result, err := m.FindHotels(context.Background(), "aquapark animasyon", "", 3)
	require.NoError(t, err)

	assert.Equal(t, StageDiversity, result.Stage)
	require.Len(t, result.Hotels, 3)
	assert.Len(t, cities(result.Hotels), 3)
	assert.Equal(t, "Antalya", result.Hotels[0].City, "best match leads")
}

func TestMatcher_DiversityBroadensFetch(t *testing.T) {
	index := seedIndex(t,
		hotelSpec{"Antalya", "Lara", "aquapark animasyon", 9},
		hotelSpec{"İzmir", "Çeşme", "sakin koy", 1},
		hotelSpec{"Muğla", "Bodrum", "gece hayatı", 1},
	)
	m := newMatcher(t, index)
	monitor := &recordingMonitor{}

	result, err := m.FindHotelsWithMonitor(context.Background(), "aquapark animasyon", core.UnknownCity, 3, monitor)
	require.NoError(t, err)

	require.Len(t, monitor.rounds, 2)
	assert.Equal(t, [2]int{9, 1}, monitor.rounds[0])
	assert.Equal(t, [2]int{11, 3}, monitor.rounds[1])
	assert.Len(t, cities(result.Hotels), 3)
}

func TestMatcher_DiversityStopsAtBound(t *testing.T) {
	index := seedIndex(t, hotelSpec{"Antalya", "Lara", "aquapark", 5})
	m := newMatcher(t, index)

	result, err := m.FindHotels(context.Background(), "aquapark", "", 3)
	require.NoError(t, err)

	require.Len(t, result.Hotels, 3)
	assert.Len(t, cities(result.Hotels), 1)
}

func TestMatcher_EmptyIndex(t *testing.T) {
	m := newMatcher(t, seedIndex(t))

	result, err := m.FindHotels(context.Background(), "deniz", "", 3)
	require.NoError(t, err)
	assert.Empty(t, result.Hotels)
	assert.Equal(t, NoAccommodationMessage, result.Message)
}

func TestMatcher_TopKBound(t *testing.T) {
	index := seedIndex(t,
		hotelSpec{"Antalya", "Lara", "deniz", 5},
		hotelSpec{"İzmir", "Çeşme", "deniz", 5},
		hotelSpec{"Muğla", "Bodrum", "deniz", 5},
	)
	m := newMatcher(t, index)

	for _, city := range []string{"", "Antalya"} {
		result, err := m.FindHotels(context.Background(), "deniz", city, 10)
		require.NoError(t, err)
		assert.Len(t, result.Hotels, MaxTopK, "city %q", city)
	}

	for _, topK := range []int{0, -1} {
		result, err := m.FindHotels(context.Background(), "deniz", "", topK)
		assert.ErrorIs(t, err, ErrInvalidTopK, "topK %d", topK)
		assert.Nil(t, result)
	}
}

func TestMatcher_EmbeddingFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("model offline")
	}
	m, err := NewMatcher(seedIndex(t), embedder)
	require.NoError(t, err)

	_, err = m.FindHotels(context.Background(), "deniz", "Antalya", 3)
	assert.ErrorIs(t, err, ErrSearchFailed)
	assert.Contains(t, err.Error(), "model offline")
}

func TestMatcher_IndexFailure(t *testing.T) {
	index := seedIndex(t)
	require.NoError(t, index.Close())
	m := newMatcher(t, index)

	_, err := m.FindHotels(context.Background(), "deniz", "Antalya", 3)
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestMatcher_VerbatimBoost(t *testing.T) {
	index := seedIndex(t,
		hotelSpec{"Antalya", "Lara", "aquapark", 1},
		hotelSpec{"Antalya", "Belek", "aquapark golf sahası", 1},
	)
	m := newMatcher(t, index)

	result, err := m.FindHotels(context.Background(), "aquapark golf", "Antalya", 1)
	require.NoError(t, err)
	require.Len(t, result.Hotels, 1)
	assert.Equal(t, "Belek", result.Hotels[0].District)
}
