package badger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/mergen/core"
	"github.com/poiesic/mergen/storage"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "index")
	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	defer backend.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenBackend_PathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := OpenBackend(file, false)
	assert.Error(t, err)
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())

	err = backend.WithTx(nil, false)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestFindSimilar_NoRecords(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	results, err := backend.FindSimilar(context.Background(), []float32{0.1, 0.2, 0.3}, 0.5, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindSimilar_ThresholdAndOrder(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	index, err := NewHotelIndex(backend)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, index.Upsert(ctx,
		&core.IndexedHotel{Hotel: core.Hotel{Name: "Exact", City: "Antalya"}, Vector: []float32{1, 0, 0}},
		&core.IndexedHotel{Hotel: core.Hotel{Name: "Close", City: "Antalya"}, Vector: []float32{0.9, 0.1, 0}},
		&core.IndexedHotel{Hotel: core.Hotel{Name: "Far", City: "Antalya"}, Vector: []float32{0, 0, 1}},
		&core.IndexedHotel{Hotel: core.Hotel{Name: "NoVector", City: "Antalya"}},
	))

	results, err := backend.FindSimilar(ctx, []float32{1, 0, 0}, 0.8, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Exact", results[0].Hotel.Name)
	assert.Equal(t, "Close", results[1].Hotel.Name)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)

	limited, err := backend.FindSimilar(ctx, []float32{1, 0, 0}, noMinSimilarity, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestDotProduct(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical unit", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"different lengths", []float32{1, 2, 3}, []float32{1, 1}, 3},
		{"empty", nil, []float32{1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, dotProduct(tt.a, tt.b), 1e-6)
		})
	}
}
