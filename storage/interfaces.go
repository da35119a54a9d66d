package storage

import (
	"context"

	"github.com/poiesic/mergen/core"
)

// HotelIndex is the vector index of hotels with their searchable documents.
// Implementations must be thread-safe and support concurrent access.
type HotelIndex interface {
	// Upsert stores hotels with their documents and embeddings, replacing
	// any entry with the same hotel ID. Hotels with ID=0 are assigned a
	// content-derived ID.
	Upsert(ctx context.Context, hotels ...*core.IndexedHotel) error

	// Query returns up to limit hotels nearest to vector, ordered by
	// similarity score (highest first).
	Query(ctx context.Context, vector []float32, limit int) ([]*core.SearchResult, error)

	// GetAll returns up to limit hotels in index order without ranking.
	GetAll(ctx context.Context, limit int) ([]*core.Hotel, error)

	// Count returns the number of indexed hotels.
	Count(ctx context.Context) (int, error)

	// Verify decodes every indexed hotel and returns how many there are.
	// It fails with ErrSerializationFailed when a record cannot be read and
	// with ErrIndexIncomplete when a non-empty index is not sealed at its
	// current size.
	Verify(ctx context.Context) (int, error)

	// Seal records the current size as a completed build.
	Seal(ctx context.Context) error

	// Reset drops every indexed hotel and the seal, leaving an empty index.
	Reset(ctx context.Context) error

	// Close releases resources held by the index.
	Close() error
}
