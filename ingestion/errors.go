package ingestion

import "errors"

var (
	// ErrIndexRequired is returned when a hotel index is not provided.
	ErrIndexRequired = errors.New("hotel index required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrEmbeddingMismatch is returned when the embedder returns a different
	// number of vectors than documents sent.
	ErrEmbeddingMismatch = errors.New("embedding count mismatch")
)
