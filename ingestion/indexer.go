package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/singleflight"

	"github.com/poiesic/mergen/ai"
	"github.com/poiesic/mergen/core"
	"github.com/poiesic/mergen/storage"
)

const (
	defaultBatchSize      = 32
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = 500 * time.Millisecond
)

// Indexer embeds hotels and writes them to the hotel index.
type Indexer struct {
	index          storage.HotelIndex
	embedder       ai.Embedder
	pool           *ants.Pool
	batchSize      int
	maxRetries     int
	retryBaseDelay time.Duration
	progress       io.Writer
	group          singleflight.Group
	buildMu        sync.Mutex
	logger         *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer) error

// WithPoolSize sets the worker pool size for concurrent batch embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(ix *Indexer) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if ix.pool != nil {
			ix.pool.Release()
		}
		ix.pool = pool
		return nil
	}
}

// WithBatchSize sets how many hotel documents are embedded per request.
func WithBatchSize(size int) Option {
	return func(ix *Indexer) error {
		if size < 1 {
			return fmt.Errorf("batch size must be greater than 0, got %d", size)
		}
		ix.batchSize = size
		return nil
	}
}

// WithRetry sets the embedding retry policy.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(ix *Indexer) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		ix.maxRetries = maxAttempts
		ix.retryBaseDelay = baseDelay
		return nil
	}
}

// WithProgress enables progress reporting to w.
func WithProgress(w io.Writer) Option {
	return func(ix *Indexer) error {
		ix.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// NewIndexer creates a new indexer.
func NewIndexer(index storage.HotelIndex, embedder ai.Embedder, opts ...Option) (*Indexer, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	ix := &Indexer{
		index:          index,
		embedder:       embedder,
		batchSize:      defaultBatchSize,
		maxRetries:     defaultMaxRetries,
		retryBaseDelay: defaultRetryBaseDelay,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(ix); err != nil {
			ix.Release()
			return nil, err
		}
	}

	if ix.pool == nil {
		pool, err := ants.NewPool(max(runtime.NumCPU()/2, 1))
		if err != nil {
			return nil, err
		}
		ix.pool = pool
	}

	ix.logger = ix.logger.With("component", "indexer")
	return ix, nil
}

// Release releases the worker pool.
func (ix *Indexer) Release() {
	if ix.pool != nil {
		ix.pool.Release()
	}
}

// EnsureIndex rebuilds the index from hotels when it is empty, unreadable,
// or left unsealed by an interrupted build, and reports whether a rebuild
// ran. Concurrent callers share one rebuild.
func (ix *Indexer) EnsureIndex(ctx context.Context, hotels []*core.Hotel) (bool, error) {
	v, err, _ := ix.group.Do("ensure", func() (any, error) {
		ix.buildMu.Lock()
		defer ix.buildMu.Unlock()

		count, err := ix.index.Verify(ctx)
		switch {
		case errors.Is(err, storage.ErrSerializationFailed):
			ix.logger.Warn("hotel index is corrupted, rebuilding from catalog", "err", err, "hotels", len(hotels))
		case errors.Is(err, storage.ErrIndexIncomplete):
			ix.logger.Warn("hotel index is incomplete, rebuilding from catalog", "found", count, "hotels", len(hotels))
		case err != nil:
			return false, err
		case count > 0:
			ix.logger.Debug("hotel index ready", "hotels", count)
			return false, nil
		default:
			ix.logger.Warn("hotel index is empty, rebuilding from catalog", "hotels", len(hotels))
		}

		if _, err := ix.rebuild(ctx, hotels); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// Rebuild drops the index and embeds every hotel again. It returns the
// number of hotels written.
func (ix *Indexer) Rebuild(ctx context.Context, hotels []*core.Hotel) (int, error) {
	ix.buildMu.Lock()
	defer ix.buildMu.Unlock()
	return ix.rebuild(ctx, hotels)
}

// rebuild resets the index, builds it and seals it. A failed build is not
// sealed, so the next EnsureIndex starts over.
func (ix *Indexer) rebuild(ctx context.Context, hotels []*core.Hotel) (int, error) {
	if err := ix.index.Reset(ctx); err != nil {
		return 0, err
	}
	written, err := ix.build(ctx, hotels)
	if err != nil {
		return written, err
	}
	if err := ix.index.Seal(ctx); err != nil {
		return written, fmt.Errorf("failed to seal index: %w", err)
	}
	return written, nil
}

// build embeds hotels in batches on the worker pool. A failed batch does not
// stop the others; all batch errors are joined into the result.
func (ix *Indexer) build(ctx context.Context, hotels []*core.Hotel) (int, error) {
	start := time.Now()
	tracker := NewProgressTracker(ix.progress, len(hotels), ix.batchSize)
	if ix.progress != nil {
		tracker.Start()
		defer tracker.Finish()
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		errs    []error
		written int
	)

	for offset := 0; offset < len(hotels); offset += ix.batchSize {
		batch := hotels[offset:min(offset+ix.batchSize, len(hotels))]

		wg.Add(1)
		err := ix.pool.Submit(func() {
			defer wg.Done()
			err := ix.processBatch(ctx, batch)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			written += len(batch)
			tracker.Increment(len(batch))
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
	}
	wg.Wait()

	if len(errs) > 0 {
		ix.logger.Error("index build finished with errors", "written", written, "failed_batches", len(errs))
		return written, errors.Join(errs...)
	}

	ix.logger.Info("index build complete", "hotels", written, "elapsed", time.Since(start))
	return written, nil
}

// processBatch embeds one batch with retry and upserts the result.
func (ix *Indexer) processBatch(ctx context.Context, hotels []*core.Hotel) error {
	docs := make([]string, len(hotels))
	for i, h := range hotels {
		docs[i] = h.Document()
	}

	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		vectors, err = ix.embedder.EmbedTexts(ctx, docs)
		return err
	}, ix.maxRetries, ix.retryBaseDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", ix.maxRetries, err)
	}
	if len(vectors) != len(hotels) {
		return fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingMismatch, len(hotels), len(vectors))
	}

	entries := make([]*core.IndexedHotel, len(hotels))
	for i, h := range hotels {
		entries[i] = &core.IndexedHotel{
			Hotel:    *h,
			Document: docs[i],
			Vector:   NormalizeVector(vectors[i]),
		}
	}

	if err := ix.index.Upsert(ctx, entries...); err != nil {
		return fmt.Errorf("failed to write batch: %w", err)
	}
	return nil
}
