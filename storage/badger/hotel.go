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


package badger

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/mergen/core"
	"github.com/poiesic/mergen/storage"
)

// HotelIndex implements storage.HotelIndex for BadgerDB.
type HotelIndex struct {
	backend *Backend
	// ownsBackend is set when the index opened the backend itself and must
	// close it.
	ownsBackend bool
}

var _ storage.HotelIndex = (*HotelIndex)(nil)

// NewHotelIndex creates a hotel index on an already opened backend.
// The caller keeps ownership of the backend.
func NewHotelIndex(backend *Backend) (storage.HotelIndex, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: backend is nil", storage.ErrInvalidQuery)
	}
	return &HotelIndex{backend: backend}, nil
}

// OpenHotelIndex opens (or creates) an on-disk hotel index at path.
func OpenHotelIndex(path string) (storage.HotelIndex, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &HotelIndex{backend: backend, ownsBackend: true}, nil
}

// Close releases the backend when the index owns it.
func (r *HotelIndex) Close() error {
	if r.ownsBackend && !r.backend.IsClosed() {
		return r.backend.Close()
	}
	return nil
}

// Upsert stores hotels, replacing existing entries with the same ID.
func (r *HotelIndex) Upsert(ctx context.Context, hotels ...*core.IndexedHotel) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	wb := r.backend.db.NewWriteBatch()
	defer wb.Cancel()

	for _, hotel := range hotels {
		if err := ctx.Err(); err != nil {
			return err
		}
		if hotel.Hotel.Id == 0 {
			hotel.Hotel.Id = core.IDFromContent(hotel.Hotel.Name + "|" + hotel.Hotel.City)
		}
		if err := wb.Set(makeHotelKey(hotel.Hotel.Id), storage.MarshalIndexedHotel(hotel)); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// Query returns the limit hotels nearest to vector.
func (r *HotelIndex) Query(ctx context.Context, vector []float32, limit int) ([]*core.SearchResult, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", storage.ErrInvalidQuery, limit)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", storage.ErrInvalidQuery)
	}
	return r.backend.FindSimilar(ctx, vector, noMinSimilarity, limit)
}

// GetAll returns up to limit hotels in key order.
func (r *HotelIndex) GetAll(ctx context.Context, limit int) ([]*core.Hotel, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", storage.ErrInvalidQuery, limit)
	}

	hotels := make([]*core.Hotel, 0, min(limit, 64))
	err := r.backend.scanHotels(ctx, func(hotel *core.IndexedHotel) (bool, error) {
		h := hotel.Hotel
		hotels = append(hotels, &h)
		return len(hotels) < limit, nil
	})
	if err != nil {
		return nil, err
	}
	return hotels, nil
}

// Count returns the number of indexed hotels. Only keys are read.
func (r *HotelIndex) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(hotelPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			count++
		}
		return nil
	}, false)
	return count, err
}

// Verify decodes every indexed hotel and checks the count against the seal.
func (r *HotelIndex) Verify(ctx context.Context) (int, error) {
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := r.backend.scanHotels(ctx, func(*core.IndexedHotel) (bool, error) {
		count++
		return true, nil
	})
	if err != nil {
		return count, err
	}

	sealed, err := r.sealedCount()
	if err != nil {
		return count, err
	}
	// An empty index needs no seal.
	if sealed != count && !(sealed < 0 && count == 0) {
		return count, fmt.Errorf("%w: sealed at %d, found %d", storage.ErrIndexIncomplete, sealed, count)
	}
	return count, nil
}

// sealedCount returns the count stored by Seal, or -1 when unsealed.
func (r *HotelIndex) sealedCount() (int, error) {
	sealed := -1
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(sealKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("%w: seal is %d bytes", storage.ErrSerializationFailed, len(val))
			}
			sealed = int(binary.BigEndian.Uint64(val))
			return nil
		})
	}, false)
	return sealed, err
}

// Seal stores the current hotel count as a completed build.
func (r *HotelIndex) Seal(ctx context.Context) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	count, err := r.Count(ctx)
	if err != nil {
		return err
	}
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, uint64(count))
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(sealKey, val); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Reset drops every indexed hotel and the seal.
func (r *HotelIndex) Reset(ctx context.Context) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	r.backend.logger.Info("dropping hotel index")
	return r.backend.db.DropPrefix([]byte(hotelPrefix), []byte(metaPrefix))
}
