package badger

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/mergen/core"
	"github.com/poiesic/mergen/storage"
)

// NewMemoryIndex creates an in-memory hotel index for testing.
// Closing the index closes its backend.
func NewMemoryIndex() (storage.HotelIndex, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	return &HotelIndex{backend: backend, ownsBackend: true}, nil
}

// PutRawRecord stores val under the key of hotel id without encoding it.
// Tests use it to plant unreadable records.
func PutRawRecord(index storage.HotelIndex, id core.ID, val []byte) error {
	r, ok := index.(*HotelIndex)
	if !ok {
		return fmt.Errorf("%w: not a badger index", storage.ErrInvalidQuery)
	}
	return r.backend.db.Update(func(tx *badger.Txn) error {
		return tx.Set(makeHotelKey(id), val)
	})
}
