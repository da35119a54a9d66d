package badger

import (
	"encoding/binary"

	"github.com/poiesic/mergen/core"
)

// Key prefixes for different data types
const (
	hotelPrefix = "hotel:"
	metaPrefix  = "meta:"
)

// sealKey holds the hotel count of the last completed build.
var sealKey = []byte(metaPrefix + "sealed")

// makeHotelKey generates a key for an indexed hotel by ID.
// Format: prefix + big-endian ID, so iteration order is stable across runs.
func makeHotelKey(id core.ID) []byte {
	buf := make([]byte, len(hotelPrefix)+8)
	offset := copy(buf, hotelPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
