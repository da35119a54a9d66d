package core

import "fmt"

// Upper bounds on slice lengths read back from the hotel index. A decoded
// length above them means the record bytes are damaged.
const (
	maxListLength   = 1 << 10
	maxVectorLength = 1 << 14
)

// ValidateListLength rejects an encoded string list longer than any hotel
// record can hold.
func ValidateListLength(length int) error {
	if length > maxListLength {
		return fmt.Errorf("%w: list length %d", ErrMalformedRecord, length)
	}
	return nil
}

// ValidateVectorLength rejects an encoded embedding with more dimensions
// than any supported model produces.
func ValidateVectorLength(length int) error {
	if length > maxVectorLength {
		return fmt.Errorf("%w: vector length %d", ErrMalformedRecord, length)
	}
	return nil
}
