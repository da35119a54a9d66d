package mergen

import (
	"errors"

	"github.com/poiesic/mergen/search"
)

var (
	// ErrUnknownInterpreter is returned for an interpreter kind other than
	// "keyword" or "llm".
	ErrUnknownInterpreter = errors.New("unknown interpreter")

	// ErrEmptyQuery is returned by PlanTravel for a blank query.
	ErrEmptyQuery = errors.New("sorgu boş olamaz")

	// ErrInvalidTopK is returned by PlanTravel for a package count below 1.
	ErrInvalidTopK = search.ErrInvalidTopK

	// ErrClosed is returned when a closed TravelCore is used.
	ErrClosed = errors.New("travel core is closed")
)
