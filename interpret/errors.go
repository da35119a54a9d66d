package interpret

import "errors"

var (
	// ErrCompleterRequired is returned when an LLM interpreter is built without a completer.
	ErrCompleterRequired = errors.New("completer required")

	// ErrInvalidAirport is returned when a configured home airport is not a valid IATA code.
	ErrInvalidAirport = errors.New("invalid airport code")
)
