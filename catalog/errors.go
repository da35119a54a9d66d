package catalog

import "errors"

var (
	// ErrMalformedCatalog is returned when a catalog file is not valid JSON
	// or has an unexpected top-level shape.
	ErrMalformedCatalog = errors.New("malformed catalog")
)
