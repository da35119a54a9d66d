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


package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/poiesic/mergen/core"
)

// UnknownCity replaces a missing hotel city.
const UnknownCity = "Bilinmiyor"

// LoadStats reports what ingestion did to a catalog file.
type LoadStats struct {
	// Loaded is the number of records returned.
	Loaded int
	// Skipped is the number of records dropped as unrepairable.
	Skipped int
	// Backfilled is the number of returned records that needed at least
	// one field substituted.
	Backfilled int
}

type options struct {
	logger *slog.Logger
}

// Option configures a loader call.
type Option func(*options)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(kind string, opts []Option) *options {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With("component", "catalog", "catalog", kind)
	return o
}

// readRecords reads path and returns the raw records either from a bare
// array or from the array under wrapperKey. A missing file yields nil.
func readRecords(path, wrapperKey string, logger *slog.Logger) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("catalog file not found, continuing with empty catalog", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		logger.Warn("catalog file is empty", "path", path)
		return nil, nil
	}

	var records []json.RawMessage
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedCatalog, path, err)
		}
	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedCatalog, path, err)
		}
		inner, ok := wrapper[wrapperKey]
		if !ok {
			return nil, fmt.Errorf("%w: %s: missing %q key", ErrMalformedCatalog, path, wrapperKey)
		}
		if err := json.Unmarshal(inner, &records); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedCatalog, path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s: expected array or object", ErrMalformedCatalog, path)
	}
	return records, nil
}

// amount is a price that tolerates the shapes found in hand-edited data:
// numbers, numeric strings with thousands separators or currency marks,
// and null.
type amount struct {
	value float64
	set   bool
}

func (a *amount) UnmarshalJSON(data []byte) error {
	s := string(bytes.TrimSpace(data))
	if s == "null" || s == "" {
		return nil
	}
	if s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		s = cleanNumber(unquoted)
		if s == "" {
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Unparseable prices are treated as missing.
		return nil
	}
	a.value, a.set = v, true
	return nil
}

// cleanNumber keeps digits and the decimal separator of strings such as
// "₺4.500,00" or "4,500 TL".
func cleanNumber(s string) string {
	s = strings.TrimFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if s == "" {
		return ""
	}
	lastDot, lastComma := strings.LastIndexByte(s, '.'), strings.LastIndexByte(s, ',')
	// Whichever separator comes last with at most two digits after it is
	// the decimal point; the other is a thousands separator.
	decimal := byte(0)
	switch {
	case lastComma > lastDot && len(s)-lastComma-1 <= 2:
		decimal = ','
	case lastDot > lastComma && len(s)-lastDot-1 <= 2:
		decimal = '.'
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == decimal && i == strings.LastIndexByte(s, decimal):
			b.WriteByte('.')
		}
	}
	return b.String()
}

// price returns the first set amount, coerced to a usable non-negative
// number, and whether a substitution was needed.
func price(candidates ...amount) (float64, bool) {
	for _, c := range candidates {
		if !c.set {
			continue
		}
		if !core.IsValidAmount(c.value) {
			return 0, true
		}
		return c.value, false
	}
	return 0, true
}

// dedupe trims entries, drops empty ones and removes duplicates while
// keeping first-seen order.
func dedupe(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// stringList accepts a JSON array of strings or a single string.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if one != "" {
		// Some exports store the amenity array as an encoded JSON string.
		if strings.HasPrefix(strings.TrimSpace(one), "[") && json.Unmarshal([]byte(one), &many) == nil {
			*l = many
			return nil
		}
		*l = []string{one}
	}
	return nil
}
