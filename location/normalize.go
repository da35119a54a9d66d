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


package location

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var asciiFold = strings.NewReplacer(
	"ı", "i",
	"ç", "c",
	"ğ", "g",
	"ö", "o",
	"ş", "s",
	"ü", "u",
	// combining dot left behind when İ is lower-cased without Turkish rules
	"i̇", "i",
)

// Normalize returns the canonical form of a location name.
//
// The name is lower-cased with Turkish casing rules (so İ becomes i and I
// becomes ı), the Turkish letters are folded to plain ASCII, and runs of
// whitespace are collapsed. Normalize is total and idempotent: the empty
// string maps to itself and Normalize(Normalize(s)) == Normalize(s).
//
// Every location value must pass through Normalize both when hotels are
// indexed and when they are matched.
func Normalize(name string) string {
	if name == "" {
		return ""
	}
	// cases.Caser is stateful and must not be shared between goroutines.
	lower := cases.Lower(language.Turkish).String(name)
	return strings.Join(strings.Fields(asciiFold.Replace(lower)), " ")
}
