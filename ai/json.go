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


package ai

import "strings"

// CleanJSON prepares a model reply for json.Unmarshal. It strips markdown
// code fences, drops any prose around the outermost JSON object, quotes keys
// that lost their opening quote and removes trailing commas.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if start, end := strings.IndexByte(s, '{'), strings.LastIndexByte(s, '}'); start >= 0 && end > start {
		s = s[start : end+1]
	}
	return dropTrailingCommas(quoteKeys(s))
}

// quoteKeys restores quotes around object keys outside of strings.
// Examples: `, type":` -> `, "type":` and `{city: 1}` -> `{"city": 1}`
func quoteKeys(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in)+16)

	inString, escaped := false, false
	i := 0
	for i < len(in) {
		ch := in[i]
		out = append(out, ch)
		i++

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		if ch == '"' {
			inString = true
			continue
		}
		if ch != '{' && ch != ',' {
			continue
		}

		for i < len(in) && isSpace(in[i]) {
			out = append(out, in[i])
			i++
		}
		if i >= len(in) || !isLetter(in[i]) {
			continue
		}

		start := i
		for i < len(in) && (isLetter(in[i]) || in[i] == '_') {
			i++
		}
		key := in[start:i]

		if i+1 < len(in) && in[i] == '"' && in[i+1] == ':' {
			out = append(out, '"')
			out = append(out, key...)
			out = append(out, '"')
			i++
			continue
		}

		j := i
		for j < len(in) && isSpace(in[j]) {
			j++
		}
		if j < len(in) && in[j] == ':' {
			out = append(out, '"')
			out = append(out, key...)
			out = append(out, '"')
			continue
		}
		out = append(out, key...)
	}
	return string(out)
}

// dropTrailingCommas removes commas directly preceding a closing bracket,
// ignoring commas inside strings.
func dropTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString, escaped := false, false
	pendingComma := false
	var pendingSpace strings.Builder

	flush := func() {
		if pendingComma {
			b.WriteByte(',')
			pendingComma = false
		}
		b.WriteString(pendingSpace.String())
		pendingSpace.Reset()
	}

	for _, r := range s {
		if inString {
			b.WriteRune(r)
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch {
		case r == ',':
			flush()
			pendingComma = true
		case pendingComma && isSpace(r):
			pendingSpace.WriteRune(r)
		case r == '}' || r == ']':
			pendingComma = false
			b.WriteString(pendingSpace.String())
			pendingSpace.Reset()
			b.WriteRune(r)
		default:
			flush()
			if r == '"' {
				inString = true
			}
			b.WriteRune(r)
		}
	}
	flush()
	return b.String()
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
