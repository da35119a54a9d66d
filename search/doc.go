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


// Package search finds the hotels that answer a travel request.
//
// The Matcher ranks hotels in the hotel index by embedding similarity, with
// a small boost for hotels whose document contains every significant word of
// the request, and then applies the location rules:
//   - a named city is a hard filter; when the nearest neighbors contain no
//     hotel in that city the whole index is scanned, and when the scan finds
//     none the result is empty rather than a hotel from another city
//   - without a city the result is spread round-robin across at least three
//     cities when the index has them
//
// Empty results carry a human-readable message. Only embedding and index
// failures are returned as errors.
package search
