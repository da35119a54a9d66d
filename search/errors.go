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


package search

import "errors"

var (
	// ErrIndexRequired is returned when a hotel index is not provided.
	ErrIndexRequired = errors.New("hotel index required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrSearchFailed wraps embedding and index failures during a search.
	ErrSearchFailed = errors.New("otel araması başarısız oldu")

	// ErrInvalidTopK is returned for a requested package count below 1.
	ErrInvalidTopK = errors.New("top_k en az 1 olmalı")
)
