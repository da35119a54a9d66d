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


// Package ingestion builds the hotel index from the hotel catalog.
// The Indexer embeds hotel documents in batches, including:
//   - Retrying failed embedding batches with exponential backoff
//   - Normalizing vectors to unit length so similarity is a dot product
//   - Reporting progress while a rebuild runs
//
// Batches are embedded concurrently on a worker pool. EnsureIndex runs a
// rebuild only when the index is empty, and concurrent callers share a
// single rebuild.
package ingestion
