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


// Package storage provides the storage abstraction for the hotel index.
//
// The HotelIndex interface decouples the vector index from the search and
// ingestion packages so that different backends can be used interchangeably.
// The badger sub-package provides the on-disk and in-memory implementation.
//
// # Constructor Return Type Pattern
//
// Public constructors return the interface type:
//
//	index, err := badger.NewHotelIndex(backend)  // returns storage.HotelIndex
//
// # Usage
//
//	backend, err := badger.OpenBackend("/var/lib/mergen/index", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	index, err := badger.NewHotelIndex(backend)
//	defer index.Close()
//
// Use in tests with in-memory storage:
//
//	index, err := badger.NewMemoryIndex()
//
// # Serialization
//
// Indexed hotels are stored in the compact mus binary format produced by the
// serializers in package core.
//
// # Thread Safety
//
// All index implementations must be thread-safe and support concurrent
// access from multiple goroutines.
package storage
