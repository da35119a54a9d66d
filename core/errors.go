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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidHotel indicates a Hotel failed validation.
	ErrInvalidHotel = errors.New("invalid hotel")

	// ErrInvalidFlight indicates a Flight failed validation.
	ErrInvalidFlight = errors.New("invalid flight")

	// ErrInvalidTransfer indicates a TransferRoute failed validation.
	ErrInvalidTransfer = errors.New("invalid transfer route")

	// ErrEmptyName indicates a required name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNegativePrice indicates a monetary amount below zero.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrInvalidIATA indicates a malformed airport code.
	ErrInvalidIATA = errors.New("invalid IATA code")

	// ErrDuplicateAmenity indicates an amenity set containing duplicates.
	ErrDuplicateAmenity = errors.New("duplicate amenity")
)

// ErrMalformedRecord indicates encoded record bytes that cannot be decoded.
var ErrMalformedRecord = errors.New("malformed record")
