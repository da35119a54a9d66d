// Package catalog loads the static hotel, flight and transfer datasets and
// normalizes them into strict core records.
//
// This is the single ingestion step of the planner: every record leaving the
// package has a non-empty name, non-negative prices in one currency, a city,
// district and area (backfilled from the coarser level when absent) and a
// duplicate-free amenity list. Records that cannot be repaired are skipped
// and counted in LoadStats.
//
// A missing file is not an error: the loader logs a warning and returns an
// empty collection so that the planner can run with partial data.
//
// Accepted shapes:
//
//	hotels.json     [ {...}, ... ]  or  {"hotels": [ ... ]}
//	flights.json    {"flights": [ ... ]}  or  [ ... ]
//	transfers.json  {"transfer_routes": [ ... ]}  or  [ ... ]
package catalog
