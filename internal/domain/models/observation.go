package models

import "time"

// PriceObservation represents a single row of a price file.
//
// Column order:
//  1. timestamp (epoch milliseconds, UTC)
//  2. symbol
//  3. price
//
// Observations are immutable once stored.
type PriceObservation struct {
	Timestamp time.Time
	Symbol    string
	Price     float64
}
