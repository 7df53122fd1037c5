package models

import "fmt"

// UnsupportedCryptoError is returned when a symbol is not part of the
// supported set.
type UnsupportedCryptoError struct {
	Symbol string
}

func (e *UnsupportedCryptoError) Error() string {
	return fmt.Sprintf("crypto is not supported: %s", e.Symbol)
}

// InvalidDateFormatError is returned when a date parameter does not parse.
type InvalidDateFormatError struct {
	Value  string
	Layout string
}

func (e *InvalidDateFormatError) Error() string {
	return fmt.Sprintf("invalid date format: %s. expected format: %s", e.Value, e.Layout)
}

// NoDataForDateError means the day window held no observations at all.
type NoDataForDateError struct {
	Date string
}

func (e *NoDataForDateError) Error() string {
	return fmt.Sprintf("no price data found for date: %s", e.Date)
}

// NoRankableDataError means the day window had observations but every
// symbol was excluded because its minimum price was zero.
type NoRankableDataError struct {
	Date string
}

func (e *NoRankableDataError) Error() string {
	return fmt.Sprintf("no symbol with a positive minimum price on date: %s", e.Date)
}

// NoDataForSymbolError means a supported symbol has no stored history.
type NoDataForSymbolError struct {
	Symbol Symbol
}

func (e *NoDataForSymbolError) Error() string {
	return fmt.Sprintf("no price data found for crypto: %s", e.Symbol)
}
