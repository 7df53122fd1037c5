package models

// NormalizedRange is the (max-min)/min of a symbol's prices over an
// observation window. It is only produced when min > 0.
//
// swagger:model NormalizedRange
type NormalizedRange struct {
	Symbol          string  `json:"symbol" example:"BTC"`
	NormalizedRange float64 `json:"normalizedRange" example:"0.43"`
}

// SymbolStats holds the oldest, newest, lowest and highest price of a symbol
// across its full history.
//
// swagger:model SymbolStats
type SymbolStats struct {
	Symbol Symbol  `json:"symbol" example:"BTC"`
	Oldest float64 `json:"oldest" example:"46813.21"`
	Newest float64 `json:"newest" example:"38415.79"`
	Min    float64 `json:"min" example:"33276.59"`
	Max    float64 `json:"max" example:"47722.66"`
}
