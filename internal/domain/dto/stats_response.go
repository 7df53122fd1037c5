package dto

import "github.com/guttosm/cryptorec/internal/domain/models"

// StatsResponse represents the JSON structure returned by
// GET /cryptos/{symbol}/stats.
type StatsResponse struct {
	Symbol string  `json:"symbol" example:"BTC"`
	Oldest float64 `json:"oldest" example:"46813.21"`
	Newest float64 `json:"newest" example:"38415.79"`
	Min    float64 `json:"min" example:"33276.59"`
	Max    float64 `json:"max" example:"47722.66"`
}

func NewStatsResponse(s *models.SymbolStats) StatsResponse {
	return StatsResponse{
		Symbol: s.Symbol.String(),
		Oldest: s.Oldest,
		Newest: s.Newest,
		Min:    s.Min,
		Max:    s.Max,
	}
}
