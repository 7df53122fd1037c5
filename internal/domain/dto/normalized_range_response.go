package dto

import "github.com/guttosm/cryptorec/internal/domain/models"

// NormalizedRangeResponse represents one entry returned by
// GET /cryptos/normalized-range and the body of
// GET /cryptos/normalized-range/highest.
type NormalizedRangeResponse struct {
	Symbol          string  `json:"symbol" example:"ETH"`
	NormalizedRange float64 `json:"normalizedRange" example:"0.6383"`
}

// NewNormalizedRangeResponses maps engine results into response DTOs,
// preserving order. It never returns nil so an empty result encodes as [].
func NewNormalizedRangeResponses(in []models.NormalizedRange) []NormalizedRangeResponse {
	out := make([]NormalizedRangeResponse, 0, len(in))
	for _, r := range in {
		out = append(out, NormalizedRangeResponse{Symbol: r.Symbol, NormalizedRange: r.NormalizedRange})
	}
	return out
}
