// Package symbols validates crypto tickers against the supported set.
package symbols

import (
	"strings"

	"github.com/guttosm/cryptorec/internal/domain/models"
)

var supported = []models.Symbol{
	models.BTC,
	models.DOGE,
	models.ETH,
	models.LTC,
	models.XRP,
}

// All returns the supported symbols in declaration order.
func All() []models.Symbol {
	out := make([]models.Symbol, len(supported))
	copy(out, supported)
	return out
}

// IsValid reports whether s names a supported symbol, ignoring case and
// surrounding whitespace.
func IsValid(s string) bool {
	_, ok := lookup(s)
	return ok
}

// Resolve returns the canonical symbol for s.
//
// Returns:
//   - models.Symbol: canonical upper-case symbol.
//   - error: *models.UnsupportedCryptoError carrying the raw input when s is not supported.
func Resolve(s string) (models.Symbol, error) {
	sym, ok := lookup(s)
	if !ok {
		return "", &models.UnsupportedCryptoError{Symbol: s}
	}
	return sym, nil
}

func lookup(s string) (models.Symbol, bool) {
	s = strings.TrimSpace(s)
	for _, sym := range supported {
		if strings.EqualFold(string(sym), s) {
			return sym, true
		}
	}
	return "", false
}
