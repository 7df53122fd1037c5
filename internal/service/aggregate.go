package service

import (
	"sort"
	"time"

	"github.com/guttosm/cryptorec/internal/domain/models"
)

// DateLayout is the accepted calendar date format (yyyy-MM-dd).
const DateLayout = "2006-01-02"

// priceRange tracks min and max price of one symbol.
type priceRange struct {
	min, max float64
}

// NormalizedRanges groups observations by symbol and returns (max-min)/min
// for every symbol whose minimum price is strictly positive. Symbols with a
// zero minimum are left out. Results follow first appearance of each symbol
// in obs, so the output is deterministic for a given input.
func NormalizedRanges(obs []models.PriceObservation) []models.NormalizedRange {
	order := make([]string, 0, 8)
	groups := make(map[string]*priceRange, 8)
	for _, o := range obs {
		g, ok := groups[o.Symbol]
		if !ok {
			groups[o.Symbol] = &priceRange{min: o.Price, max: o.Price}
			order = append(order, o.Symbol)
			continue
		}
		if o.Price < g.min {
			g.min = o.Price
		}
		if o.Price > g.max {
			g.max = o.Price
		}
	}

	out := make([]models.NormalizedRange, 0, len(order))
	for _, sym := range order {
		g := groups[sym]
		if g.min <= 0 {
			continue
		}
		out = append(out, models.NormalizedRange{Symbol: sym, NormalizedRange: (g.max - g.min) / g.min})
	}
	return out
}

// SortDesc sorts results by normalized range, highest first. Equal values
// keep their input order.
func SortDesc(results []models.NormalizedRange) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].NormalizedRange > results[j].NormalizedRange
	})
}

// Highest returns the result with the largest normalized range. The first
// one encountered wins ties. ok is false when results is empty.
func Highest(results []models.NormalizedRange) (best models.NormalizedRange, ok bool) {
	for i, r := range results {
		if i == 0 || r.NormalizedRange > best.NormalizedRange {
			best = r
		}
	}
	return best, len(results) > 0
}

// ParseDate parses a yyyy-MM-dd calendar date as a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, &models.InvalidDateFormatError{Value: s, Layout: "yyyy-MM-dd"}
	}
	return d, nil
}

// DayWindow returns the half-open UTC window [day 00:00, next day 00:00).
func DayWindow(day time.Time) (start, end time.Time) {
	y, m, d := day.UTC().Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
