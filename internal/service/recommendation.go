package service

import (
	"context"
	"fmt"

	"github.com/guttosm/cryptorec/internal/domain/models"
	"github.com/guttosm/cryptorec/internal/logger"
	"github.com/guttosm/cryptorec/internal/storage"
	"github.com/guttosm/cryptorec/internal/symbols"
)

// RecommendationService answers the normalized range and stats queries.
// It only reads from the store.
type RecommendationService interface {
	// NormalizedRanges returns every symbol's all-time normalized range, highest first.
	NormalizedRanges(ctx context.Context) ([]models.NormalizedRange, error)
	// Stats returns oldest, newest, min and max price of one symbol.
	Stats(ctx context.Context, symbol string) (*models.SymbolStats, error)
	// HighestForDate returns the symbol with the highest normalized range on a UTC day (yyyy-MM-dd).
	HighestForDate(ctx context.Context, date string) (*models.NormalizedRange, error)
}

type recommendationService struct {
	store storage.PriceStore
	cache rangeCache
}

func NewRecommendationService(store storage.PriceStore) RecommendationService {
	return &recommendationService{store: store}
}

func (s *recommendationService) NormalizedRanges(ctx context.Context) ([]models.NormalizedRange, error) {
	version, err := s.store.Version(ctx)
	if err != nil {
		return nil, err
	}
	return s.cache.get(version,
		func() ([]models.NormalizedRange, error) {
			logger.L().Debug().Uint64("version", version).Msg("computing all-time normalized ranges")
			return s.allTime(ctx)
		},
		func() (uint64, error) { return s.store.Version(ctx) },
	)
}

func (s *recommendationService) allTime(ctx context.Context) ([]models.NormalizedRange, error) {
	if agg, ok := s.store.(storage.RangeAggregator); ok {
		return agg.NormalizedRangesIn(ctx, nil, nil)
	}
	obs, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load observations: %w", err)
	}
	out := NormalizedRanges(obs)
	SortDesc(out)
	return out, nil
}

func (s *recommendationService) HighestForDate(ctx context.Context, date string) (*models.NormalizedRange, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	start, end := DayWindow(day)

	var results []models.NormalizedRange
	if agg, ok := s.store.(storage.RangeAggregator); ok {
		n, err := agg.CountIn(ctx, &start, &end)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, &models.NoDataForDateError{Date: date}
		}
		if results, err = agg.NormalizedRangesIn(ctx, &start, &end); err != nil {
			return nil, err
		}
	} else {
		obs, err := s.store.ScanByTimeWindow(ctx, start, end)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", date, err)
		}
		if len(obs) == 0 {
			return nil, &models.NoDataForDateError{Date: date}
		}
		results = NormalizedRanges(obs)
	}

	best, ok := Highest(results)
	if !ok {
		return nil, &models.NoRankableDataError{Date: date}
	}
	return &best, nil
}

func (s *recommendationService) Stats(ctx context.Context, symbol string) (*models.SymbolStats, error) {
	sym, err := symbols.Resolve(symbol)
	if err != nil {
		return nil, err
	}

	lookups := []struct {
		name string
		get  func(context.Context, string, storage.Order) (*models.PriceObservation, error)
		ord  storage.Order
	}{
		{"oldest", s.store.FirstByTime, storage.Ascending},
		{"newest", s.store.FirstByTime, storage.Descending},
		{"min", s.store.FirstByPrice, storage.Ascending},
		{"max", s.store.FirstByPrice, storage.Descending},
	}

	prices := make([]float64, len(lookups))
	for i, l := range lookups {
		o, err := l.get(ctx, sym.String(), l.ord)
		if err != nil {
			return nil, fmt.Errorf("%s price for %s: %w", l.name, sym, err)
		}
		if o == nil {
			return nil, &models.NoDataForSymbolError{Symbol: sym}
		}
		prices[i] = o.Price
	}

	return &models.SymbolStats{
		Symbol: sym,
		Oldest: prices[0],
		Newest: prices[1],
		Min:    prices[2],
		Max:    prices[3],
	}, nil
}
