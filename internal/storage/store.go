package storage

import (
	"context"
	"time"

	"github.com/guttosm/cryptorec/internal/domain/models"
)

// Order selects which end of an ordering FirstByTime/FirstByPrice returns.
type Order int

const (
	Ascending Order = iota
	Descending
)

func (o Order) sql() string {
	if o == Descending {
		return "DESC"
	}
	return "ASC"
}

// PriceStore defines the contract the ingestion and aggregation layers rely on.
//
// Lookups that find nothing return (nil, nil). Time windows are
// [start, end). Implementations must be safe for concurrent use.
type PriceStore interface {
	Insert(ctx context.Context, obs models.PriceObservation) error
	InsertBatch(ctx context.Context, obs []models.PriceObservation) error
	All(ctx context.Context) ([]models.PriceObservation, error)
	FirstByTime(ctx context.Context, symbol string, order Order) (*models.PriceObservation, error)
	FirstByPrice(ctx context.Context, symbol string, order Order) (*models.PriceObservation, error)
	ScanByTimeWindow(ctx context.Context, start, end time.Time) ([]models.PriceObservation, error)
	Count(ctx context.Context) (int, error)
	Reset(ctx context.Context) error
	// Version identifies the current content of the store. It changes on
	// every write and never returns to a value held by different content.
	Version(ctx context.Context) (uint64, error)
}

// RangeAggregator is implemented by stores able to compute normalized
// ranges themselves. Nil bounds mean unbounded.
type RangeAggregator interface {
	NormalizedRangesIn(ctx context.Context, start, end *time.Time) ([]models.NormalizedRange, error)
	CountIn(ctx context.Context, start, end *time.Time) (int, error)
}
