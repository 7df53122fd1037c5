package storage

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/cryptorec/internal/domain/models"
)

// MemoryStore keeps observations in an append-only slice.
type MemoryStore struct {
	mu      sync.RWMutex
	obs     []models.PriceObservation
	version atomic.Uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ PriceStore = (*MemoryStore)(nil)

func (m *MemoryStore) Insert(_ context.Context, o models.PriceObservation) error {
	m.mu.Lock()
	m.obs = append(m.obs, o)
	m.version.Add(1)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) InsertBatch(_ context.Context, batch []models.PriceObservation) error {
	if len(batch) == 0 {
		return nil
	}
	m.mu.Lock()
	m.obs = append(m.obs, batch...)
	m.version.Add(1)
	m.mu.Unlock()
	return nil
}

// All returns a snapshot copy; callers may keep it across later writes.
func (m *MemoryStore) All(_ context.Context) ([]models.PriceObservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.PriceObservation, len(m.obs))
	copy(out, m.obs)
	return out, nil
}

func (m *MemoryStore) FirstByTime(_ context.Context, symbol string, order Order) (*models.PriceObservation, error) {
	return m.first(symbol, func(a, b models.PriceObservation) bool {
		if order == Descending {
			return a.Timestamp.After(b.Timestamp)
		}
		return a.Timestamp.Before(b.Timestamp)
	}), nil
}

func (m *MemoryStore) FirstByPrice(_ context.Context, symbol string, order Order) (*models.PriceObservation, error) {
	return m.first(symbol, func(a, b models.PriceObservation) bool {
		if order == Descending {
			return a.Price > b.Price
		}
		return a.Price < b.Price
	}), nil
}

// first returns the symbol's observation that no other one beats; the
// earliest inserted wins ties.
func (m *MemoryStore) first(symbol string, better func(a, b models.PriceObservation) bool) *models.PriceObservation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var best *models.PriceObservation
	for i := range m.obs {
		if m.obs[i].Symbol != symbol {
			continue
		}
		if best == nil || better(m.obs[i], *best) {
			o := m.obs[i]
			best = &o
		}
	}
	return best
}

func (m *MemoryStore) ScanByTimeWindow(_ context.Context, start, end time.Time) ([]models.PriceObservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.PriceObservation
	for _, o := range m.obs {
		if !o.Timestamp.Before(start) && o.Timestamp.Before(end) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.obs), nil
}

func (m *MemoryStore) Reset(_ context.Context) error {
	m.mu.Lock()
	m.obs = nil
	m.version.Add(1)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Version(_ context.Context) (uint64, error) {
	return m.version.Load(), nil
}
