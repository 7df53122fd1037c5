package ingestion

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/guttosm/cryptorec/internal/logger"
	"github.com/guttosm/cryptorec/internal/storage"
)

// Reloader owns the lifecycle of the configured price directory: the
// initial load at startup and operator triggered reloads and resets.
// Reloads are serialized; Ready reports false while one is running.
type Reloader struct {
	mu    sync.Mutex
	ready atomic.Bool
	ing   *Ingestor
	store storage.PriceStore
	dir   string
}

func NewReloader(store storage.PriceStore, dir string, opts Options) *Reloader {
	return &Reloader{ing: NewIngestor(store, opts), store: store, dir: dir}
}

// Ready is true once a load finished successfully and no reload is in progress.
// After a failed load it stays false until a Load, Reload or Reset succeeds.
func (r *Reloader) Ready() bool { return r.ready.Load() }

// Load ingests the directory into the store as is. Used at startup.
func (r *Reloader) Load(ctx context.Context) (*Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.run(ctx, false)
}

// LoadIfEmpty runs Load only when the store holds no observations, so a
// restart against a persistent store does not duplicate rows. It returns
// a nil Report when the load was skipped.
func (r *Reloader) LoadIfEmpty(ctx context.Context) (*Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, err := r.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count stored prices: %w", err)
	}
	if n > 0 {
		logger.L().Info().Int("rows", n).Msg("store already populated, skipping startup ingestion")
		r.ready.Store(true)
		return nil, nil
	}
	return r.run(ctx, false)
}

// Reload clears the store and ingests the directory again.
func (r *Reloader) Reload(ctx context.Context) (*Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.run(ctx, true)
}

// Reset clears every stored observation. The service stays ready with
// an empty store. It is also how an operator clears a not ready state left
// by a failed Reload, whose store may hold only part of the directory.
func (r *Reloader) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}
	logger.L().Info().Msg("price store reset")
	r.ready.Store(true)
	return nil
}

func (r *Reloader) run(ctx context.Context, reset bool) (*Report, error) {
	r.ready.Store(false)
	if reset {
		if err := r.store.Reset(ctx); err != nil {
			return nil, fmt.Errorf("reset store: %w", err)
		}
	}
	rep, err := r.ing.LoadDir(ctx, r.dir)
	if err != nil {
		return rep, err
	}
	r.ready.Store(true)
	return rep, nil
}
