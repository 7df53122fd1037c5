package ingestion

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/cryptorec/internal/logger"
	"github.com/guttosm/cryptorec/internal/storage"
)

const (
	defaultBatchSize = 500
	maxParallel      = 8
)

// Options tunes an Ingestor. Zero values fall back to defaults.
//
// Fields:
//   - BatchSize: rows buffered before each InsertBatch (default 500).
//   - Parallel: how many files are processed at once (default 1, max 8).
type Options struct {
	BatchSize int
	Parallel  int
}

// Ingestor loads price files into a PriceStore.
type Ingestor struct {
	store    storage.PriceStore
	batch    int
	parallel int
}

func NewIngestor(store storage.PriceStore, opts Options) *Ingestor {
	ing := &Ingestor{store: store, batch: opts.BatchSize, parallel: opts.Parallel}
	if ing.batch <= 0 {
		ing.batch = defaultBatchSize
	}
	if ing.parallel <= 0 {
		ing.parallel = 1
	}
	if ing.parallel > maxParallel {
		ing.parallel = maxParallel
	}
	return ing
}

// LoadDir discovers the *.csv files in dir and loads them. An unreadable
// directory is recorded as a diagnostic and behaves like an empty one.
func (i *Ingestor) LoadDir(ctx context.Context, dir string) (*Report, error) {
	sources, err := DiscoverDir(dir)
	if err != nil {
		rep := &Report{}
		fileFailure(rep, dir, err)
		return i.finish(rep, nil, time.Now())
	}
	return i.Load(ctx, sources)
}

// Load processes every source and returns a Report.
//
// Behavior:
//   - Skips the header line of each source unconditionally.
//   - Skips unsupported or malformed rows, recording a diagnostic.
//   - Records a diagnostic for sources that cannot be opened or read and
//     continues with the next one.
//   - Records a diagnostic when sources is empty; this is not an error.
//
// Returns:
//   - error: only on context cancellation or when the store rejects a write.
func (i *Ingestor) Load(ctx context.Context, sources []Source) (*Report, error) {
	start := time.Now()
	rep := &Report{Files: len(sources)}

	if len(sources) == 0 {
		return i.finish(rep, nil, start)
	}

	logger.L().Info().Int("files", len(sources)).Int("parallel", i.parallel).Msg("ingestion start")

	// errgroup cancels siblings on the first store failure.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.parallel)

	for idx, src := range sources {
		idx, src := idx, src
		g.Go(func() error {
			fileStart := time.Now()
			logger.L().Info().Int("idx", idx+1).Int("total", len(sources)).Str("file", src.Name).Msg("file start")
			if err := parseAndPersist(gctx, src, i.store, i.batch, rep); err != nil {
				logger.L().Error().Str("file", src.Name).Dur("elapsed", time.Since(fileStart)).Err(err).Msg("file failed")
				return err
			}
			logger.L().Info().Int("idx", idx+1).Str("file", src.Name).Dur("elapsed", time.Since(fileStart)).Msg("file done")
			return nil
		})
	}

	return i.finish(rep, g.Wait(), start)
}

func (i *Ingestor) finish(rep *Report, err error, start time.Time) (*Report, error) {
	if rep.Files == 0 {
		rep.addDiagnostic(Diagnostic{Kind: NoSources})
		logger.L().Warn().Msg("no csv files found, starting with an empty store")
	}
	if err != nil {
		return rep, err
	}
	logger.L().Info().
		Int("files", rep.Files).
		Int("rows", rep.Rows).
		Int("loaded", rep.Loaded).
		Int("skipped", rep.Skipped).
		Dur("elapsed", time.Since(start)).
		Msg("ingestion done")
	return rep, nil
}
