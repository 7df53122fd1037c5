package ingestion

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/guttosm/cryptorec/internal/domain/models"
	"github.com/guttosm/cryptorec/internal/storage"
)

func writeInputFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestNewIngestor_Defaults(t *testing.T) {
	cases := []struct {
		name         string
		opts         Options
		wantBatch    int
		wantParallel int
	}{
		{"zero values", Options{}, defaultBatchSize, 1},
		{"explicit", Options{BatchSize: 10, Parallel: 3}, 10, 3},
		{"parallel capped", Options{Parallel: 64}, defaultBatchSize, maxParallel},
		{"negative values", Options{BatchSize: -1, Parallel: -2}, defaultBatchSize, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ing := NewIngestor(storage.NewMemoryStore(), tc.opts)
			if ing.batch != tc.wantBatch || ing.parallel != tc.wantParallel {
				t.Fatalf("want batch=%d parallel=%d, got %d/%d", tc.wantBatch, tc.wantParallel, ing.batch, ing.parallel)
			}
		})
	}
}

func TestLoad_MultipleSourcesIntoMemoryStore(t *testing.T) {
	store := storage.NewMemoryStore()
	ing := NewIngestor(store, Options{BatchSize: 2, Parallel: 2})

	sources := []Source{
		ReaderSource("BTC_values.csv", strings.NewReader(header+"1641009600000,BTC,46813.21\n1641020400000,BTC,46979.61\n")),
		ReaderSource("ETH_values.csv", strings.NewReader(header+"1641009600000,ETH,3715.32\n1641009600000,NEW,1\n")),
	}
	rep, err := ing.Load(context.Background(), sources)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep.Files != 2 || rep.Rows != 4 || rep.Loaded != 3 || rep.Skipped != 1 {
		t.Fatalf("unexpected report %+v", rep)
	}
	n, err := store.Count(context.Background())
	if err != nil || n != 3 {
		t.Fatalf("want 3 stored rows, got %d (%v)", n, err)
	}
	if rep.Count(UnsupportedSymbol) != 1 {
		t.Fatalf("want one unsupported diagnostic, got %+v", rep.Diagnostics)
	}
}

func TestLoad_NoSourcesIsNotAnError(t *testing.T) {
	rep, err := NewIngestor(storage.NewMemoryStore(), Options{}).Load(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep.Count(NoSources) != 1 {
		t.Fatalf("want no_sources diagnostic, got %+v", rep.Diagnostics)
	}
}

func TestLoad_UnopenableSourceDoesNotStopOthers(t *testing.T) {
	store := storage.NewMemoryStore()
	sources := []Source{
		{Name: "gone.csv", Open: func() (io.ReadCloser, error) { return nil, os.ErrNotExist }},
		ReaderSource("XRP_values.csv", strings.NewReader(header+"1641009600000,XRP,0.8298\n")),
	}
	rep, err := NewIngestor(store, Options{}).Load(context.Background(), sources)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep.Count(FileFailure) != 1 || rep.Loaded != 1 {
		t.Fatalf("unexpected report %+v", rep)
	}
}

// errStore fails every write.
type errStore struct {
	storage.PriceStore
	mu    sync.Mutex
	calls int
}

func (e *errStore) InsertBatch(context.Context, []models.PriceObservation) error {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	return errors.New("db down")
}

func TestLoad_StoreFailureAborts(t *testing.T) {
	sources := []Source{
		ReaderSource("a.csv", strings.NewReader(header+"1641009600000,BTC,1\n")),
	}
	rep, err := NewIngestor(&errStore{}, Options{}).Load(context.Background(), sources)
	if err == nil {
		t.Fatalf("expected store error")
	}
	if rep == nil || rep.Loaded != 0 {
		t.Fatalf("unexpected report %+v", rep)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sources := []Source{
		ReaderSource("a.csv", strings.NewReader(header+"1641009600000,BTC,1\n")),
	}
	if _, err := NewIngestor(storage.NewMemoryStore(), Options{}).Load(ctx, sources); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestLoadDir_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeInputFile(t, dir, "BTC_values.csv", header+"1641009600000,BTC,46813.21\n1641020400000,BTC,46979.61\n")
	writeInputFile(t, dir, "DOGE_values.csv", header+"1641009600000,DOGE,0.1702\n")
	writeInputFile(t, dir, "LTC_VALUES.CSV", header+"1641009600000,LTC,148.1\n")
	writeInputFile(t, dir, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "nested.csv"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	store := storage.NewMemoryStore()
	rep, err := NewIngestor(store, Options{Parallel: 4}).LoadDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep.Files != 3 || rep.Loaded != 4 {
		t.Fatalf("unexpected report %+v", rep)
	}
	first, err := store.FirstByTime(context.Background(), "BTC", storage.Ascending)
	if err != nil || first == nil || first.Price != 46813.21 {
		t.Fatalf("unexpected oldest BTC %+v (%v)", first, err)
	}
}

func TestLoadDir_MissingDirBehavesLikeEmpty(t *testing.T) {
	rep, err := NewIngestor(storage.NewMemoryStore(), Options{}).LoadDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep.Count(FileFailure) != 1 || rep.Count(NoSources) != 1 {
		t.Fatalf("unexpected diagnostics %+v", rep.Diagnostics)
	}
}

func TestDiscoverDir_SortedCSVOnly(t *testing.T) {
	dir := t.TempDir()
	writeInputFile(t, dir, "b.csv", header)
	writeInputFile(t, dir, "a.CSV", header)
	writeInputFile(t, dir, "c.json", "{}")

	srcs, err := DiscoverDir(dir)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(srcs) != 2 || srcs[0].Name != "a.CSV" || srcs[1].Name != "b.csv" {
		t.Fatalf("unexpected sources %+v", srcs)
	}
}

func TestReloader_LoadReloadReset(t *testing.T) {
	dir := t.TempDir()
	writeInputFile(t, dir, "BTC_values.csv", header+"1641009600000,BTC,46813.21\n")

	ctx := context.Background()
	store := storage.NewMemoryStore()
	r := NewReloader(store, dir, Options{})
	if r.Ready() {
		t.Fatalf("must not be ready before the first load")
	}

	if _, err := r.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !r.Ready() {
		t.Fatalf("must be ready after load")
	}

	writeInputFile(t, dir, "ETH_values.csv", header+"1641009600000,ETH,3715.32\n")
	rep, err := r.Reload(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if n, _ := store.Count(ctx); n != 2 || rep.Loaded != 2 {
		t.Fatalf("reload must replace, not append: count=%d loaded=%d", n, rep.Loaded)
	}

	if err := r.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if n, _ := store.Count(ctx); n != 0 || !r.Ready() {
		t.Fatalf("reset must empty the store and stay ready, count=%d", n)
	}
}

func TestReloader_StoreFailureNotReady(t *testing.T) {
	dir := t.TempDir()
	writeInputFile(t, dir, "BTC_values.csv", header+"1641009600000,BTC,1\n")

	r := NewReloader(&errStore{}, dir, Options{})
	if _, err := r.Load(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if r.Ready() {
		t.Fatalf("failed load must not report ready")
	}
}

// flakyStore is a MemoryStore whose batch inserts fail while failInsert is set.
type flakyStore struct {
	*storage.MemoryStore
	failInsert atomic.Bool
}

func (f *flakyStore) InsertBatch(ctx context.Context, obs []models.PriceObservation) error {
	if f.failInsert.Load() {
		return errors.New("db down")
	}
	return f.MemoryStore.InsertBatch(ctx, obs)
}

func TestReloader_FailedReloadStaysNotReadyUntilRecovered(t *testing.T) {
	dir := t.TempDir()
	writeInputFile(t, dir, "BTC_values.csv", header+"1641009600000,BTC,1\n")

	ctx := context.Background()
	store := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	r := NewReloader(store, dir, Options{})
	if _, err := r.Load(ctx); err != nil || !r.Ready() {
		t.Fatalf("initial load: err=%v ready=%v", err, r.Ready())
	}

	store.failInsert.Store(true)
	if _, err := r.Reload(ctx); err == nil {
		t.Fatalf("expected reload error")
	}
	if r.Ready() {
		t.Fatalf("a failed reload leaves a partial store and must not report ready")
	}

	if err := r.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !r.Ready() {
		t.Fatalf("reset must restore readiness with an empty store")
	}

	store.failInsert.Store(false)
	if _, err := r.Reload(ctx); err != nil || !r.Ready() {
		t.Fatalf("recovered reload: err=%v ready=%v", err, r.Ready())
	}
	if n, _ := store.Count(ctx); n != 1 {
		t.Fatalf("count=%d", n)
	}
}

func TestReloader_LoadIfEmpty(t *testing.T) {
	dir := t.TempDir()
	writeInputFile(t, dir, "BTC_values.csv", header+"1641009600000,BTC,1\n")

	ctx := context.Background()
	store := storage.NewMemoryStore()
	r := NewReloader(store, dir, Options{})

	rep, err := r.LoadIfEmpty(ctx)
	if err != nil || rep == nil || rep.Loaded != 1 {
		t.Fatalf("first load: rep=%+v err=%v", rep, err)
	}
	rep, err = r.LoadIfEmpty(ctx)
	if err != nil || rep != nil {
		t.Fatalf("second load must be skipped: rep=%+v err=%v", rep, err)
	}
	if n, _ := store.Count(ctx); n != 1 || !r.Ready() {
		t.Fatalf("count=%d ready=%v", n, r.Ready())
	}
}
