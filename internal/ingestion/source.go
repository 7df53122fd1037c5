package ingestion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const fileExt = ".csv"

// Source is one price file handed to the Ingestor: a name used in
// diagnostics and a way to open its bytes.
type Source struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileSource returns a Source reading the file at path.
func FileSource(path string) Source {
	return Source{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// ReaderSource wraps an in-memory reader; Open may only be called once.
func ReaderSource(name string, r io.Reader) Source {
	return Source{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
	}
}

// DiscoverDir lists the *.csv files directly under dir, sorted by name.
func DiscoverDir(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), fileExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	sources := make([]Source, 0, len(names))
	for _, n := range names {
		sources = append(sources, FileSource(filepath.Join(dir, n)))
	}
	return sources, nil
}
