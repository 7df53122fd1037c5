package ingestion

import (
	"fmt"
	"sync"
)

// DiagnosticKind classifies why something was skipped.
type DiagnosticKind string

const (
	UnsupportedSymbol DiagnosticKind = "unsupported_symbol"
	ParseFailure      DiagnosticKind = "parse_failure"
	FileFailure       DiagnosticKind = "file_failure"
	NoSources         DiagnosticKind = "no_sources"
)

// Diagnostic describes one skipped row, file or an empty run.
type Diagnostic struct {
	Kind   DiagnosticKind
	File   string
	Row    int
	Symbol string
	Line   string
	Err    string
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case UnsupportedSymbol:
		return fmt.Sprintf("crypto symbol %s is not supported in line %d in file %s", d.Symbol, d.Row, d.File)
	case ParseFailure:
		return fmt.Sprintf("failed to parse line %d in file '%s': '%s'. error: %s", d.Row, d.File, d.Line, d.Err)
	case FileFailure:
		return fmt.Sprintf("failed to process file '%s'. error: %s", d.File, d.Err)
	default:
		return "no csv files found"
	}
}

// Report summarizes an ingestion run. It is safe for concurrent use while
// files are processed in parallel.
type Report struct {
	mu sync.Mutex

	Files       int
	Rows        int
	Loaded      int
	Skipped     int
	Diagnostics []Diagnostic
}

func (r *Report) addDiagnostic(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Diagnostics = append(r.Diagnostics, d)
	if d.Kind == UnsupportedSymbol || d.Kind == ParseFailure {
		r.Skipped++
	}
}

func (r *Report) addRows(rows, loaded int) {
	r.mu.Lock()
	r.Rows += rows
	r.Loaded += loaded
	r.mu.Unlock()
}

// Count returns how many diagnostics of kind were recorded.
func (r *Report) Count(kind DiagnosticKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
