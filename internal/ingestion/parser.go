package ingestion

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/cryptorec/internal/domain/models"
	"github.com/guttosm/cryptorec/internal/logger"
	"github.com/guttosm/cryptorec/internal/storage"
	"github.com/guttosm/cryptorec/internal/symbols"
)

// Column order of a price file: timestamp,symbol,price
const (
	colTimestamp = iota
	colSymbol
	colPrice
	numColumns
)

// Line limits for the scanner. A longer line fails the file.
const (
	initialLineBuf = 64 * 1024
	maxLineBytes   = 1 << 20
)

// parseAndPersist reads one source and stores its valid rows in batches.
//
// Each line is split on commas on its own, so a malformed line never
// swallows the lines after it. Row level problems (unsupported symbol, bad
// timestamp or price, wrong column count, blank line) skip the row with a
// diagnostic. An unreadable source is recorded as a file diagnostic and
// processing stops for that source only. The returned error is reserved for
// context cancellation and store write failures.
func parseAndPersist(ctx context.Context, src Source, store storage.PriceStore, batch int, rep *Report) error {
	rc, err := src.Open()
	if err != nil {
		fileFailure(rep, src.Name, fmt.Errorf("open: %w", err))
		return nil
	}
	defer func() { _ = rc.Close() }()

	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, initialLineBuf), maxLineBytes)

	// The first line is always the header.
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			fileFailure(rep, src.Name, fmt.Errorf("read header: %w", err))
		}
		return nil
	}

	buf := make([]models.PriceObservation, 0, batch)
	rows, loaded := 0, 0
	defer func() { rep.addRows(rows, loaded) }()

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := store.InsertBatch(ctx, buf); err != nil {
			return fmt.Errorf("file %s: insert batch: %w", src.Name, err)
		}
		loaded += len(buf)
		buf = buf[:0]
		return nil
	}

	for line := 2; sc.Scan(); line++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		raw := strings.TrimSuffix(sc.Text(), "\r")
		rec := strings.Split(raw, ",")
		rows++

		if len(rec) > colSymbol && !symbols.IsValid(strings.TrimSpace(rec[colSymbol])) {
			d := Diagnostic{Kind: UnsupportedSymbol, File: src.Name, Row: line, Symbol: strings.TrimSpace(rec[colSymbol])}
			rep.addDiagnostic(d)
			logger.L().Warn().Str("file", src.Name).Int("row", line).Str("symbol", d.Symbol).Msg("unsupported crypto symbol")
			continue
		}

		o, err := recordToObservation(rec)
		if err != nil {
			parseFailure(rep, src.Name, line, raw, err)
			continue
		}

		buf = append(buf, o)
		if len(buf) >= batch {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	if err := sc.Err(); err != nil {
		fileFailure(rep, src.Name, fmt.Errorf("read: %w", err))
	}
	return flush()
}

// recordToObservation converts one record into a PriceObservation.
//
//	0 timestamp → Timestamp (epoch milliseconds, UTC)
//	1 symbol    → Symbol (canonical upper case)
//	2 price     → Price (decimal, non-negative, NaN/Inf rejected)
func recordToObservation(rec []string) (models.PriceObservation, error) {
	var o models.PriceObservation
	if len(rec) != numColumns {
		return o, fmt.Errorf("invalid column count: expected %d, got %d", numColumns, len(rec))
	}

	sym, err := symbols.Resolve(strings.TrimSpace(rec[colSymbol]))
	if err != nil {
		return o, err
	}
	o.Symbol = sym.String()

	ms, err := strconv.ParseInt(strings.TrimSpace(rec[colTimestamp]), 10, 64)
	if err != nil {
		return o, fmt.Errorf("invalid timestamp: %v", err)
	}
	o.Timestamp = time.UnixMilli(ms).UTC()

	price, err := decimal.NewFromString(strings.TrimSpace(rec[colPrice]))
	if err != nil {
		return o, fmt.Errorf("invalid price: %v", err)
	}
	if price.IsNegative() {
		return o, fmt.Errorf("invalid price: negative value %s", price)
	}
	// Values past float64 range become ±Inf, which JSON cannot encode.
	f := price.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return o, fmt.Errorf("invalid price: %s out of range", rec[colPrice])
	}
	o.Price = f

	return o, nil
}

func parseFailure(rep *Report, file string, row int, line string, err error) {
	rep.addDiagnostic(Diagnostic{Kind: ParseFailure, File: file, Row: row, Line: line, Err: err.Error()})
	logger.L().Error().Str("file", file).Int("row", row).Str("line", line).Err(err).Msg("failed to parse line")
}

func fileFailure(rep *Report, file string, err error) {
	rep.addDiagnostic(Diagnostic{Kind: FileFailure, File: file, Err: err.Error()})
	logger.L().Error().Str("file", file).Err(err).Msg("failed to process file")
}
