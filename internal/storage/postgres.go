package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/cryptorec/internal/domain/models"
	pq "github.com/lib/pq"
)

// PostgresStore persists observations in the prices table (see db/migrations).
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var (
	_ PriceStore      = (*PostgresStore)(nil)
	_ RangeAggregator = (*PostgresStore)(nil)
)

const (
	selectColumns = `SELECT observed_at, symbol, price FROM prices`

	// bumpVersion runs inside every write transaction. The row lock makes
	// concurrent writers bump in commit order, so a reader never sees new
	// rows under an old version once the writer has committed.
	bumpVersion = `UPDATE prices_version SET version = version + 1`
)

// Insert stores a single observation.
func (r *PostgresStore) Insert(ctx context.Context, o models.PriceObservation) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO prices (observed_at, symbol, price) VALUES ($1, $2, $3)`,
			o.Timestamp.UTC(), o.Symbol, o.Price)
		if err != nil {
			return fmt.Errorf("insert price: %w", err)
		}
		return nil
	})
}

// inTx runs fn and the version bump in one transaction.
func (r *PostgresStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, bumpVersion); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("bump version: %w", err)
	}
	return tx.Commit()
}

// InsertBatch inserts multiple observations in a single transaction using COPY.
func (r *PostgresStore) InsertBatch(ctx context.Context, batch []models.PriceObservation) error {
	if len(batch) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("prices", "observed_at", "symbol", "price"))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, o := range batch {
		if _, err := stmt.ExecContext(ctx, o.Timestamp.UTC(), o.Symbol, o.Price); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.ExecContext(ctx, bumpVersion); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("bump version: %w", err)
	}

	return tx.Commit()
}

func (r *PostgresStore) All(ctx context.Context) ([]models.PriceObservation, error) {
	return r.query(ctx, selectColumns+` ORDER BY id`)
}

func (r *PostgresStore) FirstByTime(ctx context.Context, symbol string, order Order) (*models.PriceObservation, error) {
	return r.first(ctx, "observed_at", symbol, order)
}

func (r *PostgresStore) FirstByPrice(ctx context.Context, symbol string, order Order) (*models.PriceObservation, error) {
	return r.first(ctx, "price", symbol, order)
}

// first returns the symbol's first row by column in the given order, or nil
// when the symbol has no rows. id breaks ties so the earliest insert wins.
func (r *PostgresStore) first(ctx context.Context, column, symbol string, order Order) (*models.PriceObservation, error) {
	query := fmt.Sprintf(`%s WHERE symbol = $1 ORDER BY %s %s, id ASC LIMIT 1`, selectColumns, column, order.sql())

	var o models.PriceObservation
	err := r.db.QueryRowContext(ctx, query, symbol).Scan(&o.Timestamp, &o.Symbol, &o.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("first by %s: %w", column, err)
	}
	o.Timestamp = o.Timestamp.UTC()
	return &o, nil
}

func (r *PostgresStore) ScanByTimeWindow(ctx context.Context, start, end time.Time) ([]models.PriceObservation, error) {
	return r.query(ctx, selectColumns+` WHERE observed_at >= $1 AND observed_at < $2 ORDER BY observed_at, id`, start.UTC(), end.UTC())
}

func (r *PostgresStore) Count(ctx context.Context) (int, error) {
	return r.CountIn(ctx, nil, nil)
}

// Reset removes every observation and bumps the version in the same
// transaction.
func (r *PostgresStore) Reset(ctx context.Context) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `TRUNCATE TABLE prices`); err != nil {
			return fmt.Errorf("truncate prices: %w", err)
		}
		return nil
	})
}

// Version returns the write counter kept in prices_version. It only moves
// forward and changes with every committed write.
func (r *PostgresStore) Version(ctx context.Context) (uint64, error) {
	var v int64
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM prices_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("store version: %w", err)
	}
	return uint64(v), nil
}

// NormalizedRangesIn pushes grouping and the min/max division down to Postgres.
// Symbols whose minimum price is zero are excluded, and results are sorted
// by normalized range descending.
func (r *PostgresStore) NormalizedRangesIn(ctx context.Context, start, end *time.Time) ([]models.NormalizedRange, error) {
	where, args := windowClause(start, end)
	query := fmt.Sprintf(`
		SELECT symbol, (MAX(price) - MIN(price)) / MIN(price) AS normalized_range
		FROM prices%s
		GROUP BY symbol
		HAVING MIN(price) > 0
		ORDER BY normalized_range DESC, symbol ASC
	`, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("normalized ranges: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.NormalizedRange, 0, 8)
	for rows.Next() {
		var nr models.NormalizedRange
		if err := rows.Scan(&nr.Symbol, &nr.NormalizedRange); err != nil {
			return nil, fmt.Errorf("scan normalized range: %w", err)
		}
		out = append(out, nr)
	}
	return out, rows.Err()
}

func (r *PostgresStore) CountIn(ctx context.Context, start, end *time.Time) (int, error) {
	where, args := windowClause(start, end)
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM prices`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count prices: %w", err)
	}
	return n, nil
}

// windowClause builds the WHERE clause for optional [start, end) bounds.
func windowClause(start, end *time.Time) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if start != nil {
		args = append(args, start.UTC())
		conds = append(conds, fmt.Sprintf("observed_at >= $%d", len(args)))
	}
	if end != nil {
		args = append(args, end.UTC())
		conds = append(conds, fmt.Sprintf("observed_at < $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PostgresStore) query(ctx context.Context, query string, args ...interface{}) ([]models.PriceObservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.PriceObservation
	for rows.Next() {
		var o models.PriceObservation
		if err := rows.Scan(&o.Timestamp, &o.Symbol, &o.Price); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		o.Timestamp = o.Timestamp.UTC()
		out = append(out, o)
	}
	return out, rows.Err()
}
