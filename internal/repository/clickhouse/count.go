package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/powboard-backend/internal/model"
)

// Count returns the number of records matching filter.
func (r *Repository) Count(ctx context.Context, filter model.Filter) (uint64, error) {
	where, args := whereClause(filter)
	query := `
SELECT count()
FROM magicnumbers FINAL` + where

	return r.scalar(ctx, "count", query, args...)
}

// SumValue returns the total value in satoshis of records matching filter.
func (r *Repository) SumValue(ctx context.Context, filter model.Filter) (uint64, error) {
	where, args := whereClause(filter)
	query := `
SELECT coalesce(sum(value), toUInt64(0))
FROM magicnumbers FINAL` + where

	return r.scalar(ctx, "sum_value", query, args...)
}

func (r *Repository) scalar(ctx context.Context, operation, query string, args ...any) (value uint64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe(operation, err, start)
	}()

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", operation, err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	if !rows.Next() {
		return 0, fmt.Errorf("%s returned no rows", operation)
	}

	if err = rows.Scan(&value); err != nil {
		return 0, fmt.Errorf("scan %s: %w", operation, err)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate %s: %w", operation, err)
	}

	return value, nil
}
