package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/powboard-backend/internal/model"
)

const recordColumns = `
	txid,
	magicnumber,
	value,
	created_at,
	mined,
	mined_at,
	mined_bsvusd,
	mined_number,
	emoji,
	target`

// listRecords runs a query selecting recordColumns and scans every row.
func (r *Repository) listRecords(ctx context.Context, operation, query string, args ...any) (records []model.Record, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe(operation, err, start)
	}()

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var record model.Record
		if record, err = scanRecord(rows); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	r.metrics.ObserveRows(operation, len(records))
	return records, nil
}

func scanRecord(rows Rows) (model.Record, error) {
	var record model.Record
	err := rows.Scan(
		&record.TxID,
		&record.MagicNumber,
		&record.Value,
		&record.CreatedAt,
		&record.Mined,
		&record.MinedAt,
		&record.MinedBSVUSD,
		&record.MinedNumber,
		&record.Emoji,
		&record.Target,
	)
	return record, err
}

func whereClause(filter model.Filter) (string, []any) {
	if filter.Mined == nil {
		return "", nil
	}
	return "\nWHERE mined = ?", []any{*filter.Mined}
}
