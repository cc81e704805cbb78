package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/powboard-backend/internal/model"
)

// FindByTxID returns the record stored under txid or model.ErrNotFound.
func (r *Repository) FindByTxID(ctx context.Context, txid string) (record model.Record, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("find_by_txid", err, start)
	}()

	query := fmt.Sprintf(`
SELECT%s
FROM magicnumbers FINAL
WHERE txid = ?
LIMIT 1`, recordColumns)

	rows, err := r.conn.Query(ctx, query, txid)
	if err != nil {
		return model.Record{}, fmt.Errorf("query record by txid: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Record{}, fmt.Errorf("iterate record by txid: %w", err)
		}
		return model.Record{}, fmt.Errorf("txid %s: %w", txid, model.ErrNotFound)
	}

	if record, err = scanRecord(rows); err != nil {
		return model.Record{}, fmt.Errorf("scan record: %w", err)
	}
	return record, nil
}
