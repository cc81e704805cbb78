package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/powboard-backend/internal/model"
)

// Timeline returns records created at or after since, oldest first.
func (r *Repository) Timeline(ctx context.Context, since int64) (records []model.TimelineRecord, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("timeline", err, start)
	}()

	const query = `
SELECT
	txid,
	magicnumber,
	created_at,
	mined
FROM magicnumbers FINAL
WHERE created_at >= ?
ORDER BY created_at ASC, txid ASC`

	rows, err := r.conn.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("query timeline: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var rec model.TimelineRecord
		if err = rows.Scan(&rec.TxID, &rec.MagicNumber, &rec.CreatedAt, &rec.Mined); err != nil {
			return nil, fmt.Errorf("scan timeline record: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate timeline: %w", err)
	}

	return records, nil
}
