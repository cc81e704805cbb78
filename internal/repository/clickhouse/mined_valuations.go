package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/powboard-backend/internal/model"
)

// MinedValuations returns the value and mining-time rate of every mined record.
func (r *Repository) MinedValuations(ctx context.Context) (valuations []model.Valuation, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("mined_valuations", err, start)
	}()

	const query = `
SELECT
	value,
	mined_bsvusd
FROM magicnumbers FINAL
WHERE mined = true`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query mined valuations: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var v model.Valuation
		if err = rows.Scan(&v.Value, &v.MinedBSVUSD); err != nil {
			return nil, fmt.Errorf("scan mined valuation: %w", err)
		}
		valuations = append(valuations, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mined valuations: %w", err)
	}

	return valuations, nil
}
