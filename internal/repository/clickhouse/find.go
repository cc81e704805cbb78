package clickhouse

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/powboard-backend/internal/model"
)

var orderColumns = map[model.SortOrder]string{
	model.SortCreatedDesc: "created_at DESC",
	model.SortMinedDesc:   "mined_at DESC",
	model.SortValueDesc:   "value DESC",
}

// Find returns records matching the query filter, sorted and bounded by its limit.
func (r *Repository) Find(ctx context.Context, q model.Query) ([]model.Record, error) {
	sort := q.Sort
	if sort == "" {
		sort = model.SortCreatedDesc
	}
	order, ok := orderColumns[sort]
	if !ok {
		return nil, fmt.Errorf("unsupported sort order %q", sort)
	}

	limit := q.Limit
	if limit == 0 {
		limit = model.DefaultLimit
	}

	where, args := whereClause(q.Filter)
	query := fmt.Sprintf(`
SELECT%s
FROM magicnumbers FINAL%s
ORDER BY %s, txid ASC
LIMIT ?`, recordColumns, where, order)

	return r.listRecords(ctx, "find", query, append(args, limit)...)
}
