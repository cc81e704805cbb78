package clickhouse

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/powboard-backend/internal/model"
)

// Related returns up to limit records whose target is txid or minedNumber.
func (r *Repository) Related(ctx context.Context, txid string, minedNumber *string, limit uint64) ([]model.Record, error) {
	targets := []string{txid}
	if minedNumber != nil && *minedNumber != "" && *minedNumber != txid {
		targets = append(targets, *minedNumber)
	}

	query := fmt.Sprintf(`
SELECT%s
FROM magicnumbers FINAL
WHERE target IN ?
ORDER BY created_at DESC, txid ASC
LIMIT ?`, recordColumns)

	return r.listRecords(ctx, "related", query, targets, limit)
}

// Targeting returns up to limit records whose target is hash.
func (r *Repository) Targeting(ctx context.Context, hash string, limit uint64) ([]model.Record, error) {
	query := fmt.Sprintf(`
SELECT%s
FROM magicnumbers FINAL
WHERE target = ?
ORDER BY created_at DESC, txid ASC
LIMIT ?`, recordColumns)

	return r.listRecords(ctx, "targeting", query, hash, limit)
}
