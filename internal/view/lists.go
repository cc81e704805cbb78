package view

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/powboard-backend/internal/model"
)

// Mined lists up to limit mined records, most recently mined first.
func (a *Assembler) Mined(limit uint64) Step {
	return func(ctx context.Context, store Store, page *model.Page) (err error) {
		defer func(started time.Time) { a.metrics.Observe("mined", err, started) }(time.Now())

		records, err := a.list(ctx, store, page, model.Query{
			Filter: model.MinedFilter(true),
			Sort:   model.SortMinedDesc,
			Limit:  limit,
		})
		if err != nil {
			return fmt.Errorf("mined list: %w", err)
		}
		page.Mined = records
		return nil
	}
}

// Unmined lists up to limit unmined records in the given order.
func (a *Assembler) Unmined(limit uint64, sort model.SortOrder) Step {
	return func(ctx context.Context, store Store, page *model.Page) (err error) {
		defer func(started time.Time) { a.metrics.Observe("unmined", err, started) }(time.Now())

		records, err := a.list(ctx, store, page, model.Query{
			Filter: model.MinedFilter(false),
			Sort:   sort,
			Limit:  limit,
		})
		if err != nil {
			return fmt.Errorf("unmined list: %w", err)
		}
		page.Unmined = records
		return nil
	}
}

// All lists up to limit records of any status, newest first.
func (a *Assembler) All(limit uint64) Step {
	return func(ctx context.Context, store Store, page *model.Page) (err error) {
		defer func(started time.Time) { a.metrics.Observe("all", err, started) }(time.Now())

		records, err := a.list(ctx, store, page, model.Query{
			Sort:  model.SortCreatedDesc,
			Limit: limit,
		})
		if err != nil {
			return fmt.Errorf("all list: %w", err)
		}
		page.Records = records
		return nil
	}
}

func (a *Assembler) list(ctx context.Context, store Store, page *model.Page, q model.Query) ([]model.DisplayRecord, error) {
	if err := checkPreconditions(store, page); err != nil {
		return nil, err
	}

	records, err := store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}
	return enrichAll(records, page.BSVUSD, a.now()), nil
}
