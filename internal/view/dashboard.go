package view

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/powboard-backend/internal/format"
	"github.com/goodnatureofminers/powboard-backend/internal/model"
	"github.com/goodnatureofminers/powboard-backend/pkg/safe"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Dashboard adds the mined and unmined counters and earnings to page.
func (a *Assembler) Dashboard(ctx context.Context, store Store, page *model.Page) (err error) {
	defer func(started time.Time) { a.metrics.Observe("dashboard", err, started) }(time.Now())

	if err = checkPreconditions(store, page); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}

	unminedNum, err := store.Count(ctx, model.MinedFilter(false))
	if err != nil {
		return fmt.Errorf("count unmined: %w", err)
	}

	valuations, err := store.MinedValuations(ctx)
	if err != nil {
		return fmt.Errorf("load mined valuations: %w", err)
	}

	minedEarnings := decimal.Zero
	for _, v := range valuations {
		if v.MinedBSVUSD == nil {
			a.logger.Debug("mined record without mining rate", zap.Uint64("value", v.Value))
			continue
		}
		minedEarnings = minedEarnings.Add(format.SatoshisToFiatDecimal(v.Value, *v.MinedBSVUSD).Round(2))
	}

	unminedSatoshis, err := store.SumValue(ctx, model.MinedFilter(false))
	if err != nil {
		return fmt.Errorf("sum unmined value: %w", err)
	}

	minedCount, err := safe.Int64(len(valuations))
	if err != nil {
		return fmt.Errorf("mined count: %w", err)
	}
	unminedCount, err := safe.Int64(unminedNum)
	if err != nil {
		return fmt.Errorf("unmined count: %w", err)
	}

	page.Dashboard = &model.Dashboard{
		MinedNum:        format.ThousandsSeparated(minedCount),
		MinedEarnings:   format.Money(minedEarnings),
		UnminedNum:      format.ThousandsSeparated(unminedCount),
		UnminedEarnings: format.SatoshisToFiat(unminedSatoshis, page.BSVUSD),
	}
	return nil
}
