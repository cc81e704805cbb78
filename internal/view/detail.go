package view

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/goodnatureofminers/powboard-backend/internal/format"
	"github.com/goodnatureofminers/powboard-backend/internal/model"
	"github.com/goodnatureofminers/powboard-backend/internal/power"
)

const (
	relatedLimit   = 10
	targetingLimit = 100

	detailType = "tx"
	hashType   = "hash"
)

// Record looks up txid and builds its detail view. It returns model.ErrNotFound
// when no record exists, so callers can fall back to Hash.
func (a *Assembler) Record(ctx context.Context, store Store, txid string) (*model.Detail, error) {
	if store == nil {
		return nil, fmt.Errorf("record: no store: %w", ErrPreconditionFailed)
	}

	record, err := store.FindByTxID(ctx, txid)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find record: %w", err)
	}
	return a.Detail(ctx, store, record)
}

// Detail enriches record together with up to ten records targeting it and
// scores their aggregate power.
func (a *Assembler) Detail(ctx context.Context, store Store, record model.Record) (detail *model.Detail, err error) {
	defer func(started time.Time) { a.metrics.Observe("detail", err, started) }(time.Now())

	if store == nil {
		return nil, fmt.Errorf("detail: no store: %w", ErrPreconditionFailed)
	}

	rate, err := a.oracle.Rate(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve rate: %w", err)
	}
	now := a.now()

	primary := enrich(record, rate, now)
	primary.Type = detailType
	primary.Header = format.TruncateID(record.TxID, format.DefaultIDLength)

	related, err := store.Related(ctx, record.TxID, primary.MinedNumber, relatedLimit)
	if err != nil {
		return nil, fmt.Errorf("load related records: %w", err)
	}

	entries := []power.Entry{powerEntry(primary)}
	var txs []model.DisplayRecord
	for _, r := range related {
		if r.TxID == record.TxID {
			continue
		}
		d := enrich(r, rate, now)
		d.Type = primary.Type
		d.Header = primary.Header
		txs = append(txs, d)
		entries = append(entries, powerEntry(d))
	}

	return &model.Detail{
		BSVUSD: rate,
		Record: primary,
		Txs:    txs,
		Power:  floor2(power.Aggregate(entries)),
	}, nil
}

// Hash builds the placeholder view of a hash with no record of its own from
// the records that target it.
func (a *Assembler) Hash(ctx context.Context, store Store, hash string) (hv *model.HashView, err error) {
	defer func(started time.Time) { a.metrics.Observe("hash", err, started) }(time.Now())

	if store == nil {
		return nil, fmt.Errorf("hash: no store: %w", ErrPreconditionFailed)
	}

	rate, err := a.oracle.Rate(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve rate: %w", err)
	}
	now := a.now()

	records, err := store.Targeting(ctx, hash, targetingLimit)
	if err != nil {
		return nil, fmt.Errorf("load targeting records: %w", err)
	}

	header := format.TruncateID(hash, format.DefaultIDLength)
	txs := make([]model.DisplayRecord, 0, len(records))
	var entries []power.Entry
	for _, r := range records {
		d := enrich(r, rate, now)
		d.Type = hashType
		d.Header = header
		if d.Power != nil {
			entries = append(entries, powerEntry(d))
		}
		txs = append(txs, d)
	}

	return &model.HashView{
		BSVUSD:         rate,
		Hash:           hash,
		Txs:            txs,
		AggregatePower: floor2(power.Aggregate(entries)),
		Type:           hashType,
		Header:         header,
	}, nil
}

func floor2(v float64) float64 {
	return math.Floor(v*100) / 100
}
