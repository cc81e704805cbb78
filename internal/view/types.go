// Package view assembles the page view models served by the dashboard.
package view

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/powboard-backend/internal/model"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// ErrPreconditionFailed is returned when an assembler is called without a store or page.
var ErrPreconditionFailed = errors.New("view precondition failed")

type (
	Store interface {
		Find(ctx context.Context, q model.Query) ([]model.Record, error)
		FindByTxID(ctx context.Context, txid string) (model.Record, error)
		Count(ctx context.Context, filter model.Filter) (uint64, error)
		SumValue(ctx context.Context, filter model.Filter) (uint64, error)
		MinedValuations(ctx context.Context) ([]model.Valuation, error)
		Timeline(ctx context.Context, since int64) ([]model.TimelineRecord, error)
		Related(ctx context.Context, txid string, minedNumber *string, limit uint64) ([]model.Record, error)
		Targeting(ctx context.Context, hash string, limit uint64) ([]model.Record, error)
	}
	PriceOracle interface {
		Rate(ctx context.Context) (decimal.Decimal, error)
	}
	Metrics interface {
		Observe(view string, err error, started time.Time)
	}
)
