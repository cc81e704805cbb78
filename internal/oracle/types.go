// Package oracle resolves the live BSV to USD exchange rate.
package oracle

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// ErrUpstreamUnavailable is returned when the price source cannot produce a usable rate.
var ErrUpstreamUnavailable = errors.New("price upstream unavailable")

type (
	Source interface {
		Fetch(ctx context.Context) (decimal.Decimal, error)
	}
	Metrics interface {
		ObserveFetch(err error, started time.Time)
		ObserveCache(hit bool)
		ObserveRate(rate float64)
	}
)
