package oracle

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTTL          = 30 * time.Second
	defaultFetchTimeout = 10 * time.Second
	refreshKey          = "rate"
)

type quote struct {
	rate      decimal.Decimal
	fetchedAt time.Time
}

// Config tunes caching and upstream pressure.
type Config struct {
	TTL          time.Duration
	FetchTimeout time.Duration
	// RPS caps upstream calls per second. Zero disables limiting.
	RPS int
}

// Oracle caches the rate from a Source for Config.TTL.
type Oracle struct {
	source       Source
	metrics      Metrics
	logger       *zap.Logger
	ttl          time.Duration
	fetchTimeout time.Duration
	limiter      ratelimit.Limiter
	now          func() time.Time
	group        singleflight.Group
	current      atomic.Pointer[quote]
}

func New(source Source, metrics Metrics, logger *zap.Logger, cfg Config) (*Oracle, error) {
	if source == nil {
		return nil, errors.New("price source is required")
	}
	if metrics == nil {
		return nil, errors.New("oracle metrics is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}

	limiter := ratelimit.NewUnlimited()
	if cfg.RPS > 0 {
		limiter = ratelimit.New(cfg.RPS)
	}

	return &Oracle{
		source:       source,
		metrics:      metrics,
		logger:       logger,
		ttl:          cfg.TTL,
		fetchTimeout: cfg.FetchTimeout,
		limiter:      limiter,
		now:          time.Now,
	}, nil
}

// Rate returns the cached rate while it is fresh and fetches a new one otherwise.
func (o *Oracle) Rate(ctx context.Context) (decimal.Decimal, error) {
	if q := o.current.Load(); q != nil && o.now().Sub(q.fetchedAt) < o.ttl {
		o.metrics.ObserveCache(true)
		return q.rate, nil
	}
	o.metrics.ObserveCache(false)

	return o.Refresh(ctx)
}

// Refresh fetches a new rate regardless of the cached one. Concurrent callers share one upstream call.
func (o *Oracle) Refresh(ctx context.Context) (decimal.Decimal, error) {
	ch := o.group.DoChan(refreshKey, func() (any, error) {
		// Detached so one caller giving up does not fail the others waiting on the same fetch.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.fetchTimeout)
		defer cancel()
		return o.fetch(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return decimal.Zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return decimal.Zero, res.Err
		}
		return res.Val.(decimal.Decimal), nil
	}
}

func (o *Oracle) fetch(ctx context.Context) (decimal.Decimal, error) {
	o.limiter.Take()

	started := time.Now()
	rate, err := o.source.Fetch(ctx)
	o.metrics.ObserveFetch(err, started)
	if err != nil {
		if !errors.Is(err, ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
		}
		return decimal.Zero, fmt.Errorf("fetch rate: %w", err)
	}

	o.current.Store(&quote{rate: rate, fetchedAt: o.now()})
	o.metrics.ObserveRate(rate.InexactFloat64())
	o.logger.Debug("price rate refreshed", zap.String("rate", rate.String()))

	return rate, nil
}
