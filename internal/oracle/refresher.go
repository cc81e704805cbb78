package oracle

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Refresher keeps the oracle cache warm so requests rarely wait on the upstream.
type Refresher struct {
	oracle   *Oracle
	logger   *zap.Logger
	interval time.Duration
}

func NewRefresher(oracle *Oracle, interval time.Duration, logger *zap.Logger) (*Refresher, error) {
	if oracle == nil {
		return nil, errors.New("oracle is required")
	}
	if interval <= 0 {
		return nil, errors.New("refresh interval must be positive")
	}
	return &Refresher{
		oracle:   oracle,
		logger:   logger,
		interval: interval,
	}, nil
}

// Run refreshes the rate immediately and then every interval until the context is canceled.
func (r *Refresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := r.oracle.Refresh(ctx); err != nil && ctx.Err() == nil {
			r.logger.Warn("refresh price rate failed", zap.Error(err), zap.Duration("interval", r.interval))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
