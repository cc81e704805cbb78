package view

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/powboard-backend/internal/model"
	"go.uber.org/zap"
)

const (
	homepageMinedLimit   = 20
	homepageUnminedLimit = 10
)

// Step adds one section to page. Steps run in order and share the page.
type Step func(ctx context.Context, store Store, page *model.Page) error

// Assembler builds view models from a store and the live exchange rate.
type Assembler struct {
	oracle  PriceOracle
	metrics Metrics
	logger  *zap.Logger
	now     func() time.Time
}

func NewAssembler(oracle PriceOracle, metrics Metrics, logger *zap.Logger) (*Assembler, error) {
	if oracle == nil {
		return nil, errors.New("price oracle is required")
	}
	if metrics == nil {
		return nil, errors.New("view metrics is required")
	}
	return &Assembler{
		oracle:  oracle,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Price starts a page priced at the live rate.
func (a *Assembler) Price(ctx context.Context) (page *model.Page, err error) {
	defer func(started time.Time) { a.metrics.Observe("price", err, started) }(time.Now())

	rate, err := a.oracle.Rate(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve rate: %w", err)
	}
	return model.NewPage(rate), nil
}

// Compose prices a new page and runs steps on it in order, stopping at the first error.
func (a *Assembler) Compose(ctx context.Context, store Store, steps ...Step) (*model.Page, error) {
	if store == nil {
		return nil, fmt.Errorf("compose: no store: %w", ErrPreconditionFailed)
	}

	page, err := a.Price(ctx)
	if err != nil {
		return nil, err
	}

	for _, step := range steps {
		if err := step(ctx, store, page); err != nil {
			return nil, err
		}
	}
	return page, nil
}

// Homepage composes the timeline, the dashboard and the most recent mined and unmined records.
func (a *Assembler) Homepage(ctx context.Context, store Store) (page *model.Page, err error) {
	defer func(started time.Time) { a.metrics.Observe("homepage", err, started) }(time.Now())

	return a.Compose(ctx, store,
		a.Blockviz,
		a.Dashboard,
		a.Mined(homepageMinedLimit),
		a.Unmined(homepageUnminedLimit, model.SortCreatedDesc),
	)
}

func checkPreconditions(store Store, page *model.Page) error {
	if store == nil {
		return fmt.Errorf("no store: %w", ErrPreconditionFailed)
	}
	if page == nil {
		return fmt.Errorf("no page: %w", ErrPreconditionFailed)
	}
	return nil
}
