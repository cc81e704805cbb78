package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/powboard-backend/internal/metrics"
	"github.com/goodnatureofminers/powboard-backend/internal/oracle"
	"github.com/goodnatureofminers/powboard-backend/internal/repository/clickhouse"
	"github.com/goodnatureofminers/powboard-backend/internal/transport"
	"github.com/goodnatureofminers/powboard-backend/internal/view"
	"github.com/jessevdk/go-flags"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type config struct {
	Addr            string        `long:"addr" env:"POWBOARD_ADDR" description:"HTTP listen address" default:":8000"`
	ClickhouseDSN   string        `long:"clickhouse-dsn" env:"POWBOARD_CLICKHOUSE_DSN" description:"ClickHouse DSN" default:"clickhouse://localhost:9000/default"`
	PriceURL        string        `long:"price-url" env:"POWBOARD_PRICE_URL" description:"quote endpoint answering {\"rate\": <number>}" required:"true"`
	PriceTTL        time.Duration `long:"price-ttl" env:"POWBOARD_PRICE_TTL" description:"how long a fetched rate stays fresh" default:"30s"`
	PriceTimeout    time.Duration `long:"price-timeout" env:"POWBOARD_PRICE_TIMEOUT" description:"timeout of a single quote request" default:"10s"`
	PriceRPS        int           `long:"price-rps" env:"POWBOARD_PRICE_RPS" description:"max quote requests per second, 0 for unlimited" default:"1"`
	PriceRefresh    time.Duration `long:"price-refresh" env:"POWBOARD_PRICE_REFRESH" description:"background rate refresh interval, 0 disables" default:"0s"`
	RequestTimeout  time.Duration `long:"request-timeout" env:"POWBOARD_REQUEST_TIMEOUT" description:"deadline for assembling one page" default:"10s"`
	ShutdownTimeout time.Duration `long:"shutdown-timeout" env:"POWBOARD_SHUTDOWN_TIMEOUT" description:"graceful shutdown timeout" default:"10s"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("powboard failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("close repository", zap.Error(err))
		}
	}()

	source, err := oracle.NewHTTPSource(cfg.PriceURL, cfg.PriceTimeout)
	if err != nil {
		return fmt.Errorf("init price source: %w", err)
	}
	priceOracle, err := oracle.New(source, metrics.NewPriceOracle(), logger.Named("oracle"), oracle.Config{
		TTL:          cfg.PriceTTL,
		FetchTimeout: cfg.PriceTimeout,
		RPS:          cfg.PriceRPS,
	})
	if err != nil {
		return fmt.Errorf("init price oracle: %w", err)
	}
	if cfg.PriceRefresh > 0 {
		refresher, err := oracle.NewRefresher(priceOracle, cfg.PriceRefresh, logger.Named("refresher"))
		if err != nil {
			return fmt.Errorf("init price refresher: %w", err)
		}
		go func() {
			if err := refresher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("price refresher stopped", zap.Error(err))
			}
		}()
	}

	assembler, err := view.NewAssembler(priceOracle, metrics.NewViewAssembler(), logger.Named("view"))
	if err != nil {
		return fmt.Errorf("init view assembler: %w", err)
	}
	handler, err := transport.NewHandler(repo, assembler, metrics.NewHTTP(), logger.Named("http"), cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init http handler: %w", err)
	}

	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           cors.Default().Handler(handler.Routes()),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", cfg.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}
