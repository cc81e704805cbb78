// Package transport serves the dashboard pages and the JSON API over HTTP.
package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/powboard-backend/internal/view"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Store interface {
		view.Store
		Ping(ctx context.Context) error
	}
	Metrics interface {
		Observe(route string, code int, started time.Time)
	}
)
