package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const maxQuoteBodySize = 1 << 16

type quotePayload struct {
	Rate *decimal.Decimal `json:"rate"`
}

// HTTPSource reads the rate from a JSON quote endpoint answering {"rate": <number|string>}.
type HTTPSource struct {
	client *http.Client
	url    string
}

func NewHTTPSource(url string, timeout time.Duration) (*HTTPSource, error) {
	if url == "" {
		return nil, errors.New("price source url is required")
	}
	return &HTTPSource{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}, nil
}

func (s *HTTPSource) Fetch(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("create quote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: quote request: %w", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxQuoteBodySize))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: read quote: %w", ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decimal.Zero, fmt.Errorf("%w: quote status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var payload quotePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decode quote: %w", ErrUpstreamUnavailable, err)
	}
	if payload.Rate == nil {
		return decimal.Zero, fmt.Errorf("%w: quote has no rate", ErrUpstreamUnavailable)
	}
	if !payload.Rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive rate %s", ErrUpstreamUnavailable, payload.Rate)
	}

	return *payload.Rate, nil
}
