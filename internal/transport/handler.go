package transport

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goodnatureofminers/powboard-backend/internal/model"
	"github.com/goodnatureofminers/powboard-backend/internal/oracle"
	"github.com/goodnatureofminers/powboard-backend/internal/view"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	sortByProfitable = "profitable"

	maxHashParamLen = 128
)

// number renders a decimal as a bare JSON number.
type number decimal.Decimal

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

// apiRecord shadows the record's historic rate so it is sent as a number.
type apiRecord struct {
	model.DisplayRecord
	MinedBSVUSD *number `json:"mined_bsvusd,omitempty"`
}

type apiResponse struct {
	BSVUSD       number      `json:"bsvusd"`
	MagicNumbers []apiRecord `json:"magicnumbers"`
}

func newAPIResponse(rate decimal.Decimal, records []model.DisplayRecord) apiResponse {
	resp := apiResponse{BSVUSD: number(rate), MagicNumbers: make([]apiRecord, 0, len(records))}
	for _, record := range records {
		item := apiRecord{DisplayRecord: record}
		if record.MinedBSVUSD != nil {
			mined := number(*record.MinedBSVUSD)
			item.MinedBSVUSD = &mined
		}
		resp.MagicNumbers = append(resp.MagicNumbers, item)
	}
	return resp
}

// Handler routes dashboard requests to the view assembler.
type Handler struct {
	store          Store
	assembler      *view.Assembler
	metrics        Metrics
	logger         *zap.Logger
	templates      *template.Template
	requestTimeout time.Duration
}

func NewHandler(store Store, assembler *view.Assembler, metrics Metrics, logger *zap.Logger, requestTimeout time.Duration) (*Handler, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if assembler == nil {
		return nil, errors.New("view assembler is required")
	}
	if metrics == nil {
		return nil, errors.New("http metrics is required")
	}

	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Handler{
		store:          store,
		assembler:      assembler,
		metrics:        metrics,
		logger:         logger,
		templates:      templates,
		requestTimeout: requestTimeout,
	}, nil
}

// Routes returns the HTTP handler serving every dashboard route.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.observe)
	if h.requestTimeout > 0 {
		r.Use(middleware.Timeout(h.requestTimeout))
	}

	r.Get("/", h.homepage)
	r.Get("/mined", h.minedPage)
	r.Get("/unmined", h.unminedPage)
	r.Get("/api", h.apiAll)
	r.Get("/api/mined", h.apiMined)
	r.Get("/api/unmined", h.apiUnmined)
	r.Get("/healthz", h.healthz)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/{hash}", h.hash)

	return r
}

func (h *Handler) homepage(w http.ResponseWriter, r *http.Request) {
	page, err := h.assembler.Homepage(r.Context(), h.store)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, "index.html", page)
}

func (h *Handler) minedPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.assembler.Compose(r.Context(), h.store,
		h.assembler.Dashboard,
		h.assembler.Mined(model.DefaultLimit),
	)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, "mined.html", page)
}

func (h *Handler) unminedPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.assembler.Compose(r.Context(), h.store,
		h.assembler.Dashboard,
		h.assembler.Unmined(model.DefaultLimit, unminedSort(r)),
	)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, "unmined.html", page)
}

func (h *Handler) apiAll(w http.ResponseWriter, r *http.Request) {
	page, err := h.assembler.Compose(r.Context(), h.store,
		h.assembler.Dashboard,
		h.assembler.All(model.DefaultLimit),
	)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, page.BSVUSD, page.Records)
}

func (h *Handler) apiMined(w http.ResponseWriter, r *http.Request) {
	page, err := h.assembler.Compose(r.Context(), h.store,
		h.assembler.Dashboard,
		h.assembler.Mined(model.DefaultLimit),
	)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, page.BSVUSD, page.Mined)
}

func (h *Handler) apiUnmined(w http.ResponseWriter, r *http.Request) {
	page, err := h.assembler.Compose(r.Context(), h.store,
		h.assembler.Dashboard,
		h.assembler.Unmined(model.DefaultLimit, unminedSort(r)),
	)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, page.BSVUSD, page.Unmined)
}

func (h *Handler) hash(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")
	if !validHashParam(hash) {
		http.NotFound(w, r)
		return
	}

	// Only a transaction id can name a stored record; anything else can still be targeted.
	if isTxID(hash) {
		hash = strings.ToLower(hash)
		detail, err := h.assembler.Record(r.Context(), h.store, hash)
		if err == nil {
			h.render(w, r, "tx.html", detail)
			return
		}
		if !errors.Is(err, model.ErrNotFound) {
			h.fail(w, r, err)
			return
		}
	}

	pending, err := h.assembler.Hash(r.Context(), h.store, hash)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, "hash.html", pending)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.fail(w, r, fmt.Errorf("render %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, rate decimal.Decimal, records []model.DisplayRecord) {
	body, err := json.Marshal(newAPIResponse(rate, records))
	if err != nil {
		h.fail(w, r, fmt.Errorf("encode response: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, oracle.ErrUpstreamUnavailable):
		code = http.StatusBadGateway
		h.logger.Warn("price unavailable", zap.String("path", r.URL.Path), zap.Error(err))
	case errors.Is(err, context.DeadlineExceeded):
		// Same status the timeout middleware answers with.
		code = http.StatusGatewayTimeout
		h.logger.Warn("request timed out", zap.String("path", r.URL.Path), zap.Error(err))
	case errors.Is(err, context.Canceled):
		code = http.StatusServiceUnavailable
		h.logger.Warn("request abandoned", zap.String("path", r.URL.Path), zap.Error(err))
	default:
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	http.Error(w, http.StatusText(code), code)
}

// observe logs every request with its client address and records route metrics.
func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		route := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}
		h.metrics.Observe(route, code, started)
		h.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("ip", clientIP(r)),
			zap.Int("status", code),
			zap.Duration("duration", time.Since(started)))
	})
}

func unminedSort(r *http.Request) model.SortOrder {
	if r.URL.Query().Get("sortby") == sortByProfitable {
		return model.SortValueDesc
	}
	return model.SortCreatedDesc
}

func isTxID(s string) bool {
	if len(s) != chainhash.MaxHashStringSize {
		return false
	}
	_, err := chainhash.NewHashFromStr(s)
	return err == nil
}

func validHashParam(s string) bool {
	if s == "" || len(s) > maxHashParamLen {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	return r.RemoteAddr
}
