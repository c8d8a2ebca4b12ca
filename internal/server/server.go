// Package server exposes the loantrack engine over JSON HTTP. Handlers
// carry no state of their own beyond the response cache; cached payloads
// are pure functions of the request body, and wall-clock fields such as
// payoff dates are recomputed on every request.
package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gyloans/loantrack/internal/benchmark"
	"github.com/gyloans/loantrack/internal/domain"
	"github.com/gyloans/loantrack/internal/insights"
	"github.com/gyloans/loantrack/internal/metrics"
	"github.com/gyloans/loantrack/internal/store"
	"github.com/gyloans/loantrack/pkg/constants"
	"github.com/gyloans/loantrack/pkg/ledger"
	"github.com/gyloans/loantrack/pkg/mathutil"
	"github.com/gyloans/loantrack/pkg/scenario"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type handler struct {
	logger          *zap.Logger
	cache           store.Cache
	insightEngine   *insights.Engine
	maxBodyBytes    int64
	minParticipants int
	version         string
	now             func() time.Time
}

// Options configures the HTTP handler.
type Options struct {
	Cache           store.Cache
	MaxBodyBytes    int64
	MinParticipants int
	Version         string
}

// NewHandler constructs the HTTP handler that serves the engine API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	return newHandler(logger, opts).routes()
}

func newHandler(logger *zap.Logger, opts Options) *handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Cache == nil {
		opts.Cache = store.NewMemoryCache(constants.DefaultCacheTTL)
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = constants.DefaultMaxBodySizeBytes
	}
	if opts.MinParticipants < constants.MinBenchmarkParticipants {
		opts.MinParticipants = constants.MinBenchmarkParticipants
	}

	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}

	return &handler{
		logger:          logger,
		cache:           opts.Cache,
		insightEngine:   insights.NewEngine(logger),
		maxBodyBytes:    opts.MaxBodyBytes,
		minParticipants: opts.MinParticipants,
		version:         version,
		now:             time.Now,
	}
}

func (h *handler) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/scenarios/compare", h.instrument("compare", h.handleCompare))
	mux.HandleFunc("/api/payments/split", h.instrument("split", h.handlePaymentSplit))
	mux.HandleFunc("/api/insights", h.instrument("insights", h.handleInsights))
	mux.HandleFunc("/api/benchmark", h.instrument("benchmark", h.handleBenchmark))
	mux.HandleFunc("/api/version", h.handleVersion)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// statusRecorder captures the response code for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *handler) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(recorder, r)
		metrics.EngineRequests.WithLabelValues(endpoint, fmt.Sprintf("%d", recorder.status)).Inc()
		metrics.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, errorResponse{Error: message})
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.respondJSON"),
			zap.Error(err),
		)
	}
}

// decodeBody reads and unmarshals a POST body, enforcing the size limit.
// The raw bytes are returned so handlers can digest them for cache keys.
func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) ([]byte, bool) {
	if r.Method != http.MethodPost {
		h.respondError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
		return nil, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodyBytes))
			return nil, false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err))
		return nil, false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return nil, false
	}
	return body, true
}

// digest keys the response cache by endpoint and canonical request bytes.
func digest(endpoint string, body []byte) string {
	sum := sha256.Sum256(body)
	return endpoint + ":" + hex.EncodeToString(sum[:])
}

// validateLoanState applies the boundary validation the engine assumes:
// non-negative balance, fractional rate in [0,1], positive payment.
func validateLoanState(loan ledger.LoanState) error {
	if loan.CurrentBalance < 0 {
		return errors.New("currentBalance must not be negative")
	}
	if loan.AnnualInterestRate < 0 || loan.AnnualInterestRate > 1 {
		return errors.New("annualInterestRate must be a fraction between 0 and 1")
	}
	if !mathutil.IsPositive(loan.MonthlyPayment) {
		return errors.New("monthlyPayment must be positive")
	}
	return nil
}

type compareRequest struct {
	Loan      ledger.LoanState      `json:"loan"`
	Scenarios []scenario.Definition `json:"scenarios"`
}

// comparisonPayload is the cacheable part of a compare response. Projection
// and duration depend on the wall clock, so they stay out of the cache.
type comparisonPayload struct {
	Baseline scenario.Result   `json:"baseline"`
	Results  []scenario.Result `json:"results"`
	Best     *scenario.Result  `json:"best,omitempty"`
}

type compareResponse struct {
	comparisonPayload
	Projection scenario.Projection `json:"projection"`
	Duration   string              `json:"duration"`
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req compareRequest
	body, ok := h.decodeBody(w, r, &req)
	if !ok {
		return
	}

	if err := validateLoanState(req.Loan); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, def := range req.Scenarios {
		if def.ExtraAmount < 0 {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("scenario %q: extraAmount must not be negative", def.Name))
			return
		}
		if def.FrequencyMonths < 0 {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("scenario %q: frequencyMonths must not be negative", def.Name))
			return
		}
	}

	var resp compareResponse
	key := digest("compare", body)
	if cached, ok := h.lookupCached(r.Context(), key); ok {
		if err := json.Unmarshal(cached, &resp.comparisonPayload); err != nil {
			h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to decode cached comparison: %v", err))
			return
		}
	} else {
		defs := req.Scenarios
		if len(defs) == 0 {
			defs = scenario.Presets()
		}

		comparison := scenario.Compare(req.Loan, defs)
		metrics.RecordSimulation(comparison.Baseline.NonAmortizing)
		for _, result := range comparison.Results {
			metrics.RecordSimulation(result.NonAmortizing)
		}

		resp.comparisonPayload = comparisonPayload{
			Baseline: comparison.Baseline,
			Results:  comparison.Results,
		}
		if best, ok := scenario.Best(comparison); ok {
			resp.Best = &best
		}

		if _, err := h.storeCached(r.Context(), key, resp.comparisonPayload); err != nil {
			h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode response: %v", err))
			return
		}
	}

	resp.Projection = scenario.ProjectPayoff(req.Loan, h.now())
	resp.Duration = time.Since(start).String()
	h.respondJSON(w, http.StatusOK, resp)
}

type splitRequest struct {
	Loan        ledger.LoanState `json:"loan"`
	Amount      float64          `json:"amount"`
	PaymentDate string           `json:"paymentDate"`
}

type splitResponse struct {
	InterestPortion  float64 `json:"interestPortion"`
	PrincipalPortion float64 `json:"principalPortion"`
	NewBalance       float64 `json:"newBalance"`
	LoanNowPaidOff   bool    `json:"loanNowPaidOff"`
	PayoffDate       string  `json:"payoffDate,omitempty"`
}

func (h *handler) handlePaymentSplit(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if _, ok := h.decodeBody(w, r, &req); !ok {
		return
	}

	if err := validateLoanState(req.Loan); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Amount <= 0 {
		h.respondError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	split := ledger.ApplyPayment(req.Loan, req.Amount)

	resp := splitResponse{
		InterestPortion:  split.InterestPortion,
		PrincipalPortion: split.PrincipalPortion,
		NewBalance:       split.NewBalance,
		LoanNowPaidOff:   split.PaidOff,
	}
	if split.PaidOff {
		resp.PayoffDate = req.PaymentDate
		if resp.PayoffDate == "" {
			resp.PayoffDate = h.now().Format(constants.DateLayout)
		}
	}

	h.respondJSON(w, http.StatusOK, resp)
}

type insightsRequest struct {
	Loans    []domain.Loan    `json:"loans"`
	Payments []domain.Payment `json:"payments"`
	Profile  domain.Profile   `json:"profile"`
}

type insightsResponse struct {
	Insights []insights.Insight `json:"insights"`
}

func (h *handler) handleInsights(w http.ResponseWriter, r *http.Request) {
	var req insightsRequest
	if _, ok := h.decodeBody(w, r, &req); !ok {
		return
	}

	results := h.insightEngine.Evaluate(req.Loans, req.Payments, req.Profile)
	h.respondJSON(w, http.StatusOK, insightsResponse{Insights: results})
}

type benchmarkRequest struct {
	Scores      []float64        `json:"scores"`
	CallerScore float64          `json:"callerScore"`
	Payments    []domain.Payment `json:"payments,omitempty"`
}

type benchmarkResponse struct {
	benchmark.Percentiles
	ExtraPayments  benchmark.ExtraPaymentStats `json:"extraPayments"`
	PaymentSources []benchmark.SourceStats     `json:"paymentSources,omitempty"`
	Message        string                      `json:"message,omitempty"`
}

func (h *handler) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	var req benchmarkRequest
	body, ok := h.decodeBody(w, r, &req)
	if !ok {
		return
	}

	key := digest("benchmark", body)
	if cached, ok := h.lookupCached(r.Context(), key); ok {
		h.writeEncoded(w, cached)
		return
	}

	resp := benchmarkResponse{
		ExtraPayments:  benchmark.SummarizeExtraPayments(req.Payments),
		PaymentSources: benchmark.SummarizeBySource(req.Payments),
	}

	if len(req.Scores) < h.minParticipants {
		resp.Percentiles = benchmark.Percentiles{
			ParticipantCount: len(req.Scores),
			Insufficient:     true,
		}
		resp.Message = "Not enough participants yet for meaningful benchmarks"
	} else {
		resp.Percentiles = benchmark.ComputePercentiles(req.Scores, req.CallerScore)
	}

	encoded, err := h.storeCached(r.Context(), key, resp)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode response: %v", err))
		return
	}
	h.writeEncoded(w, encoded)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respondError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

// lookupCached returns the cached payload for key, if present.
func (h *handler) lookupCached(ctx context.Context, key string) ([]byte, bool) {
	cached, ok := h.cache.Get(ctx, key)
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return []byte(cached), true
}

// storeCached marshals payload and stores it for future identical requests,
// returning the encoded bytes. Cache failures are logged, never surfaced.
func (h *handler) storeCached(ctx context.Context, key string, payload interface{}) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if err := h.cache.Set(ctx, key, string(encoded)); err != nil {
		h.logger.Warn("failed to store cached response",
			zap.String("op", "server.storeCached"),
			zap.Error(err),
		)
	}
	return encoded, nil
}

func (h *handler) writeEncoded(w http.ResponseWriter, encoded []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(encoded); err != nil {
		h.logger.Warn("failed to write response",
			zap.String("op", "server.writeEncoded"),
			zap.Error(err),
		)
	}
}
