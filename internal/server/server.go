package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/cache"
	"github.com/iwvelando/mortgage-calculator/internal/calculator"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/datetime"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Options configures the handler returned by NewHandler.
type Options struct {
	Calculator  *calculator.Calculator
	Cache       cache.Cache
	MaxBodySize int64
	Version     string
}

type handler struct {
	logger      *zap.Logger
	calc        *calculator.Calculator
	cache       cache.Cache
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the mortgage API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	calc := opts.Calculator
	if calc == nil {
		calc = calculator.New(logger, mortgage.DefaultGate())
	}
	store := opts.Cache
	if store == nil {
		store = cache.Nop{}
	}

	h := &handler{
		logger:      logger,
		calc:        calc,
		cache:       store,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/payment", h.handlePayment)
	mux.HandleFunc("/api/schedule", h.handleSchedule)
	mux.HandleFunc("/api/compare", h.handleCompare)
	mux.HandleFunc("/api/format", h.handleFormat)
	mux.HandleFunc("/api/version", h.handleVersion)

	return h.withRequestID(mux)
}

type paymentResponse struct {
	Name            string                    `json:"name,omitempty"`
	Principal       float64                   `json:"principal"`
	PaymentsPerYear int                       `json:"paymentsPerYear"`
	TermYears       float64                   `json:"termYears"`
	StartDate       string                    `json:"startDate"`
	Breakdown       mortgage.PaymentBreakdown `json:"breakdown"`
}

type scheduleRow struct {
	Period              int     `json:"period"`
	Date                string  `json:"date"`
	Payment             float64 `json:"payment"`
	Principal           float64 `json:"principal"`
	Interest            float64 `json:"interest"`
	Balance             float64 `json:"balance"`
	CumulativePrincipal float64 `json:"cumulativePrincipal"`
	CumulativeInterest  float64 `json:"cumulativeInterest"`
}

type scheduleResponse struct {
	paymentResponse
	TotalInterest float64       `json:"totalInterest"`
	PayoffDate    string        `json:"payoffDate"`
	Rows          []scheduleRow `json:"rows"`
	CSV           string        `json:"csv"`
	Cached        bool          `json:"cached"`
	Duration      string        `json:"duration"`
}

type compareRequest struct {
	Scenarios       []calculator.Request `json:"scenarios"`
	IncludeSchedule bool                 `json:"includeSchedule,omitempty"`
}

type compareResult struct {
	paymentResponse
	TotalInterest *float64 `json:"totalInterest,omitempty"`
	PayoffDate    string   `json:"payoffDate,omitempty"`
}

type compareResponse struct {
	Results  []compareResult `json:"results"`
	Duration string          `json:"duration"`
}

type formatRequest struct {
	Value string `json:"value"`
}

type formatResponse struct {
	Formatted string `json:"formatted"`
	Amount    int64  `json:"amount"`
}

func (h *handler) handlePayment(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePayment"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req calculator.Request
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	result, err := h.calc.Payment(req)
	if err != nil {
		h.respondCalculationError(w, r, err, op)
		return
	}
	if !result.Breakdown.Finite() {
		h.respondError(w, r, http.StatusUnprocessableEntity, "payment is not a finite amount", op)
		return
	}

	h.writeJSON(w, http.StatusOK, newPaymentResponse(result))
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var req calculator.Request
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	params, firstPayment, err := h.calc.Parameters(req)
	if err != nil {
		h.respondCalculationError(w, r, err, op)
		return
	}
	key := scheduleKey(params, firstPayment)

	result, cached := h.cachedSchedule(r.Context(), key)
	if !cached {
		result, err = h.calc.Schedule(req)
		if err != nil {
			h.respondCalculationError(w, r, err, op)
			return
		}
		if !result.Breakdown.Finite() {
			h.respondError(w, r, http.StatusUnprocessableEntity, "payment is not a finite amount", op)
			return
		}
		h.storeSchedule(r.Context(), key, result)
	}

	// Cached results are stored without the requester's identity.
	result.Name = req.Name
	result.Request = req

	resp, err := newScheduleResponse(result)
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to render schedule: %v", err), op)
		return
	}
	resp.Cached = cached
	resp.Duration = time.Since(start).String()

	h.logger.Info("schedule generated",
		zap.String("op", op),
		zap.String("requestID", requestID(r.Context())),
		zap.Int("rows", len(resp.Rows)),
		zap.Bool("cached", cached),
		zap.String("duration", resp.Duration),
	)
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) storeSchedule(ctx context.Context, key string, result calculator.Result) {
	result.Name = ""
	result.Request = calculator.Request{}

	data, err := json.Marshal(result)
	if err == nil {
		err = h.cache.Set(ctx, key, data)
	}
	if err != nil {
		h.logger.Warn("failed to cache schedule",
			zap.String("op", "server.storeSchedule"),
			zap.String("requestID", requestID(ctx)),
			zap.Error(err),
		)
	}
}

func (h *handler) cachedSchedule(ctx context.Context, key string) (calculator.Result, bool) {
	data, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.Warn("schedule cache lookup failed",
			zap.String("op", "server.cachedSchedule"),
			zap.String("requestID", requestID(ctx)),
			zap.Error(err),
		)
		return calculator.Result{}, false
	}
	if !ok {
		return calculator.Result{}, false
	}

	var result calculator.Result
	if err := json.Unmarshal(data, &result); err != nil {
		h.logger.Warn("discarding unreadable cached schedule",
			zap.String("op", "server.cachedSchedule"),
			zap.String("key", key),
			zap.Error(err),
		)
		return calculator.Result{}, false
	}
	return result, true
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompare"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var req compareRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	if len(req.Scenarios) == 0 {
		h.respondError(w, r, http.StatusBadRequest, "at least one scenario is required", op)
		return
	}
	if len(req.Scenarios) > constants.MaxCompareScenarios {
		h.respondError(w, r, http.StatusBadRequest,
			fmt.Sprintf("at most %d scenarios may be compared", constants.MaxCompareScenarios), op)
		return
	}

	results, err := h.calc.CalculateAll(r.Context(), req.Scenarios, req.IncludeSchedule, constants.DefaultCompareConcurrency)
	if err != nil {
		h.respondCalculationError(w, r, err, op)
		return
	}

	resp := compareResponse{Results: make([]compareResult, 0, len(results))}
	for _, result := range results {
		if !result.Breakdown.Finite() {
			h.respondError(w, r, http.StatusUnprocessableEntity,
				fmt.Sprintf("scenario %q: payment is not a finite amount", result.Name), op)
			return
		}
		item := compareResult{paymentResponse: newPaymentResponse(result)}
		if last, ok := result.Schedule.Last(); ok {
			total := last.CumulativeInterest
			item.TotalInterest = &total
			item.PayoffDate = datetime.FormatDate(last.PaymentDate)
		}
		resp.Results = append(resp.Results, item)
	}
	resp.Duration = time.Since(start).String()

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleFormat(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleFormat"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req formatRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	h.writeJSON(w, http.StatusOK, formatResponse{
		Formatted: format.FormatGrouped(req.Value),
		Amount:    format.ParseGrouped(req.Value),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondCalculationError(w http.ResponseWriter, r *http.Request, err error, op string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, mortgage.ErrGateRejected), errors.Is(err, calculator.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	h.respondError(w, r, status, err.Error(), op)
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("requestID", requestID(r.Context())),
		zap.Int("status", status),
		zap.String("error", msg),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("mortgage request failed", fields...)
	} else {
		h.logger.Warn("mortgage request rejected", fields...)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func newPaymentResponse(result calculator.Result) paymentResponse {
	return paymentResponse{
		Name:            result.Name,
		Principal:       result.Parameters.Principal,
		PaymentsPerYear: result.Parameters.Frequency(),
		TermYears:       result.Parameters.TermYears,
		StartDate:       datetime.FormatDate(result.StartDate),
		Breakdown:       result.Breakdown,
	}
}

func newScheduleResponse(result calculator.Result) (scheduleResponse, error) {
	resp := scheduleResponse{
		paymentResponse: newPaymentResponse(result),
		TotalInterest:   result.TotalInterest(),
		Rows:            make([]scheduleRow, 0, len(result.Schedule)),
	}
	for n, entry := range result.Schedule {
		resp.Rows = append(resp.Rows, scheduleRow{
			Period:              n + 1,
			Date:                datetime.FormatDate(entry.PaymentDate),
			Payment:             entry.PaymentAmount,
			Principal:           entry.PrincipalPortion,
			Interest:            entry.InterestPortion,
			Balance:             entry.RemainingBalance,
			CumulativePrincipal: entry.CumulativePrincipal,
			CumulativeInterest:  entry.CumulativeInterest,
		})
	}
	if last, ok := result.Schedule.Last(); ok {
		resp.PayoffDate = datetime.FormatDate(last.PaymentDate)
	}

	var buf bytes.Buffer
	if err := output.CsvFormat(&buf, []calculator.Result{result}, true); err != nil {
		return scheduleResponse{}, err
	}
	resp.CSV = buf.String()
	return resp, nil
}

// scheduleKey identifies a schedule by the normalized engine input, so
// "300,000" and 300000 share an entry.
func scheduleKey(p mortgage.LoanParameters, firstPayment time.Time) string {
	return fmt.Sprintf("schedule:%v:%v:%v:%d:%v:%v:%t:%s",
		p.Principal, p.AnnualRatePercent, p.TermYears, p.Frequency(),
		p.MonthlyPropertyTax, p.MonthlyInsurance, p.SimpleMode,
		datetime.FormatDate(firstPayment))
}
