package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/fintrack/internal/adapter/http/dto"
	"github.com/fintrack/fintrack/internal/adapter/http/middleware"
	"github.com/fintrack/fintrack/internal/domain"
	"github.com/fintrack/fintrack/internal/infrastructure/metrics"
	"github.com/fintrack/fintrack/internal/usecase"
)

// CalendarHandler handles planned payment and forecast HTTP requests.
type CalendarHandler struct {
	calendarUC *usecase.CalendarUseCase
	metrics    *metrics.Metrics
	maxDays    int
}

// NewCalendarHandler creates a new CalendarHandler. maxDays caps the
// projection window length.
func NewCalendarHandler(calendarUC *usecase.CalendarUseCase, m *metrics.Metrics, maxDays int) *CalendarHandler {
	return &CalendarHandler{
		calendarUC: calendarUC,
		metrics:    m,
		maxDays:    maxDays,
	}
}

// CreatePayment creates a planned payment.
func (h *CalendarHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req dto.PlannedPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(middleware.WorkspaceID(r.Context()))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	payment, err := h.calendarUC.CreatePlannedPayment(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create planned payment", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.PlannedPaymentFromDomain(payment))
}

// GetPayment retrieves a planned payment by ID.
func (h *CalendarHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	payment, err := h.calendarUC.GetPlannedPayment(r.Context(), middleware.WorkspaceID(r.Context()), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get planned payment", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PlannedPaymentFromDomain(payment))
}

// UpdatePayment rewrites a planned payment.
func (h *CalendarHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	var req dto.PlannedPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(middleware.WorkspaceID(r.Context()))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	payment, err := h.calendarUC.UpdatePlannedPayment(r.Context(), id, input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update planned payment", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PlannedPaymentFromDomain(payment))
}

// DeletePayment removes a planned payment.
func (h *CalendarHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	if err := h.calendarUC.DeletePlannedPayment(r.Context(), middleware.WorkspaceID(r.Context()), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete planned payment", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListPayments lists planned payments of the workspace.
func (h *CalendarHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	payments, err := h.calendarUC.ListPlannedPayments(r.Context(), middleware.WorkspaceID(r.Context()), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list planned payments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PlannedPaymentsFromDomain(payments))
}

// Generate runs the payment calendar simulation over a date window.
func (h *CalendarHandler) Generate(w http.ResponseWriter, r *http.Request) {
	start, err := parseDateQuery(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date", err.Error())
		return
	}
	end, err := parseDateQuery(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end date", err.Error())
		return
	}

	if h.maxDays > 0 && int(end.Sub(start).Hours()/24)+1 > h.maxDays {
		writeError(w, http.StatusBadRequest, "window too large", domain.ErrInvalidRange.Error())
		return
	}

	forecast, err := h.calendarUC.Generate(r.Context(), middleware.WorkspaceID(r.Context()), start, end)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to generate calendar", err.Error())

		return
	}

	h.metrics.ForecastsGenerated.Inc()
	gapDays := 0
	for _, day := range forecast.Days {
		if day.CashGap {
			gapDays++
		}
	}
	h.metrics.ForecastCashGaps.Observe(float64(gapDays))

	writeJSON(w, http.StatusOK, dto.CalendarForecastFromDomain(forecast))
}
