package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/fintrack/internal/adapter/http/dto"
	"github.com/fintrack/fintrack/internal/adapter/http/middleware"
	"github.com/fintrack/fintrack/internal/infrastructure/metrics"
	"github.com/fintrack/fintrack/internal/usecase"
)

// BudgetHandler handles budget-related HTTP requests.
type BudgetHandler struct {
	budgetUC *usecase.BudgetUseCase
	metrics  *metrics.Metrics
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetUC *usecase.BudgetUseCase, m *metrics.Metrics) *BudgetHandler {
	return &BudgetHandler{budgetUC: budgetUC, metrics: m}
}

// Create creates a new budget with its items.
func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx := r.Context()
	input, err := req.ToUseCaseInput(middleware.WorkspaceID(ctx), middleware.ActorID(ctx))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	budget, err := h.budgetUC.CreateBudget(ctx, input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create budget", err.Error())

		return
	}

	h.metrics.BudgetsCreated.Inc()

	writeJSON(w, http.StatusCreated, dto.BudgetFromDomain(budget))
}

// Get retrieves a budget by ID.
func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing budget ID", "")
		return
	}

	budget, err := h.budgetUC.GetBudget(r.Context(), middleware.WorkspaceID(r.Context()), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get budget", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}

// Update replaces a budget's fields and reconciles its item list.
func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing budget ID", "")
		return
	}

	var req dto.UpdateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx := r.Context()
	input, err := req.ToUseCaseInput(middleware.WorkspaceID(ctx), middleware.ActorID(ctx), id)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	budget, err := h.budgetUC.UpdateBudget(ctx, input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update budget", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}

// Delete removes a budget and its items.
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing budget ID", "")
		return
	}

	ctx := r.Context()
	if err := h.budgetUC.DeleteBudget(ctx, middleware.WorkspaceID(ctx), middleware.ActorID(ctx), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete budget", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists budgets of the workspace.
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	budgets, err := h.budgetUC.ListBudgets(r.Context(), middleware.WorkspaceID(r.Context()), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list budgets", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetsFromDomain(budgets))
}

// Status computes the budget's execution state from recorded transactions.
func (h *BudgetHandler) Status(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing budget ID", "")
		return
	}

	status, err := h.budgetUC.ComputeStatus(r.Context(), middleware.WorkspaceID(r.Context()), id)
	if err != nil {
		code := mapDomainError(err)
		writeError(w, code, "failed to compute budget status", err.Error())

		return
	}

	h.metrics.BudgetComputations.Inc()

	writeJSON(w, http.StatusOK, dto.BudgetStatusFromDomain(status))
}
