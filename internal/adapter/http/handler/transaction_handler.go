package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/fintrack/internal/adapter/http/dto"
	"github.com/fintrack/fintrack/internal/adapter/http/middleware"
	"github.com/fintrack/fintrack/internal/domain"
	"github.com/fintrack/fintrack/internal/infrastructure/metrics"
	"github.com/fintrack/fintrack/internal/usecase"
)

// TransactionHandler handles ledger transaction HTTP requests.
type TransactionHandler struct {
	ledgerUC *usecase.LedgerUseCase
	importUC *usecase.ImportUseCase
	metrics  *metrics.Metrics
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledgerUC *usecase.LedgerUseCase, importUC *usecase.ImportUseCase, m *metrics.Metrics) *TransactionHandler {
	return &TransactionHandler{
		ledgerUC: ledgerUC,
		importUC: importUC,
		metrics:  m,
	}
}

// Create records a new transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx := r.Context()
	transaction, err := h.ledgerUC.CreateTransaction(ctx, req.ToUseCaseInput(middleware.WorkspaceID(ctx), middleware.ActorID(ctx)))
	if err != nil {
		h.metrics.TransactionErrors.WithLabelValues("create").Inc()
		status := mapDomainError(err)
		writeError(w, status, "failed to create transaction", err.Error())

		return
	}

	h.metrics.TransactionsCreated.Inc()
	h.metrics.TransactionAmount.Observe(transaction.Amount.InexactFloat64())

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(transaction))
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	transaction, err := h.ledgerUC.GetTransaction(r.Context(), middleware.WorkspaceID(r.Context()), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(transaction))
}

// Update patches a transaction and reconciles account balances.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	var req dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx := r.Context()
	transaction, err := h.ledgerUC.UpdateTransaction(ctx, req.ToUseCaseInput(middleware.WorkspaceID(ctx), middleware.ActorID(ctx), id))
	if err != nil {
		h.metrics.TransactionErrors.WithLabelValues("update").Inc()
		status := mapDomainError(err)
		writeError(w, status, "failed to update transaction", err.Error())

		return
	}

	h.metrics.TransactionsUpdated.Inc()

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(transaction))
}

// Delete removes a transaction and reverses its balance effect.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	ctx := r.Context()
	if err := h.ledgerUC.DeleteTransaction(ctx, middleware.WorkspaceID(ctx), middleware.ActorID(ctx), id); err != nil {
		h.metrics.TransactionErrors.WithLabelValues("delete").Inc()
		status := mapDomainError(err)
		writeError(w, status, "failed to delete transaction", err.Error())

		return
	}

	h.metrics.TransactionsDeleted.Inc()

	w.WriteHeader(http.StatusNoContent)
}

// List lists transactions filtered by date range, account, category and flow.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.TransactionFilter{
		WorkspaceID: middleware.WorkspaceID(r.Context()),
		AccountID:   r.URL.Query().Get("account_id"),
		CategoryID:  r.URL.Query().Get("category_id"),
		Flow:        domain.FlowType(r.URL.Query().Get("flow")),
		Limit:       parseIntQuery(r, "limit", 50),
		Offset:      parseIntQuery(r, "offset", 0),
	}

	if v := r.URL.Query().Get("from"); v != "" {
		from, err := time.Parse(time.DateOnly, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date", err.Error())
			return
		}
		filter.From = &from
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, err := time.Parse(time.DateOnly, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to date", err.Error())
			return
		}
		filter.To = &to
	}

	transactions, err := h.ledgerUC.ListTransactions(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(transactions))
}

// Import creates transactions in bulk from parsed statement rows, resolving
// categories through the workspace's keyword mapping rules.
func (h *TransactionHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req dto.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx := r.Context()
	result, err := h.importUC.Import(ctx, req.ToUseCaseInput(middleware.WorkspaceID(ctx), middleware.ActorID(ctx)))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to import transactions", err.Error())

		return
	}

	h.metrics.ImportRows.WithLabelValues("created").Add(float64(len(result.Created)))
	h.metrics.ImportRows.WithLabelValues("skipped").Add(float64(len(result.SkippedRows)))

	writeJSON(w, http.StatusCreated, dto.ImportResultFromUseCase(result))
}
