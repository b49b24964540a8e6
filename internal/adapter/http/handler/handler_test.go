package handler

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack/internal/adapter/http/middleware"
	"github.com/fintrack/fintrack/internal/domain"
	"github.com/fintrack/fintrack/internal/infrastructure/metrics"
	"github.com/fintrack/fintrack/internal/matcher"
	"github.com/fintrack/fintrack/internal/usecase"
	"github.com/fintrack/fintrack/internal/usecase/mocks"
)

// testEnv wires every handler against the in-memory mocks, routed the same
// way the real router mounts them.
type testEnv struct {
	router *chi.Mux

	accountRepo     *mocks.MockAccountRepository
	categoryRepo    *mocks.MockCategoryRepository
	transactionRepo *mocks.MockTransactionRepository
	budgetRepo      *mocks.MockBudgetRepository
	paymentRepo     *mocks.MockPlannedPaymentRepository
	auditRepo       *mocks.MockAuditRepository
	ruleRepo        *mocks.MockMappingRuleRepository
}

func newTestMetrics() *metrics.Metrics {
	registry := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	return metrics.New()
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		accountRepo:     mocks.NewMockAccountRepository(),
		categoryRepo:    mocks.NewMockCategoryRepository(),
		transactionRepo: mocks.NewMockTransactionRepository(),
		budgetRepo:      mocks.NewMockBudgetRepository(),
		paymentRepo:     mocks.NewMockPlannedPaymentRepository(),
		auditRepo:       mocks.NewMockAuditRepository(),
		ruleRepo:        mocks.NewMockMappingRuleRepository(),
	}

	idGen := mocks.NewMockIDGenerator()
	txManager := mocks.NewMockTransactionManager()
	retrier := mocks.NewMockRetrier()
	m := newTestMetrics()

	accountUC := usecase.NewAccountUseCase(env.accountRepo, idGen)
	categoryUC := usecase.NewCategoryUseCase(env.categoryRepo, env.transactionRepo, idGen)
	ledgerUC := usecase.NewLedgerUseCase(txManager, retrier, env.accountRepo, env.categoryRepo, env.transactionRepo, env.auditRepo, idGen)
	importUC := usecase.NewImportUseCase(ledgerUC, matcher.NewRegistry(env.ruleRepo.ListByWorkspace))
	budgetUC := usecase.NewBudgetUseCase(txManager, env.budgetRepo, env.categoryRepo, env.transactionRepo, env.auditRepo, idGen)
	calendarUC := usecase.NewCalendarUseCase(env.accountRepo, env.paymentRepo, idGen)

	accountHandler := NewAccountHandler(accountUC)
	categoryHandler := NewCategoryHandler(categoryUC)
	transactionHandler := NewTransactionHandler(ledgerUC, importUC, m)
	budgetHandler := NewBudgetHandler(budgetUC, m)
	calendarHandler := NewCalendarHandler(calendarUC, m, 366)
	auditHandler := NewAuditHandler(env.auditRepo)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Workspace)

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", accountHandler.Create)
			r.Get("/", accountHandler.List)
			r.Get("/{id}", accountHandler.Get)
			r.Delete("/{id}", accountHandler.Deactivate)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", categoryHandler.Create)
			r.Get("/", categoryHandler.List)
			r.Get("/tree", categoryHandler.AggregateTree)
			r.Get("/{id}", categoryHandler.Get)
			r.Put("/{id}", categoryHandler.Update)
			r.Delete("/{id}", categoryHandler.Delete)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", transactionHandler.Create)
			r.Get("/", transactionHandler.List)
			r.Post("/import", transactionHandler.Import)
			r.Get("/{id}", transactionHandler.Get)
			r.Patch("/{id}", transactionHandler.Update)
			r.Delete("/{id}", transactionHandler.Delete)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Post("/", budgetHandler.Create)
			r.Get("/", budgetHandler.List)
			r.Get("/{id}", budgetHandler.Get)
			r.Put("/{id}", budgetHandler.Update)
			r.Delete("/{id}", budgetHandler.Delete)
			r.Get("/{id}/status", budgetHandler.Status)
		})

		r.Route("/planned-payments", func(r chi.Router) {
			r.Post("/", calendarHandler.CreatePayment)
			r.Get("/", calendarHandler.ListPayments)
			r.Get("/{id}", calendarHandler.GetPayment)
			r.Put("/{id}", calendarHandler.UpdatePayment)
			r.Delete("/{id}", calendarHandler.DeletePayment)
		})

		r.Get("/calendar", calendarHandler.Generate)
		r.Get("/audit-logs", auditHandler.List)
	})

	env.router = r

	return env
}

// do performs a request scoped to workspace ws-1.
func (env *testEnv) do(method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(middleware.WorkspaceIDHeader, "ws-1")
	req.Header.Set(middleware.ActorIDHeader, "user-1")

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	return rec
}

func (env *testEnv) seedAccount(id string, balance int64) {
	env.accountRepo.Seed(&domain.Account{
		ID:          id,
		WorkspaceID: "ws-1",
		Name:        id,
		Currency:    "USD",
		Balance:     decimal.NewFromInt(balance),
		Active:      true,
	})
}

func (env *testEnv) seedCategory(id string, kind domain.CategoryKind) {
	env.categoryRepo.Seed(&domain.Category{
		ID:          id,
		WorkspaceID: "ws-1",
		Name:        id,
		Kind:        kind,
	})
}
