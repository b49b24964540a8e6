package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fintrack/fintrack/internal/adapter/http/handler"
	apimiddleware "github.com/fintrack/fintrack/internal/adapter/http/middleware"
	"github.com/fintrack/fintrack/internal/infrastructure/metrics"
	"github.com/fintrack/fintrack/internal/matcher"
	"github.com/fintrack/fintrack/internal/usecase"
	"github.com/fintrack/fintrack/internal/usecase/mocks"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"name":"Main","currency":"USD"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.WorkspaceIDHeader, "ws-1")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/{id}",
		"PUT /api/v1/categories/{id}",
		"POST /api/v1/transactions/",
		"POST /api/v1/transactions/import",
		"PATCH /api/v1/transactions/{id}",
		"GET /api/v1/budgets/{id}/status",
		"POST /api/v1/planned-payments/",
		"GET /api/v1/calendar",
		"GET /api/v1/audit-logs",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	registry := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = registry
	m := metrics.New()

	idGen := mocks.NewMockIDGenerator()
	txManager := mocks.NewMockTransactionManager()
	retrier := mocks.NewMockRetrier()
	accountRepo := mocks.NewMockAccountRepository()
	categoryRepo := mocks.NewMockCategoryRepository()
	transactionRepo := mocks.NewMockTransactionRepository()
	budgetRepo := mocks.NewMockBudgetRepository()
	paymentRepo := mocks.NewMockPlannedPaymentRepository()
	auditRepo := mocks.NewMockAuditRepository()
	ruleRepo := mocks.NewMockMappingRuleRepository()

	ledgerUC := usecase.NewLedgerUseCase(txManager, retrier, accountRepo, categoryRepo, transactionRepo, auditRepo, idGen)
	importUC := usecase.NewImportUseCase(ledgerUC, matcher.NewRegistry(ruleRepo.ListByWorkspace))

	cfg := RouterConfig{
		AccountHandler:     handler.NewAccountHandler(usecase.NewAccountUseCase(accountRepo, idGen)),
		CategoryHandler:    handler.NewCategoryHandler(usecase.NewCategoryUseCase(categoryRepo, transactionRepo, idGen)),
		TransactionHandler: handler.NewTransactionHandler(ledgerUC, importUC, m),
		BudgetHandler:      handler.NewBudgetHandler(usecase.NewBudgetUseCase(txManager, budgetRepo, categoryRepo, transactionRepo, auditRepo, idGen), m),
		CalendarHandler:    handler.NewCalendarHandler(usecase.NewCalendarUseCase(accountRepo, paymentRepo, idGen), m, 366),
		AuditHandler:       handler.NewAuditHandler(auditRepo),
		HealthHandler:      &handler.HealthHandler{},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
