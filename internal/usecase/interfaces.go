package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack/internal/domain"
	"github.com/fintrack/fintrack/internal/matcher"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.Account, error)
	// GetByIDsForUpdate locks the rows for the enclosing transaction.
	// Callers pass ids sorted to keep lock order deterministic.
	GetByIDsForUpdate(ctx context.Context, tx Transaction, workspaceID string, ids []string) ([]*domain.Account, error)
	// ApplyBalanceDelta issues an atomic balance increment scoped to tx,
	// never a read-then-write of the full value.
	ApplyBalanceDelta(ctx context.Context, tx Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
	SumActiveBalances(ctx context.Context, workspaceID string) (decimal.Decimal, error)
	List(ctx context.Context, workspaceID string, limit, offset int) ([]*domain.Account, error)
	SetActive(ctx context.Context, workspaceID, id string, active bool, updatedAt time.Time) error
	HasTransactions(ctx context.Context, workspaceID, id string) (bool, error)
}

// CategoryRepository defines data access for the category tree.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.Category, error)
	GetByIDs(ctx context.Context, workspaceID string, ids []string) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.Category, error)
	HasChildren(ctx context.Context, workspaceID, id string) (bool, error)
	HasTransactions(ctx context.Context, workspaceID, id string) (bool, error)
	Delete(ctx context.Context, workspaceID, id string) error
}

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	WorkspaceID string
	From        *time.Time
	To          *time.Time
	AccountID   string
	CategoryID  string
	Flow        domain.FlowType
	Limit       int
	Offset      int
}

// TransactionRepository defines data access for ledger transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, transaction *domain.Transaction) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, workspaceID, id string) (*domain.Transaction, error)
	Update(ctx context.Context, tx Transaction, transaction *domain.Transaction) error
	Delete(ctx context.Context, tx Transaction, workspaceID, id string) error
	List(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error)
	// SumByCategory is a single grouped aggregation over the date range,
	// restricted to the given category ids.
	SumByCategory(ctx context.Context, workspaceID string, categoryIDs []string, from, to time.Time) (map[string]decimal.Decimal, error)
}

// BudgetRepository defines data access for budgets and their items.
type BudgetRepository interface {
	Create(ctx context.Context, tx Transaction, budget *domain.Budget) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.Budget, error)
	ExistsForPeriod(ctx context.Context, workspaceID, name string, start, end time.Time) (bool, error)
	UpdateMeta(ctx context.Context, tx Transaction, budget *domain.Budget) error
	InsertItems(ctx context.Context, tx Transaction, items []domain.BudgetItem) error
	UpdateItems(ctx context.Context, tx Transaction, items []domain.BudgetItem) error
	DeleteItems(ctx context.Context, tx Transaction, budgetID string, itemIDs []string) error
	Delete(ctx context.Context, workspaceID, id string) error
	List(ctx context.Context, workspaceID string, limit, offset int) ([]*domain.Budget, error)
}

// PlannedPaymentRepository defines data access for planned payments.
type PlannedPaymentRepository interface {
	Create(ctx context.Context, payment *domain.PlannedPayment) error
	GetByID(ctx context.Context, workspaceID, id string) (*domain.PlannedPayment, error)
	Update(ctx context.Context, payment *domain.PlannedPayment) error
	Delete(ctx context.Context, workspaceID, id string) error
	List(ctx context.Context, workspaceID string, limit, offset int) ([]*domain.PlannedPayment, error)
	// ListIntersecting returns payments whose relevance window intersects
	// [start, end]: non-recurring ones anchored inside the window plus
	// recurring ones anchored at or before end.
	ListIntersecting(ctx context.Context, workspaceID string, start, end time.Time) ([]*domain.PlannedPayment, error)
}

// MappingRuleRepository defines data access for keyword mapping rules.
type MappingRuleRepository interface {
	ListByWorkspace(ctx context.Context, workspaceID string) ([]matcher.Rule, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient store failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
