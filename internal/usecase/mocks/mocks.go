package mocks

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack/internal/domain"
	"github.com/fintrack/fintrack/internal/matcher"
	"github.com/fintrack/fintrack/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, workspaceID, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, workspaceID string, ids []string) ([]*domain.Account, error)
	ApplyBalanceDeltaFunc func(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
	SumActiveBalancesFunc func(ctx context.Context, workspaceID string) (decimal.Decimal, error)
	ListFunc              func(ctx context.Context, workspaceID string, limit, offset int) ([]*domain.Account, error)
	SetActiveFunc         func(ctx context.Context, workspaceID, id string, active bool, updatedAt time.Time) error
	HasTransactionsFunc   func(ctx context.Context, workspaceID, id string) (bool, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed inserts an account directly into the in-memory store.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

// Balance returns the current in-memory balance of an account.
func (m *MockAccountRepository) Balance(id string) decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc.Balance
	}
	return decimal.Zero
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.Seed(account)
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, workspaceID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok && acc.WorkspaceID == workspaceID {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, workspaceID string, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, workspaceID, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok && acc.WorkspaceID == workspaceID {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) ApplyBalanceDelta(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error {
	if m.ApplyBalanceDeltaFunc != nil {
		return m.ApplyBalanceDeltaFunc(ctx, tx, id, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = acc.Balance.Add(delta)
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) SumActiveBalances(ctx context.Context, workspaceID string) (decimal.Decimal, error) {
	if m.SumActiveBalancesFunc != nil {
		return m.SumActiveBalancesFunc(ctx, workspaceID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, acc := range m.accounts {
		if acc.WorkspaceID == workspaceID && acc.Active {
			sum = sum.Add(acc.Balance)
		}
	}
	return sum, nil
}

func (m *MockAccountRepository) List(ctx context.Context, workspaceID string, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, workspaceID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if acc.WorkspaceID == workspaceID {
			accounts = append(accounts, acc)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (m *MockAccountRepository) SetActive(ctx context.Context, workspaceID, id string, active bool, updatedAt time.Time) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, workspaceID, id, active, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok && acc.WorkspaceID == workspaceID {
		acc.Active = active
		acc.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrAccountNotFound
}

func (m *MockAccountRepository) HasTransactions(ctx context.Context, workspaceID, id string) (bool, error) {
	if m.HasTransactionsFunc != nil {
		return m.HasTransactionsFunc(ctx, workspaceID, id)
	}
	return false, nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category

	CreateFunc          func(ctx context.Context, category *domain.Category) error
	GetByIDFunc         func(ctx context.Context, workspaceID, id string) (*domain.Category, error)
	GetByIDsFunc        func(ctx context.Context, workspaceID string, ids []string) ([]*domain.Category, error)
	UpdateFunc          func(ctx context.Context, category *domain.Category) error
	ListByWorkspaceFunc func(ctx context.Context, workspaceID string) ([]domain.Category, error)
	HasChildrenFunc     func(ctx context.Context, workspaceID, id string) (bool, error)
	HasTransactionsFunc func(ctx context.Context, workspaceID, id string) (bool, error)
	DeleteFunc          func(ctx context.Context, workspaceID, id string) error
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[string]*domain.Category),
	}
}

func (m *MockCategoryRepository) Seed(category *domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = category
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	m.Seed(category)
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, workspaceID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.categories[id]; ok && c.WorkspaceID == workspaceID {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) GetByIDs(ctx context.Context, workspaceID string, ids []string) ([]*domain.Category, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, workspaceID, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var categories []*domain.Category
	for _, id := range ids {
		if c, ok := m.categories[id]; ok && c.WorkspaceID == workspaceID {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, category)
	}
	m.Seed(category)
	return nil
}

func (m *MockCategoryRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.Category, error) {
	if m.ListByWorkspaceFunc != nil {
		return m.ListByWorkspaceFunc(ctx, workspaceID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var categories []domain.Category
	for _, c := range m.categories {
		if c.WorkspaceID == workspaceID {
			categories = append(categories, *c)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (m *MockCategoryRepository) HasChildren(ctx context.Context, workspaceID, id string) (bool, error) {
	if m.HasChildrenFunc != nil {
		return m.HasChildrenFunc(ctx, workspaceID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.categories {
		if c.ParentID != nil && *c.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCategoryRepository) HasTransactions(ctx context.Context, workspaceID, id string) (bool, error) {
	if m.HasTransactionsFunc != nil {
		return m.HasTransactionsFunc(ctx, workspaceID, id)
	}
	return false, nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, workspaceID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, workspaceID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.categories, id)
	return nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error
	GetByIDFunc          func(ctx context.Context, workspaceID, id string) (*domain.Transaction, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, workspaceID, id string) (*domain.Transaction, error)
	UpdateFunc           func(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error
	DeleteFunc           func(ctx context.Context, tx usecase.Transaction, workspaceID, id string) error
	ListFunc             func(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error)
	SumByCategoryFunc    func(ctx context.Context, workspaceID string, categoryIDs []string, from, to time.Time) (map[string]decimal.Decimal, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *transaction
	m.transactions[transaction.ID] = &copied
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, workspaceID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok && t.WorkspaceID == workspaceID {
		copied := *t
		return &copied, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, workspaceID, id string) (*domain.Transaction, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, workspaceID, id)
	}
	return m.GetByID(ctx, workspaceID, id)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[transaction.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	copied := *transaction
	m.transactions[transaction.ID] = &copied
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, workspaceID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, workspaceID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *MockTransactionRepository) List(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transactions []*domain.Transaction
	for _, t := range m.transactions {
		if t.WorkspaceID == filter.WorkspaceID {
			copied := *t
			transactions = append(transactions, &copied)
		}
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID < transactions[j].ID })
	return transactions, nil
}

func (m *MockTransactionRepository) SumByCategory(ctx context.Context, workspaceID string, categoryIDs []string, from, to time.Time) (map[string]decimal.Decimal, error) {
	if m.SumByCategoryFunc != nil {
		return m.SumByCategoryFunc(ctx, workspaceID, categoryIDs, from, to)
	}
	wanted := make(map[string]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = true
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sums := make(map[string]decimal.Decimal)
	for _, t := range m.transactions {
		if t.WorkspaceID != workspaceID || t.CategoryID == nil || !wanted[*t.CategoryID] {
			continue
		}
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		sums[*t.CategoryID] = sums[*t.CategoryID].Add(t.Amount)
	}
	return sums, nil
}

// MockBudgetRepository is a mock implementation of BudgetRepository.
type MockBudgetRepository struct {
	mu      sync.RWMutex
	budgets map[string]*domain.Budget

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, budget *domain.Budget) error
	GetByIDFunc         func(ctx context.Context, workspaceID, id string) (*domain.Budget, error)
	ExistsForPeriodFunc func(ctx context.Context, workspaceID, name string, start, end time.Time) (bool, error)
	UpdateMetaFunc      func(ctx context.Context, tx usecase.Transaction, budget *domain.Budget) error
	InsertItemsFunc     func(ctx context.Context, tx usecase.Transaction, items []domain.BudgetItem) error
	UpdateItemsFunc     func(ctx context.Context, tx usecase.Transaction, items []domain.BudgetItem) error
	DeleteItemsFunc     func(ctx context.Context, tx usecase.Transaction, budgetID string, itemIDs []string) error
	DeleteFunc          func(ctx context.Context, workspaceID, id string) error
	ListFunc            func(ctx context.Context, workspaceID string, limit, offset int) ([]*domain.Budget, error)
}

func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		budgets: make(map[string]*domain.Budget),
	}
}

func (m *MockBudgetRepository) Seed(budget *domain.Budget) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.budgets[budget.ID] = budget
}

func (m *MockBudgetRepository) Create(ctx context.Context, tx usecase.Transaction, budget *domain.Budget) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, budget)
	}
	copied := *budget
	m.Seed(&copied)
	return nil
}

func (m *MockBudgetRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.Budget, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, workspaceID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.budgets[id]; ok && b.WorkspaceID == workspaceID {
		copied := *b
		return &copied, nil
	}
	return nil, domain.ErrBudgetNotFound
}

func (m *MockBudgetRepository) ExistsForPeriod(ctx context.Context, workspaceID, name string, start, end time.Time) (bool, error) {
	if m.ExistsForPeriodFunc != nil {
		return m.ExistsForPeriodFunc(ctx, workspaceID, name, start, end)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.budgets {
		if b.WorkspaceID == workspaceID && b.Name == name && b.StartDate.Equal(start) && b.EndDate.Equal(end) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockBudgetRepository) UpdateMeta(ctx context.Context, tx usecase.Transaction, budget *domain.Budget) error {
	if m.UpdateMetaFunc != nil {
		return m.UpdateMetaFunc(ctx, tx, budget)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.budgets[budget.ID]
	if !ok {
		return domain.ErrBudgetNotFound
	}
	stored.Name = budget.Name
	stored.StartDate = budget.StartDate
	stored.EndDate = budget.EndDate
	stored.UpdatedAt = budget.UpdatedAt
	return nil
}

func (m *MockBudgetRepository) InsertItems(ctx context.Context, tx usecase.Transaction, items []domain.BudgetItem) error {
	if m.InsertItemsFunc != nil {
		return m.InsertItemsFunc(ctx, tx, items)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		if b, ok := m.budgets[item.BudgetID]; ok {
			b.Items = append(b.Items, item)
		}
	}
	return nil
}

func (m *MockBudgetRepository) UpdateItems(ctx context.Context, tx usecase.Transaction, items []domain.BudgetItem) error {
	if m.UpdateItemsFunc != nil {
		return m.UpdateItemsFunc(ctx, tx, items)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		b, ok := m.budgets[item.BudgetID]
		if !ok {
			continue
		}
		for i := range b.Items {
			if b.Items[i].ID == item.ID {
				b.Items[i] = item
			}
		}
	}
	return nil
}

func (m *MockBudgetRepository) DeleteItems(ctx context.Context, tx usecase.Transaction, budgetID string, itemIDs []string) error {
	if m.DeleteItemsFunc != nil {
		return m.DeleteItemsFunc(ctx, tx, budgetID, itemIDs)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.budgets[budgetID]
	if !ok {
		return domain.ErrBudgetNotFound
	}
	removed := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		removed[id] = true
	}
	var kept []domain.BudgetItem
	for _, item := range b.Items {
		if !removed[item.ID] {
			kept = append(kept, item)
		}
	}
	b.Items = kept
	return nil
}

func (m *MockBudgetRepository) Delete(ctx context.Context, workspaceID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, workspaceID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.budgets, id)
	return nil
}

func (m *MockBudgetRepository) List(ctx context.Context, workspaceID string, limit, offset int) ([]*domain.Budget, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, workspaceID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var budgets []*domain.Budget
	for _, b := range m.budgets {
		if b.WorkspaceID == workspaceID {
			copied := *b
			budgets = append(budgets, &copied)
		}
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].ID < budgets[j].ID })
	return budgets, nil
}

// MockPlannedPaymentRepository is a mock implementation of PlannedPaymentRepository.
type MockPlannedPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.PlannedPayment

	CreateFunc           func(ctx context.Context, payment *domain.PlannedPayment) error
	GetByIDFunc          func(ctx context.Context, workspaceID, id string) (*domain.PlannedPayment, error)
	UpdateFunc           func(ctx context.Context, payment *domain.PlannedPayment) error
	DeleteFunc           func(ctx context.Context, workspaceID, id string) error
	ListFunc             func(ctx context.Context, workspaceID string, limit, offset int) ([]*domain.PlannedPayment, error)
	ListIntersectingFunc func(ctx context.Context, workspaceID string, start, end time.Time) ([]*domain.PlannedPayment, error)
}

func NewMockPlannedPaymentRepository() *MockPlannedPaymentRepository {
	return &MockPlannedPaymentRepository{
		payments: make(map[string]*domain.PlannedPayment),
	}
}

func (m *MockPlannedPaymentRepository) Seed(payment *domain.PlannedPayment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.ID] = payment
}

func (m *MockPlannedPaymentRepository) Create(ctx context.Context, payment *domain.PlannedPayment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, payment)
	}
	m.Seed(payment)
	return nil
}

func (m *MockPlannedPaymentRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.PlannedPayment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, workspaceID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.payments[id]; ok && p.WorkspaceID == workspaceID {
		return p, nil
	}
	return nil, domain.ErrPlannedPaymentNotFound
}

func (m *MockPlannedPaymentRepository) Update(ctx context.Context, payment *domain.PlannedPayment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, payment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payments[payment.ID]; !ok {
		return domain.ErrPlannedPaymentNotFound
	}
	m.payments[payment.ID] = payment
	return nil
}

func (m *MockPlannedPaymentRepository) Delete(ctx context.Context, workspaceID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, workspaceID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.payments, id)
	return nil
}

func (m *MockPlannedPaymentRepository) List(ctx context.Context, workspaceID string, limit, offset int) ([]*domain.PlannedPayment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, workspaceID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var payments []*domain.PlannedPayment
	for _, p := range m.payments {
		if p.WorkspaceID == workspaceID {
			payments = append(payments, p)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments, nil
}

func (m *MockPlannedPaymentRepository) ListIntersecting(ctx context.Context, workspaceID string, start, end time.Time) ([]*domain.PlannedPayment, error) {
	if m.ListIntersectingFunc != nil {
		return m.ListIntersectingFunc(ctx, workspaceID, start, end)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var payments []*domain.PlannedPayment
	for _, p := range m.payments {
		if p.WorkspaceID != workspaceID {
			continue
		}
		if p.Recurring {
			if !p.AnchorDate.After(end) {
				payments = append(payments, p)
			}
			continue
		}
		if !p.AnchorDate.Before(start) && !p.AnchorDate.After(end) {
			payments = append(payments, p)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments, nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
	ListFunc   func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AuditLog(nil), m.logs...), nil
}

// Logs returns the recorded audit logs.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AuditLog(nil), m.logs...)
}

// MockMappingRuleRepository is a mock implementation of MappingRuleRepository.
type MockMappingRuleRepository struct {
	Rules []matcher.Rule

	ListByWorkspaceFunc func(ctx context.Context, workspaceID string) ([]matcher.Rule, error)
}

func NewMockMappingRuleRepository() *MockMappingRuleRepository {
	return &MockMappingRuleRepository{}
}

func (m *MockMappingRuleRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]matcher.Rule, error) {
	if m.ListByWorkspaceFunc != nil {
		return m.ListByWorkspaceFunc(ctx, workspaceID)
	}
	return m.Rules, nil
}

// MockTransaction is a mock database transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu      sync.Mutex
	started []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{}
	m.mu.Lock()
	m.started = append(m.started, tx)
	m.mu.Unlock()
	return tx, nil
}

// Started returns all transactions handed out so far.
func (m *MockTransactionManager) Started() []*MockTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*MockTransaction(nil), m.started...)
}

// MockRetrier is a pass-through Retrier.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu      sync.Mutex
	counter int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + strconv.Itoa(m.counter)
}
