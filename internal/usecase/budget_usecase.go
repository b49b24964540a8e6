package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack/internal/domain"
)

// BudgetUseCase handles budget lifecycle and status computation.
type BudgetUseCase struct {
	txManager       TransactionManager
	budgetRepo      BudgetRepository
	categoryRepo    CategoryRepository
	transactionRepo TransactionRepository
	auditRepo       AuditRepository
	idGen           IDGenerator
}

// NewBudgetUseCase creates a new BudgetUseCase.
func NewBudgetUseCase(
	txManager TransactionManager,
	budgetRepo BudgetRepository,
	categoryRepo CategoryRepository,
	transactionRepo TransactionRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *BudgetUseCase {
	return &BudgetUseCase{
		txManager:       txManager,
		budgetRepo:      budgetRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		idGen:           idGen,
	}
}

// BudgetItemInput is one category target of a budget.
type BudgetItemInput struct {
	// ID is set on update for existing items; empty for new ones.
	ID         string
	CategoryID string
	Budgeted   decimal.Decimal
}

// CreateBudgetInput represents input for creating a budget.
type CreateBudgetInput struct {
	WorkspaceID string
	ActorID     string
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	Items       []BudgetItemInput
}

// CreateBudget creates a budget with its items. A (name, workspace, period)
// duplicate is rejected before insert so the caller gets a precise conflict
// error instead of a bare constraint violation.
func (uc *BudgetUseCase) CreateBudget(ctx context.Context, input CreateBudgetInput) (*domain.Budget, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	budget := &domain.Budget{
		ID:          uc.idGen.Generate(),
		WorkspaceID: input.WorkspaceID,
		Name:        input.Name,
		StartDate:   domain.DateOnly(input.StartDate),
		EndDate:     domain.DateOnly(input.EndDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	items, err := uc.buildItems(ctx, budget, input.Items)
	if err != nil {
		return nil, err
	}
	budget.Items = items

	if err := budget.Validate(); err != nil {
		return nil, err
	}

	exists, err := uc.budgetRepo.ExistsForPeriod(ctx, input.WorkspaceID, budget.Name, budget.StartDate, budget.EndDate)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateBudgetPeriod
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.budgetRepo.Create(ctx, tx, budget); err != nil {
		return nil, err
	}

	if err := uc.writeAudit(ctx, tx, budget, input.ActorID, domain.AuditBudgetCreated, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return budget, nil
}

// UpdateBudgetInput represents input for updating a budget. Items is the
// complete desired item list; reconciliation against the stored items is
// keyed by item id.
type UpdateBudgetInput struct {
	WorkspaceID string
	ActorID     string
	ID          string
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	Items       []BudgetItemInput
}

// UpdateBudget replaces the budget's fields and reconciles its item list:
// incoming items without an id are added, items with a known id are updated,
// stored items absent from the input are removed.
func (uc *BudgetUseCase) UpdateBudget(ctx context.Context, input UpdateBudgetInput) (*domain.Budget, error) {
	existing, err := uc.budgetRepo.GetByID(ctx, input.WorkspaceID, input.ID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	next := &domain.Budget{
		ID:          existing.ID,
		WorkspaceID: existing.WorkspaceID,
		Name:        input.Name,
		StartDate:   domain.DateOnly(input.StartDate),
		EndDate:     domain.DateOnly(input.EndDate),
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   now,
	}

	items, err := uc.buildItems(ctx, next, input.Items)
	if err != nil {
		return nil, err
	}
	next.Items = items

	if err := next.Validate(); err != nil {
		return nil, err
	}

	if next.Name != existing.Name || !next.StartDate.Equal(existing.StartDate) || !next.EndDate.Equal(existing.EndDate) {
		exists, err := uc.budgetRepo.ExistsForPeriod(ctx, input.WorkspaceID, next.Name, next.StartDate, next.EndDate)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateBudgetPeriod
		}
	}

	added, updated, removedIDs := reconcileItems(existing.Items, next.Items)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.budgetRepo.UpdateMeta(ctx, tx, next); err != nil {
		return nil, err
	}

	if len(removedIDs) > 0 {
		if err := uc.budgetRepo.DeleteItems(ctx, tx, next.ID, removedIDs); err != nil {
			return nil, err
		}
	}

	if len(updated) > 0 {
		if err := uc.budgetRepo.UpdateItems(ctx, tx, updated); err != nil {
			return nil, err
		}
	}

	if len(added) > 0 {
		if err := uc.budgetRepo.InsertItems(ctx, tx, added); err != nil {
			return nil, err
		}
	}

	if err := uc.writeAudit(ctx, tx, next, input.ActorID, domain.AuditBudgetUpdated, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return next, nil
}

// DeleteBudget removes a budget and its items.
func (uc *BudgetUseCase) DeleteBudget(ctx context.Context, workspaceID, actorID, id string) error {
	if _, err := uc.budgetRepo.GetByID(ctx, workspaceID, id); err != nil {
		return err
	}

	return uc.budgetRepo.Delete(ctx, workspaceID, id)
}

// GetBudget retrieves a budget with its items.
func (uc *BudgetUseCase) GetBudget(ctx context.Context, workspaceID, id string) (*domain.Budget, error) {
	return uc.budgetRepo.GetByID(ctx, workspaceID, id)
}

// ListBudgets lists the workspace's budgets with pagination.
func (uc *BudgetUseCase) ListBudgets(ctx context.Context, workspaceID string, limit, offset int) ([]*domain.Budget, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.budgetRepo.List(ctx, workspaceID, limit, offset)
}

// ComputeStatus aggregates actual transaction flow per budgeted category over
// the budget's date range in a single grouped query and derives per-item and
// total deviations. Read-only; a budget with zero items yields all-zero
// totals.
func (uc *BudgetUseCase) ComputeStatus(ctx context.Context, workspaceID, id string) (*domain.BudgetStatus, error) {
	budget, err := uc.budgetRepo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	actuals := map[string]decimal.Decimal{}
	if categoryIDs := budget.CategoryIDs(); len(categoryIDs) > 0 {
		actuals, err = uc.transactionRepo.SumByCategory(ctx, workspaceID, categoryIDs, budget.StartDate, budget.EndDate)
		if err != nil {
			return nil, err
		}
	}

	status := domain.ComputeBudgetStatus(*budget, actuals)

	return &status, nil
}

// buildItems validates item categories and materializes domain items. The
// flow type is denormalized from each item's category.
func (uc *BudgetUseCase) buildItems(ctx context.Context, budget *domain.Budget, inputs []BudgetItemInput) ([]domain.BudgetItem, error) {
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.CategoryID)
	}

	categories, err := uc.categoryRepo.GetByIDs(ctx, budget.WorkspaceID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	items := make([]domain.BudgetItem, 0, len(inputs))
	for _, in := range inputs {
		category, ok := byID[in.CategoryID]
		if !ok {
			return nil, domain.ErrCategoryNotFound
		}
		if !category.Kind.IsLeaf() {
			return nil, domain.ErrCategoryNotLeaf
		}

		id := in.ID
		if id == "" {
			id = uc.idGen.Generate()
		}

		items = append(items, domain.BudgetItem{
			ID:         id,
			BudgetID:   budget.ID,
			CategoryID: in.CategoryID,
			Flow:       domain.FlowType(category.Kind),
			Budgeted:   in.Budgeted,
		})
	}

	return items, nil
}

func (uc *BudgetUseCase) writeAudit(ctx context.Context, tx Transaction, budget *domain.Budget, actorID string, action domain.AuditAction, at time.Time) error {
	return uc.auditRepo.Create(ctx, tx, &domain.AuditLog{
		ID:          uc.idGen.Generate(),
		WorkspaceID: budget.WorkspaceID,
		ActorID:     actorID,
		Action:      action,
		ResourceID:  budget.ID,
		Detail: map[string]any{
			"name":  budget.Name,
			"items": len(budget.Items),
		},
		CreatedAt: at,
	})
}

// reconcileItems splits the desired item list into additions, updates and
// removals relative to the stored items, keyed by item id.
func reconcileItems(stored, desired []domain.BudgetItem) (added, updated []domain.BudgetItem, removedIDs []string) {
	storedByID := make(map[string]domain.BudgetItem, len(stored))
	for _, item := range stored {
		storedByID[item.ID] = item
	}

	desiredIDs := make(map[string]bool, len(desired))
	for _, item := range desired {
		if _, ok := storedByID[item.ID]; ok {
			desiredIDs[item.ID] = true
			updated = append(updated, item)
			continue
		}
		added = append(added, item)
	}

	for _, item := range stored {
		if !desiredIDs[item.ID] {
			removedIDs = append(removedIDs, item.ID)
		}
	}

	return added, updated, removedIDs
}
