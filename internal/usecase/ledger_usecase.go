package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack/internal/domain"
)

// LedgerUseCase owns transaction mutations and guarantees that account
// balances reflect exactly the net effect of all non-deleted transactions.
// Every mutating operation runs as one atomic unit: validate, snapshot the
// old state, reverse its effect, apply the new effect, persist, commit, with
// unconditional rollback on any failure.
type LedgerUseCase struct {
	txManager       TransactionManager
	retrier         Retrier
	accountRepo     AccountRepository
	categoryRepo    CategoryRepository
	transactionRepo TransactionRepository
	auditRepo       AuditRepository
	idGen           IDGenerator
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	retrier Retrier,
	accountRepo AccountRepository,
	categoryRepo CategoryRepository,
	transactionRepo TransactionRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:       txManager,
		retrier:         retrier,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		idGen:           idGen,
	}
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	WorkspaceID   string
	ActorID       string
	Amount        decimal.Decimal
	Date          time.Time
	Flow          domain.FlowType
	SourceID      *string
	DestinationID *string
	CategoryID    *string
	Comment       string
}

// CreateTransaction validates, persists and applies the balance effect of a
// new transaction in one atomic unit.
func (uc *LedgerUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	now := time.Now().UTC()

	transaction := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		WorkspaceID:   input.WorkspaceID,
		ActorID:       input.ActorID,
		Amount:        input.Amount,
		Date:          domain.DateOnly(input.Date),
		Flow:          input.Flow,
		SourceID:      input.SourceID,
		DestinationID: input.DestinationID,
		CategoryID:    input.CategoryID,
		Comment:       input.Comment,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Fail fast: shape and reference checks happen before any mutation.
	if err := domain.ValidateAmount(transaction.Amount); err != nil {
		return nil, err
	}

	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	if err := uc.validateCategoryRef(ctx, input.WorkspaceID, transaction.CategoryID); err != nil {
		return nil, err
	}

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		accounts, err := uc.lockAccounts(ctx, tx, input.WorkspaceID, transaction.AccountIDs())
		if err != nil {
			return err
		}

		for _, account := range accounts {
			if !account.Active {
				return domain.ErrAccountInactive
			}
		}

		if err := uc.transactionRepo.Create(ctx, tx, transaction); err != nil {
			return err
		}

		if err := uc.applyDeltas(ctx, tx, transaction.BalanceEffects(), now); err != nil {
			return err
		}

		if err := uc.writeAudit(ctx, tx, transaction, domain.AuditTransactionCreated, now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// UpdateTransactionInput is a partial field replace. Nil pointers keep the
// existing value; for the reference fields an empty string clears the
// reference.
type UpdateTransactionInput struct {
	WorkspaceID   string
	ActorID       string
	ID            string
	Amount        *decimal.Decimal
	Date          *time.Time
	Flow          *domain.FlowType
	SourceID      *string
	DestinationID *string
	CategoryID    *string
	Comment       *string
}

// UpdateTransaction performs a two-phase balance reconciliation: the inverse
// of the existing transaction's effect is applied from a snapshot captured
// before any field changes, then the new effect is applied from the patched
// fields. An account referenced by both states nets its deltas because delta
// application is commutative.
func (uc *LedgerUseCase) UpdateTransaction(ctx context.Context, input UpdateTransactionInput) (*domain.Transaction, error) {
	var updated *domain.Transaction

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		// Snapshot the old row before mutating anything; phase 1 needs
		// its pre-update account ids, amount and flow type.
		old, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, input.WorkspaceID, input.ID)
		if err != nil {
			return err
		}

		next := patchTransaction(*old, input)
		next.UpdatedAt = time.Now().UTC()

		if err := domain.ValidateAmount(next.Amount); err != nil {
			return err
		}

		if err := next.Validate(); err != nil {
			return err
		}

		if !sameCategoryRef(old.CategoryID, next.CategoryID) {
			if err := uc.validateCategoryRef(ctx, input.WorkspaceID, next.CategoryID); err != nil {
				return err
			}
		}

		accountIDs := unionAccountIDs(old, &next)
		accounts, err := uc.lockAccounts(ctx, tx, input.WorkspaceID, accountIDs)
		if err != nil {
			return err
		}

		// The patched state must only reference active accounts. Accounts
		// used solely by the old state still receive their inverse effect,
		// deactivated or not.
		nextRefs := make(map[string]bool)
		for _, id := range next.AccountIDs() {
			nextRefs[id] = true
		}
		for _, account := range accounts {
			if nextRefs[account.ID] && !account.Active {
				return domain.ErrAccountInactive
			}
		}

		deltas := domain.MergeDeltas(append(old.InverseEffects(), next.BalanceEffects()...)...)
		if err := uc.applyDeltas(ctx, tx, deltas, next.UpdatedAt); err != nil {
			return err
		}

		if err := uc.transactionRepo.Update(ctx, tx, &next); err != nil {
			return err
		}

		if err := uc.writeAudit(ctx, tx, &next, domain.AuditTransactionUpdated, next.UpdatedAt); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		updated = &next

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteTransaction reverses the transaction's balance effect and removes the
// row in one atomic unit. Deleting an already-deleted id fails with
// ErrTransactionNotFound and changes no balance.
func (uc *LedgerUseCase) DeleteTransaction(ctx context.Context, workspaceID, actorID, id string) error {
	return uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		existing, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, workspaceID, id)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		if _, err := uc.lockAccounts(ctx, tx, workspaceID, existing.AccountIDs()); err != nil {
			return err
		}

		if err := uc.applyDeltas(ctx, tx, existing.InverseEffects(), now); err != nil {
			return err
		}

		if err := uc.transactionRepo.Delete(ctx, tx, workspaceID, id); err != nil {
			return err
		}

		existing.ActorID = actorID

		return uc.writeAuditThenCommit(ctx, tx, existing, domain.AuditTransactionDeleted, now)
	})
}

// GetTransaction retrieves a transaction by id within a workspace.
func (uc *LedgerUseCase) GetTransaction(ctx context.Context, workspaceID, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, workspaceID, id)
}

// ListTransactions lists transactions matching the filter.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	return uc.transactionRepo.List(ctx, filter)
}

func (uc *LedgerUseCase) lockAccounts(ctx context.Context, tx Transaction, workspaceID string, ids []string) ([]*domain.Account, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, workspaceID, sorted)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(sorted) {
		return nil, domain.ErrAccountNotFound
	}

	return accounts, nil
}

func (uc *LedgerUseCase) applyDeltas(ctx context.Context, tx Transaction, deltas []domain.BalanceDelta, at time.Time) error {
	for _, delta := range domain.MergeDeltas(deltas...) {
		if delta.Amount.IsZero() {
			continue
		}
		if err := uc.accountRepo.ApplyBalanceDelta(ctx, tx, delta.AccountID, delta.Amount, at); err != nil {
			return err
		}
	}

	return nil
}

func (uc *LedgerUseCase) validateCategoryRef(ctx context.Context, workspaceID string, categoryID *string) error {
	if categoryID == nil {
		return nil
	}

	category, err := uc.categoryRepo.GetByID(ctx, workspaceID, *categoryID)
	if err != nil {
		return err
	}

	if !category.Kind.IsLeaf() {
		return domain.ErrCategoryNotLeaf
	}

	return nil
}

func (uc *LedgerUseCase) writeAudit(ctx context.Context, tx Transaction, transaction *domain.Transaction, action domain.AuditAction, at time.Time) error {
	return uc.auditRepo.Create(ctx, tx, &domain.AuditLog{
		ID:          uc.idGen.Generate(),
		WorkspaceID: transaction.WorkspaceID,
		ActorID:     transaction.ActorID,
		Action:      action,
		ResourceID:  transaction.ID,
		Detail: map[string]any{
			"amount": transaction.Amount.String(),
			"flow":   string(transaction.Flow),
		},
		CreatedAt: at,
	})
}

func (uc *LedgerUseCase) writeAuditThenCommit(ctx context.Context, tx Transaction, transaction *domain.Transaction, action domain.AuditAction, at time.Time) error {
	if err := uc.writeAudit(ctx, tx, transaction, action, at); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func patchTransaction(old domain.Transaction, input UpdateTransactionInput) domain.Transaction {
	next := old

	if input.Amount != nil {
		next.Amount = *input.Amount
	}
	if input.Date != nil {
		next.Date = domain.DateOnly(*input.Date)
	}
	if input.Flow != nil {
		next.Flow = *input.Flow
	}
	if input.SourceID != nil {
		next.SourceID = normalizeRef(*input.SourceID)
	}
	if input.DestinationID != nil {
		next.DestinationID = normalizeRef(*input.DestinationID)
	}
	if input.CategoryID != nil {
		next.CategoryID = normalizeRef(*input.CategoryID)
	}
	if input.Comment != nil {
		next.Comment = *input.Comment
	}
	if input.ActorID != "" {
		next.ActorID = input.ActorID
	}

	return next
}

func normalizeRef(id string) *string {
	if id == "" {
		return nil
	}

	return &id
}

func sameCategoryRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}

func unionAccountIDs(old, next *domain.Transaction) []string {
	seen := make(map[string]bool)

	var ids []string
	for _, id := range append(old.AccountIDs(), next.AccountIDs()...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	return ids
}
