package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack/internal/domain"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	WorkspaceID    string
	Name           string
	Currency       string
	InitialBalance decimal.Decimal
}

// CreateAccount creates a new account.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))

	now := time.Now().UTC()

	account := &domain.Account{
		ID:          uc.idGen.Generate(),
		WorkspaceID: input.WorkspaceID,
		Name:        input.Name,
		Currency:    currency,
		Balance:     input.InitialBalance,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by id within a workspace.
func (uc *AccountUseCase) GetAccount(ctx context.Context, workspaceID, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, workspaceID, id)
}

// ListAccounts lists the workspace's accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, workspaceID string, limit, offset int) ([]*domain.Account, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.accountRepo.List(ctx, workspaceID, limit, offset)
}

// DeactivateAccount marks an account inactive. Refused while the account
// holds a non-zero balance or transactions still reference it.
func (uc *AccountUseCase) DeactivateAccount(ctx context.Context, workspaceID, id string) error {
	account, err := uc.accountRepo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return err
	}

	if !account.Balance.IsZero() {
		return domain.ErrAccountNotEmpty
	}

	referenced, err := uc.accountRepo.HasTransactions(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if referenced {
		return domain.ErrAccountNotEmpty
	}

	return uc.accountRepo.SetActive(ctx, workspaceID, id, false, time.Now().UTC())
}
