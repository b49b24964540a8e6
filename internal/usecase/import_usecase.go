package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack/internal/domain"
	"github.com/fintrack/fintrack/internal/matcher"
)

// ImportUseCase turns pre-parsed statement rows into ledger transactions,
// resolving categories through the keyword matcher. Statement parsing itself
// happens upstream; this use case only receives rows.
type ImportUseCase struct {
	ledger   *LedgerUseCase
	matchers *matcher.Registry
}

// NewImportUseCase creates a new ImportUseCase.
func NewImportUseCase(ledger *LedgerUseCase, matchers *matcher.Registry) *ImportUseCase {
	return &ImportUseCase{
		ledger:   ledger,
		matchers: matchers,
	}
}

// ImportRow is one statement line to import.
type ImportRow struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Flow        domain.FlowType
	AccountID   string
}

// ImportInput represents input for a bulk import.
type ImportInput struct {
	WorkspaceID string
	ActorID     string
	Rows        []ImportRow
	// DefaultCategoryID is used when no mapping rule matches a row.
	// Rows without a match and without a default are skipped.
	DefaultCategoryID string
}

// ImportResult reports what happened to each row.
type ImportResult struct {
	Created     []*domain.Transaction
	SkippedRows []int
}

// Import creates one transaction per row. Each row is its own atomic unit so
// a bad row does not abort the rest of the batch; failed rows are reported as
// skipped by index.
func (uc *ImportUseCase) Import(ctx context.Context, input ImportInput) (*ImportResult, error) {
	m, err := uc.matchers.For(ctx, input.WorkspaceID)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}

	for i, row := range input.Rows {
		categoryID, ok := m.Match(row.Description, row.Flow)
		if !ok {
			categoryID = input.DefaultCategoryID
		}
		if categoryID == "" {
			result.SkippedRows = append(result.SkippedRows, i)
			continue
		}

		createInput := CreateTransactionInput{
			WorkspaceID: input.WorkspaceID,
			ActorID:     input.ActorID,
			Amount:      row.Amount,
			Date:        row.Date,
			Flow:        row.Flow,
			CategoryID:  &categoryID,
			Comment:     row.Description,
		}

		switch row.Flow {
		case domain.FlowIncome:
			accountID := row.AccountID
			createInput.DestinationID = &accountID
		case domain.FlowExpense:
			accountID := row.AccountID
			createInput.SourceID = &accountID
		default:
			result.SkippedRows = append(result.SkippedRows, i)
			continue
		}

		transaction, err := uc.ledger.CreateTransaction(ctx, createInput)
		if err != nil {
			result.SkippedRows = append(result.SkippedRows, i)
			continue
		}

		result.Created = append(result.Created, transaction)
	}

	return result, nil
}
