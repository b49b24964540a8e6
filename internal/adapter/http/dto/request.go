package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack/internal/domain"
	"github.com/fintrack/fintrack/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name           string          `json:"name"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(workspaceID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		WorkspaceID:    workspaceID,
		Name:           r.Name,
		Currency:       r.Currency,
		InitialBalance: r.InitialBalance,
	}
}

// CreateCategoryRequest represents a request to create a category.
type CreateCategoryRequest struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	ParentID *string `json:"parent_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCategoryRequest) ToUseCaseInput(workspaceID string) usecase.CreateCategoryInput {
	return usecase.CreateCategoryInput{
		WorkspaceID: workspaceID,
		Name:        r.Name,
		Kind:        domain.CategoryKind(r.Kind),
		ParentID:    r.ParentID,
	}
}

// UpdateCategoryRequest represents a request to rename or re-parent a
// category. An empty parent_id clears the parent.
type UpdateCategoryRequest struct {
	Name     *string `json:"name,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateCategoryRequest) ToUseCaseInput(workspaceID, id string) usecase.UpdateCategoryInput {
	return usecase.UpdateCategoryInput{
		WorkspaceID: workspaceID,
		ID:          id,
		Name:        r.Name,
		ParentID:    r.ParentID,
	}
}

// CreateTransactionRequest represents a request to record a transaction.
type CreateTransactionRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Flow          string          `json:"flow"`
	SourceID      *string         `json:"source_id,omitempty"`
	DestinationID *string         `json:"destination_id,omitempty"`
	CategoryID    *string         `json:"category_id,omitempty"`
	Comment       string          `json:"comment,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput(workspaceID, actorID string) usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		WorkspaceID:   workspaceID,
		ActorID:       actorID,
		Amount:        r.Amount,
		Date:          r.Date,
		Flow:          domain.FlowType(r.Flow),
		SourceID:      r.SourceID,
		DestinationID: r.DestinationID,
		CategoryID:    r.CategoryID,
		Comment:       r.Comment,
	}
}

// UpdateTransactionRequest represents a partial transaction update. Absent
// fields keep their stored value; an empty string in a reference field clears
// the reference.
type UpdateTransactionRequest struct {
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Date          *time.Time       `json:"date,omitempty"`
	Flow          *string          `json:"flow,omitempty"`
	SourceID      *string          `json:"source_id,omitempty"`
	DestinationID *string          `json:"destination_id,omitempty"`
	CategoryID    *string          `json:"category_id,omitempty"`
	Comment       *string          `json:"comment,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTransactionRequest) ToUseCaseInput(workspaceID, actorID, id string) usecase.UpdateTransactionInput {
	input := usecase.UpdateTransactionInput{
		WorkspaceID:   workspaceID,
		ActorID:       actorID,
		ID:            id,
		Amount:        r.Amount,
		Date:          r.Date,
		SourceID:      r.SourceID,
		DestinationID: r.DestinationID,
		CategoryID:    r.CategoryID,
		Comment:       r.Comment,
	}
	if r.Flow != nil {
		flow := domain.FlowType(*r.Flow)
		input.Flow = &flow
	}
	return input
}

// BudgetItemRequest is one category target inside a budget request.
type BudgetItemRequest struct {
	ID         string          `json:"id,omitempty"`
	CategoryID string          `json:"category_id"`
	Budgeted   decimal.Decimal `json:"budgeted"`
}

// CreateBudgetRequest represents a request to create a budget.
type CreateBudgetRequest struct {
	Name      string              `json:"name"`
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Items     []BudgetItemRequest `json:"items"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBudgetRequest) ToUseCaseInput(workspaceID, actorID string) (usecase.CreateBudgetInput, error) {
	start, end, err := parseDateRange(r.StartDate, r.EndDate)
	if err != nil {
		return usecase.CreateBudgetInput{}, err
	}

	return usecase.CreateBudgetInput{
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		Name:        r.Name,
		StartDate:   start,
		EndDate:     end,
		Items:       budgetItemInputs(r.Items),
	}, nil
}

// UpdateBudgetRequest represents a request to update a budget. Items is the
// complete desired item list.
type UpdateBudgetRequest struct {
	Name      string              `json:"name"`
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Items     []BudgetItemRequest `json:"items"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateBudgetRequest) ToUseCaseInput(workspaceID, actorID, id string) (usecase.UpdateBudgetInput, error) {
	start, end, err := parseDateRange(r.StartDate, r.EndDate)
	if err != nil {
		return usecase.UpdateBudgetInput{}, err
	}

	return usecase.UpdateBudgetInput{
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		ID:          id,
		Name:        r.Name,
		StartDate:   start,
		EndDate:     end,
		Items:       budgetItemInputs(r.Items),
	}, nil
}

// PlannedPaymentRequest represents a request to create or update a planned
// payment.
type PlannedPaymentRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Flow        string          `json:"flow"`
	AnchorDate  string          `json:"anchor_date"`
	Recurring   bool            `json:"recurring"`
	Rule        string          `json:"rule,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PlannedPaymentRequest) ToUseCaseInput(workspaceID string) (usecase.PlannedPaymentInput, error) {
	anchor, err := parseDate(r.AnchorDate)
	if err != nil {
		return usecase.PlannedPaymentInput{}, err
	}

	return usecase.PlannedPaymentInput{
		WorkspaceID: workspaceID,
		Description: r.Description,
		Amount:      r.Amount,
		Flow:        domain.FlowType(r.Flow),
		AnchorDate:  anchor,
		Recurring:   r.Recurring,
		Rule:        domain.RecurrenceRule(r.Rule),
	}, nil
}

// ImportRowRequest is one statement line in a bulk import.
type ImportRowRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Flow        string          `json:"flow"`
	AccountID   string          `json:"account_id"`
}

// ImportRequest represents a bulk import of statement rows.
type ImportRequest struct {
	Rows              []ImportRowRequest `json:"rows"`
	DefaultCategoryID string             `json:"default_category_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ImportRequest) ToUseCaseInput(workspaceID, actorID string) usecase.ImportInput {
	rows := make([]usecase.ImportRow, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = usecase.ImportRow{
			Description: row.Description,
			Amount:      row.Amount,
			Date:        row.Date,
			Flow:        domain.FlowType(row.Flow),
			AccountID:   row.AccountID,
		}
	}
	return usecase.ImportInput{
		WorkspaceID:       workspaceID,
		ActorID:           actorID,
		Rows:              rows,
		DefaultCategoryID: r.DefaultCategoryID,
	}
}

func budgetItemInputs(items []BudgetItemRequest) []usecase.BudgetItemInput {
	inputs := make([]usecase.BudgetItemInput, len(items))
	for i, item := range items {
		inputs[i] = usecase.BudgetItemInput{
			ID:         item.ID,
			CategoryID: item.CategoryID,
			Budgeted:   item.Budgeted,
		}
	}
	return inputs
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return date, nil
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return startDate, endDate, nil
}
