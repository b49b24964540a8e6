package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget groups per-category targets over a date range. A workspace may not
// hold two budgets with the same name and period.
type Budget struct {
	ID          string
	WorkspaceID string
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	Items       []BudgetItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BudgetItem is a target amount for a single leaf category. Flow is
// denormalized from the category at item creation time.
type BudgetItem struct {
	ID         string
	BudgetID   string
	CategoryID string
	Flow       FlowType
	Budgeted   decimal.Decimal
}

// Validate checks the budget's own invariants.
func (b *Budget) Validate() error {
	if b.EndDate.Before(b.StartDate) {
		return ErrInvalidRange
	}

	for _, item := range b.Items {
		if item.Budgeted.LessThanOrEqual(decimal.Zero) {
			return ErrInvalidAmount
		}
	}

	return nil
}

// CategoryIDs returns the unique category ids referenced by the budget's items.
func (b *Budget) CategoryIDs() []string {
	seen := make(map[string]bool, len(b.Items))

	var ids []string
	for _, item := range b.Items {
		if !seen[item.CategoryID] {
			seen[item.CategoryID] = true
			ids = append(ids, item.CategoryID)
		}
	}

	return ids
}

// BudgetItemStatus is the execution state of one budget item.
//
// Deviation is budgeted minus actual for every flow type. For expense items a
// positive deviation therefore means "under budget"; callers wanting an
// overspend polarity invert the sign themselves.
type BudgetItemStatus struct {
	Item      BudgetItem
	Actual    decimal.Decimal
	Deviation decimal.Decimal
}

// BudgetStatus is the aggregated execution state of a budget.
type BudgetStatus struct {
	Budget         Budget
	Items          []BudgetItemStatus
	TotalBudgeted  decimal.Decimal
	TotalActual    decimal.Decimal
	TotalDeviation decimal.Decimal
}

// ComputeBudgetStatus derives a status from per-category actual sums. Items
// with no matching transactions get a zero actual. A budget with zero items
// yields all-zero totals.
func ComputeBudgetStatus(b Budget, actuals map[string]decimal.Decimal) BudgetStatus {
	status := BudgetStatus{
		Budget:         b,
		Items:          make([]BudgetItemStatus, 0, len(b.Items)),
		TotalBudgeted:  decimal.Zero,
		TotalActual:    decimal.Zero,
		TotalDeviation: decimal.Zero,
	}

	for _, item := range b.Items {
		actual := decimal.Zero
		if sum, ok := actuals[item.CategoryID]; ok {
			actual = sum
		}

		status.Items = append(status.Items, BudgetItemStatus{
			Item:      item,
			Actual:    actual,
			Deviation: item.Budgeted.Sub(actual),
		})

		status.TotalBudgeted = status.TotalBudgeted.Add(item.Budgeted)
		status.TotalActual = status.TotalActual.Add(actual)
	}

	status.TotalDeviation = status.TotalBudgeted.Sub(status.TotalActual)

	return status
}
