package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurrenceRule is the cadence of a recurring planned payment.
type RecurrenceRule string

const (
	RecurDaily   RecurrenceRule = "daily"
	RecurWeekly  RecurrenceRule = "weekly"
	RecurMonthly RecurrenceRule = "monthly"
)

// PlannedPayment is a forward-looking income or expense. If Recurring is
// false the payment occupies exactly its anchor date and Rule is ignored.
// If true, the anchor date is the first occurrence and the rule generates
// further occurrences bounded only by the query window.
type PlannedPayment struct {
	ID          string
	WorkspaceID string
	Description string
	Amount      decimal.Decimal
	Flow        FlowType
	AnchorDate  time.Time
	Recurring   bool
	Rule        RecurrenceRule
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the payment's own invariants. Calendar flow types are
// income and expense only; transfers are not plannable.
func (p *PlannedPayment) Validate() error {
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if p.Flow != FlowIncome && p.Flow != FlowExpense {
		return ErrInvalidTransactionShape
	}

	return nil
}
