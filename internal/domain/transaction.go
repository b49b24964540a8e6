package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlowType classifies the direction of a transaction or planned payment.
type FlowType string

const (
	FlowIncome   FlowType = "income"
	FlowExpense  FlowType = "expense"
	FlowTransfer FlowType = "transfer"
)

// Valid flow types for transactions.
var validFlowTypes = map[FlowType]bool{
	FlowIncome:   true,
	FlowExpense:  true,
	FlowTransfer: true,
}

// IsValid checks if the flow type is one of the known values.
func (f FlowType) IsValid() bool {
	return validFlowTypes[f]
}

// Transaction is a single dated cash-flow fact. Amount is always stored
// positive; direction is encoded by the flow type, not by sign.
type Transaction struct {
	ID            string
	WorkspaceID   string
	ActorID       string
	Amount        decimal.Decimal
	Date          time.Time
	Flow          FlowType
	SourceID      *string
	DestinationID *string
	CategoryID    *string
	Comment       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the flow-type/account-pairing invariant:
// income requires a destination account only, expense a source account only,
// a transfer both (and they must differ, with no category).
func (t *Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	switch t.Flow {
	case FlowIncome:
		if t.DestinationID == nil || t.SourceID != nil || t.CategoryID == nil {
			return ErrInvalidTransactionShape
		}
	case FlowExpense:
		if t.SourceID == nil || t.DestinationID != nil || t.CategoryID == nil {
			return ErrInvalidTransactionShape
		}
	case FlowTransfer:
		if t.SourceID == nil || t.DestinationID == nil || t.CategoryID != nil {
			return ErrInvalidTransactionShape
		}
		if *t.SourceID == *t.DestinationID {
			return ErrSameAccount
		}
	default:
		return ErrInvalidTransactionShape
	}

	return nil
}

// BalanceEffects returns the signed per-account deltas this transaction
// contributes to account balances:
// expense subtracts from the source, income adds to the destination,
// a transfer does both.
func (t *Transaction) BalanceEffects() []BalanceDelta {
	switch t.Flow {
	case FlowIncome:
		return []BalanceDelta{{AccountID: *t.DestinationID, Amount: t.Amount}}
	case FlowExpense:
		return []BalanceDelta{{AccountID: *t.SourceID, Amount: t.Amount.Neg()}}
	case FlowTransfer:
		return []BalanceDelta{
			{AccountID: *t.SourceID, Amount: t.Amount.Neg()},
			{AccountID: *t.DestinationID, Amount: t.Amount},
		}
	}

	return nil
}

// InverseEffects returns the deltas that undo this transaction's effect.
func (t *Transaction) InverseEffects() []BalanceDelta {
	effects := t.BalanceEffects()
	inverse := make([]BalanceDelta, len(effects))
	for i, e := range effects {
		inverse[i] = BalanceDelta{AccountID: e.AccountID, Amount: e.Amount.Neg()}
	}

	return inverse
}

// AccountIDs returns the unique account ids referenced by the transaction.
func (t *Transaction) AccountIDs() []string {
	var ids []string
	if t.SourceID != nil {
		ids = append(ids, *t.SourceID)
	}
	if t.DestinationID != nil && (t.SourceID == nil || *t.DestinationID != *t.SourceID) {
		ids = append(ids, *t.DestinationID)
	}

	return ids
}
