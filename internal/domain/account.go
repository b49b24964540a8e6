package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds a running balance within a workspace. The balance always
// equals the initial balance plus the sum of signed effects of all currently
// existing transactions referencing the account.
type Account struct {
	ID          string
	WorkspaceID string
	Name        string
	Currency    string
	Balance     decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BalanceDelta is a signed amount applied atomically to an account's
// running balance.
type BalanceDelta struct {
	AccountID string
	Amount    decimal.Decimal
}

// MergeDeltas combines deltas targeting the same account. The result keeps
// the first-seen order of account ids so callers can lock deterministically.
func MergeDeltas(deltas ...BalanceDelta) []BalanceDelta {
	merged := make([]BalanceDelta, 0, len(deltas))
	index := make(map[string]int, len(deltas))

	for _, d := range deltas {
		if i, ok := index[d.AccountID]; ok {
			merged[i].Amount = merged[i].Amount.Add(d.Amount)
			continue
		}
		index[d.AccountID] = len(merged)
		merged = append(merged, d)
	}

	return merged
}
