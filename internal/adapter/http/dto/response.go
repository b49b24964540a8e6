package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack/internal/domain"
	"github.com/fintrack/fintrack/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Currency:  a.Currency,
		Balance:   a.Balance,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryFromDomain converts a domain category to a response.
func CategoryFromDomain(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Kind:      string(c.Kind),
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CategoriesFromDomain converts domain categories to responses.
func CategoriesFromDomain(categories []domain.Category) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i := range categories {
		result[i] = CategoryFromDomain(&categories[i])
	}
	return result
}

// CategoryNodeResponse represents a node of the aggregated category tree.
type CategoryNodeResponse struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	Kind     string                  `json:"kind"`
	Total    decimal.Decimal         `json:"total"`
	Children []*CategoryNodeResponse `json:"children,omitempty"`
}

// CategoryNodesFromDomain converts domain tree nodes to responses.
func CategoryNodesFromDomain(nodes []*domain.CategoryNode) []*CategoryNodeResponse {
	result := make([]*CategoryNodeResponse, len(nodes))
	for i, n := range nodes {
		result[i] = &CategoryNodeResponse{
			ID:       n.Category.ID,
			Name:     n.Category.Name,
			Kind:     string(n.Category.Kind),
			Total:    n.Total,
			Children: CategoryNodesFromDomain(n.Children),
		}
	}
	return result
}

// TransactionResponse represents a ledger transaction in API responses.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Flow          string          `json:"flow"`
	SourceID      *string         `json:"source_id,omitempty"`
	DestinationID *string         `json:"destination_id,omitempty"`
	CategoryID    *string         `json:"category_id,omitempty"`
	Comment       string          `json:"comment,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		Amount:        t.Amount,
		Date:          t.Date,
		Flow:          string(t.Flow),
		SourceID:      t.SourceID,
		DestinationID: t.DestinationID,
		CategoryID:    t.CategoryID,
		Comment:       t.Comment,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// BudgetItemResponse represents a budget item in API responses.
type BudgetItemResponse struct {
	ID         string          `json:"id"`
	CategoryID string          `json:"category_id"`
	Flow       string          `json:"flow"`
	Budgeted   decimal.Decimal `json:"budgeted"`
}

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Items     []BudgetItemResponse `json:"items"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// BudgetFromDomain converts a domain budget to a response.
func BudgetFromDomain(b *domain.Budget) *BudgetResponse {
	items := make([]BudgetItemResponse, len(b.Items))
	for i, item := range b.Items {
		items[i] = BudgetItemResponse{
			ID:         item.ID,
			CategoryID: item.CategoryID,
			Flow:       string(item.Flow),
			Budgeted:   item.Budgeted,
		}
	}
	return &BudgetResponse{
		ID:        b.ID,
		Name:      b.Name,
		StartDate: b.StartDate.Format(time.DateOnly),
		EndDate:   b.EndDate.Format(time.DateOnly),
		Items:     items,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// BudgetsFromDomain converts domain budgets to responses.
func BudgetsFromDomain(budgets []*domain.Budget) []*BudgetResponse {
	result := make([]*BudgetResponse, len(budgets))
	for i, b := range budgets {
		result[i] = BudgetFromDomain(b)
	}
	return result
}

// BudgetItemStatusResponse represents one item of a budget status report.
type BudgetItemStatusResponse struct {
	ItemID     string          `json:"item_id"`
	CategoryID string          `json:"category_id"`
	Flow       string          `json:"flow"`
	Budgeted   decimal.Decimal `json:"budgeted"`
	Actual     decimal.Decimal `json:"actual"`
	Deviation  decimal.Decimal `json:"deviation"`
}

// BudgetStatusResponse represents a budget status report.
type BudgetStatusResponse struct {
	BudgetID       string                     `json:"budget_id"`
	Name           string                     `json:"name"`
	StartDate      string                     `json:"start_date"`
	EndDate        string                     `json:"end_date"`
	Items          []BudgetItemStatusResponse `json:"items"`
	TotalBudgeted  decimal.Decimal            `json:"total_budgeted"`
	TotalActual    decimal.Decimal            `json:"total_actual"`
	TotalDeviation decimal.Decimal            `json:"total_deviation"`
}

// BudgetStatusFromDomain converts a domain budget status to a response.
func BudgetStatusFromDomain(s *domain.BudgetStatus) *BudgetStatusResponse {
	items := make([]BudgetItemStatusResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = BudgetItemStatusResponse{
			ItemID:     item.Item.ID,
			CategoryID: item.Item.CategoryID,
			Flow:       string(item.Item.Flow),
			Budgeted:   item.Item.Budgeted,
			Actual:     item.Actual,
			Deviation:  item.Deviation,
		}
	}
	return &BudgetStatusResponse{
		BudgetID:       s.Budget.ID,
		Name:           s.Budget.Name,
		StartDate:      s.Budget.StartDate.Format(time.DateOnly),
		EndDate:        s.Budget.EndDate.Format(time.DateOnly),
		Items:          items,
		TotalBudgeted:  s.TotalBudgeted,
		TotalActual:    s.TotalActual,
		TotalDeviation: s.TotalDeviation,
	}
}

// PlannedPaymentResponse represents a planned payment in API responses.
type PlannedPaymentResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Flow        string          `json:"flow"`
	AnchorDate  string          `json:"anchor_date"`
	Recurring   bool            `json:"recurring"`
	Rule        string          `json:"rule,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PlannedPaymentFromDomain converts a domain planned payment to a response.
func PlannedPaymentFromDomain(p *domain.PlannedPayment) *PlannedPaymentResponse {
	return &PlannedPaymentResponse{
		ID:          p.ID,
		Description: p.Description,
		Amount:      p.Amount,
		Flow:        string(p.Flow),
		AnchorDate:  p.AnchorDate.Format(time.DateOnly),
		Recurring:   p.Recurring,
		Rule:        string(p.Rule),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PlannedPaymentsFromDomain converts domain planned payments to responses.
func PlannedPaymentsFromDomain(payments []*domain.PlannedPayment) []*PlannedPaymentResponse {
	result := make([]*PlannedPaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PlannedPaymentFromDomain(p)
	}
	return result
}

// CalendarEntryResponse represents one payment occurrence of a forecast day.
type CalendarEntryResponse struct {
	PaymentID   string          `json:"payment_id"`
	Description string          `json:"description"`
	Flow        string          `json:"flow"`
	Amount      decimal.Decimal `json:"amount"`
}

// CalendarDayResponse represents one simulated day of a forecast.
type CalendarDayResponse struct {
	Date    string                  `json:"date"`
	Opening decimal.Decimal         `json:"opening"`
	Income  decimal.Decimal         `json:"income"`
	Expense decimal.Decimal         `json:"expense"`
	Closing decimal.Decimal         `json:"closing"`
	CashGap bool                    `json:"cash_gap"`
	Entries []CalendarEntryResponse `json:"entries,omitempty"`
}

// CalendarForecastResponse represents a payment calendar forecast.
type CalendarForecastResponse struct {
	StartDate      string                `json:"start_date"`
	EndDate        string                `json:"end_date"`
	OpeningBalance decimal.Decimal       `json:"opening_balance"`
	ClosingBalance decimal.Decimal       `json:"closing_balance"`
	Days           []CalendarDayResponse `json:"days"`
}

// CalendarForecastFromDomain converts a domain forecast to a response.
func CalendarForecastFromDomain(f *domain.CalendarForecast) *CalendarForecastResponse {
	days := make([]CalendarDayResponse, len(f.Days))
	for i, day := range f.Days {
		entries := make([]CalendarEntryResponse, len(day.Entries))
		for j, entry := range day.Entries {
			entries[j] = CalendarEntryResponse{
				PaymentID:   entry.PaymentID,
				Description: entry.Description,
				Flow:        string(entry.Flow),
				Amount:      entry.Amount,
			}
		}
		days[i] = CalendarDayResponse{
			Date:    day.Date.Format(time.DateOnly),
			Opening: day.Opening,
			Income:  day.Income,
			Expense: day.Expense,
			Closing: day.Closing,
			CashGap: day.CashGap,
			Entries: entries,
		}
	}
	return &CalendarForecastResponse{
		StartDate:      f.StartDate.Format(time.DateOnly),
		EndDate:        f.EndDate.Format(time.DateOnly),
		OpeningBalance: f.OpeningBalance,
		ClosingBalance: f.ClosingBalance,
		Days:           days,
	}
}

// ImportResponse reports the outcome of a bulk import.
type ImportResponse struct {
	Created     []*TransactionResponse `json:"created"`
	SkippedRows []int                  `json:"skipped_rows,omitempty"`
}

// ImportResultFromUseCase converts an import result to a response.
func ImportResultFromUseCase(r *usecase.ImportResult) *ImportResponse {
	return &ImportResponse{
		Created:     TransactionsFromDomain(r.Created),
		SkippedRows: r.SkippedRows,
	}
}

// AuditLogResponse represents an audit log entry in API responses.
type AuditLogResponse struct {
	ID         string         `json:"id"`
	ActorID    string         `json:"actor_id"`
	Action     string         `json:"action"`
	ResourceID string         `json:"resource_id"`
	Detail     map[string]any `json:"detail,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &AuditLogResponse{
			ID:         l.ID,
			ActorID:    l.ActorID,
			Action:     string(l.Action),
			ResourceID: l.ResourceID,
			Detail:     l.Detail,
			CreatedAt:  l.CreatedAt,
		}
	}
	return result
}
