package domain

import "errors"

var (
	// Reference errors. All of them mean an id does not exist or is outside
	// the caller's workspace.
	ErrAccountNotFound        = errors.New("account not found")
	ErrCategoryNotFound       = errors.New("category not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrBudgetNotFound         = errors.New("budget not found")
	ErrPlannedPaymentNotFound = errors.New("planned payment not found")

	// Ledger errors
	ErrInvalidTransactionShape = errors.New("flow type does not match the supplied account pair")
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrSameAccount             = errors.New("transfer source and destination must differ")

	// Account errors
	ErrAccountNotEmpty = errors.New("account has a non-zero balance or referencing transactions")
	ErrAccountInactive = errors.New("account is inactive")

	// Category errors
	ErrCategoryNotLeaf     = errors.New("only leaf categories may be referenced by transactions")
	ErrCategoryHasChildren = errors.New("category has child categories")
	ErrCategoryInUse       = errors.New("category is referenced by transactions")
	ErrCategoryCycle       = errors.New("category cannot be a descendant of itself")

	// Budget errors
	ErrDuplicateBudgetPeriod = errors.New("budget with the same name and period already exists")

	// Calendar errors
	ErrInvalidRange = errors.New("end date precedes start date")
)
