package domain

import "time"

// AuditAction is the kind of mutation recorded in the audit trail.
type AuditAction string

const (
	AuditTransactionCreated AuditAction = "transaction.created"
	AuditTransactionUpdated AuditAction = "transaction.updated"
	AuditTransactionDeleted AuditAction = "transaction.deleted"
	AuditBudgetCreated      AuditAction = "budget.created"
	AuditBudgetUpdated      AuditAction = "budget.updated"
	AuditBudgetDeleted      AuditAction = "budget.deleted"
)

// AuditLog records who changed what. Written in the same atomic unit as the
// mutation it describes.
type AuditLog struct {
	ID          string
	WorkspaceID string
	ActorID     string
	Action      AuditAction
	ResourceID  string
	Detail      map[string]any
	CreatedAt   time.Time
}

// AuditFilter narrows audit log listings.
type AuditFilter struct {
	WorkspaceID string
	ActorID     string
	Action      AuditAction
	Limit       int
	Offset      int
}
