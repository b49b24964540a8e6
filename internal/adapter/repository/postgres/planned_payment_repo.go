package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack/fintrack/internal/domain"
)

// PlannedPaymentRepository implements usecase.PlannedPaymentRepository.
type PlannedPaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPlannedPaymentRepository creates a new PlannedPaymentRepository.
func NewPlannedPaymentRepository(pool *pgxpool.Pool) *PlannedPaymentRepository {
	return &PlannedPaymentRepository{pool: pool}
}

const plannedPaymentColumns = `id, workspace_id, description, amount, flow, anchor_date, recurring, rule, created_at, updated_at`

// Create creates a new planned payment.
func (r *PlannedPaymentRepository) Create(ctx context.Context, payment *domain.PlannedPayment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO planned_payments (id, workspace_id, description, amount, flow, anchor_date, recurring, rule, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		payment.ID,
		payment.WorkspaceID,
		payment.Description,
		decimalToNumeric(payment.Amount),
		string(payment.Flow),
		timeToPgDate(payment.AnchorDate),
		payment.Recurring,
		string(payment.Rule),
		timeToPgTimestamptz(payment.CreatedAt),
		timeToPgTimestamptz(payment.UpdatedAt),
	)

	return err
}

// GetByID retrieves a planned payment by ID within a workspace.
func (r *PlannedPaymentRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.PlannedPayment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+plannedPaymentColumns+`
		FROM planned_payments
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id,
	)

	payment, err := scanPlannedPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlannedPaymentNotFound
		}

		return nil, err
	}

	return payment, nil
}

// Update rewrites a planned payment.
func (r *PlannedPaymentRepository) Update(ctx context.Context, payment *domain.PlannedPayment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE planned_payments
		SET description = $3, amount = $4, flow = $5, anchor_date = $6, recurring = $7, rule = $8, updated_at = $9
		WHERE workspace_id = $1 AND id = $2`,
		payment.WorkspaceID,
		payment.ID,
		payment.Description,
		decimalToNumeric(payment.Amount),
		string(payment.Flow),
		timeToPgDate(payment.AnchorDate),
		payment.Recurring,
		string(payment.Rule),
		timeToPgTimestamptz(payment.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlannedPaymentNotFound
	}

	return nil
}

// Delete removes a planned payment.
func (r *PlannedPaymentRepository) Delete(ctx context.Context, workspaceID, id string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM planned_payments
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlannedPaymentNotFound
	}

	return nil
}

// List lists planned payments in a workspace with pagination.
func (r *PlannedPaymentRepository) List(ctx context.Context, workspaceID string, limit, offset int) ([]*domain.PlannedPayment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+plannedPaymentColumns+`
		FROM planned_payments
		WHERE workspace_id = $1
		ORDER BY anchor_date, id
		LIMIT $2 OFFSET $3`,
		workspaceID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPlannedPayments(rows)
}

// ListIntersecting returns payments relevant to a projection window:
// non-recurring ones anchored inside it, recurring ones anchored at or
// before its end.
func (r *PlannedPaymentRepository) ListIntersecting(ctx context.Context, workspaceID string, start, end time.Time) ([]*domain.PlannedPayment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+plannedPaymentColumns+`
		FROM planned_payments
		WHERE workspace_id = $1
		  AND ((NOT recurring AND anchor_date >= $2 AND anchor_date <= $3)
		    OR (recurring AND anchor_date <= $3))
		ORDER BY anchor_date, id`,
		workspaceID, timeToPgDate(start), timeToPgDate(end),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPlannedPayments(rows)
}

func scanPlannedPayment(row pgx.Row) (*domain.PlannedPayment, error) {
	var (
		payment    domain.PlannedPayment
		amount     pgtype.Numeric
		flow       string
		anchorDate pgtype.Date
		rule       string
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&payment.ID,
		&payment.WorkspaceID,
		&payment.Description,
		&amount,
		&flow,
		&anchorDate,
		&payment.Recurring,
		&rule,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	payment.Amount = numericToDecimal(amount)
	payment.Flow = domain.FlowType(flow)
	payment.AnchorDate = anchorDate.Time
	payment.Rule = domain.RecurrenceRule(rule)
	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return &payment, nil
}

func scanPlannedPayments(rows pgx.Rows) ([]*domain.PlannedPayment, error) {
	var payments []*domain.PlannedPayment
	for rows.Next() {
		payment, err := scanPlannedPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}
