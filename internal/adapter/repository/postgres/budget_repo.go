package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack/fintrack/internal/domain"
	"github.com/fintrack/fintrack/internal/usecase"
)

// BudgetRepository implements usecase.BudgetRepository.
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// Create inserts a budget and its items within tx.
func (r *BudgetRepository) Create(ctx context.Context, tx usecase.Transaction, budget *domain.Budget) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO budgets (id, workspace_id, name, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		budget.ID,
		budget.WorkspaceID,
		budget.Name,
		timeToPgDate(budget.StartDate),
		timeToPgDate(budget.EndDate),
		timeToPgTimestamptz(budget.CreatedAt),
		timeToPgTimestamptz(budget.UpdatedAt),
	)
	if err != nil {
		return err
	}

	return insertBudgetItems(ctx, pgxTx, budget.Items)
}

// GetByID retrieves a budget with its items.
func (r *BudgetRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.Budget, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, workspace_id, name, start_date, end_date, created_at, updated_at
		FROM budgets
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id,
	)

	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}

		return nil, err
	}

	items, err := r.loadItems(ctx, []string{budget.ID})
	if err != nil {
		return nil, err
	}
	budget.Items = items[budget.ID]

	return budget, nil
}

// ExistsForPeriod reports whether a budget with the same name and period exists.
func (r *BudgetRepository) ExistsForPeriod(ctx context.Context, workspaceID, name string, start, end time.Time) (bool, error) {
	var exists bool

	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM budgets
			WHERE workspace_id = $1 AND name = $2 AND start_date = $3 AND end_date = $4
		)`,
		workspaceID, name, timeToPgDate(start), timeToPgDate(end),
	).Scan(&exists)

	return exists, err
}

// UpdateMeta rewrites the budget header within tx.
func (r *BudgetRepository) UpdateMeta(ctx context.Context, tx usecase.Transaction, budget *domain.Budget) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE budgets
		SET name = $3, start_date = $4, end_date = $5, updated_at = $6
		WHERE workspace_id = $1 AND id = $2`,
		budget.WorkspaceID,
		budget.ID,
		budget.Name,
		timeToPgDate(budget.StartDate),
		timeToPgDate(budget.EndDate),
		timeToPgTimestamptz(budget.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}

	return nil
}

// InsertItems inserts budget items within tx.
func (r *BudgetRepository) InsertItems(ctx context.Context, tx usecase.Transaction, items []domain.BudgetItem) error {
	return insertBudgetItems(ctx, tx.(*Tx).PgxTx(), items)
}

// UpdateItems rewrites existing budget items within tx.
func (r *BudgetRepository) UpdateItems(ctx context.Context, tx usecase.Transaction, items []domain.BudgetItem) error {
	pgxTx := tx.(*Tx).PgxTx()

	for _, item := range items {
		_, err := pgxTx.Exec(ctx, `
			UPDATE budget_items
			SET category_id = $3, flow = $4, budgeted = $5
			WHERE budget_id = $1 AND id = $2`,
			item.BudgetID,
			item.ID,
			item.CategoryID,
			string(item.Flow),
			decimalToNumeric(item.Budgeted),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// DeleteItems removes budget items by ID within tx.
func (r *BudgetRepository) DeleteItems(ctx context.Context, tx usecase.Transaction, budgetID string, itemIDs []string) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		DELETE FROM budget_items
		WHERE budget_id = $1 AND id = ANY($2)`,
		budgetID, itemIDs,
	)

	return err
}

// Delete removes a budget; items go with it via ON DELETE CASCADE.
func (r *BudgetRepository) Delete(ctx context.Context, workspaceID, id string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM budgets
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}

	return nil
}

// List lists budgets of a workspace with their items.
func (r *BudgetRepository) List(ctx context.Context, workspaceID string, limit, offset int) ([]*domain.Budget, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, workspace_id, name, start_date, end_date, created_at, updated_at
		FROM budgets
		WHERE workspace_id = $1
		ORDER BY start_date DESC, id
		LIMIT $2 OFFSET $3`,
		workspaceID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		budgets []*domain.Budget
		ids     []string
	)
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
		ids = append(ids, budget.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return budgets, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, budget := range budgets {
		budget.Items = items[budget.ID]
	}

	return budgets, nil
}

func (r *BudgetRepository) loadItems(ctx context.Context, budgetIDs []string) (map[string][]domain.BudgetItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, budget_id, category_id, flow, budgeted
		FROM budget_items
		WHERE budget_id = ANY($1)
		ORDER BY id`,
		budgetIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]domain.BudgetItem)
	for rows.Next() {
		var (
			item     domain.BudgetItem
			flow     string
			budgeted pgtype.Numeric
		)
		if err := rows.Scan(&item.ID, &item.BudgetID, &item.CategoryID, &flow, &budgeted); err != nil {
			return nil, err
		}
		item.Flow = domain.FlowType(flow)
		item.Budgeted = numericToDecimal(budgeted)
		items[item.BudgetID] = append(items[item.BudgetID], item)
	}

	return items, rows.Err()
}

func insertBudgetItems(ctx context.Context, pgxTx pgx.Tx, items []domain.BudgetItem) error {
	for _, item := range items {
		_, err := pgxTx.Exec(ctx, `
			INSERT INTO budget_items (id, budget_id, category_id, flow, budgeted)
			VALUES ($1, $2, $3, $4, $5)`,
			item.ID,
			item.BudgetID,
			item.CategoryID,
			string(item.Flow),
			decimalToNumeric(item.Budgeted),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		budget    domain.Budget
		startDate pgtype.Date
		endDate   pgtype.Date
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&budget.ID,
		&budget.WorkspaceID,
		&budget.Name,
		&startDate,
		&endDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	budget.StartDate = startDate.Time
	budget.EndDate = endDate.Time
	budget.CreatedAt = createdAt.Time
	budget.UpdatedAt = updatedAt.Time

	return &budget, nil
}
