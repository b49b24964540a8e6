package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack/fintrack/internal/domain"
)

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, workspace_id, name, kind, parent_id, created_at, updated_at`

// Create creates a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (id, workspace_id, name, kind, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		category.ID,
		category.WorkspaceID,
		category.Name,
		string(category.Kind),
		ptrToText(category.ParentID),
		timeToPgTimestamptz(category.CreatedAt),
		timeToPgTimestamptz(category.UpdatedAt),
	)

	return err
}

// GetByID retrieves a category by ID within a workspace.
func (r *CategoryRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.Category, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id,
	)

	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}

		return nil, err
	}

	return category, nil
}

// Update rewrites a category's name and parent.
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE categories
		SET name = $3, parent_id = $4, updated_at = $5
		WHERE workspace_id = $1 AND id = $2`,
		category.WorkspaceID,
		category.ID,
		category.Name,
		ptrToText(category.ParentID),
		timeToPgTimestamptz(category.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

// GetByIDs retrieves multiple categories by IDs.
func (r *CategoryRepository) GetByIDs(ctx context.Context, workspaceID string, ids []string) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE workspace_id = $1 AND id = ANY($2)
		ORDER BY id`,
		workspaceID, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// ListByWorkspace lists all categories of a workspace.
func (r *CategoryRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE workspace_id = $1
		ORDER BY created_at, id`,
		workspaceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}

	return categories, rows.Err()
}

// HasChildren reports whether the category has any child categories.
func (r *CategoryRepository) HasChildren(ctx context.Context, workspaceID, id string) (bool, error) {
	var exists bool

	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE workspace_id = $1 AND parent_id = $2
		)`,
		workspaceID, id,
	).Scan(&exists)

	return exists, err
}

// HasTransactions reports whether any transaction references the category.
func (r *CategoryRepository) HasTransactions(ctx context.Context, workspaceID, id string) (bool, error) {
	var exists bool

	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE workspace_id = $1 AND category_id = $2
		)`,
		workspaceID, id,
	).Scan(&exists)

	return exists, err
}

// Delete removes a category.
func (r *CategoryRepository) Delete(ctx context.Context, workspaceID, id string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM categories
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		category  domain.Category
		kind      string
		parentID  pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&category.ID,
		&category.WorkspaceID,
		&category.Name,
		&kind,
		&parentID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	category.Kind = domain.CategoryKind(kind)
	category.ParentID = textToPtr(parentID)
	category.CreatedAt = createdAt.Time
	category.UpdatedAt = updatedAt.Time

	return &category, nil
}
