package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack/internal/domain"
	"github.com/fintrack/fintrack/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, workspace_id, actor_id, amount, date, flow, source_id, destination_id, category_id, comment, created_at, updated_at`

// Create inserts a transaction row within tx.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO transactions (id, workspace_id, actor_id, amount, date, flow, source_id, destination_id, category_id, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		transaction.ID,
		transaction.WorkspaceID,
		transaction.ActorID,
		decimalToNumeric(transaction.Amount),
		timeToPgTimestamptz(transaction.Date),
		string(transaction.Flow),
		ptrToText(transaction.SourceID),
		ptrToText(transaction.DestinationID),
		ptrToText(transaction.CategoryID),
		transaction.Comment,
		timeToPgTimestamptz(transaction.CreatedAt),
		timeToPgTimestamptz(transaction.UpdatedAt),
	)

	return err
}

// GetByID retrieves a transaction by ID within a workspace.
func (r *TransactionRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id,
	)

	return scanTransactionNotFound(row)
}

// GetByIDForUpdate retrieves a transaction by ID with a FOR UPDATE lock.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, workspaceID, id string) (*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE workspace_id = $1 AND id = $2
		FOR UPDATE`,
		workspaceID, id,
	)

	return scanTransactionNotFound(row)
}

// Update rewrites the mutable fields of a transaction row within tx.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE transactions
		SET amount = $3, date = $4, flow = $5, source_id = $6, destination_id = $7,
		    category_id = $8, comment = $9, updated_at = $10
		WHERE workspace_id = $1 AND id = $2`,
		transaction.WorkspaceID,
		transaction.ID,
		decimalToNumeric(transaction.Amount),
		timeToPgTimestamptz(transaction.Date),
		string(transaction.Flow),
		ptrToText(transaction.SourceID),
		ptrToText(transaction.DestinationID),
		ptrToText(transaction.CategoryID),
		transaction.Comment,
		timeToPgTimestamptz(transaction.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction row within tx.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, workspaceID, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		DELETE FROM transactions
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// List lists transactions matching the filter, newest first.
func (r *TransactionRepository) List(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	conditions := []string{"workspace_id = $1"}
	args := []any{filter.WorkspaceID}

	addCondition := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.From != nil {
		addCondition("date >= $%d", timeToPgTimestamptz(*filter.From))
	}
	if filter.To != nil {
		addCondition("date <= $%d", timeToPgTimestamptz(*filter.To))
	}
	if filter.AccountID != "" {
		addCondition("(source_id = $%[1]d OR destination_id = $%[1]d)", filter.AccountID)
	}
	if filter.CategoryID != "" {
		addCondition("category_id = $%d", filter.CategoryID)
	}
	if filter.Flow != "" {
		addCondition("flow = $%d", string(filter.Flow))
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE %s
		ORDER BY date DESC, id DESC
		LIMIT $%d OFFSET $%d`,
		strings.Join(conditions, " AND "), len(args)-1, len(args),
	)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	return transactions, rows.Err()
}

// SumByCategory aggregates transaction amounts per category over a date range.
func (r *TransactionRepository) SumByCategory(ctx context.Context, workspaceID string, categoryIDs []string, from, to time.Time) (map[string]decimal.Decimal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category_id, SUM(amount)
		FROM transactions
		WHERE workspace_id = $1 AND category_id = ANY($2) AND date >= $3 AND date <= $4
		GROUP BY category_id`,
		workspaceID, categoryIDs, timeToPgTimestamptz(from), timeToPgTimestamptz(to),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			categoryID string
			sum        pgtype.Numeric
		)
		if err := rows.Scan(&categoryID, &sum); err != nil {
			return nil, err
		}
		sums[categoryID] = numericToDecimal(sum)
	}

	return sums, rows.Err()
}

func scanTransactionNotFound(row pgx.Row) (*domain.Transaction, error) {
	transaction, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return transaction, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		transaction   domain.Transaction
		amount        pgtype.Numeric
		date          pgtype.Timestamptz
		flow          string
		sourceID      pgtype.Text
		destinationID pgtype.Text
		categoryID    pgtype.Text
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&transaction.ID,
		&transaction.WorkspaceID,
		&transaction.ActorID,
		&amount,
		&date,
		&flow,
		&sourceID,
		&destinationID,
		&categoryID,
		&transaction.Comment,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	transaction.Amount = numericToDecimal(amount)
	transaction.Date = date.Time
	transaction.Flow = domain.FlowType(flow)
	transaction.SourceID = textToPtr(sourceID)
	transaction.DestinationID = textToPtr(destinationID)
	transaction.CategoryID = textToPtr(categoryID)
	transaction.CreatedAt = createdAt.Time
	transaction.UpdatedAt = updatedAt.Time

	return &transaction, nil
}
