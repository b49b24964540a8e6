package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack/fintrack/internal/domain"
	"github.com/fintrack/fintrack/internal/matcher"
)

// MappingRuleRepository implements usecase.MappingRuleRepository.
type MappingRuleRepository struct {
	pool *pgxpool.Pool
}

// NewMappingRuleRepository creates a new MappingRuleRepository.
func NewMappingRuleRepository(pool *pgxpool.Pool) *MappingRuleRepository {
	return &MappingRuleRepository{pool: pool}
}

// ListByWorkspace lists the keyword mapping rules of a workspace.
func (r *MappingRuleRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]matcher.Rule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT keyword, category_id, flow
		FROM mapping_rules
		WHERE workspace_id = $1
		ORDER BY keyword`,
		workspaceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []matcher.Rule
	for rows.Next() {
		var (
			rule matcher.Rule
			flow string
		)
		if err := rows.Scan(&rule.Keyword, &rule.CategoryID, &flow); err != nil {
			return nil, err
		}
		rule.Flow = domain.FlowType(flow)
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}
