package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrack/fintrack/internal/domain"
)

// CategoryUseCase handles the category tree.
type CategoryUseCase struct {
	categoryRepo    CategoryRepository
	transactionRepo TransactionRepository
	idGen           IDGenerator
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(categoryRepo CategoryRepository, transactionRepo TransactionRepository, idGen IDGenerator) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		idGen:           idGen,
	}
}

// CreateCategoryInput represents input for creating a category.
type CreateCategoryInput struct {
	WorkspaceID string
	Name        string
	Kind        domain.CategoryKind
	ParentID    *string
}

// CreateCategory creates a category, optionally under a parent. The parent
// must exist in the same workspace and be a group.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if input.Kind != domain.CategoryGroup && !input.Kind.IsLeaf() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCategoryKind, input.Kind)
	}

	if input.ParentID != nil {
		parent, err := uc.categoryRepo.GetByID(ctx, input.WorkspaceID, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.Kind != domain.CategoryGroup {
			return nil, domain.ErrCategoryNotLeaf
		}
	}

	now := time.Now().UTC()

	category := &domain.Category{
		ID:          uc.idGen.Generate(),
		WorkspaceID: input.WorkspaceID,
		Name:        input.Name,
		Kind:        input.Kind,
		ParentID:    input.ParentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by id within a workspace.
func (uc *CategoryUseCase) GetCategory(ctx context.Context, workspaceID, id string) (*domain.Category, error) {
	return uc.categoryRepo.GetByID(ctx, workspaceID, id)
}

// ListCategories lists all categories of a workspace.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, workspaceID string) ([]domain.Category, error) {
	return uc.categoryRepo.ListByWorkspace(ctx, workspaceID)
}

// UpdateCategoryInput represents input for renaming or re-parenting a
// category. Nil pointers keep the existing value; an empty ParentID clears
// the parent.
type UpdateCategoryInput struct {
	WorkspaceID string
	ID          string
	Name        *string
	ParentID    *string
}

// UpdateCategory renames or re-parents a category. The new parent must be a
// group in the same workspace and must not lie inside the category's own
// subtree.
func (uc *CategoryUseCase) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*domain.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, input.WorkspaceID, input.ID)
	if err != nil {
		return nil, err
	}

	next := *category

	if input.Name != nil {
		if err := domain.ValidateName(*input.Name); err != nil {
			return nil, err
		}
		next.Name = *input.Name
	}

	if input.ParentID != nil {
		switch {
		case *input.ParentID == "":
			next.ParentID = nil
		case *input.ParentID == input.ID:
			return nil, domain.ErrCategoryCycle
		default:
			parent, err := uc.categoryRepo.GetByID(ctx, input.WorkspaceID, *input.ParentID)
			if err != nil {
				return nil, err
			}
			if parent.Kind != domain.CategoryGroup {
				return nil, domain.ErrCategoryNotLeaf
			}

			categories, err := uc.categoryRepo.ListByWorkspace(ctx, input.WorkspaceID)
			if err != nil {
				return nil, err
			}
			if domain.BuildCategoryTree(categories).IsDescendant(input.ID, *input.ParentID) {
				return nil, domain.ErrCategoryCycle
			}

			next.ParentID = input.ParentID
		}
	}

	next.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, &next); err != nil {
		return nil, err
	}

	return &next, nil
}

// DeleteCategory removes a category. Refused while children exist or
// transactions reference it.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, workspaceID, id string) error {
	if _, err := uc.categoryRepo.GetByID(ctx, workspaceID, id); err != nil {
		return err
	}

	hasChildren, err := uc.categoryRepo.HasChildren(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return domain.ErrCategoryHasChildren
	}

	inUse, err := uc.categoryRepo.HasTransactions(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrCategoryInUse
	}

	return uc.categoryRepo.Delete(ctx, workspaceID, id)
}

// AggregateTreeInput represents input for the tree aggregation.
type AggregateTreeInput struct {
	WorkspaceID string
	From        time.Time
	To          time.Time
}

// AggregateTree builds the workspace's category tree and rolls the date
// range's transaction sums up from leaves into groups, so that every group
// total equals the sum of its children.
func (uc *CategoryUseCase) AggregateTree(ctx context.Context, input AggregateTreeInput) ([]*domain.CategoryNode, error) {
	if input.To.Before(input.From) {
		return nil, domain.ErrInvalidRange
	}

	categories, err := uc.categoryRepo.ListByWorkspace(ctx, input.WorkspaceID)
	if err != nil {
		return nil, err
	}

	tree := domain.BuildCategoryTree(categories)

	var leafIDs []string
	for _, c := range categories {
		if c.Kind.IsLeaf() {
			leafIDs = append(leafIDs, c.ID)
		}
	}

	totals, err := uc.transactionRepo.SumByCategory(ctx, input.WorkspaceID, leafIDs, input.From, input.To)
	if err != nil {
		return nil, err
	}

	tree.Aggregate(totals)

	return tree.Roots(), nil
}
