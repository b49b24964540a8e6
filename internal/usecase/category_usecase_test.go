package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack/internal/domain"
	"github.com/fintrack/fintrack/internal/usecase"
	"github.com/fintrack/fintrack/internal/usecase/mocks"
)

func TestCategoryUseCase_CreateCategory(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateCategoryInput
		expectedErr error
	}{
		{
			name: "leaf without parent",
			input: usecase.CreateCategoryInput{
				WorkspaceID: "ws-1",
				Name:        "Groceries",
				Kind:        domain.CategoryExpense,
			},
		},
		{
			name: "leaf under group",
			input: usecase.CreateCategoryInput{
				WorkspaceID: "ws-1",
				Name:        "Restaurants",
				Kind:        domain.CategoryExpense,
				ParentID:    strPtr("cat-food"),
			},
		},
		{
			name: "empty name",
			input: usecase.CreateCategoryInput{
				WorkspaceID: "ws-1",
				Name:        " ",
				Kind:        domain.CategoryExpense,
			},
			expectedErr: domain.ErrInvalidName,
		},
		{
			name: "invalid kind",
			input: usecase.CreateCategoryInput{
				WorkspaceID: "ws-1",
				Name:        "Mystery",
				Kind:        domain.CategoryKind("mystery"),
			},
			expectedErr: domain.ErrInvalidCategoryKind,
		},
		{
			name: "missing parent",
			input: usecase.CreateCategoryInput{
				WorkspaceID: "ws-1",
				Name:        "Restaurants",
				Kind:        domain.CategoryExpense,
				ParentID:    strPtr("cat-gone"),
			},
			expectedErr: domain.ErrCategoryNotFound,
		},
		{
			name: "leaf parent refused",
			input: usecase.CreateCategoryInput{
				WorkspaceID: "ws-1",
				Name:        "Nested",
				Kind:        domain.CategoryExpense,
				ParentID:    strPtr("cat-leaf"),
			},
			expectedErr: domain.ErrCategoryNotLeaf,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categoryRepo := mocks.NewMockCategoryRepository()
			categoryRepo.Seed(&domain.Category{ID: "cat-food", WorkspaceID: "ws-1", Name: "Food", Kind: domain.CategoryGroup})
			categoryRepo.Seed(&domain.Category{ID: "cat-leaf", WorkspaceID: "ws-1", Name: "Leaf", Kind: domain.CategoryExpense})

			uc := usecase.NewCategoryUseCase(categoryRepo, mocks.NewMockTransactionRepository(), mocks.NewMockIDGenerator())

			category, err := uc.CreateCategory(context.Background(), tt.input)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if category.ID == "" {
				t.Fatal("expected a generated id")
			}
		})
	}
}

func TestCategoryUseCase_UpdateCategory(t *testing.T) {
	newRepo := func() *mocks.MockCategoryRepository {
		repo := mocks.NewMockCategoryRepository()
		repo.Seed(&domain.Category{ID: "cat-root", WorkspaceID: "ws-1", Name: "Root", Kind: domain.CategoryGroup})
		repo.Seed(&domain.Category{ID: "cat-mid", WorkspaceID: "ws-1", Name: "Mid", Kind: domain.CategoryGroup, ParentID: strPtr("cat-root")})
		repo.Seed(&domain.Category{ID: "cat-leaf", WorkspaceID: "ws-1", Name: "Leaf", Kind: domain.CategoryExpense, ParentID: strPtr("cat-mid")})
		return repo
	}

	tests := []struct {
		name        string
		input       usecase.UpdateCategoryInput
		expectedErr error
	}{
		{
			name: "rename",
			input: usecase.UpdateCategoryInput{
				WorkspaceID: "ws-1",
				ID:          "cat-leaf",
				Name:        strPtr("Dining"),
			},
		},
		{
			name: "reparent under other group",
			input: usecase.UpdateCategoryInput{
				WorkspaceID: "ws-1",
				ID:          "cat-leaf",
				ParentID:    strPtr("cat-root"),
			},
		},
		{
			name: "clear parent",
			input: usecase.UpdateCategoryInput{
				WorkspaceID: "ws-1",
				ID:          "cat-leaf",
				ParentID:    strPtr(""),
			},
		},
		{
			name: "parent is itself",
			input: usecase.UpdateCategoryInput{
				WorkspaceID: "ws-1",
				ID:          "cat-mid",
				ParentID:    strPtr("cat-mid"),
			},
			expectedErr: domain.ErrCategoryCycle,
		},
		{
			name: "parent inside own subtree",
			input: usecase.UpdateCategoryInput{
				WorkspaceID: "ws-1",
				ID:          "cat-root",
				ParentID:    strPtr("cat-mid"),
			},
			expectedErr: domain.ErrCategoryCycle,
		},
		{
			name: "leaf parent refused",
			input: usecase.UpdateCategoryInput{
				WorkspaceID: "ws-1",
				ID:          "cat-mid",
				ParentID:    strPtr("cat-leaf"),
			},
			expectedErr: domain.ErrCategoryNotLeaf,
		},
		{
			name: "unknown category",
			input: usecase.UpdateCategoryInput{
				WorkspaceID: "ws-1",
				ID:          "cat-gone",
				Name:        strPtr("Renamed"),
			},
			expectedErr: domain.ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepo()
			uc := usecase.NewCategoryUseCase(repo, mocks.NewMockTransactionRepository(), mocks.NewMockIDGenerator())

			updated, err := uc.UpdateCategory(context.Background(), tt.input)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			stored, err := repo.GetByID(context.Background(), "ws-1", tt.input.ID)
			if err != nil {
				t.Fatalf("stored category missing: %v", err)
			}
			if tt.input.Name != nil && stored.Name != *tt.input.Name {
				t.Fatalf("expected name %q, got %q", *tt.input.Name, stored.Name)
			}
			if tt.input.ParentID != nil {
				switch {
				case *tt.input.ParentID == "" && stored.ParentID != nil:
					t.Fatalf("expected parent cleared, got %v", *stored.ParentID)
				case *tt.input.ParentID != "" && (stored.ParentID == nil || *stored.ParentID != *tt.input.ParentID):
					t.Fatalf("expected parent %q, got %v", *tt.input.ParentID, stored.ParentID)
				}
			}
			if updated.UpdatedAt.IsZero() {
				t.Fatal("expected updated_at to be set")
			}
		})
	}
}

func TestCategoryUseCase_DeleteCategory(t *testing.T) {
	tests := []struct {
		name        string
		hasChildren bool
		inUse       bool
		expectedErr error
	}{
		{name: "deletes unused leaf"},
		{name: "children block deletion", hasChildren: true, expectedErr: domain.ErrCategoryHasChildren},
		{name: "transactions block deletion", inUse: true, expectedErr: domain.ErrCategoryInUse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categoryRepo := mocks.NewMockCategoryRepository()
			categoryRepo.Seed(&domain.Category{ID: "cat-1", WorkspaceID: "ws-1", Name: "Cat", Kind: domain.CategoryExpense})
			categoryRepo.HasChildrenFunc = func(ctx context.Context, workspaceID, id string) (bool, error) {
				return tt.hasChildren, nil
			}
			categoryRepo.HasTransactionsFunc = func(ctx context.Context, workspaceID, id string) (bool, error) {
				return tt.inUse, nil
			}

			uc := usecase.NewCategoryUseCase(categoryRepo, mocks.NewMockTransactionRepository(), mocks.NewMockIDGenerator())

			err := uc.DeleteCategory(context.Background(), "ws-1", "cat-1")

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := categoryRepo.GetByID(context.Background(), "ws-1", "cat-1"); !errors.Is(err, domain.ErrCategoryNotFound) {
				t.Fatal("expected the category to be gone")
			}
		})
	}
}

func TestCategoryUseCase_AggregateTree(t *testing.T) {
	categoryRepo := mocks.NewMockCategoryRepository()
	categoryRepo.Seed(&domain.Category{ID: "food", WorkspaceID: "ws-1", Name: "Food", Kind: domain.CategoryGroup})
	categoryRepo.Seed(&domain.Category{ID: "groceries", WorkspaceID: "ws-1", Name: "Groceries", Kind: domain.CategoryExpense, ParentID: strPtr("food")})
	categoryRepo.Seed(&domain.Category{ID: "restaurants", WorkspaceID: "ws-1", Name: "Restaurants", Kind: domain.CategoryExpense, ParentID: strPtr("food")})

	transactionRepo := mocks.NewMockTransactionRepository()
	transactionRepo.SumByCategoryFunc = func(ctx context.Context, workspaceID string, categoryIDs []string, from, to time.Time) (map[string]decimal.Decimal, error) {
		if len(categoryIDs) != 2 {
			t.Fatalf("expected only leaf ids, got %v", categoryIDs)
		}
		return map[string]decimal.Decimal{
			"groceries":   decimal.NewFromInt(320),
			"restaurants": decimal.NewFromInt(80),
		}, nil
	}

	uc := usecase.NewCategoryUseCase(categoryRepo, transactionRepo, mocks.NewMockIDGenerator())

	roots, err := uc.AggregateTree(context.Background(), usecase.AggregateTreeInput{
		WorkspaceID: "ws-1",
		From:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	if !roots[0].Total.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected group total 400, got %s", roots[0].Total)
	}
	if len(roots[0].Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(roots[0].Children))
	}
}

func TestCategoryUseCase_AggregateTree_InvalidRange(t *testing.T) {
	uc := usecase.NewCategoryUseCase(mocks.NewMockCategoryRepository(), mocks.NewMockTransactionRepository(), mocks.NewMockIDGenerator())

	_, err := uc.AggregateTree(context.Background(), usecase.AggregateTreeInput{
		WorkspaceID: "ws-1",
		From:        time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	if !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}
