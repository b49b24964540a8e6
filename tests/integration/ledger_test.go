package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack/internal/domain"
	"github.com/fintrack/fintrack/internal/usecase"
	"github.com/fintrack/fintrack/tests/testutil"
)

func TestLedgerReconciliation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	ledgerUC, accountRepo := newLedgerUseCase(testDB)

	t.Run("update moves the balance effect between accounts", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		workspaceID := testutil.GenerateID()
		first := testDB.CreateTestAccount(ctx, workspaceID, "first", decimal.NewFromInt(1000))
		second := testDB.CreateTestAccount(ctx, workspaceID, "second", decimal.NewFromInt(1000))
		category := testDB.CreateTestCategory(ctx, workspaceID, "rent", domain.CategoryExpense, nil)

		created, err := ledgerUC.CreateTransaction(ctx, usecase.CreateTransactionInput{
			WorkspaceID: workspaceID,
			ActorID:     "user-1",
			Amount:      decimal.NewFromInt(300),
			Date:        time.Now().UTC(),
			Flow:        domain.FlowExpense,
			SourceID:    &first.ID,
			CategoryID:  &category.ID,
		})
		if err != nil {
			t.Fatalf("failed to create transaction: %v", err)
		}

		_, err = ledgerUC.UpdateTransaction(ctx, usecase.UpdateTransactionInput{
			WorkspaceID: workspaceID,
			ActorID:     "user-1",
			ID:          created.ID,
			SourceID:    &second.ID,
		})
		if err != nil {
			t.Fatalf("failed to update transaction: %v", err)
		}

		firstAcc, _ := accountRepo.GetByID(ctx, workspaceID, first.ID)
		secondAcc, _ := accountRepo.GetByID(ctx, workspaceID, second.ID)

		if !firstAcc.Balance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected first account restored to 1000, got %s", firstAcc.Balance)
		}

		if !secondAcc.Balance.Equal(decimal.NewFromInt(700)) {
			t.Errorf("expected second account charged to 700, got %s", secondAcc.Balance)
		}
	})

	t.Run("delete restores the balance and is not repeatable", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		workspaceID := testutil.GenerateID()
		account := testDB.CreateTestAccount(ctx, workspaceID, "checking", decimal.NewFromInt(500))
		category := testDB.CreateTestCategory(ctx, workspaceID, "food", domain.CategoryExpense, nil)

		created, err := ledgerUC.CreateTransaction(ctx, usecase.CreateTransactionInput{
			WorkspaceID: workspaceID,
			ActorID:     "user-1",
			Amount:      decimal.NewFromInt(120),
			Date:        time.Now().UTC(),
			Flow:        domain.FlowExpense,
			SourceID:    &account.ID,
			CategoryID:  &category.ID,
		})
		if err != nil {
			t.Fatalf("failed to create transaction: %v", err)
		}

		if err := ledgerUC.DeleteTransaction(ctx, workspaceID, "user-1", created.ID); err != nil {
			t.Fatalf("failed to delete transaction: %v", err)
		}

		got, _ := accountRepo.GetByID(ctx, workspaceID, account.ID)
		if !got.Balance.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected restored balance 500, got %s", got.Balance)
		}

		err = ledgerUC.DeleteTransaction(ctx, workspaceID, "user-1", created.ID)
		if !errors.Is(err, domain.ErrTransactionNotFound) {
			t.Errorf("expected second delete to fail with not found, got %v", err)
		}

		got, _ = accountRepo.GetByID(ctx, workspaceID, account.ID)
		if !got.Balance.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected balance unchanged after repeated delete, got %s", got.Balance)
		}
	})

	t.Run("workspaces are isolated", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		wsA := testutil.GenerateID()
		wsB := testutil.GenerateID()
		account := testDB.CreateTestAccount(ctx, wsA, "checking", decimal.NewFromInt(500))
		category := testDB.CreateTestCategory(ctx, wsB, "food", domain.CategoryExpense, nil)

		_, err := ledgerUC.CreateTransaction(ctx, usecase.CreateTransactionInput{
			WorkspaceID: wsB,
			ActorID:     "user-1",
			Amount:      decimal.NewFromInt(50),
			Date:        time.Now().UTC(),
			Flow:        domain.FlowExpense,
			SourceID:    &account.ID,
			CategoryID:  &category.ID,
		})
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("expected cross-workspace account to be invisible, got %v", err)
		}

		got, _ := accountRepo.GetByID(ctx, wsA, account.ID)
		if !got.Balance.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected untouched balance 500, got %s", got.Balance)
		}
	})
}
