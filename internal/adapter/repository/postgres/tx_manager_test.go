package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
)

func newPoolMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func TestTxManagerCommit(t *testing.T) {
	pool := newPoolMock(t)
	pool.ExpectBegin()
	pool.ExpectCommit()

	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, ok := tx.(*Tx); !ok {
		t.Fatalf("expected *Tx, got %T", tx)
	}

	if err := tx.Commit(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestTxManagerRollback(t *testing.T) {
	pool := newPoolMock(t)
	pool.ExpectBegin()
	pool.ExpectRollback()

	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	if err := tx.Rollback(context.Background()); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestTxManagerBeginFails(t *testing.T) {
	pool := newPoolMock(t)
	boom := errors.New("pool exhausted")
	pool.ExpectBegin().WillReturnError(boom)

	if _, err := newTxManagerWithPool(pool).Begin(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("want begin error, got %v", err)
	}
}
