package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

func newStore(t *testing.T) (*IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewIdempotencyStore(client), mr
}

func TestCheckAndSetClaimsFreshKey(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	seen, resp, err := store.CheckAndSet(ctx, "ws-1:tx-create", nil, time.Minute)
	if err != nil {
		t.Fatalf("CheckAndSet: %v", err)
	}
	if seen || resp != nil {
		t.Fatalf("fresh key should not be seen, got seen=%v resp=%q", seen, resp)
	}

	got, err := mr.Get(keyPrefix + "ws-1:tx-create")
	if err != nil {
		t.Fatalf("key was not claimed: %v", err)
	}
	if got != pendingMarker {
		t.Fatalf("expected pending marker, got %q", got)
	}
}

func TestCheckAndSetReturnsRecordedResponse(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	if err := mr.Set(keyPrefix+"ws-1:key-9", `{"id":"txn-1"}`); err != nil {
		t.Fatalf("seed: %v", err)
	}

	seen, resp, err := store.CheckAndSet(ctx, "ws-1:key-9", nil, time.Minute)
	if err != nil {
		t.Fatalf("CheckAndSet: %v", err)
	}
	if !seen || string(resp) != `{"id":"txn-1"}` {
		t.Fatalf("expected recorded response, got seen=%v resp=%q", seen, resp)
	}
}

func TestUpdateRecordsFinalResponse(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "ws-1:budget", nil, time.Minute); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := store.Update(ctx, "ws-1:budget", []byte(`{"id":"budget-1"}`), time.Minute); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := mr.Get(keyPrefix + "ws-1:budget")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `{"id":"budget-1"}` {
		t.Fatalf("expected final response, got %q", got)
	}
}

func TestClaimExpires(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "ws-1:stale", nil, time.Second); err != nil {
		t.Fatalf("claim: %v", err)
	}

	mr.FastForward(2 * time.Second)

	seen, _, err := store.CheckAndSet(ctx, "ws-1:stale", nil, time.Second)
	if err != nil {
		t.Fatalf("CheckAndSet after expiry: %v", err)
	}
	if seen {
		t.Fatalf("expired claim should be claimable again")
	}
}
