package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/fintrack/fintrack/internal/usecase"
)

// IdempotencyKeyHeader carries the client-chosen key for replay-safe writes.
const IdempotencyKeyHeader = "Idempotency-Key"

const defaultIdempotencyTTL = 24 * time.Hour

// processingSentinel marks a key that was claimed but whose response has not
// been recorded yet. A concurrent duplicate sees it and falls through to the
// handler instead of replaying an empty body.
const processingSentinel = "processing"

// IdempotencyMiddleware replays recorded responses for repeated POST/PUT
// requests that carry the same Idempotency-Key within one workspace.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
	ttl   time.Duration
}

// NewIdempotencyMiddleware creates an IdempotencyMiddleware. A non-positive
// ttl falls back to 24 hours.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl}
}

// Wrap applies idempotency checking to mutating requests.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		clientKey := r.Header.Get(IdempotencyKeyHeader)
		if clientKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		// Keys are namespaced per workspace so tenants cannot replay each
		// other's responses.
		key := WorkspaceID(r.Context()) + ":" + clientKey

		seen, recorded, err := m.store.CheckAndSet(r.Context(), key, nil, m.ttl)
		if err != nil {
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		if seen && len(recorded) > 0 && string(recorded) != processingSentinel {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Idempotency-Replay", "true")
			w.Write(recorded)
			return
		}

		buf := &bufferedResponse{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			status:         http.StatusOK,
		}
		next.ServeHTTP(buf, r)

		// Record only successful outcomes; a failed request may be retried.
		if buf.status >= 200 && buf.status < 300 {
			m.store.Update(r.Context(), key, buf.body.Bytes(), m.ttl)
		}
	})
}

type bufferedResponse struct {
	http.ResponseWriter

	status int
	body   *bytes.Buffer
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.body.Write(p)
	return b.ResponseWriter.Write(p)
}

func (b *bufferedResponse) WriteHeader(status int) {
	b.status = status
	b.ResponseWriter.WriteHeader(status)
}
