package middleware

import (
	"context"
	"net/http"
)

const (
	// WorkspaceIDHeader carries the tenant scope of a request.
	WorkspaceIDHeader = "X-Workspace-ID"
	// ActorIDHeader identifies who performed a mutation, for audit trails.
	ActorIDHeader = "X-Actor-ID"
)

type contextKey string

const (
	workspaceIDKey contextKey = "workspace_id"
	actorIDKey     contextKey = "actor_id"
)

// Workspace extracts the workspace and actor headers into the request
// context. Requests without a workspace id are rejected; every resource in
// the API is tenant-scoped.
func Workspace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		workspaceID := r.Header.Get(WorkspaceIDHeader)
		if workspaceID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"missing ` + WorkspaceIDHeader + ` header"}`))
			return
		}

		ctx := context.WithValue(r.Context(), workspaceIDKey, workspaceID)
		if actorID := r.Header.Get(ActorIDHeader); actorID != "" {
			ctx = context.WithValue(ctx, actorIDKey, actorID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WorkspaceID returns the workspace id stored in the context.
func WorkspaceID(ctx context.Context) string {
	id, _ := ctx.Value(workspaceIDKey).(string)
	return id
}

// ActorID returns the actor id stored in the context, if any.
func ActorID(ctx context.Context) string {
	id, _ := ctx.Value(actorIDKey).(string)
	return id
}
