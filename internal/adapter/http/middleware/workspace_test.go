package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWorkspace_RejectsMissingHeader(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	rr := httptest.NewRecorder()

	Workspace(next).ServeHTTP(rr, req)

	if called {
		t.Fatalf("handler should not run without a workspace header")
	}

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestWorkspace_PutsIDsInContext(t *testing.T) {
	var gotWorkspace, gotActor string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotWorkspace = WorkspaceID(r.Context())
		gotActor = ActorID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set(WorkspaceIDHeader, "ws-42")
	req.Header.Set(ActorIDHeader, "user-7")
	rr := httptest.NewRecorder()

	Workspace(next).ServeHTTP(rr, req)

	if gotWorkspace != "ws-42" {
		t.Fatalf("expected workspace ws-42, got %q", gotWorkspace)
	}

	if gotActor != "user-7" {
		t.Fatalf("expected actor user-7, got %q", gotActor)
	}
}

func TestWorkspace_ActorIsOptional(t *testing.T) {
	var gotActor string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor = ActorID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set(WorkspaceIDHeader, "ws-42")
	rr := httptest.NewRecorder()

	Workspace(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	if gotActor != "" {
		t.Fatalf("expected empty actor, got %q", gotActor)
	}
}

func TestWorkspaceID_EmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if got := WorkspaceID(req.Context()); got != "" {
		t.Fatalf("expected empty workspace id, got %q", got)
	}
}
