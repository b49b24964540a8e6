package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func withTestServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	origURL, origWorkspace, origTimeout := baseURL, workspaceID, timeout
	baseURL = server.URL
	workspaceID = "ws-1"
	timeout = 5 * time.Second
	t.Cleanup(func() {
		baseURL, workspaceID, timeout = origURL, origWorkspace, origTimeout
	})
}

func TestListAccounts(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/accounts" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Workspace-ID") != "ws-1" {
			t.Fatalf("expected workspace header, got %q", r.Header.Get("X-Workspace-ID"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"acc-1","name":"Checking","balance":"250","currency":"USD","active":true}]`))
	})

	out := captureOutput(t, listAccounts)

	if !strings.Contains(out, "Accounts: 1") {
		t.Fatalf("expected account count, got %q", out)
	}

	if !strings.Contains(out, "Checking") || !strings.Contains(out, "250 USD") {
		t.Fatalf("expected account line, got %q", out)
	}
}

func TestBudgetStatus(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/budgets/budget-1/status" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"budget_id": "budget-1",
			"name": "March",
			"start_date": "2026-03-01",
			"end_date": "2026-03-31",
			"total_budgeted": "3500",
			"total_actual": "620",
			"total_deviation": "2880",
			"items": [
				{"category_id": "cat-groceries", "budgeted": "500", "actual": "620", "deviation": "-120"}
			]
		}`))
	})

	out := captureOutput(t, func() { budgetStatus("budget-1") })

	if !strings.Contains(out, "Budget: March (2026-03-01 .. 2026-03-31)") {
		t.Fatalf("expected budget header, got %q", out)
	}

	if !strings.Contains(out, "deviation=-120") {
		t.Fatalf("expected item deviation, got %q", out)
	}
}

func TestGenerateCalendar(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/calendar" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("start") != "2026-03-01" || r.URL.Query().Get("end") != "2026-03-03" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"start_date": "2026-03-01",
			"end_date": "2026-03-03",
			"opening_balance": "100",
			"closing_balance": "-800",
			"days": [
				{"date": "2026-03-01", "closing": "100", "cash_gap": false},
				{"date": "2026-03-02", "closing": "-800", "cash_gap": true},
				{"date": "2026-03-03", "closing": "-800", "cash_gap": true}
			]
		}`))
	})

	out := captureOutput(t, func() { generateCalendar("2026-03-01", "2026-03-03") })

	if !strings.Contains(out, "Opening: 100  Closing: -800") {
		t.Fatalf("expected balance line, got %q", out)
	}

	if strings.Count(out, "CASH GAP") != 2 {
		t.Fatalf("expected two cash gap lines, got %q", out)
	}
}

func TestGenerateCalendar_NoGaps(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"start_date": "2026-03-01",
			"end_date": "2026-03-01",
			"opening_balance": "100",
			"closing_balance": "100",
			"days": [{"date": "2026-03-01", "closing": "100", "cash_gap": false}]
		}`))
	})

	out := captureOutput(t, func() { generateCalendar("2026-03-01", "2026-03-01") })

	if !strings.Contains(out, "No cash gaps in the window") {
		t.Fatalf("expected no-gap message, got %q", out)
	}
}
