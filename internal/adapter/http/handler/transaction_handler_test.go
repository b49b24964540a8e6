package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack/internal/domain"
	"github.com/fintrack/fintrack/internal/matcher"
)

func TestTransactionHandler_Create_Income(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount("acc-1", 1000)
	env.seedCategory("cat-salary", domain.CategoryIncome)

	body := `{"amount":"2500","date":"2026-03-05T10:30:00Z","flow":"income","destination_id":"acc-1","category_id":"cat-salary","comment":"march salary"}`
	rec := env.do(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "income", resp["flow"])
	assert.Equal(t, "2500", resp["amount"])
	assert.Equal(t, "acc-1", resp["destination_id"])

	// The balance effect lands on the destination account.
	rec = env.do(http.MethodGet, "/api/v1/accounts/acc-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var account map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, "3500", account["balance"])
}

func TestTransactionHandler_Create_InvalidShape(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount("acc-1", 1000)

	// Income must not carry a source account.
	body := `{"amount":"100","date":"2026-03-05T00:00:00Z","flow":"income","source_id":"acc-1","destination_id":"acc-1","category_id":"cat-1"}`
	rec := env.do(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransactionHandler_Create_UnknownAccount(t *testing.T) {
	env := newTestEnv(t)
	env.seedCategory("cat-salary", domain.CategoryIncome)

	body := `{"amount":"100","date":"2026-03-05T00:00:00Z","flow":"income","destination_id":"ghost","category_id":"cat-salary"}`
	rec := env.do(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTransactionHandler_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount("acc-1", 1000)
	env.seedCategory("cat-food", domain.CategoryExpense)

	body := `{"amount":"100","date":"2026-03-05T00:00:00Z","flow":"expense","source_id":"acc-1","category_id":"cat-food"}`
	rec := env.do(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created["id"].(string)

	rec = env.do(http.MethodPatch, "/api/v1/transactions/"+id, strings.NewReader(`{"amount":"250"}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, "/api/v1/accounts/acc-1", nil)
	var account map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, "750", account["balance"])

	rec = env.do(http.MethodDelete, "/api/v1/transactions/"+id, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/accounts/acc-1", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, "1000", account["balance"])

	rec = env.do(http.MethodGet, "/api/v1/transactions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTransactionHandler_Import(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount("acc-1", 1000)
	env.seedCategory("cat-food", domain.CategoryExpense)
	env.ruleRepo.Rules = []matcher.Rule{
		{Keyword: "grocery", CategoryID: "cat-food", Flow: domain.FlowExpense},
	}

	body := `{"rows":[
		{"description":"GROCERY STORE 42","amount":"80","date":"2026-03-02T00:00:00Z","flow":"expense","account_id":"acc-1"},
		{"description":"UNKNOWN MERCHANT","amount":"30","date":"2026-03-03T00:00:00Z","flow":"expense","account_id":"acc-1"}
	]}`
	rec := env.do(http.MethodPost, "/api/v1/transactions/import", strings.NewReader(body))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	created := resp["created"].([]any)
	assert.Len(t, created, 1)

	skipped := resp["skipped_rows"].([]any)
	require.Len(t, skipped, 1)
	assert.Equal(t, float64(1), skipped[0])

	rec = env.do(http.MethodGet, "/api/v1/accounts/acc-1", nil)
	var account map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, "920", account["balance"])
}
