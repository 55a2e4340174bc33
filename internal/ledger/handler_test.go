package ledger

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewStore(&memorySnapshot{}, logger)
	handler := NewHandler(logger, NewService(store, logger, nil))
	r := chi.NewRouter()
	r.Route("/ledger", handler.MountRoutes)
	return r
}

func TestHandlerAddAccount(t *testing.T) {
	router := newTestRouter(t)

	body := `{"code":"1005","name":"Petty Cash","type":"Asset"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ledger/accounts", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var account Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	require.Equal(t, "A-1005", account.ID)
	require.False(t, account.IsSystem)
	require.Zero(t, account.Balance)

	// Same code again conflicts.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ledger/accounts", strings.NewReader(body)))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandlerAddAccountRejectsBadType(t *testing.T) {
	router := newTestRouter(t)
	body := `{"code":"9001","name":"Mystery","type":"Imaginary"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ledger/accounts", strings.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerPostTransaction(t *testing.T) {
	router := newTestRouter(t)

	body := `{"description":"Hall donation","entries":[{"accountId":"A-1001","debit":500},{"accountId":"I-4001","credit":500}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ledger/transactions", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var txn Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &txn))
	require.Equal(t, TransactionStatusPosted, txn.Status)
	require.Len(t, txn.Entries, 2)
}

func TestHandlerPostTransactionUnbalanced(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ledger/transactions", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var before []Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &before))

	body := `{"description":"Test","entries":[{"accountId":"A-1001","debit":100}]}`
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ledger/transactions", strings.NewReader(body)))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ledger/transactions", nil))
	var after []Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	require.Len(t, after, len(before))
}

func TestHandlerGetAccountMiss(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ledger/accounts/A-0000", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerTrialBalanceCSV(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ledger/reports/trial-balance.csv", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Equal(t, "Account ID,Code,Name,Type,Debit,Credit", strings.TrimSpace(lines[0]))
	// Seeded opening balances guarantee at least one data row.
	require.Greater(t, len(lines), 1)
}

func TestHandlerListFundsAndBankAccounts(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ledger/funds", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var funds []Fund
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &funds))
	require.NotEmpty(t, funds)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ledger/bank-accounts", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var banks []BankAccount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &banks))
	require.NotEmpty(t, banks)
}
