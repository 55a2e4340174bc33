package ledger

import (
	"math"
	"testing"
	"time"
)

func testAccount(id string, typ AccountType, opening float64, system bool) Account {
	return Account{ID: id, Code: id[2:], Name: id, Type: typ, OpeningBalance: opening, IsSystem: system}
}

func postedTxn(id string, entries ...LedgerEntry) Transaction {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return Transaction{ID: id, Date: now, Entries: entries, Status: TransactionStatusPosted, CreatedAt: now}
}

func TestRecalculateFoldRules(t *testing.T) {
	state := &State{
		Accounts: []Account{
			testAccount("A-1001", AccountTypeAsset, 0, false),
			testAccount("L-2001", AccountTypeLiability, 0, false),
			testAccount("E-3001", AccountTypeEquity, 0, false),
			testAccount("I-4001", AccountTypeIncome, 0, false),
			testAccount("E-5001", AccountTypeExpense, 0, false),
		},
		Transactions: []Transaction{
			postedTxn("TXN-2026-00001",
				LedgerEntry{AccountID: "A-1001", Debit: 1000},
				LedgerEntry{AccountID: "I-4001", Credit: 1000}),
			postedTxn("TXN-2026-00002",
				LedgerEntry{AccountID: "E-5001", Debit: 300},
				LedgerEntry{AccountID: "A-1001", Credit: 300}),
			postedTxn("TXN-2026-00003",
				LedgerEntry{AccountID: "A-1001", Debit: 200},
				LedgerEntry{AccountID: "L-2001", Credit: 150},
				LedgerEntry{AccountID: "E-3001", Credit: 50}),
		},
	}
	Recalculate(state)
	want := map[string]float64{
		"A-1001": 900, // +1000 -300 +200
		"L-2001": 150,
		"E-3001": 50,
		"I-4001": 1000,
		"E-5001": 300,
	}
	for id, expected := range want {
		acc, _ := state.AccountByID(id)
		if math.Abs(acc.Balance-expected) > 1e-9 {
			t.Fatalf("%s balance = %.2f, want %.2f", id, acc.Balance, expected)
		}
	}
}

func TestRecalculateOpeningBalanceFloor(t *testing.T) {
	state := &State{
		Accounts: []Account{
			testAccount("A-1001", AccountTypeAsset, 500, true),
			testAccount("A-1002", AccountTypeAsset, 0, true),
			testAccount("I-4001", AccountTypeIncome, 0, false),
		},
		Transactions: []Transaction{
			postedTxn("TXN-2026-00001",
				LedgerEntry{AccountID: "A-1001", Debit: 100},
				LedgerEntry{AccountID: "I-4001", Credit: 100}),
		},
	}
	// Non-system accounts never keep an opening amount.
	state.Accounts[2].OpeningBalance = 999

	Recalculate(state)
	if acc, _ := state.AccountByID("A-1001"); acc.Balance != 600 {
		t.Fatalf("system account balance = %.2f, want 600", acc.Balance)
	}
	if acc, _ := state.AccountByID("A-1002"); acc.Balance != 0 {
		t.Fatalf("zero-opening system account balance = %.2f, want 0", acc.Balance)
	}
	if acc, _ := state.AccountByID("I-4001"); acc.Balance != 100 {
		t.Fatalf("income balance = %.2f, want 100", acc.Balance)
	}
}

func TestRecalculateExcludesVoidAndDraft(t *testing.T) {
	void := postedTxn("TXN-2026-00001",
		LedgerEntry{AccountID: "A-1001", Debit: 100},
		LedgerEntry{AccountID: "I-4001", Credit: 100})
	void.Status = TransactionStatusVoid
	draft := postedTxn("TXN-2026-00002",
		LedgerEntry{AccountID: "A-1001", Debit: 40},
		LedgerEntry{AccountID: "I-4001", Credit: 40})
	draft.Status = TransactionStatusDraft

	state := &State{
		Accounts: []Account{
			testAccount("A-1001", AccountTypeAsset, 0, false),
			testAccount("I-4001", AccountTypeIncome, 0, false),
		},
		Transactions: []Transaction{void, draft},
	}
	Recalculate(state)
	if acc, _ := state.AccountByID("A-1001"); acc.Balance != 0 {
		t.Fatalf("void/draft must not affect balances, got %.2f", acc.Balance)
	}
}

func TestRecalculateSkipsUnknownAccounts(t *testing.T) {
	state := &State{
		Accounts: []Account{
			testAccount("A-1001", AccountTypeAsset, 0, false),
			testAccount("I-4001", AccountTypeIncome, 0, false),
		},
		Transactions: []Transaction{
			postedTxn("TXN-2026-00001",
				LedgerEntry{AccountID: "A-1001", Debit: 100},
				LedgerEntry{AccountID: "GONE-1", Credit: 100}),
		},
	}
	Recalculate(state)
	if acc, _ := state.AccountByID("A-1001"); acc.Balance != 100 {
		t.Fatalf("known leg should still apply, got %.2f", acc.Balance)
	}
}

// Replaying the full journal against a fresh chart must reproduce the
// balances reached by incremental recomputation after each posting.
func TestRecalculateReplayConsistency(t *testing.T) {
	fresh := func() *State {
		return &State{Accounts: []Account{
			testAccount("A-1001", AccountTypeAsset, 250, true),
			testAccount("I-4001", AccountTypeIncome, 0, false),
			testAccount("E-5001", AccountTypeExpense, 0, false),
		}}
	}
	journal := []Transaction{
		postedTxn("TXN-2026-00001",
			LedgerEntry{AccountID: "A-1001", Debit: 700},
			LedgerEntry{AccountID: "I-4001", Credit: 700}),
		postedTxn("TXN-2026-00002",
			LedgerEntry{AccountID: "E-5001", Debit: 120.50},
			LedgerEntry{AccountID: "A-1001", Credit: 120.50}),
		postedTxn("TXN-2026-00003",
			LedgerEntry{AccountID: "A-1001", Debit: 33.25},
			LedgerEntry{AccountID: "I-4001", Credit: 33.25}),
	}

	incremental := fresh()
	for _, txn := range journal {
		incremental.Transactions = append([]Transaction{txn}, incremental.Transactions...)
		Recalculate(incremental)
	}

	replayed := fresh()
	replayed.Transactions = append([]Transaction(nil), incremental.Transactions...)
	Recalculate(replayed)

	for _, acc := range incremental.Accounts {
		got, _ := replayed.AccountByID(acc.ID)
		if math.Abs(got.Balance-acc.Balance) > 1e-9 {
			t.Fatalf("%s replay balance = %.4f, incremental = %.4f", acc.ID, got.Balance, acc.Balance)
		}
	}
}
