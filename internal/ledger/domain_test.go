package ledger

import (
	"errors"
	"testing"
)

func TestPostingInputValidateBalanced(t *testing.T) {
	input := PostingInput{
		Description: "balanced",
		Entries: []EntryInput{
			{AccountID: "A-1001", Debit: 500},
			{AccountID: "I-4001", Credit: 500},
		},
	}
	if err := input.Validate(); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestPostingInputValidateWithinTolerance(t *testing.T) {
	input := PostingInput{
		Description: "rounding drift",
		Entries: []EntryInput{
			{AccountID: "A-1001", Debit: 100.005},
			{AccountID: "I-4001", Credit: 100},
		},
	}
	if err := input.Validate(); err != nil {
		t.Fatalf("expected drift within tolerance to pass, got %v", err)
	}
}

func TestPostingInputValidateUnbalanced(t *testing.T) {
	input := PostingInput{
		Description: "Test",
		Entries: []EntryInput{
			{AccountID: "A-1001", Debit: 100},
		},
	}
	if err := input.Validate(); !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("expected ErrUnbalanced, got %v", err)
	}
}

func TestPostingInputValidateNoEntries(t *testing.T) {
	input := PostingInput{Description: "empty"}
	if err := input.Validate(); !errors.Is(err, ErrNoEntries) {
		t.Fatalf("expected ErrNoEntries, got %v", err)
	}
}

func TestPostingInputValidateNegativeAmount(t *testing.T) {
	input := PostingInput{
		Description: "negative",
		Entries: []EntryInput{
			{AccountID: "A-1001", Debit: -50},
			{AccountID: "I-4001", Credit: -50},
		},
	}
	if err := input.Validate(); err == nil {
		t.Fatal("expected negative amount to be rejected")
	}
}

func TestAddAccountInputAccountID(t *testing.T) {
	cases := []struct {
		typ  AccountType
		code string
		want string
	}{
		{AccountTypeAsset, "1005", "A-1005"},
		{AccountTypeLiability, "2100", "L-2100"},
		{AccountTypeEquity, "3100", "E-3100"},
		{AccountTypeIncome, "4100", "I-4100"},
		{AccountTypeExpense, "5100", "E-5100"},
	}
	for _, tc := range cases {
		got := AddAccountInput{Code: tc.code, Type: tc.typ}.AccountID()
		if got != tc.want {
			t.Fatalf("AccountID(%s, %s) = %s, want %s", tc.typ, tc.code, got, tc.want)
		}
	}
}

func TestStateCloneIsIndependent(t *testing.T) {
	state := DefaultState()
	state.Transactions = []Transaction{{
		ID:      "TXN-2026-00001",
		Entries: []LedgerEntry{{AccountID: "A-1001", Debit: 10}},
		Status:  TransactionStatusPosted,
	}}
	clone := state.Clone()
	clone.Accounts[0].Name = "mutated"
	clone.Transactions[0].Entries[0].Debit = 999
	if state.Accounts[0].Name == "mutated" {
		t.Fatal("clone shares account storage with original")
	}
	if state.Transactions[0].Entries[0].Debit == 999 {
		t.Fatal("clone shares entry storage with original")
	}
}
