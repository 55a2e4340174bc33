package ledger

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// AccountType enumerates chart-of-accounts categories.
type AccountType string

const (
	AccountTypeAsset     AccountType = "Asset"
	AccountTypeLiability AccountType = "Liability"
	AccountTypeEquity    AccountType = "Equity"
	AccountTypeIncome    AccountType = "Income"
	AccountTypeExpense   AccountType = "Expense"
)

// Prefix returns the single-letter account id prefix for the type.
func (t AccountType) Prefix() string {
	if t == "" {
		return ""
	}
	return string(t[0:1])
}

// Valid reports whether the type is a known category.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// TransactionStatus enumerates journal lifecycle values.
type TransactionStatus string

const (
	TransactionStatusDraft  TransactionStatus = "Draft"
	TransactionStatusPosted TransactionStatus = "Posted"
	TransactionStatusVoid   TransactionStatus = "Void"
)

// ReferenceType links a transaction back to its originating event.
type ReferenceType string

const (
	ReferenceTypeDonation   ReferenceType = "Donation"
	ReferenceTypeExpense    ReferenceType = "Expense"
	ReferenceTypePayroll    ReferenceType = "Payroll"
	ReferenceTypeTransfer   ReferenceType = "Transfer"
	ReferenceTypeAdjustment ReferenceType = "Adjustment"
)

// FundType enumerates earmarked fund categories.
type FundType string

const (
	FundTypeGeneral    FundType = "General"
	FundTypeRestricted FundType = "Restricted"
	FundTypeEndowment  FundType = "Endowment"
	FundTypeProject    FundType = "Project"
)

// FundStatus enumerates fund lifecycle values.
type FundStatus string

const (
	FundStatusActive FundStatus = "Active"
	FundStatusClosed FundStatus = "Closed"
)

// Account models a chart-of-accounts node. Balance is derived by the
// recalculation engine and never written by callers directly.
type Account struct {
	ID              string      `json:"id"`
	Code            string      `json:"code"`
	Name            string      `json:"name"`
	Type            AccountType `json:"type"`
	ParentAccountID *string     `json:"parentAccountId,omitempty"`
	Description     string      `json:"description,omitempty"`
	Balance         float64     `json:"balance"`
	OpeningBalance  float64     `json:"openingBalance"`
	IsSystem        bool        `json:"isSystem"`
}

// LedgerEntry is one leg of a transaction. It exists only embedded in a
// Transaction and is never independently addressable.
type LedgerEntry struct {
	AccountID string  `json:"accountId"`
	Debit     float64 `json:"debit"`
	Credit    float64 `json:"credit"`
}

// Transaction is an immutable journal record. Once posted, entries never
// change; the only permitted mutation is the Posted -> Void status flip.
type Transaction struct {
	ID            string            `json:"id"`
	Date          time.Time         `json:"date"`
	Description   string            `json:"description"`
	Entries       []LedgerEntry     `json:"entries"`
	ReferenceID   string            `json:"referenceId,omitempty"`
	ReferenceType ReferenceType     `json:"referenceType,omitempty"`
	Status        TransactionStatus `json:"status"`
	CreatedBy     string            `json:"createdBy"`
	CreatedAt     time.Time         `json:"createdAt"`
	PostedAt      *time.Time        `json:"postedAt,omitempty"`
}

// Fund is an earmarked pool of money tracked outside the account tree.
type Fund struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Type    FundType   `json:"type"`
	Balance float64    `json:"balance"`
	Status  FundStatus `json:"status"`
}

// BankAccount links a physical bank account to an Asset ledger account.
type BankAccount struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	AccountNumber         string  `json:"accountNumber"`
	BankName              string  `json:"bankName"`
	IFSC                  string  `json:"ifsc"`
	LinkedLedgerAccountID string  `json:"linkedLedgerAccountId"`
	CurrentBalance        float64 `json:"currentBalance"`
}

// State is the aggregate root owned by the Store. Transactions are kept
// most-recent-first.
type State struct {
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
	Funds        []Fund        `json:"funds"`
	BankAccounts []BankAccount `json:"bankAccounts"`
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := &State{
		Accounts:     append([]Account(nil), s.Accounts...),
		Transactions: make([]Transaction, 0, len(s.Transactions)),
		Funds:        append([]Fund(nil), s.Funds...),
		BankAccounts: append([]BankAccount(nil), s.BankAccounts...),
	}
	for _, txn := range s.Transactions {
		txn.Entries = append([]LedgerEntry(nil), txn.Entries...)
		out.Transactions = append(out.Transactions, txn)
	}
	return out
}

// AccountByID looks up an account in the state.
func (s *State) AccountByID(id string) (Account, bool) {
	for _, acc := range s.Accounts {
		if acc.ID == id {
			return acc, true
		}
	}
	return Account{}, false
}

// balanceTolerance is the permitted debit/credit drift for float sums.
const balanceTolerance = 0.01

var (
	// ErrUnbalanced indicates entry debits and credits do not sum equal.
	ErrUnbalanced = errors.New("ledger: transaction entries must balance")
	// ErrNoEntries indicates a posting without entries.
	ErrNoEntries = errors.New("ledger: transaction requires at least one entry")
	// ErrUnknownAccount indicates an entry referencing a missing account.
	ErrUnknownAccount = errors.New("ledger: entry references unknown account")
	// ErrDuplicateAccount indicates an account id collision.
	ErrDuplicateAccount = errors.New("ledger: account already exists")
	// ErrParentNotFound indicates a missing parent account.
	ErrParentNotFound = errors.New("ledger: parent account not found")
	// ErrTransactionNotFound indicates a missing journal entry.
	ErrTransactionNotFound = errors.New("ledger: transaction not found")
	// ErrInvalidStatus indicates a forbidden status transition.
	ErrInvalidStatus = errors.New("ledger: invalid status transition")
	// ErrSnapshot indicates the durable snapshot write failed.
	ErrSnapshot = errors.New("ledger: snapshot write failed")
)

// EntryInput describes one leg of a posting request.
type EntryInput struct {
	AccountID string
	Debit     float64
	Credit    float64
}

// PostingInput groups fields required to post a transaction.
type PostingInput struct {
	Description   string
	Entries       []EntryInput
	ReferenceID   string
	ReferenceType ReferenceType
	Date          time.Time
	CreatedBy     string
}

// Validate checks the posting before any state is touched.
func (in PostingInput) Validate() error {
	if in.Description == "" {
		return errors.New("ledger: description required")
	}
	if len(in.Entries) == 0 {
		return ErrNoEntries
	}
	var debit, credit float64
	for idx, entry := range in.Entries {
		if entry.AccountID == "" {
			return fmt.Errorf("ledger: entry %d missing account", idx)
		}
		if entry.Debit < 0 || entry.Credit < 0 {
			return fmt.Errorf("ledger: entry %d negative amount", idx)
		}
		debit += entry.Debit
		credit += entry.Credit
	}
	if math.Abs(debit-credit) > balanceTolerance {
		return ErrUnbalanced
	}
	return nil
}

// AddAccountInput groups fields required to create an account.
type AddAccountInput struct {
	Code            string
	Name            string
	Type            AccountType
	ParentAccountID string
	Description     string
}

// Validate checks the account input before any state is touched.
func (in AddAccountInput) Validate() error {
	if in.Code == "" {
		return errors.New("ledger: account code required")
	}
	if in.Name == "" {
		return errors.New("ledger: account name required")
	}
	if !in.Type.Valid() {
		return fmt.Errorf("ledger: unknown account type %q", in.Type)
	}
	return nil
}

// AccountID derives the account id from type prefix and code.
func (in AddAccountInput) AccountID() string {
	return in.Type.Prefix() + "-" + in.Code
}
