package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// MetricsRecorder receives posting counters. Implemented by
// observability.Metrics; nil disables recording.
type MetricsRecorder interface {
	TransactionPosted()
	TransactionVoided()
}

// Service coordinates chart-of-accounts management and journal posting.
type Service struct {
	store   *Store
	logger  *slog.Logger
	metrics MetricsRecorder
	now     func() time.Time
}

// NewService constructs the ledger service.
func NewService(store *Store, logger *slog.Logger, metrics MetricsRecorder) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger, metrics: metrics, now: time.Now}
}

// WithNow overrides the clock for testing.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// AddAccount creates a chart-of-accounts node. The id is derived from the
// type prefix and code; collisions and missing parents are rejected before
// any state changes.
func (s *Service) AddAccount(ctx context.Context, input AddAccountInput) (Account, error) {
	if err := input.Validate(); err != nil {
		return Account{}, err
	}
	account := Account{
		ID:          input.AccountID(),
		Code:        input.Code,
		Name:        input.Name,
		Type:        input.Type,
		Description: input.Description,
	}
	if input.ParentAccountID != "" {
		account.ParentAccountID = &input.ParentAccountID
	}
	err := s.store.Update(ctx, func(state *State) error {
		if _, exists := state.AccountByID(account.ID); exists {
			return fmt.Errorf("%w: %s", ErrDuplicateAccount, account.ID)
		}
		if account.ParentAccountID != nil {
			if _, ok := state.AccountByID(*account.ParentAccountID); !ok {
				return fmt.Errorf("%w: %s", ErrParentNotFound, *account.ParentAccountID)
			}
		}
		state.Accounts = append(state.Accounts, account)
		return nil
	})
	if err != nil {
		return Account{}, err
	}
	s.logger.Info("account created",
		slog.String("id", account.ID),
		slog.String("type", string(account.Type)))
	return account, nil
}

// PostTransaction validates and appends a balanced journal entry. The whole
// operation is atomic: either the transaction is committed, recomputed, and
// persisted, or the store is untouched.
func (s *Service) PostTransaction(ctx context.Context, input PostingInput) (Transaction, error) {
	if err := input.Validate(); err != nil {
		return Transaction{}, err
	}
	now := s.now()
	date := input.Date
	if date.IsZero() {
		date = now
	}
	createdBy := input.CreatedBy
	if createdBy == "" {
		createdBy = "system"
	}
	var txn Transaction
	err := s.store.Update(ctx, func(state *State) error {
		for _, entry := range input.Entries {
			if _, ok := state.AccountByID(entry.AccountID); !ok {
				return fmt.Errorf("%w: %s", ErrUnknownAccount, entry.AccountID)
			}
		}
		entries := make([]LedgerEntry, 0, len(input.Entries))
		for _, entry := range input.Entries {
			entries = append(entries, LedgerEntry(entry))
		}
		postedAt := now
		txn = Transaction{
			ID:            nextTransactionID(state.Transactions, now.Year()),
			Date:          date,
			Description:   input.Description,
			Entries:       entries,
			ReferenceID:   input.ReferenceID,
			ReferenceType: input.ReferenceType,
			Status:        TransactionStatusPosted,
			CreatedBy:     createdBy,
			CreatedAt:     now,
			PostedAt:      &postedAt,
		}
		state.Transactions = append([]Transaction{txn}, state.Transactions...)
		return nil
	})
	if err != nil {
		return Transaction{}, err
	}
	if s.metrics != nil {
		s.metrics.TransactionPosted()
	}
	s.logger.Info("transaction posted",
		slog.String("id", txn.ID),
		slog.String("reference", txn.ReferenceID))
	return txn, nil
}

// VoidTransaction flips a Posted transaction to Void and recomputes
// balances. The journal stays append-only: entries are never removed.
func (s *Service) VoidTransaction(ctx context.Context, id string) (Transaction, error) {
	var voided Transaction
	err := s.store.Update(ctx, func(state *State) error {
		for i := range state.Transactions {
			if state.Transactions[i].ID != id {
				continue
			}
			if state.Transactions[i].Status != TransactionStatusPosted {
				return fmt.Errorf("%w: %s is %s", ErrInvalidStatus, id, state.Transactions[i].Status)
			}
			state.Transactions[i].Status = TransactionStatusVoid
			voided = state.Transactions[i]
			return nil
		}
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	})
	if err != nil {
		return Transaction{}, err
	}
	if s.metrics != nil {
		s.metrics.TransactionVoided()
	}
	s.logger.Info("transaction voided", slog.String("id", id))
	return voided, nil
}

// Accounts returns the full chart of accounts.
func (s *Service) Accounts(ctx context.Context) ([]Account, error) {
	state, err := s.store.State(ctx)
	if err != nil {
		return nil, err
	}
	return state.Accounts, nil
}

// AccountByID looks up an account; a miss is not an error.
func (s *Service) AccountByID(ctx context.Context, id string) (Account, bool, error) {
	state, err := s.store.State(ctx)
	if err != nil {
		return Account{}, false, err
	}
	acc, ok := state.AccountByID(id)
	return acc, ok, nil
}

// Transactions returns the journal, most recent first.
func (s *Service) Transactions(ctx context.Context) ([]Transaction, error) {
	state, err := s.store.State(ctx)
	if err != nil {
		return nil, err
	}
	return state.Transactions, nil
}

// Funds returns all funds.
func (s *Service) Funds(ctx context.Context) ([]Fund, error) {
	state, err := s.store.State(ctx)
	if err != nil {
		return nil, err
	}
	return state.Funds, nil
}

// BankAccounts returns all bank accounts.
func (s *Service) BankAccounts(ctx context.Context) ([]BankAccount, error) {
	state, err := s.store.State(ctx)
	if err != nil {
		return nil, err
	}
	return state.BankAccounts, nil
}

// TrialBalance returns accounts with a non-zero computed balance.
func (s *Service) TrialBalance(ctx context.Context) ([]Account, error) {
	state, err := s.store.State(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Account, 0, len(state.Accounts))
	for _, acc := range state.Accounts {
		if acc.Balance != 0 {
			out = append(out, acc)
		}
	}
	return out, nil
}

// Subscribe exposes store change notifications.
func (s *Service) Subscribe(fn Listener) func() {
	return s.store.Subscribe(fn)
}

const txnIDPrefix = "TXN"

// nextTransactionID scans the journal for the given year's prefix and
// returns the next sequential id, zero-padded to five digits. Callers must
// hold the store lock (Update does).
func nextTransactionID(transactions []Transaction, year int) string {
	prefix := fmt.Sprintf("%s-%d-", txnIDPrefix, year)
	max := 0
	for _, txn := range transactions {
		suffix, ok := strings.CutPrefix(txn.ID, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%05d", prefix, max+1)
}
