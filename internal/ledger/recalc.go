package ledger

// Recalculate derives every account balance from the full journal. System
// accounts with a positive opening balance reset to that floor, everything
// else resets to zero, then all Posted transactions are folded in. Void and
// Draft transactions do not participate.
//
// This is a full recompute on every commit. At the ledger sizes a single
// tenant produces it is cheaper than keeping incremental deltas correct.
func Recalculate(state *State) {
	if state == nil {
		return
	}
	index := make(map[string]int, len(state.Accounts))
	for i := range state.Accounts {
		acc := &state.Accounts[i]
		acc.Balance = 0
		if acc.IsSystem && acc.OpeningBalance > 0 {
			acc.Balance = acc.OpeningBalance
		}
		index[acc.ID] = i
	}
	for _, txn := range state.Transactions {
		if txn.Status != TransactionStatusPosted {
			continue
		}
		for _, entry := range txn.Entries {
			i, ok := index[entry.AccountID]
			if !ok {
				// Old snapshots may carry entries for accounts that no
				// longer exist; posting rejects unknown accounts so this
				// cannot happen for new writes.
				continue
			}
			acc := &state.Accounts[i]
			switch acc.Type {
			case AccountTypeAsset, AccountTypeExpense:
				acc.Balance += entry.Debit - entry.Credit
			case AccountTypeLiability, AccountTypeEquity, AccountTypeIncome:
				acc.Balance += entry.Credit - entry.Debit
			}
		}
	}
}
