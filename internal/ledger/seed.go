package ledger

// Account names the donation sync rules resolve against. Seeded accounts
// must keep these names or sync postings will fail item by item.
const (
	AccountNameCashOnHand       = "Cash on Hand"
	AccountNamePrimaryBank      = "Main Bank Account"
	AccountNameGeneralDonations = "General Donations"
	AccountNameHundiCash        = "Hundi/Cash"
	AccountNameSevaRevenue      = "Seva Revenue"
	AccountNameProjectDonations = "Project Donations"
)

func strptr(s string) *string { return &s }

// DefaultState seeds the chart of accounts, funds, and bank accounts used
// on first initialization when no snapshot exists. Balances on system
// accounts are opening balances; Recalculate treats them as the floor.
func DefaultState() *State {
	state := &State{
		Accounts: []Account{
			// Asset
			{ID: "A-1000", Code: "1000", Name: "Assets", Type: AccountTypeAsset, IsSystem: true},
			{ID: "A-1001", Code: "1001", Name: AccountNameCashOnHand, Type: AccountTypeAsset, ParentAccountID: strptr("A-1000"), OpeningBalance: 125000, IsSystem: true},
			{ID: "A-1002", Code: "1002", Name: AccountNamePrimaryBank, Type: AccountTypeAsset, ParentAccountID: strptr("A-1000"), OpeningBalance: 2450000, IsSystem: true},
			{ID: "A-1003", Code: "1003", Name: "Fixed Deposits", Type: AccountTypeAsset, ParentAccountID: strptr("A-1000"), OpeningBalance: 5000000, IsSystem: true},
			// Liability
			{ID: "L-2000", Code: "2000", Name: "Liabilities", Type: AccountTypeLiability, IsSystem: true},
			{ID: "L-2001", Code: "2001", Name: "Vendor Payables", Type: AccountTypeLiability, ParentAccountID: strptr("L-2000"), OpeningBalance: 185000, IsSystem: true},
			// Equity
			{ID: "E-3000", Code: "3000", Name: "Trust Corpus", Type: AccountTypeEquity, OpeningBalance: 7390000, IsSystem: true},
			// Income
			{ID: "I-4000", Code: "4000", Name: "Income", Type: AccountTypeIncome, IsSystem: true},
			{ID: "I-4001", Code: "4001", Name: AccountNameGeneralDonations, Type: AccountTypeIncome, ParentAccountID: strptr("I-4000"), IsSystem: true},
			{ID: "I-4002", Code: "4002", Name: AccountNameHundiCash, Type: AccountTypeIncome, ParentAccountID: strptr("I-4000"), IsSystem: true},
			{ID: "I-4003", Code: "4003", Name: AccountNameSevaRevenue, Type: AccountTypeIncome, ParentAccountID: strptr("I-4000"), IsSystem: true},
			{ID: "I-4004", Code: "4004", Name: AccountNameProjectDonations, Type: AccountTypeIncome, ParentAccountID: strptr("I-4000"), IsSystem: true},
			// Expense
			{ID: "E-5000", Code: "5000", Name: "Expenses", Type: AccountTypeExpense, IsSystem: true},
			{ID: "E-5001", Code: "5001", Name: "Priest Salaries", Type: AccountTypeExpense, ParentAccountID: strptr("E-5000"), IsSystem: true},
			{ID: "E-5002", Code: "5002", Name: "Prasadam Supplies", Type: AccountTypeExpense, ParentAccountID: strptr("E-5000"), IsSystem: true},
			{ID: "E-5003", Code: "5003", Name: "Utilities & Maintenance", Type: AccountTypeExpense, ParentAccountID: strptr("E-5000"), IsSystem: true},
		},
		Funds: []Fund{
			{ID: "FND-001", Name: "General Fund", Type: FundTypeGeneral, Balance: 1250000, Status: FundStatusActive},
			{ID: "FND-002", Name: "Annadanam Fund", Type: FundTypeRestricted, Balance: 480000, Status: FundStatusActive},
			{ID: "FND-003", Name: "Gopuram Renovation", Type: FundTypeProject, Balance: 2150000, Status: FundStatusActive},
			{ID: "FND-004", Name: "Perpetual Endowment", Type: FundTypeEndowment, Balance: 5000000, Status: FundStatusActive},
		},
		BankAccounts: []BankAccount{
			{ID: "BNK-001", Name: "Trust Operating Account", AccountNumber: "50100234567890", BankName: "State Bank of India", IFSC: "SBIN0001234", LinkedLedgerAccountID: "A-1002", CurrentBalance: 2450000},
			{ID: "BNK-002", Name: "Endowment Deposit Account", AccountNumber: "50100987654321", BankName: "Canara Bank", IFSC: "CNRB0005678", LinkedLedgerAccountID: "A-1003", CurrentBalance: 5000000},
		},
	}
	Recalculate(state)
	return state
}
