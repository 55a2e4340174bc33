package donationsync

import (
	"strings"

	"github.com/templeflow/templeflow-ledger/internal/donations"
	"github.com/templeflow/templeflow-ledger/internal/ledger"
)

// incomeRule maps a donation to the income account it should credit. Rules
// are evaluated top-down, first match wins; the order encodes precedence:
// purpose overrides beat the channel override.
type incomeRule struct {
	Name        string
	Match       func(donations.Donation) bool
	AccountName string
}

var incomeRules = []incomeRule{
	{
		Name:        "project-purpose",
		Match:       func(d donations.Donation) bool { return strings.Contains(d.Purpose, "Project") },
		AccountName: ledger.AccountNameProjectDonations,
	},
	{
		Name:        "seva-purpose",
		Match:       func(d donations.Donation) bool { return strings.Contains(d.Purpose, "Seva") },
		AccountName: ledger.AccountNameSevaRevenue,
	},
	{
		Name:        "cash-channel",
		Match:       func(d donations.Donation) bool { return d.Channel == donations.ChannelCash },
		AccountName: ledger.AccountNameHundiCash,
	},
}

// incomeAccountName resolves the income account for a donation, falling
// back to General Donations.
func incomeAccountName(d donations.Donation) string {
	for _, rule := range incomeRules {
		if rule.Match(d) {
			return rule.AccountName
		}
	}
	return ledger.AccountNameGeneralDonations
}

// assetAccountName resolves the asset account to debit: electronic channels
// land in the primary bank account, everything else is cash on hand.
func assetAccountName(d donations.Donation) string {
	switch d.Channel {
	case donations.ChannelBankTransfer, donations.ChannelUPI, donations.ChannelOnline:
		return ledger.AccountNamePrimaryBank
	}
	return ledger.AccountNameCashOnHand
}
