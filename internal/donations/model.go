// Package donations exposes the upstream donations module as a read-only
// collaborator. The ledger never writes here.
package donations

import "time"

// Status enumerates upstream donation states. Only Recorded donations are
// eligible for ledger sync.
type Status string

const (
	StatusPledged  Status = "Pledged"
	StatusRecorded Status = "Recorded"
	StatusRefunded Status = "Refunded"
)

// Channel enumerates how a donation was received.
type Channel string

const (
	ChannelCash         Channel = "Cash"
	ChannelBankTransfer Channel = "Bank Transfer"
	ChannelUPI          Channel = "UPI"
	ChannelOnline       Channel = "Online"
	ChannelCheque       Channel = "Cheque"
)

// Donation is one upstream donation record.
type Donation struct {
	DonationID string    `json:"donationId"`
	DonorName  string    `json:"donorName"`
	Amount     float64   `json:"amount"`
	Date       time.Time `json:"date"`
	Status     Status    `json:"status"`
	Channel    Channel   `json:"channel"`
	Purpose    string    `json:"purpose"`
}
