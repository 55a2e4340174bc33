// Package donationsync posts upstream donations into the ledger exactly
// once each, keyed by donation id.
package donationsync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/templeflow/templeflow-ledger/internal/donations"
	"github.com/templeflow/templeflow-ledger/internal/ledger"
)

// Poster is the slice of the ledger service the adapter needs.
type Poster interface {
	PostTransaction(ctx context.Context, input ledger.PostingInput) (ledger.Transaction, error)
	Transactions(ctx context.Context) ([]ledger.Transaction, error)
	Accounts(ctx context.Context) ([]ledger.Account, error)
}

// MetricsRecorder receives sync outcome counters.
type MetricsRecorder interface {
	DonationSynced()
	DonationSyncFailed()
}

// Failure describes one donation that could not be posted.
type Failure struct {
	DonationID string `json:"donationId"`
	Reason     string `json:"reason"`
}

// Result summarizes one sync run. Failed items never abort the batch.
type Result struct {
	Posted []string  `json:"posted"`
	Failed []Failure `json:"failed"`
}

// Count returns the number of newly posted transactions.
func (r Result) Count() int {
	return len(r.Posted)
}

// Service reads upstream donations and posts the missing ones.
type Service struct {
	source  donations.Source
	poster  Poster
	logger  *slog.Logger
	metrics MetricsRecorder
}

// NewService constructs the sync adapter.
func NewService(source donations.Source, poster Poster, logger *slog.Logger, metrics MetricsRecorder) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, poster: poster, logger: logger, metrics: metrics}
}

// Sync posts every Recorded donation whose id is not yet referenced by a
// ledger transaction. Each donation is posted independently; failures are
// collected, not propagated, so one bad record cannot strand the rest of
// the batch. Re-running with no new donations posts nothing.
func (s *Service) Sync(ctx context.Context) (Result, error) {
	runID := uuid.New().String()
	var result Result

	records, err := s.source.ListDonations(ctx)
	if err != nil {
		return result, fmt.Errorf("donationsync: read upstream: %w", err)
	}
	existing, err := s.poster.Transactions(ctx)
	if err != nil {
		return result, fmt.Errorf("donationsync: read journal: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, txn := range existing {
		if txn.ReferenceID != "" {
			seen[txn.ReferenceID] = true
		}
	}
	accountIDs, err := s.accountIDsByName(ctx)
	if err != nil {
		return result, err
	}

	for _, d := range records {
		if d.Status != donations.StatusRecorded || seen[d.DonationID] {
			continue
		}
		// Duplicate upstream ids within one batch must still post once.
		seen[d.DonationID] = true

		if err := s.postDonation(ctx, d, accountIDs); err != nil {
			result.Failed = append(result.Failed, Failure{DonationID: d.DonationID, Reason: err.Error()})
			if s.metrics != nil {
				s.metrics.DonationSyncFailed()
			}
			s.logger.Warn("donation sync item failed",
				slog.String("run", runID),
				slog.String("donation", d.DonationID),
				slog.Any("error", err))
			continue
		}
		result.Posted = append(result.Posted, d.DonationID)
		if s.metrics != nil {
			s.metrics.DonationSynced()
		}
	}

	s.logger.Info("donation sync completed",
		slog.String("run", runID),
		slog.Int("posted", len(result.Posted)),
		slog.Int("failed", len(result.Failed)))
	return result, nil
}

func (s *Service) postDonation(ctx context.Context, d donations.Donation, accountIDs map[string]string) error {
	assetID, ok := accountIDs[assetAccountName(d)]
	if !ok {
		return fmt.Errorf("donationsync: asset account %q not in chart", assetAccountName(d))
	}
	incomeID, ok := accountIDs[incomeAccountName(d)]
	if !ok {
		return fmt.Errorf("donationsync: income account %q not in chart", incomeAccountName(d))
	}
	_, err := s.poster.PostTransaction(ctx, ledger.PostingInput{
		Description: fmt.Sprintf("Donation from %s", d.DonorName),
		Entries: []ledger.EntryInput{
			{AccountID: assetID, Debit: d.Amount},
			{AccountID: incomeID, Credit: d.Amount},
		},
		ReferenceID:   d.DonationID,
		ReferenceType: ledger.ReferenceTypeDonation,
		Date:          d.Date,
		CreatedBy:     "donation-sync",
	})
	return err
}

func (s *Service) accountIDsByName(ctx context.Context) (map[string]string, error) {
	accounts, err := s.poster.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("donationsync: read accounts: %w", err)
	}
	out := make(map[string]string, len(accounts))
	for _, acc := range accounts {
		out[acc.Name] = acc.ID
	}
	return out, nil
}
