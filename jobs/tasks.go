// Package jobs wires background processing for the ledger service.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/templeflow/templeflow-ledger/internal/donationsync"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeDonationSync posts new upstream donations into the ledger.
	TaskTypeDonationSync = "donations:sync"
)

// DonationSyncPayload carries scheduling metadata for a sync run.
type DonationSyncPayload struct {
	Trigger string `json:"trigger"`
}

// NewDonationSyncTask constructs an Asynq task for a donation sync run.
func NewDonationSyncTask(payload DonationSyncPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeDonationSync, data), nil
}

// DonationSyncHandler adapts the sync service to an Asynq handler. The sync
// is idempotent, so retries after transient failures are safe.
func DonationSyncHandler(service *donationsync.Service, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload DonationSyncPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		result, err := service.Sync(ctx)
		if err != nil {
			return err
		}
		logger.Info("scheduled donation sync",
			slog.String("trigger", payload.Trigger),
			slog.Int("posted", result.Count()),
			slog.Int("failed", len(result.Failed)))
		return nil
	}
}
