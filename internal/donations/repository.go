package donations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Source lists upstream donation records.
type Source interface {
	ListDonations(ctx context.Context) ([]Donation, error)
}

// Repository reads donations from the upstream Postgres database.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the read-only repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListDonations returns all donation records, oldest first so sync postings
// land in causal order.
func (r *Repository) ListDonations(ctx context.Context) ([]Donation, error) {
	const query = `
		SELECT donation_id, donor_name, amount, donated_at, status, channel, purpose
		FROM donations
		ORDER BY donated_at, donation_id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("donations: list: %w", err)
	}
	defer rows.Close()

	var out []Donation
	for rows.Next() {
		var d Donation
		if err := rows.Scan(&d.DonationID, &d.DonorName, &d.Amount, &d.Date, &d.Status, &d.Channel, &d.Purpose); err != nil {
			return nil, fmt.Errorf("donations: scan: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("donations: rows: %w", err)
	}
	return out, nil
}
