package donations

import "context"

// MemorySource serves a fixed donation list. Used in tests and local runs
// without the upstream database.
type MemorySource struct {
	Records []Donation
}

// ListDonations returns the fixed records.
func (m *MemorySource) ListDonations(_ context.Context) ([]Donation, error) {
	return append([]Donation(nil), m.Records...), nil
}
