package repositories

import (
	"context"
)

// SequenceRepositoryFacade hands out document numbers from a dedicated
// atomic counter per (name, period), replacing last-row scans.
type SequenceRepositoryFacade interface {
	// Next increments and returns the counter for the given sequence name
	// and period (empty period for year-less sequences like journal entries).
	Next(ctx context.Context, name string, period string) (int64, error)
}
