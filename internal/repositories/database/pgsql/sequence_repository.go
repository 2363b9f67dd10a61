package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/repositories"
)

type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool *pgxpool.Pool) *PgxSequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepositoryFacade = (*PgxSequenceRepository)(nil)

// Next increments the counter for (name, period) atomically via upsert. The
// row lock taken by the UPDATE serialises concurrent callers, so two
// documents can never draw the same number.
func (r *PgxSequenceRepository) Next(ctx context.Context, name string, period string) (int64, error) {
	query := `
		INSERT INTO sequences (name, period, current_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (name, period)
		DO UPDATE SET current_value = sequences.current_value + 1
		RETURNING current_value;
	`
	var value int64
	if err := r.Pool.QueryRow(ctx, query, name, period).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s/%s: %w", name, period, err)
	}
	return value, nil
}
