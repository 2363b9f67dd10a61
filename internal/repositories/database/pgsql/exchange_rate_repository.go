package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlasvoyage/travel_accounting_app/internal/apperrors"
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	portsrepo "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/repositories"
	"github.com/atlasvoyage/travel_accounting_app/internal/models"
	"github.com/atlasvoyage/travel_accounting_app/internal/utils/mapping"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(pool *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

func (r *PgxExchangeRateRepository) FindLatestRateForCurrency(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, currency_code, rate_to_base, date_effective,
			created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE currency_code = $1
		ORDER BY date_effective DESC
		LIMIT 1;
	`
	var m models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, currencyCode).Scan(
		&m.ExchangeRateID,
		&m.CurrencyCode,
		&m.RateToBase,
		&m.DateEffective,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: exchange rate for %s", apperrors.ErrNotFound, currencyCode)
		}
		return nil, fmt.Errorf("failed to query exchange rate for %s: %w", currencyCode, err)
	}

	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		INSERT INTO exchange_rates (exchange_rate_id, currency_code, rate_to_base, date_effective,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (currency_code, date_effective)
		DO UPDATE SET rate_to_base = EXCLUDED.rate_to_base,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExchangeRateID,
		m.CurrencyCode,
		m.RateToBase,
		m.DateEffective,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save exchange rate for %s: %w", m.CurrencyCode, err)
	}
	return nil
}
