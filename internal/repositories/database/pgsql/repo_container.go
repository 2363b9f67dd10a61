package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	bookingRepo := newPgxBookingRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	receiptRepo := newPgxReceiptRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	employeeRepo := newPgxEmployeeRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	sequenceRepo := newPgxSequenceRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		BookingRepo:      bookingRepo,
		InvoiceRepo:      invoiceRepo,
		ReceiptRepo:      receiptRepo,
		JournalRepo:      journalRepo,
		EmployeeRepo:     employeeRepo,
		ExchangeRateRepo: exchangeRateRepo,
		SequenceRepo:     sequenceRepo,
	}
}
