package services

import (
	portsrepo "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/services"
	"github.com/atlasvoyage/travel_accounting_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}
	notifier := NewLoggingNotifier()

	// The journal engine is wired first since booking, reconciliation and
	// cancellation all post through it.
	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.AccountRepo,
		repos.SequenceRepo,
		cfg.BaseCurrency,
	)

	container.Account = NewAccountService(repos.AccountRepo)
	container.Employee = NewEmployeeService(repos.EmployeeRepo, cfg)

	container.Booking = NewBookingService(
		repos.BookingRepo,
		repos.InvoiceRepo,
		repos.EmployeeRepo,
		repos.ExchangeRateRepo,
		repos.SequenceRepo,
		container.Journal,
		notifier,
		cfg.BaseCurrency,
		cfg.DefaultVATRate,
	)

	container.Reconciliation = NewReconciliationService(
		repos.ReceiptRepo,
		repos.InvoiceRepo,
		repos.BookingRepo,
		repos.SequenceRepo,
		container.Journal,
	)

	container.Cancellation = NewCancellationService(
		repos.BookingRepo,
		repos.InvoiceRepo,
		repos.SequenceRepo,
		container.Journal,
		notifier,
	)

	return container
}
