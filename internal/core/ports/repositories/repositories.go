package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	BookingRepo      BookingRepositoryWithTx
	InvoiceRepo      InvoiceRepositoryWithTx
	ReceiptRepo      ReceiptRepositoryWithTx
	JournalRepo      JournalRepositoryFacade
	EmployeeRepo     EmployeeRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	SequenceRepo     SequenceRepositoryFacade
}
