package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	portsrepo "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/services"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceUpdatesInTx(ctx context.Context, tx pgx.Tx, updates map[string]portsrepo.BalanceUpdate, userID string, now time.Time) error {
	args := m.Called(ctx, tx, updates, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) RecomputeAncestorBalancesInTx(ctx context.Context, tx pgx.Tx, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, userID, now)
	return args.Error(0)
}

// MockJournalRepository is a mock type for the JournalRepositoryFacade interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) PostEntry(ctx context.Context, entryID string, userID string, now time.Time) error {
	args := m.Called(ctx, entryID, userID, now)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkEntryReversed(ctx context.Context, entryID string, reversedByEntryID string, userID string, now time.Time) error {
	args := m.Called(ctx, entryID, reversedByEntryID, userID, now)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntriesBySource(ctx context.Context, sourceType domain.EntrySourceType, sourceID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, sourceType, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

// MockSequenceRepository is a mock type for the SequenceRepositoryFacade interface
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) Next(ctx context.Context, name string, period string) (int64, error) {
	args := m.Called(ctx, name, period)
	return args.Get(0).(int64), args.Error(1)
}

// MockBookingRepository is a mock type for the BookingRepositoryWithTx interface
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockBookingRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockBookingRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockBookingRepository) SaveBooking(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateBooking(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus, note string, userID string, now time.Time) error {
	args := m.Called(ctx, bookingID, status, note, userID, now)
	return args.Error(0)
}

func (m *MockBookingRepository) SaveBookingInTx(ctx context.Context, tx pgx.Tx, booking domain.Booking) error {
	args := m.Called(ctx, tx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateBookingStatusInTx(ctx context.Context, tx pgx.Tx, bookingID string, status domain.BookingStatus, note string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, bookingID, status, note, userID, now)
	return args.Error(0)
}

func (m *MockBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListBookings(ctx context.Context, limit int, nextToken *string) ([]domain.Booking, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var bookings []domain.Booking
	if args.Get(0) != nil {
		bookings = args.Get(0).([]domain.Booking)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return bookings, token, args.Error(2)
}

func (m *MockBookingRepository) SummarizeBookings(ctx context.Context) (*domain.BookingSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingSummary), args.Error(1)
}

// MockInvoiceRepository is a mock type for the InvoiceRepositoryWithTx interface
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockInvoiceRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceAmounts(ctx context.Context, invoiceID string, subtotal, vat, total decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, invoiceID, subtotal, vat, total, userID, now)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByBookingID(ctx context.Context, bookingID string) (*domain.Invoice, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, limit int, offset int) ([]domain.Invoice, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, tx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatusAndPaidInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus, paidAmount decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, invoiceID, status, paidAmount, userID, now)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveCreditNoteInTx(ctx context.Context, tx pgx.Tx, note domain.CreditNote) error {
	args := m.Called(ctx, tx, note)
	return args.Error(0)
}

// MockReceiptRepository is a mock type for the ReceiptRepositoryWithTx interface
type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockReceiptRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockReceiptRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) ListReceiptsByInvoice(ctx context.Context, invoiceID string) ([]domain.Receipt, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) SaveReceiptInTx(ctx context.Context, tx pgx.Tx, receipt domain.Receipt) error {
	args := m.Called(ctx, tx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) UpdateReceiptInTx(ctx context.Context, tx pgx.Tx, receipt domain.Receipt) error {
	args := m.Called(ctx, tx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) SumActiveReceiptsForInvoiceInTx(ctx context.Context, tx pgx.Tx, invoiceID string, excludeReceiptID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, invoiceID, excludeReceiptID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockEmployeeRepository is a mock type for the EmployeeRepositoryFacade interface
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) DeactivateEmployee(ctx context.Context, employeeID string, userID string, now time.Time) error {
	args := m.Called(ctx, employeeID, userID, now)
	return args.Error(0)
}

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListEmployees(ctx context.Context, limit int, offset int) ([]domain.Employee, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

// MockExchangeRateRepository is a mock type for the ExchangeRateRepositoryFacade interface
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindLatestRateForCurrency(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// MockJournalEngine is a mock type for the JournalEngineSvc interface
type MockJournalEngine struct {
	mock.Mock
}

func (m *MockJournalEngine) CreateCostEntries(ctx context.Context, booking *domain.Booking, userID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, booking, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEngine) CreateRevenueEntry(ctx context.Context, booking *domain.Booking, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, booking, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEngine) CreateVATEntry(ctx context.Context, booking *domain.Booking, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, booking, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEngine) CreateCommissionEntry(ctx context.Context, booking *domain.Booking, kind portssvc.CommissionKind, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, booking, kind, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEngine) CreateReceiptEntry(ctx context.Context, receipt *domain.Receipt, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, receipt, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEngine) ReverseReceiptEntry(ctx context.Context, receipt *domain.Receipt, userID string) error {
	args := m.Called(ctx, receipt, userID)
	return args.Error(0)
}

func (m *MockJournalEngine) PostJournalEntry(ctx context.Context, entryID string, userID string) error {
	args := m.Called(ctx, entryID, userID)
	return args.Error(0)
}

func (m *MockJournalEngine) CreateRefundEntries(ctx context.Context, booking *domain.Booking, userID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, booking, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEngine) RegenerateBookingEntries(ctx context.Context, booking *domain.Booking, userID string) error {
	args := m.Called(ctx, booking, userID)
	return args.Error(0)
}

// MockNotifier is a mock type for the NotificationSink interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, event string, referenceID string, message string) error {
	args := m.Called(ctx, event, referenceID, message)
	return args.Error(0)
}
