package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atlasvoyage/travel_accounting_app/internal/apperrors"
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	portsrepo "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/services"
	"github.com/atlasvoyage/travel_accounting_app/internal/dto"
	"github.com/atlasvoyage/travel_accounting_app/internal/middleware"
)

// refundTxnTypes maps each booking transaction type to the refund type its
// reversal entry carries. Receipt entries are reversed by reconciliation,
// not here.
var refundTxnTypes = map[domain.TransactionType]domain.TransactionType{
	domain.TxnBookingCost:      domain.TxnRefundCost,
	domain.TxnBookingRevenue:   domain.TxnRefundRevenue,
	domain.TxnBookingVATUAE:    domain.TxnRefundVAT,
	domain.TxnBookingVATNonUAE: domain.TxnRefundVAT,
	domain.TxnCommissionAgent:  domain.TxnRefundCommissionAgent,
	domain.TxnCommissionCS:     domain.TxnRefundCommissionCS,
}

// journalService is the posting engine behind every financial document.
type journalService struct {
	journalRepo  portsrepo.JournalRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	sequenceRepo portsrepo.SequenceRepositoryFacade
	baseCurrency string
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, sequenceRepo portsrepo.SequenceRepositoryFacade, baseCurrency string) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		sequenceRepo: sequenceRepo,
		baseCurrency: baseCurrency,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// resolveAccount looks up a chart-of-accounts code and turns a missing code
// into an explicit configuration error the caller can act on.
func (s *journalService) resolveAccount(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: code %s", apperrors.ErrMissingAccount, code)
		}
		return nil, fmt.Errorf("failed to look up account %s: %w", code, err)
	}
	return account, nil
}

// isActiveEntry reports whether an entry still counts for idempotency:
// neither a reversal itself nor superseded by one.
func isActiveEntry(e domain.JournalEntry) bool {
	return e.ReversesEntryID == "" && !e.IsReversed()
}

// findActiveEntries returns the non-reversed entries of one transaction type
// for a source document.
func (s *journalService) findActiveEntries(ctx context.Context, sourceType domain.EntrySourceType, sourceID string, txnType domain.TransactionType) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.FindEntriesBySource(ctx, sourceType, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entries for %s %s: %w", sourceType, sourceID, err)
	}
	var active []domain.JournalEntry
	for _, e := range entries {
		if e.TransactionType == txnType && isActiveEntry(e) {
			active = append(active, e)
		}
	}
	return active, nil
}

// entrySpec carries the resolved inputs of one paired debit/credit entry.
type entrySpec struct {
	description     string
	reference       string
	debitAccountID  string
	creditAccountID string
	amount          decimal.Decimal
	txnType         domain.TransactionType
	sourceType      domain.EntrySourceType
	sourceID        string
	reverses        string
}

// createPostedEntry numbers, saves and immediately posts one entry.
func (s *journalService) createPostedEntry(ctx context.Context, spec entrySpec, userID string, now time.Time) (*domain.JournalEntry, error) {
	if spec.amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: entry amount must be positive, got %s", apperrors.ErrValidation, spec.amount.String())
	}

	seq, err := s.sequenceRepo.Next(ctx, seqJournalEntry, "")
	if err != nil {
		return nil, fmt.Errorf("failed to allocate entry number: %w", err)
	}

	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		EntryNumber:     formatEntryNumber(seq),
		EntryDate:       now,
		Description:     spec.description,
		Reference:       spec.reference,
		DebitAccountID:  spec.debitAccountID,
		CreditAccountID: spec.creditAccountID,
		Amount:          spec.amount,
		TransactionType: spec.txnType,
		SourceType:      spec.sourceType,
		SourceID:        spec.sourceID,
		Status:          domain.EntryDraft,
		ReversesEntryID: spec.reverses,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save entry %s: %w", entry.EntryNumber, err)
	}
	if err := s.journalRepo.PostEntry(ctx, entry.EntryID, userID, now); err != nil {
		return nil, fmt.Errorf("failed to post entry %s: %w", entry.EntryNumber, err)
	}
	entry.Status = domain.EntryPosted
	return &entry, nil
}

// reverseEntry emits a posted compensating entry with debit and credit
// swapped and links both directions.
func (s *journalService) reverseEntry(ctx context.Context, original domain.JournalEntry, txnType domain.TransactionType, sourceType domain.EntrySourceType, sourceID string, userID string, now time.Time) (*domain.JournalEntry, error) {
	rev, err := s.createPostedEntry(ctx, entrySpec{
		description:     fmt.Sprintf("Reversal of %s", original.EntryNumber),
		reference:       original.Reference,
		debitAccountID:  original.CreditAccountID,
		creditAccountID: original.DebitAccountID,
		amount:          original.Amount,
		txnType:         txnType,
		sourceType:      sourceType,
		sourceID:        sourceID,
		reverses:        original.EntryID,
	}, userID, now)
	if err != nil {
		return nil, err
	}
	if err := s.journalRepo.MarkEntryReversed(ctx, original.EntryID, rev.EntryID, userID, now); err != nil {
		return nil, fmt.Errorf("failed to mark entry %s reversed: %w", original.EntryNumber, err)
	}
	return rev, nil
}

func (s *journalService) CreateCostEntries(ctx context.Context, booking *domain.Booking, userID string) ([]domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.findActiveEntries(ctx, domain.SourceBooking, booking.BookingID, domain.TxnBookingCost)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		logger.Info("Cost entries already exist for booking, skipping", slog.String("booking_id", booking.BookingID))
		return existing, nil
	}

	costAccount, err := s.resolveAccount(ctx, costAccountCode(booking.ServiceType))
	if err != nil {
		return nil, err
	}
	payableAccount, err := s.resolveAccount(ctx, codeAccountsPayable)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if len(booking.SupplierLines) > 0 {
		var created []domain.JournalEntry
		for _, line := range booking.SupplierLines {
			if line.CostBase.IsZero() {
				continue
			}
			entry, err := s.createPostedEntry(ctx, entrySpec{
				description:     fmt.Sprintf("Cost due to %s for booking %s", line.SupplierName, booking.BookingNumber),
				reference:       booking.BookingNumber,
				debitAccountID:  costAccount.AccountID,
				creditAccountID: payableAccount.AccountID,
				amount:          line.CostBase,
				txnType:         domain.TxnBookingCost,
				sourceType:      domain.SourceBooking,
				sourceID:        booking.BookingID,
			}, userID, now)
			if err != nil {
				return created, err
			}
			created = append(created, *entry)
		}
		return created, nil
	}

	if booking.CostBase.IsZero() {
		return nil, nil
	}
	entry, err := s.createPostedEntry(ctx, entrySpec{
		description:     fmt.Sprintf("Supplier cost for booking %s", booking.BookingNumber),
		reference:       booking.BookingNumber,
		debitAccountID:  costAccount.AccountID,
		creditAccountID: payableAccount.AccountID,
		amount:          booking.CostBase,
		txnType:         domain.TxnBookingCost,
		sourceType:      domain.SourceBooking,
		sourceID:        booking.BookingID,
	}, userID, now)
	if err != nil {
		return nil, err
	}
	return []domain.JournalEntry{*entry}, nil
}

func (s *journalService) CreateRevenueEntry(ctx context.Context, booking *domain.Booking, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.findActiveEntries(ctx, domain.SourceBooking, booking.BookingID, domain.TxnBookingRevenue)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		logger.Info("Revenue entry already exists for booking, skipping", slog.String("booking_id", booking.BookingID))
		return &existing[0], nil
	}

	receivable, err := s.resolveAccount(ctx, codeAccountsReceivable)
	if err != nil {
		return nil, err
	}
	revenue, err := s.resolveAccount(ctx, revenueAccountCode(booking.ServiceType))
	if err != nil {
		return nil, err
	}

	return s.createPostedEntry(ctx, entrySpec{
		description:     fmt.Sprintf("Revenue from booking %s (net of VAT)", booking.BookingNumber),
		reference:       booking.BookingNumber,
		debitAccountID:  receivable.AccountID,
		creditAccountID: revenue.AccountID,
		amount:          booking.NetBeforeVAT,
		txnType:         domain.TxnBookingRevenue,
		sourceType:      domain.SourceBooking,
		sourceID:        booking.BookingID,
	}, userID, time.Now().UTC())
}

func (s *journalService) CreateVATEntry(ctx context.Context, booking *domain.Booking, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if booking.VATAmount.IsZero() {
		return nil, nil
	}

	txnType := domain.TxnBookingVATNonUAE
	if booking.IsUAE {
		txnType = domain.TxnBookingVATUAE
	}

	existing, err := s.findActiveEntries(ctx, domain.SourceBooking, booking.BookingID, txnType)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		logger.Info("VAT entry already exists for booking, skipping", slog.String("booking_id", booking.BookingID))
		return &existing[0], nil
	}

	receivable, err := s.resolveAccount(ctx, codeAccountsReceivable)
	if err != nil {
		return nil, err
	}
	vatPayable, err := s.resolveAccount(ctx, codeVATPayable)
	if err != nil {
		return nil, err
	}

	return s.createPostedEntry(ctx, entrySpec{
		description:     fmt.Sprintf("VAT collected on booking %s", booking.BookingNumber),
		reference:       booking.BookingNumber,
		debitAccountID:  receivable.AccountID,
		creditAccountID: vatPayable.AccountID,
		amount:          booking.VATAmount,
		txnType:         txnType,
		sourceType:      domain.SourceBooking,
		sourceID:        booking.BookingID,
	}, userID, time.Now().UTC())
}

func (s *journalService) CreateCommissionEntry(ctx context.Context, booking *domain.Booking, kind portssvc.CommissionKind, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	amount := booking.AgentCommissionAmount
	txnType := domain.TxnCommissionAgent
	label := "agent"
	if kind == portssvc.CommissionCS {
		amount = booking.CSCommissionAmount
		txnType = domain.TxnCommissionCS
		label = "customer service"
	}
	if amount.IsZero() {
		return nil, nil
	}

	existing, err := s.findActiveEntries(ctx, domain.SourceBooking, booking.BookingID, txnType)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		logger.Info("Commission entry already exists for booking, skipping", slog.String("booking_id", booking.BookingID), slog.String("kind", string(kind)))
		return &existing[0], nil
	}

	expense, err := s.resolveAccount(ctx, codeCommissionExpense)
	if err != nil {
		return nil, err
	}
	payable, err := s.resolveAccount(ctx, codeCommissionsPayable)
	if err != nil {
		return nil, err
	}

	return s.createPostedEntry(ctx, entrySpec{
		description:     fmt.Sprintf("Sales commission (%s) for booking %s", label, booking.BookingNumber),
		reference:       booking.BookingNumber,
		debitAccountID:  expense.AccountID,
		creditAccountID: payable.AccountID,
		amount:          amount,
		txnType:         txnType,
		sourceType:      domain.SourceBooking,
		sourceID:        booking.BookingID,
	}, userID, time.Now().UTC())
}

func (s *journalService) CreateReceiptEntry(ctx context.Context, receipt *domain.Receipt, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.findActiveEntries(ctx, domain.SourceReceipt, receipt.ReceiptID, domain.TxnReceiptPayment)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		logger.Info("Receipt entry already exists, skipping", slog.String("receipt_id", receipt.ReceiptID))
		return &existing[0], nil
	}

	cash, err := s.resolveAccount(ctx, cashAccountCode(receipt.PaymentMethod, receipt.BankAccountCurrency, s.baseCurrency))
	if err != nil {
		return nil, err
	}
	receivable, err := s.resolveAccount(ctx, codeAccountsReceivable)
	if err != nil {
		return nil, err
	}

	return s.createPostedEntry(ctx, entrySpec{
		description:     fmt.Sprintf("Customer payment %s", receipt.ReceiptNumber),
		reference:       receipt.ReceiptNumber,
		debitAccountID:  cash.AccountID,
		creditAccountID: receivable.AccountID,
		amount:          receipt.Amount,
		txnType:         domain.TxnReceiptPayment,
		sourceType:      domain.SourceReceipt,
		sourceID:        receipt.ReceiptID,
	}, userID, time.Now().UTC())
}

func (s *journalService) ReverseReceiptEntry(ctx context.Context, receipt *domain.Receipt, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	active, err := s.findActiveEntries(ctx, domain.SourceReceipt, receipt.ReceiptID, domain.TxnReceiptPayment)
	if err != nil {
		return err
	}
	if len(active) == 0 {
		logger.Info("No active cash entry to reverse for receipt", slog.String("receipt_id", receipt.ReceiptID))
		return nil
	}

	now := time.Now().UTC()
	for _, entry := range active {
		if _, err := s.reverseEntry(ctx, entry, domain.TxnReceiptPayment, domain.SourceReceipt, receipt.ReceiptID, userID, now); err != nil {
			return err
		}
	}
	return nil
}

func (s *journalService) PostJournalEntry(ctx context.Context, entryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.Status == domain.EntryPosted {
		logger.Warn("Duplicate posting attempt", slog.String("entry_number", entry.EntryNumber))
		return apperrors.NewAppError(409, fmt.Sprintf("entry %s (amount %s) is already posted", entry.EntryNumber, entry.Amount.String()), apperrors.ErrConflict)
	}
	return s.journalRepo.PostEntry(ctx, entryID, userID, time.Now().UTC())
}

// CreateRefundEntries reverses every active entry of the original booking a
// refund mirror points at. Already-reversed entries are skipped, so a
// retried cancellation is safe.
func (s *journalService) CreateRefundEntries(ctx context.Context, booking *domain.Booking, userID string) ([]domain.JournalEntry, error) {
	if booking.RefundOfBookingID == "" {
		return nil, fmt.Errorf("%w: booking %s is not a refund booking", apperrors.ErrValidation, booking.BookingID)
	}

	originals, err := s.journalRepo.FindEntriesBySource(ctx, domain.SourceBooking, booking.RefundOfBookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entries for original booking %s: %w", booking.RefundOfBookingID, err)
	}

	now := time.Now().UTC()
	var created []domain.JournalEntry
	for _, original := range originals {
		refundType, ok := refundTxnTypes[original.TransactionType]
		if !ok || !isActiveEntry(original) {
			continue
		}
		rev, err := s.reverseEntry(ctx, original, refundType, domain.SourceBooking, booking.BookingID, userID, now)
		if err != nil {
			return created, err
		}
		created = append(created, *rev)
	}
	return created, nil
}

// RegenerateBookingEntries reverses the booking's active entries and creates
// a fresh set from its current amounts. Per-entry failures are collected so
// one missing account does not abort the sibling entries.
func (s *journalService) RegenerateBookingEntries(ctx context.Context, booking *domain.Booking, userID string) error {
	entries, err := s.journalRepo.FindEntriesBySource(ctx, domain.SourceBooking, booking.BookingID)
	if err != nil {
		return fmt.Errorf("failed to find entries for booking %s: %w", booking.BookingID, err)
	}

	now := time.Now().UTC()
	for _, entry := range entries {
		if !isActiveEntry(entry) {
			continue
		}
		if _, ok := refundTxnTypes[entry.TransactionType]; !ok {
			continue
		}
		if _, err := s.reverseEntry(ctx, entry, entry.TransactionType, entry.SourceType, entry.SourceID, userID, now); err != nil {
			return err
		}
	}

	var errs []error
	if _, err := s.CreateCostEntries(ctx, booking, userID); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.CreateRevenueEntry(ctx, booking, userID); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.CreateVATEntry(ctx, booking, userID); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.CreateCommissionEntry(ctx, booking, portssvc.CommissionAgent, userID); err != nil {
		errs = append(errs, err)
	}
	if _, err := s.CreateCommissionEntry(ctx, booking, portssvc.CommissionCS, userID); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %s: %w", entryID, err)
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return &dto.ListEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// TrialBalance sums leaf-account balances; parent accounts are aggregations
// over their children and would double-count.
func (s *journalService) TrialBalance(ctx context.Context) (*dto.TrialBalanceResponse, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, 1000, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for trial balance: %w", err)
	}

	hasChildren := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		if a.ParentAccountID != "" {
			hasChildren[a.ParentAccountID] = true
		}
	}

	resp := &dto.TrialBalanceResponse{
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, a := range accounts {
		if hasChildren[a.AccountID] {
			continue
		}
		resp.Rows = append(resp.Rows, dto.TrialBalanceRow{
			AccountID:     a.AccountID,
			Code:          a.Code,
			Name:          a.Name,
			AccountType:   string(a.AccountType),
			DebitBalance:  a.DebitBalance,
			CreditBalance: a.CreditBalance,
		})
		resp.TotalDebit = resp.TotalDebit.Add(a.DebitBalance)
		resp.TotalCredit = resp.TotalCredit.Add(a.CreditBalance)
	}
	resp.IsBalanced = resp.TotalDebit.Equal(resp.TotalCredit)
	return resp, nil
}
