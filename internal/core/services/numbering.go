package services

import (
	"fmt"
	"time"
)

// Sequence names handed to the atomic counter repository. Year-stamped
// documents use the year as the counter period so numbering restarts
// each January.
const (
	seqJournalEntry = "journal_entry"
	seqBooking      = "booking"
	seqRefund       = "refund"
	seqInvoice      = "invoice"
	seqReceipt      = "receipt"
)

func formatEntryNumber(n int64) string {
	return fmt.Sprintf("JE-%06d", n)
}

func formatBookingNumber(year int, n int64) string {
	return fmt.Sprintf("BKG-%d-%06d", year, n)
}

func formatRefundNumber(year int, n int64) string {
	return fmt.Sprintf("REFUND-%d-%06d", year, n)
}

func formatInvoiceNumber(year int, n int64) string {
	return fmt.Sprintf("INV-%d-%06d", year, n)
}

func formatReceiptNumber(year int, n int64) string {
	return fmt.Sprintf("RCT-%d-%06d", year, n)
}

func yearPeriod(now time.Time) string {
	return fmt.Sprintf("%d", now.Year())
}
