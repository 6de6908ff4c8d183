package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry is the journal_entries row.
type JournalEntry struct {
	EntryID         string          `db:"entry_id"`
	EntryNumber     string          `db:"entry_number"`
	EntryDate       time.Time       `db:"entry_date"`
	Description     string          `db:"description"`
	Reference       string          `db:"reference"` // Nullable
	SourceType      string          `db:"source_type"`
	SourceID        string          `db:"source_id"` // Nullable
	Status          EntryStatus     `db:"status"`
	TotalDebit      decimal.Decimal `db:"total_debit_amount"`
	TotalCredit     decimal.Decimal `db:"total_credit_amount"`
	FundID          string          `db:"fund_id"`   // Nullable
	PostedBy        string          `db:"posted_by"` // Nullable
	PostedAt        *time.Time      `db:"posted_at"`
	ReversalEntryID string          `db:"reversal_entry_id"` // Nullable
	ReversedBy      string          `db:"reversed_by"`       // Nullable
	ReversedAt      *time.Time      `db:"reversed_at"`
	ReversalReason  string          `db:"reversal_reason"` // Nullable
	AuditFields
}

// JournalEntryLineItem is the journal_entry_lines row.
type JournalEntryLineItem struct {
	LineItemID   string          `db:"line_item_id"`
	EntryID      string          `db:"entry_id"`
	LineNumber   int             `db:"line_number"`
	GLAccountID  string          `db:"gl_account_id"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	Description  string          `db:"description"`   // Nullable
	Reference    string          `db:"reference"`     // Nullable
	FundID       string          `db:"fund_id"`       // Nullable
	InvestorID   string          `db:"investor_id"`   // Nullable
	InvestmentID string          `db:"investment_id"` // Nullable
	AuditFields
}
