package domain

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

// EntrySourceType indicates how a journal entry originated.
type EntrySourceType string

const (
	SourceManual     EntrySourceType = "MANUAL"
	SourceAutomated  EntrySourceType = "AUTOMATED"
	SourceImport     EntrySourceType = "IMPORT"
	SourceClosing    EntrySourceType = "CLOSING"
	SourceAdjustment EntrySourceType = "ADJUSTMENT"
)

// IsValid reports whether the source type is one of the known values.
func (t EntrySourceType) IsValid() bool {
	switch t {
	case SourceManual, SourceAutomated, SourceImport, SourceClosing, SourceAdjustment:
		return true
	}
	return false
}

// JournalEntry represents a single balanced accounting transaction.
// Once posted, an entry is never mutated except to record reversal
// linkage; amounts are append-only history.
type JournalEntry struct {
	EntryID         string                 `json:"entryID"`     // Primary Key (UUID)
	EntryNumber     string                 `json:"entryNumber"` // Unique, date-derived (JE-YYYYMMDD-NNNN)
	EntryDate       time.Time              `json:"entryDate"`
	Description     string                 `json:"description"`
	Reference       string                 `json:"reference"`
	SourceType      EntrySourceType        `json:"sourceType"`
	SourceID        string                 `json:"sourceID"` // Identifier in the originating system
	Status          EntryStatus            `json:"status"`
	TotalDebit      decimal.Decimal        `json:"totalDebitAmount"`
	TotalCredit     decimal.Decimal        `json:"totalCreditAmount"`
	FundID          string                 `json:"fundID"` // Empty = not fund-scoped
	PostedBy        string                 `json:"postedBy"`
	PostedAt        *time.Time             `json:"postedAt,omitempty"`
	ReversalEntryID string                 `json:"reversalEntryID"` // Forward link to the reversal entry
	ReversedBy      string                 `json:"reversedBy"`
	ReversedAt      *time.Time             `json:"reversedAt,omitempty"`
	ReversalReason  string                 `json:"reversalReason"`
	LineItems       []JournalEntryLineItem `json:"lineItems,omitempty"` // Often loaded separately
	AuditFields
}

// JournalEntryLineItem is one debit or credit leg of a journal entry.
// Exactly one of DebitAmount/CreditAmount is strictly positive; the
// other is exactly zero.
type JournalEntryLineItem struct {
	LineItemID   string          `json:"lineItemID"` // Primary Key (UUID)
	EntryID      string          `json:"entryID"`    // FK -> JournalEntry
	LineNumber   int             `json:"lineNumber"` // 1-based, stable ordering
	GLAccountID  string          `json:"glAccountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
	Reference    string          `json:"reference"`
	FundID       string          `json:"fundID"` // Sub-ledger tags, optional
	InvestorID   string          `json:"investorID"`
	InvestmentID string          `json:"investmentID"`
	// Display-only fields populated when joined with account metadata.
	AccountNumber string `json:"accountNumber,omitempty"`
	AccountName   string `json:"accountName,omitempty"`
	AuditFields
}

// IsDebit reports whether the line is a debit leg.
func (l JournalEntryLineItem) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}
