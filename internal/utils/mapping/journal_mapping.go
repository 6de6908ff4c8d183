package mapping

import (
	"github.com/praxio/fundledger/internal/core/domain"
	"github.com/praxio/fundledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		EntryNumber:     d.EntryNumber,
		EntryDate:       d.EntryDate,
		Description:     d.Description,
		Reference:       d.Reference,
		SourceType:      string(d.SourceType),
		SourceID:        d.SourceID,
		Status:          models.EntryStatus(d.Status),
		TotalDebit:      d.TotalDebit,
		TotalCredit:     d.TotalCredit,
		FundID:          d.FundID,
		PostedBy:        d.PostedBy,
		PostedAt:        d.PostedAt,
		ReversalEntryID: d.ReversalEntryID,
		ReversedBy:      d.ReversedBy,
		ReversedAt:      d.ReversedAt,
		ReversalReason:  d.ReversalReason,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		EntryNumber:     m.EntryNumber,
		EntryDate:       m.EntryDate,
		Description:     m.Description,
		Reference:       m.Reference,
		SourceType:      domain.EntrySourceType(m.SourceType),
		SourceID:        m.SourceID,
		Status:          domain.EntryStatus(m.Status),
		TotalDebit:      m.TotalDebit,
		TotalCredit:     m.TotalCredit,
		FundID:          m.FundID,
		PostedBy:        m.PostedBy,
		PostedAt:        m.PostedAt,
		ReversalEntryID: m.ReversalEntryID,
		ReversedBy:      m.ReversedBy,
		ReversedAt:      m.ReversedAt,
		ReversalReason:  m.ReversalReason,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLineItem converts a domain line item to its row form.
func ToModelLineItem(d domain.JournalEntryLineItem) models.JournalEntryLineItem {
	return models.JournalEntryLineItem{
		LineItemID:   d.LineItemID,
		EntryID:      d.EntryID,
		LineNumber:   d.LineNumber,
		GLAccountID:  d.GLAccountID,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		Description:  d.Description,
		Reference:    d.Reference,
		FundID:       d.FundID,
		InvestorID:   d.InvestorID,
		InvestmentID: d.InvestmentID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLineItem converts a row line item to its domain form.
func ToDomainLineItem(m models.JournalEntryLineItem) domain.JournalEntryLineItem {
	return domain.JournalEntryLineItem{
		LineItemID:   m.LineItemID,
		EntryID:      m.EntryID,
		LineNumber:   m.LineNumber,
		GLAccountID:  m.GLAccountID,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		Description:  m.Description,
		Reference:    m.Reference,
		FundID:       m.FundID,
		InvestorID:   m.InvestorID,
		InvestmentID: m.InvestmentID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
