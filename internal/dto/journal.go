package dto

import (
	"time"

	"github.com/praxio/fundledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineItemRequest is one leg of a manual journal entry request.
// Exactly one of DebitAmount/CreditAmount must be strictly positive.
type CreateLineItemRequest struct {
	GLAccountID  string          `json:"glAccountID" binding:"required"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
	Reference    string          `json:"reference"`
	FundID       string          `json:"fundID"`
	InvestorID   string          `json:"investorID"`
	InvestmentID string          `json:"investmentID"`
}

// CreateEntryRequest is the payload for creating a journal entry.
type CreateEntryRequest struct {
	EntryDate   time.Time               `json:"entryDate" binding:"required"`
	Description string                  `json:"description" binding:"required"`
	Reference   string                  `json:"reference"`
	SourceType  string                  `json:"sourceType"`
	SourceID    string                  `json:"sourceID"`
	FundID      string                  `json:"fundID"`
	LineItems   []CreateLineItemRequest `json:"lineItems" binding:"required,min=2,dive"`
}

// ReverseEntryRequest carries the operator's reason for a reversal.
type ReverseEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// SourceEventRequest is an inbound business event from a collaborator
// service, translated into journal lines by the mapping resolver.
type SourceEventRequest struct {
	SourceSystem  string         `json:"sourceSystem" binding:"required"`
	SourceType    string         `json:"sourceType" binding:"required"`
	SourceSubType string         `json:"sourceSubType"`
	SourceID      string         `json:"sourceID" binding:"required"`
	SourceData    map[string]any `json:"sourceData" binding:"required"`
	EntryDate     time.Time      `json:"entryDate" binding:"required"`
	Description   string         `json:"description" binding:"required"`
	FundID        string         `json:"fundID"`
}

// ToDomainSourceEvent converts the request to its domain form.
func (r SourceEventRequest) ToDomainSourceEvent() domain.SourceEvent {
	return domain.SourceEvent{
		SourceSystem:  r.SourceSystem,
		SourceType:    r.SourceType,
		SourceSubType: r.SourceSubType,
		SourceID:      r.SourceID,
		SourceData:    r.SourceData,
		EntryDate:     r.EntryDate,
		Description:   r.Description,
		FundID:        r.FundID,
	}
}

// LineItemResponse is the API representation of one journal line.
type LineItemResponse struct {
	LineItemID    string          `json:"lineItemID"`
	LineNumber    int             `json:"lineNumber"`
	GLAccountID   string          `json:"glAccountID"`
	AccountNumber string          `json:"accountNumber,omitempty"`
	AccountName   string          `json:"accountName,omitempty"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	Description   string          `json:"description,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	FundID        string          `json:"fundID,omitempty"`
	InvestorID    string          `json:"investorID,omitempty"`
	InvestmentID  string          `json:"investmentID,omitempty"`
}

// EntryResponse is the API representation of a journal entry.
type EntryResponse struct {
	EntryID         string             `json:"entryID"`
	EntryNumber     string             `json:"entryNumber"`
	EntryDate       time.Time          `json:"entryDate"`
	Description     string             `json:"description"`
	Reference       string             `json:"reference,omitempty"`
	SourceType      string             `json:"sourceType"`
	SourceID        string             `json:"sourceID,omitempty"`
	Status          string             `json:"status"`
	TotalDebit      decimal.Decimal    `json:"totalDebitAmount"`
	TotalCredit     decimal.Decimal    `json:"totalCreditAmount"`
	FundID          string             `json:"fundID,omitempty"`
	PostedBy        string             `json:"postedBy,omitempty"`
	PostedAt        *time.Time         `json:"postedAt,omitempty"`
	ReversalEntryID string             `json:"reversalEntryID,omitempty"`
	ReversedBy      string             `json:"reversedBy,omitempty"`
	ReversedAt      *time.Time         `json:"reversedAt,omitempty"`
	ReversalReason  string             `json:"reversalReason,omitempty"`
	LineItems       []LineItemResponse `json:"lineItems,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
}

// ToEntryResponse converts a domain entry (and any loaded lines) to its
// API form.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:         e.EntryID,
		EntryNumber:     e.EntryNumber,
		EntryDate:       e.EntryDate,
		Description:     e.Description,
		Reference:       e.Reference,
		SourceType:      string(e.SourceType),
		SourceID:        e.SourceID,
		Status:          string(e.Status),
		TotalDebit:      e.TotalDebit,
		TotalCredit:     e.TotalCredit,
		FundID:          e.FundID,
		PostedBy:        e.PostedBy,
		PostedAt:        e.PostedAt,
		ReversalEntryID: e.ReversalEntryID,
		ReversedBy:      e.ReversedBy,
		ReversedAt:      e.ReversedAt,
		ReversalReason:  e.ReversalReason,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
	if len(e.LineItems) > 0 {
		resp.LineItems = make([]LineItemResponse, len(e.LineItems))
		for i, line := range e.LineItems {
			resp.LineItems[i] = LineItemResponse{
				LineItemID:    line.LineItemID,
				LineNumber:    line.LineNumber,
				GLAccountID:   line.GLAccountID,
				AccountNumber: line.AccountNumber,
				AccountName:   line.AccountName,
				DebitAmount:   line.DebitAmount,
				CreditAmount:  line.CreditAmount,
				Description:   line.Description,
				Reference:     line.Reference,
				FundID:        line.FundID,
				InvestorID:    line.InvestorID,
				InvestmentID:  line.InvestmentID,
			}
		}
	}
	return resp
}

// ListEntriesParams holds pagination parameters for listing entries.
type ListEntriesParams struct {
	Limit     int
	NextToken *string
	FundID    string
}

// ListEntriesResponse is one page of journal entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
