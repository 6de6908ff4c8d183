package dto

import (
	"time"

	"github.com/praxio/fundledger/internal/core/domain"
)

// CreateMappingRequest is the payload for creating a GL account mapping.
// Either GLAccountID or both DebitAccountID and CreditAccountID must be
// provided; the service validates that the referenced accounts are
// postable.
type CreateMappingRequest struct {
	SourceSystem    string            `json:"sourceSystem" binding:"required"`
	SourceType      string            `json:"sourceType" binding:"required"`
	SourceSubType   string            `json:"sourceSubType"`
	FundID          string            `json:"fundID"`
	Priority        int               `json:"priority"`
	GLAccountID     string            `json:"glAccountID"`
	DebitAccountID  string            `json:"debitAccountID"`
	CreditAccountID string            `json:"creditAccountID"`
	AmountField     string            `json:"amountField"`
	Conditions      *domain.Condition `json:"conditions,omitempty"`
	Description     string            `json:"description"`
}

// MappingResponse is the API representation of a GL account mapping.
type MappingResponse struct {
	MappingID       string            `json:"mappingID"`
	SourceSystem    string            `json:"sourceSystem"`
	SourceType      string            `json:"sourceType"`
	SourceSubType   string            `json:"sourceSubType,omitempty"`
	FundID          string            `json:"fundID,omitempty"`
	Priority        int               `json:"priority"`
	IsActive        bool              `json:"isActive"`
	GLAccountID     string            `json:"glAccountID,omitempty"`
	DebitAccountID  string            `json:"debitAccountID,omitempty"`
	CreditAccountID string            `json:"creditAccountID,omitempty"`
	AmountField     string            `json:"amountField"`
	Conditions      *domain.Condition `json:"conditions,omitempty"`
	Description     string            `json:"description,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// ToMappingResponse converts a domain mapping to its API form.
func ToMappingResponse(m *domain.GLAccountMapping) MappingResponse {
	return MappingResponse{
		MappingID:       m.MappingID,
		SourceSystem:    m.SourceSystem,
		SourceType:      m.SourceType,
		SourceSubType:   m.SourceSubType,
		FundID:          m.FundID,
		Priority:        m.Priority,
		IsActive:        m.IsActive,
		GLAccountID:     m.GLAccountID,
		DebitAccountID:  m.DebitAccountID,
		CreditAccountID: m.CreditAccountID,
		AmountField:     m.AmountField,
		Conditions:      m.Conditions,
		Description:     m.Description,
		CreatedAt:       m.CreatedAt,
	}
}

// ToMappingResponses converts a slice of domain mappings.
func ToMappingResponses(mappings []domain.GLAccountMapping) []MappingResponse {
	out := make([]MappingResponse, len(mappings))
	for i := range mappings {
		out[i] = ToMappingResponse(&mappings[i])
	}
	return out
}

// ListMappingsParams narrows a mapping listing.
type ListMappingsParams struct {
	SourceSystem string
	SourceType   string
}
