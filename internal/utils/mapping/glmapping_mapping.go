package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/praxio/fundledger/internal/core/domain"
	"github.com/praxio/fundledger/internal/models"
)

// ToModelGLAccountMapping converts a domain GLAccountMapping to a model
// GLAccountMapping, serialising the condition tree to JSONB bytes.
func ToModelGLAccountMapping(d domain.GLAccountMapping) (models.GLAccountMapping, error) {
	var conditions []byte
	if d.Conditions != nil && !d.Conditions.IsZero() {
		raw, err := json.Marshal(d.Conditions)
		if err != nil {
			return models.GLAccountMapping{}, fmt.Errorf("failed to marshal mapping conditions: %w", err)
		}
		conditions = raw
	}
	return models.GLAccountMapping{
		MappingID:       d.MappingID,
		SourceSystem:    d.SourceSystem,
		SourceType:      d.SourceType,
		SourceSubType:   d.SourceSubType,
		FundID:          d.FundID,
		Priority:        d.Priority,
		IsActive:        d.IsActive,
		GLAccountID:     d.GLAccountID,
		DebitAccountID:  d.DebitAccountID,
		CreditAccountID: d.CreditAccountID,
		AmountField:     d.AmountField,
		Conditions:      conditions,
		Description:     d.Description,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainGLAccountMapping converts a model GLAccountMapping to a domain
// GLAccountMapping, decoding the JSONB condition tree.
func ToDomainGLAccountMapping(m models.GLAccountMapping) (domain.GLAccountMapping, error) {
	var conditions *domain.Condition
	if len(m.Conditions) > 0 {
		conditions = &domain.Condition{}
		if err := json.Unmarshal(m.Conditions, conditions); err != nil {
			return domain.GLAccountMapping{}, fmt.Errorf("failed to unmarshal conditions for mapping %s: %w", m.MappingID, err)
		}
	}
	return domain.GLAccountMapping{
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
		Conditions:      conditions,
		Description:     m.Description,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}, nil
}
