package mapping

import (
	"github.com/praxio/fundledger/internal/core/domain"
	"github.com/praxio/fundledger/internal/models"
)

// ToModelGLAccount converts a domain GLAccount to a model GLAccount
func ToModelGLAccount(d domain.GLAccount) models.GLAccount {
	return models.GLAccount{
		AccountID:           d.AccountID,
		AccountNumber:       d.AccountNumber,
		Name:                d.Name,
		AccountType:         models.AccountType(d.AccountType),
		Category:            d.Category,
		ParentAccountID:     d.ParentAccountID,
		NormalBalance:       string(d.NormalBalance),
		Description:         d.Description,
		IsActive:            d.IsActive,
		AllowsDirectPosting: d.AllowsDirectPosting,
		RequiresSubAccount:  d.RequiresSubAccount,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGLAccount converts a model GLAccount to a domain GLAccount
func ToDomainGLAccount(m models.GLAccount) domain.GLAccount {
	return domain.GLAccount{
		AccountID:           m.AccountID,
		AccountNumber:       m.AccountNumber,
		Name:                m.Name,
		AccountType:         domain.AccountType(m.AccountType),
		Category:            m.Category,
		ParentAccountID:     m.ParentAccountID,
		NormalBalance:       domain.NormalBalance(m.NormalBalance),
		Description:         m.Description,
		IsActive:            m.IsActive,
		AllowsDirectPosting: m.AllowsDirectPosting,
		RequiresSubAccount:  m.RequiresSubAccount,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainGLAccountSlice converts a slice of model GLAccounts to a slice of domain GLAccounts
func ToDomainGLAccountSlice(ms []models.GLAccount) []domain.GLAccount {
	ds := make([]domain.GLAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGLAccount(m)
	}
	return ds
}
