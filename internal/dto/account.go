package dto

import (
	"time"

	"github.com/praxio/fundledger/internal/core/domain"
)

// CreateAccountRequest is the payload for creating a GL account.
type CreateAccountRequest struct {
	AccountNumber       string `json:"accountNumber" binding:"required"`
	Name                string `json:"name" binding:"required"`
	AccountType         string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Category            string `json:"category"`
	ParentAccountID     string `json:"parentAccountID"`
	Description         string `json:"description"`
	AllowsDirectPosting *bool  `json:"allowsDirectPosting"` // Defaults to true
	RequiresSubAccount  bool   `json:"requiresSubAccount"`
}

// AccountResponse is the API representation of a GL account.
type AccountResponse struct {
	AccountID           string    `json:"accountID"`
	AccountNumber       string    `json:"accountNumber"`
	Name                string    `json:"name"`
	AccountType         string    `json:"accountType"`
	Category            string    `json:"category"`
	ParentAccountID     string    `json:"parentAccountID,omitempty"`
	NormalBalance       string    `json:"normalBalance"`
	Description         string    `json:"description,omitempty"`
	IsActive            bool      `json:"isActive"`
	AllowsDirectPosting bool      `json:"allowsDirectPosting"`
	RequiresSubAccount  bool      `json:"requiresSubAccount"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain GLAccount to its API form.
func ToAccountResponse(a *domain.GLAccount) AccountResponse {
	return AccountResponse{
		AccountID:           a.AccountID,
		AccountNumber:       a.AccountNumber,
		Name:                a.Name,
		AccountType:         string(a.AccountType),
		Category:            a.Category,
		ParentAccountID:     a.ParentAccountID,
		NormalBalance:       string(a.NormalBalance),
		Description:         a.Description,
		IsActive:            a.IsActive,
		AllowsDirectPosting: a.AllowsDirectPosting,
		RequiresSubAccount:  a.RequiresSubAccount,
		CreatedAt:           a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.GLAccount) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}

// AccountPathResponse carries the rendered hierarchy label of an account.
type AccountPathResponse struct {
	AccountID string `json:"accountID"`
	Path      string `json:"path"`
}
