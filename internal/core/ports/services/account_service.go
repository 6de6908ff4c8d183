package services

import (
	"context"

	"github.com/praxio/fundledger/internal/core/domain"
	"github.com/praxio/fundledger/internal/dto"
)

// AccountSvcFacade defines chart-of-accounts operations.
type AccountSvcFacade interface {
	// CreateAccount registers a new account, deriving its normal balance
	// from the account type.
	CreateAccount(ctx context.Context, creatorUserID string, req dto.CreateAccountRequest) (domain.GLAccount, error)

	// GetAccountByID retrieves an account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (domain.GLAccount, error)

	// ListAccounts retrieves accounts, optionally restricted to active ones.
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.GLAccount, error)

	// GetAccountPath returns the hierarchy path from the root ancestor down
	// to the given account, e.g. "Assets > Investments > Fund I Holdings".
	GetAccountPath(ctx context.Context, accountID string) (string, error)

	// DeactivateAccount soft-deletes an account so it no longer accepts
	// postings. Historical entries referencing it are unaffected.
	DeactivateAccount(ctx context.Context, updaterUserID string, accountID string) error
}
