package repositories

import (
	"context"
	"time"

	"github.com/praxio/fundledger/internal/core/domain"
)

// AccountReaderRepo defines read operations for chart-of-accounts data.
type AccountReaderRepo interface {
	// FindAccountByID retrieves an account by its ID.
	FindAccountByID(ctx context.Context, accountID string) (*domain.GLAccount, error)

	// FindAccountByNumber retrieves an account by its unique account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.GLAccount, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing
	// IDs are simply absent from the returned map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.GLAccount, error)

	// ListAccounts retrieves accounts, optionally restricted to active ones.
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.GLAccount, error)
}

// AccountWriterRepo defines write operations for chart-of-accounts data.
type AccountWriterRepo interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.GLAccount) error

	// DeactivateAccount soft-deletes an account. Accounts are never hard
	// deleted because historical journal lines reference them permanently.
	DeactivateAccount(ctx context.Context, accountID string, updatedBy string, updatedAt time.Time) error
}

// AccountRepositoryFacade combines account reader and writer operations.
type AccountRepositoryFacade interface {
	AccountReaderRepo
	AccountWriterRepo
}
