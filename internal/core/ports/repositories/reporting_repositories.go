package repositories

import (
	"context"
	"time"

	"github.com/praxio/fundledger/internal/core/domain"
)

// ReportingRepository aggregates posted journal activity for balance
// reporting. Balances are always computed from posted lines, never stored.
type ReportingRepository interface {
	// GetAccountActivity sums posted debits and credits for one account up
	// to and including asOf, optionally scoped to a fund.
	GetAccountActivity(ctx context.Context, accountID string, asOf time.Time, fundID *string) (*domain.AccountActivity, error)

	// GetTrialBalanceActivity sums posted debits and credits per account up
	// to and including asOf. Accounts with no posted activity are omitted.
	GetTrialBalanceActivity(ctx context.Context, asOf time.Time, fundID *string) ([]domain.AccountActivity, error)
}
