package services

import (
	"context"
	"time"

	"github.com/praxio/fundledger/internal/core/domain"
)

// ReportingSvcFacade defines balance reporting operations.
type ReportingSvcFacade interface {
	// GetAccountBalance computes an account balance from posted activity up
	// to and including asOf, optionally scoped to a fund.
	GetAccountBalance(ctx context.Context, accountID string, asOf time.Time, fundID *string) (domain.AccountBalance, error)

	// GetTrialBalance computes the trial balance as of a date. Accounts
	// with no posted activity are omitted.
	GetTrialBalance(ctx context.Context, asOf time.Time, fundID *string, filter domain.TrialBalanceFilter) ([]domain.TrialBalanceRow, error)
}
