package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/praxio/fundledger/internal/apperrors"
	"github.com/praxio/fundledger/internal/core/domain"
	portsrepo "github.com/praxio/fundledger/internal/core/ports/repositories"
	portssvc "github.com/praxio/fundledger/internal/core/ports/services"
	"github.com/praxio/fundledger/internal/utils/accounting"
)

// reportingService computes balances from posted journal activity.
// Nothing here writes; balances are derived, never stored.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetAccountBalance computes an account balance as of a date. An account
// with no posted activity reports zero totals rather than an error. The
// balance side follows the sign of the net, so a contra position reports
// on the side opposite the account's normal balance.
func (s *reportingService) GetAccountBalance(ctx context.Context, accountID string, asOf time.Time, fundID *string) (domain.AccountBalance, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for balance", slog.String("account_id", accountID))
		}
		return domain.AccountBalance{}, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	activity, err := s.reportingRepo.GetAccountActivity(ctx, accountID, asOf, fundID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to aggregate account activity", slog.String("account_id", accountID))
		return domain.AccountBalance{}, fmt.Errorf("failed to aggregate activity for account %s: %w", accountID, err)
	}

	balance := domain.AccountBalance{
		AccountID: accountID,
		AsOf:      asOf,
	}
	if activity != nil {
		balance.DebitTotal = activity.DebitTotal
		balance.CreditTotal = activity.CreditTotal
	}
	balance.NetBalance = balance.DebitTotal.Sub(balance.CreditTotal)
	balance.BalanceSide = domain.DebitBalance
	if balance.NetBalance.IsNegative() {
		balance.BalanceSide = domain.CreditBalance
	}
	return balance, nil
}

// GetTrialBalance computes the trial balance as of a date. Contra
// positions surface on the column opposite the account's normal side.
func (s *reportingService) GetTrialBalance(ctx context.Context, asOf time.Time, fundID *string, filter domain.TrialBalanceFilter) ([]domain.TrialBalanceRow, error) {
	activities, err := s.reportingRepo.GetTrialBalanceActivity(ctx, asOf, fundID)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate trial balance activity")
		return nil, fmt.Errorf("failed to aggregate trial balance: %w", err)
	}

	rows := make([]domain.TrialBalanceRow, 0, len(activities))
	for _, activity := range activities {
		if filter.AccountType != "" && activity.AccountType != filter.AccountType {
			continue
		}
		if filter.Category != "" && activity.Category != filter.Category {
			continue
		}
		debitCol, creditCol := accounting.SplitBalanceColumns(activity.DebitTotal, activity.CreditTotal)
		rows = append(rows, domain.TrialBalanceRow{
			AccountID:     activity.AccountID,
			AccountNumber: activity.AccountNumber,
			AccountName:   activity.AccountName,
			AccountType:   activity.AccountType,
			Category:      activity.Category,
			NormalBalance: activity.NormalBalance,
			DebitBalance:  debitCol,
			CreditBalance: creditCol,
		})
	}
	return rows, nil
}
