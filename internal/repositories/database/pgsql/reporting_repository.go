package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxio/fundledger/internal/apperrors"
	"github.com/praxio/fundledger/internal/core/domain"
	portsrepo "github.com/praxio/fundledger/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for balance reporting.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetAccountActivity sums posted debits and credits for one account up to
// and including asOf. Only POSTED and REVERSED entries count; a reversed
// entry stays in history and its reversal cancels it arithmetically.
// Fund scoping keeps lines whose effective fund tag matches or is absent:
// unscoped activity belongs to every fund view.
func (r *PgxReportingRepository) GetAccountActivity(ctx context.Context, accountID string, asOf time.Time, fundID *string) (*domain.AccountActivity, error) {
	query := `
		SELECT a.account_id, a.account_number, a.name, a.account_type, a.category, a.normal_balance,
		       COALESCE(SUM(l.debit_amount), 0) AS debit_total,
		       COALESCE(SUM(l.credit_amount), 0) AS credit_total
		FROM gl_accounts a
		LEFT JOIN (journal_entry_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
		) ON l.gl_account_id = a.account_id
			AND e.status IN ('POSTED', 'REVERSED')
			AND e.entry_date <= $2
			AND ($3::text IS NULL
				OR COALESCE(l.fund_id, e.fund_id) = $3
				OR COALESCE(l.fund_id, e.fund_id) IS NULL)
		WHERE a.account_id = $1
		GROUP BY a.account_id, a.account_number, a.name, a.account_type, a.category, a.normal_balance;
	`
	var activity domain.AccountActivity
	err := r.Pool.QueryRow(ctx, query, accountID, asOf, fundID).Scan(
		&activity.AccountID,
		&activity.AccountNumber,
		&activity.AccountName,
		&activity.AccountType,
		&activity.Category,
		&activity.NormalBalance,
		&activity.DebitTotal,
		&activity.CreditTotal,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate activity for account "+accountID, err)
	}
	return &activity, nil
}

// GetTrialBalanceActivity sums posted debits and credits per account up
// to and including asOf. Accounts with no posted activity are omitted.
func (r *PgxReportingRepository) GetTrialBalanceActivity(ctx context.Context, asOf time.Time, fundID *string) ([]domain.AccountActivity, error) {
	query := `
		SELECT a.account_id, a.account_number, a.name, a.account_type, a.category, a.normal_balance,
		       SUM(l.debit_amount) AS debit_total,
		       SUM(l.credit_amount) AS credit_total
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN gl_accounts a ON a.account_id = l.gl_account_id
		WHERE e.status IN ('POSTED', 'REVERSED')
		  AND e.entry_date <= $1
		  AND ($2::text IS NULL
		       OR COALESCE(l.fund_id, e.fund_id) = $2
		       OR COALESCE(l.fund_id, e.fund_id) IS NULL)
		GROUP BY a.account_id, a.account_number, a.name, a.account_type, a.category, a.normal_balance
		ORDER BY a.account_number;
	`
	rows, err := r.Pool.Query(ctx, query, asOf, fundID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate trial balance activity", err)
	}
	defer rows.Close()

	activities := []domain.AccountActivity{}
	for rows.Next() {
		var activity domain.AccountActivity
		err := rows.Scan(
			&activity.AccountID,
			&activity.AccountNumber,
			&activity.AccountName,
			&activity.AccountType,
			&activity.Category,
			&activity.NormalBalance,
			&activity.DebitTotal,
			&activity.CreditTotal,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return activities, nil
}
