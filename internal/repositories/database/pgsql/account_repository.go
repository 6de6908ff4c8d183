package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxio/fundledger/internal/apperrors"
	"github.com/praxio/fundledger/internal/core/domain"
	portsrepo "github.com/praxio/fundledger/internal/core/ports/repositories"
	"github.com/praxio/fundledger/internal/models"
	"github.com/praxio/fundledger/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `
	account_id, account_number, name, account_type, category, parent_account_id,
	normal_balance, description, is_active, allows_direct_posting, requires_sub_account,
	created_at, created_by, last_updated_at, last_updated_by
`

// SaveAccount persists a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.GLAccount) error {
	modelAccount := mapping.ToModelGLAccount(account)
	query := `
		INSERT INTO gl_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAccount.AccountID,
		modelAccount.AccountNumber,
		modelAccount.Name,
		modelAccount.AccountType,
		modelAccount.Category,
		nullableString(modelAccount.ParentAccountID),
		modelAccount.NormalBalance,
		modelAccount.Description,
		modelAccount.IsActive,
		modelAccount.AllowsDirectPosting,
		modelAccount.RequiresSubAccount,
		modelAccount.CreatedAt,
		modelAccount.CreatedBy,
		modelAccount.LastUpdatedAt,
		modelAccount.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert account "+modelAccount.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.GLAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM gl_accounts WHERE account_id = $1;`
	return r.findAccount(ctx, query, accountID)
}

// FindAccountByNumber retrieves an account by its unique account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.GLAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM gl_accounts WHERE account_number = $1;`
	return r.findAccount(ctx, query, accountNumber)
}

func (r *PgxAccountRepository) findAccount(ctx context.Context, query string, arg any) (*domain.GLAccount, error) {
	row := r.Pool.QueryRow(ctx, query, arg)
	modelAccount, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account", err)
	}
	domainAccount := mapping.ToDomainGLAccount(modelAccount)
	return &domainAccount, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.GLAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.GLAccount{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM gl_accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.GLAccount, len(accountIDs))
	for rows.Next() {
		modelAccount, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts[modelAccount.AccountID] = mapping.ToDomainGLAccount(modelAccount)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// ListAccounts retrieves accounts ordered by account number.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.GLAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM gl_accounts`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY account_number;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	modelAccounts := []models.GLAccount{}
	for rows.Next() {
		modelAccount, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		modelAccounts = append(modelAccounts, modelAccount)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return mapping.ToDomainGLAccountSlice(modelAccounts), nil
}

// DeactivateAccount soft-deletes an account.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE gl_accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// scanAccount scans one gl_accounts row in accountColumns order.
func scanAccount(row pgx.Row) (models.GLAccount, error) {
	var m models.GLAccount
	var parentID sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.AccountNumber,
		&m.Name,
		&m.AccountType,
		&m.Category,
		&parentID,
		&m.NormalBalance,
		&m.Description,
		&m.IsActive,
		&m.AllowsDirectPosting,
		&m.RequiresSubAccount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.GLAccount{}, err
	}
	if parentID.Valid {
		m.ParentAccountID = parentID.String
	}
	return m, nil
}
