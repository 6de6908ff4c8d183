//go:build integration

package pgsql_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxio/fundledger/internal/core/domain"
	portsrepo "github.com/praxio/fundledger/internal/core/ports/repositories"
	"github.com/praxio/fundledger/internal/repositories/database/pgsql"
	"github.com/praxio/fundledger/testutil/testdb"
)

var testDB *testdb.TestDB

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	testDB, err = testdb.NewTestDB(ctx)
	if err != nil {
		panic("failed to create test database: " + err.Error())
	}

	code := m.Run()

	testDB.Close(ctx)
	if code != 0 {
		panic("tests failed")
	}
}

func setupReportingTest(t *testing.T) (portsrepo.ReportingRepository, context.Context) {
	ctx := context.Background()
	require.NoError(t, testDB.Reset(ctx))
	return pgsql.NewRepositoryProvider(testDB.Pool).ReportingRepo, ctx
}

func insertTestAccount(t *testing.T, ctx context.Context, pool *pgxpool.Pool, id, number, name, accountType, normalBalance string) {
	_, err := pool.Exec(ctx, `
		INSERT INTO gl_accounts (account_id, account_number, name, account_type, normal_balance,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, NOW(), 'test', NOW(), 'test')
	`, id, number, name, accountType, normalBalance)
	require.NoError(t, err)
}

func insertTestEntry(t *testing.T, ctx context.Context, pool *pgxpool.Pool, id, number string, entryDate time.Time, status, amount string, fundID *string) {
	_, err := pool.Exec(ctx, `
		INSERT INTO journal_entries (entry_id, entry_number, entry_date, description, source_type, status,
			total_debit_amount, total_credit_amount, fund_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, 'test entry', 'MANUAL', $4, $5::numeric, $5::numeric, $6, NOW(), 'test', NOW(), 'test')
	`, id, number, entryDate, status, amount, fundID)
	require.NoError(t, err)
}

func insertTestLine(t *testing.T, ctx context.Context, pool *pgxpool.Pool, id, entryID string, lineNumber int, accountID, debit, credit string, fundID *string) {
	_, err := pool.Exec(ctx, `
		INSERT INTO journal_entry_lines (line_item_id, entry_id, line_number, gl_account_id,
			debit_amount, credit_amount, fund_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7, NOW(), 'test', NOW(), 'test')
	`, id, entryID, lineNumber, accountID, debit, credit, fundID)
	require.NoError(t, err)
}

// seedFundScopeFixture posts three balanced entries against a cash and an
// equity account: one with no fund tag anywhere, one tagged fund-1, one
// tagged fund-2, plus a draft that must never count.
func seedFundScopeFixture(t *testing.T, ctx context.Context) {
	pool := testDB.Pool
	entryDate := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	fund1 := "fund-1"
	fund2 := "fund-2"

	insertTestAccount(t, ctx, pool, "acc-cash", "1000", "Cash", "ASSET", "DEBIT")
	insertTestAccount(t, ctx, pool, "acc-equity", "3000", "Partners Capital", "EQUITY", "CREDIT")

	insertTestEntry(t, ctx, pool, "je-unscoped", "JE-20260331-0001", entryDate, "POSTED", "100.00", nil)
	insertTestLine(t, ctx, pool, "li-1", "je-unscoped", 1, "acc-cash", "100.00", "0", nil)
	insertTestLine(t, ctx, pool, "li-2", "je-unscoped", 2, "acc-equity", "0", "100.00", nil)

	insertTestEntry(t, ctx, pool, "je-fund1", "JE-20260331-0002", entryDate, "POSTED", "50.00", &fund1)
	insertTestLine(t, ctx, pool, "li-3", "je-fund1", 1, "acc-cash", "50.00", "0", nil)
	insertTestLine(t, ctx, pool, "li-4", "je-fund1", 2, "acc-equity", "0", "50.00", nil)

	insertTestEntry(t, ctx, pool, "je-fund2", "JE-20260331-0003", entryDate, "POSTED", "70.00", &fund2)
	insertTestLine(t, ctx, pool, "li-5", "je-fund2", 1, "acc-cash", "70.00", "0", nil)
	insertTestLine(t, ctx, pool, "li-6", "je-fund2", 2, "acc-equity", "0", "70.00", nil)

	insertTestEntry(t, ctx, pool, "je-draft", "JE-20260331-0004", entryDate, "DRAFT", "999.00", nil)
	insertTestLine(t, ctx, pool, "li-7", "je-draft", 1, "acc-cash", "999.00", "0", nil)
	insertTestLine(t, ctx, pool, "li-8", "je-draft", 2, "acc-equity", "0", "999.00", nil)
}

func TestGetAccountActivity_FundScopeKeepsUnscopedActivity(t *testing.T) {
	repo, ctx := setupReportingTest(t)
	seedFundScopeFixture(t, ctx)
	asOf := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	fund1 := "fund-1"

	activity, err := repo.GetAccountActivity(ctx, "acc-cash", asOf, &fund1)
	require.NoError(t, err)
	assert.True(t, activity.DebitTotal.Equal(decimal.RequireFromString("150.00")),
		"fund-1 view sums the fund-1 entry plus the unscoped entry, got %s", activity.DebitTotal)
	assert.True(t, activity.CreditTotal.IsZero())
}

func TestGetAccountActivity_UnscopedViewSumsEverythingPosted(t *testing.T) {
	repo, ctx := setupReportingTest(t)
	seedFundScopeFixture(t, ctx)
	asOf := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	activity, err := repo.GetAccountActivity(ctx, "acc-cash", asOf, nil)
	require.NoError(t, err)
	assert.True(t, activity.DebitTotal.Equal(decimal.RequireFromString("220.00")),
		"drafts stay out of the total, got %s", activity.DebitTotal)
}

func TestGetAccountActivity_AsOfCutoff(t *testing.T) {
	repo, ctx := setupReportingTest(t)
	seedFundScopeFixture(t, ctx)
	asOf := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	activity, err := repo.GetAccountActivity(ctx, "acc-cash", asOf, nil)
	require.NoError(t, err)
	assert.True(t, activity.DebitTotal.IsZero(), "nothing was posted before the cutoff")
}

func TestGetTrialBalanceActivity_FundScopeKeepsUnscopedActivity(t *testing.T) {
	repo, ctx := setupReportingTest(t)
	seedFundScopeFixture(t, ctx)
	asOf := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	fund1 := "fund-1"

	activities, err := repo.GetTrialBalanceActivity(ctx, asOf, &fund1)
	require.NoError(t, err)
	require.Len(t, activities, 2)

	byID := map[string]domain.AccountActivity{}
	for _, a := range activities {
		byID[a.AccountID] = a
	}
	assert.True(t, byID["acc-cash"].DebitTotal.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, byID["acc-equity"].CreditTotal.Equal(decimal.RequireFromString("150.00")))
}
