package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/praxio/fundledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	mappingRepo := newPgxMappingRepository(dbPool)
	autoPostRepo := newPgxAutoPostRuleRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		MappingRepo:      mappingRepo,
		AutoPostRuleRepo: autoPostRepo,
		JournalRepo:      journalRepo,
		ReportingRepo:    reportingRepo,
	}
}
