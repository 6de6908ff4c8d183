package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	MappingRepo      MappingRepositoryFacade
	AutoPostRuleRepo AutoPostRuleRepository
	JournalRepo      JournalRepositoryFacade
	ReportingRepo    ReportingRepository
}
