package services

import (
	"github.com/shopspring/decimal"

	portsrepo "github.com/praxio/fundledger/internal/core/ports/repositories"
	portssvc "github.com/praxio/fundledger/internal/core/ports/services"
	"github.com/praxio/fundledger/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.NotifierSvc) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Mapping = NewMappingService(repos.MappingRepo, repos.AccountRepo)

	// Automated postings at or above the threshold trigger notifications.
	// A missing or malformed threshold means notify on everything.
	threshold, err := decimal.NewFromString(cfg.MaterialityThreshold)
	if err != nil {
		threshold = decimal.Zero
	}

	container.Notifier = notifier
	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.AccountRepo,
		repos.AutoPostRuleRepo,
		container.Mapping,
		notifier,
		threshold,
	)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo)

	return container
}
