package services

import (
	portsrepo "github.com/corefin/corefin/internal/core/ports/repositories"
	portssvc "github.com/corefin/corefin/internal/core/ports/services"
	"github.com/corefin/corefin/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Company service first since the other services authorize through it
	container.Company = NewCompanyService(repos.CompanyRepo)

	companyAuthorizer := container.Company.(portssvc.CompanyAuthorizerSvc)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithCompanyAuthorizerForAccount(companyAuthorizer),
	)

	container.User = NewUserService(repos.UserRepo)
	container.JournalEntry = NewJournalEntryService(repos.JournalEntryRepo, container.Account, container.Company)
	container.Reporting = NewReportingService(repos.AccountRepo, repos.JournalEntryRepo, container.Company)
	container.Auth = NewAuthService(cfg, container.User)

	return container
}
