package pgsql

import (
	portsrepo "github.com/corefin/corefin/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the concrete pgx repositories into the
// provider consumed by the service container.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	journalEntryRepo := newPgxJournalEntryRepository(dbPool)
	companyRepo := newPgxCompanyRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		UserRepo:         userRepo,
		JournalEntryRepo: journalEntryRepo,
		CompanyRepo:      companyRepo,
	}
}
