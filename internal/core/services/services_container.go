package services

import (
	portsrepo "github.com/fincore/bookkeeper_svc/internal/core/ports/repositories"
	portssvc "github.com/fincore/bookkeeper_svc/internal/core/ports/services"
)

// NewServiceContainer wires all services over the repository provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger:    NewLedgerService(repos.LedgerRepo, repos.AccountRepo),
		Account:   NewAccountService(repos.AccountRepo, repos.LedgerRepo),
		Journal:   NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.TxTypeRepo),
		Reporting: NewReportingService(repos.LedgerRepo),
		TxType:    NewTransactionTypeService(repos.TxTypeRepo),
	}
}
