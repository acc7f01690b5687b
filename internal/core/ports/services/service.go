package services

// ServiceContainer aggregates all service facades for dependency injection.
type ServiceContainer struct {
	Ledger    LedgerSvcFacade
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	Reporting ReportingSvcFacade
	TxType    TransactionTypeSvcFacade
}
