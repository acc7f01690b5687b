package repositories

// RepositoryProvider aggregates all repository facades for dependency injection.
type RepositoryProvider struct {
	LedgerRepo  LedgerRepositoryFacade
	AccountRepo AccountRepositoryFacade
	JournalRepo JournalRepositoryWithTx
	TxTypeRepo  TransactionTypeRepositoryFacade
}
