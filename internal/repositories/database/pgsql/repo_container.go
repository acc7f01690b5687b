package pgsql

import (
	portsrepo "github.com/fincore/bookkeeper_svc/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgsql repositories over one connection pool.
// The journal repository receives the account repository so journal releases
// can lock and update accounts inside the same database transaction.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)

	return &portsrepo.RepositoryProvider{
		LedgerRepo:  newPgxLedgerRepository(pool),
		AccountRepo: accountRepo,
		JournalRepo: newPgxJournalRepository(pool, accountRepo),
		TxTypeRepo:  newPgxTransactionTypeRepository(pool),
	}
}
