package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fincore/bookkeeper_svc/internal/apperrors"
	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	portsrepo "github.com/fincore/bookkeeper_svc/internal/core/ports/repositories"
	"github.com/fincore/bookkeeper_svc/internal/models"
	"github.com/fincore/bookkeeper_svc/internal/utils/mapping"
	"github.com/fincore/bookkeeper_svc/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, account_type, name, ledger_id, balance, holders, signature_authorities, reference_account_id, state, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var referenceID sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.Type,
		&m.Name,
		&m.LedgerID,
		&m.Balance,
		&m.Holders,
		&m.SignatureAuthorities,
		&referenceID,
		&m.State,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Account{}, err
	}
	m.ReferenceAccountID = referenceID.String
	return m, nil
}

// SaveAccount inserts a new account row.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Type,
		m.Name,
		m.LedgerID,
		m.Balance,
		m.Holders,
		m.SignatureAuthorities,
		nullableString(m.ReferenceAccountID),
		m.State,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account %s: %w", m.AccountID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save account "+m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountID, err)
	}

	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by identifier.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read account rows", err)
	}
	return accounts, nil
}

// ListAccounts retrieves a filtered page of accounts plus the total count.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter, page pagination.Page) ([]domain.Account, int64, error) {
	where := `
		WHERE ($1 = '' OR account_id ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR account_type = $2)
		  AND ($3 = '' OR state = $3)
		  AND ($4 = '' OR ledger_id = $4)
	`
	args := []any{filter.Term, string(filter.Type), string(filter.State), filter.LedgerID}

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts `+where, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count accounts", err)
	}

	sortColumn := page.SortColumnOrDefault("account_id", "account_id", "name", "balance", "state", "created_at")
	direction := string(page.Normalized().SortDirection)

	query := fmt.Sprintf(`SELECT %s FROM accounts %s ORDER BY %s %s LIMIT $5 OFFSET $6;`,
		accountColumns, where, sortColumn, direction)
	args = append(args, page.Limit(), page.Offset())

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan account", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to read account rows", err)
	}
	return accounts, total, nil
}

// ListAccountsByLedger retrieves all accounts owned by a ledger, ordered by identifier.
func (r *PgxAccountRepository) ListAccountsByLedger(ctx context.Context, ledgerID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ledger_id = $1 ORDER BY account_id ASC;`

	rows, err := r.Pool.Query(ctx, query, ledgerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts for ledger "+ledgerID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read account rows", err)
	}
	return accounts, nil
}

// CountAccountsByLedger returns the number of accounts owned by a ledger.
func (r *PgxAccountRepository) CountAccountsByLedger(ctx context.Context, ledgerID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE ledger_id = $1;`, ledgerID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count accounts for ledger "+ledgerID, err)
	}
	return count, nil
}

// CountEntriesByAccount returns the number of recorded entries for an account.
func (r *PgxAccountRepository) CountEntriesByAccount(ctx context.Context, accountID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM account_entries WHERE account_id = $1;`, accountID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count entries for account "+accountID, err)
	}
	return count, nil
}

// CountReferencingAccounts returns the number of accounts whose reference link
// points at the given account.
func (r *PgxAccountRepository) CountReferencingAccounts(ctx context.Context, accountID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE reference_account_id = $1;`, accountID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count referencing accounts for "+accountID, err)
	}
	return count, nil
}

// ListAccountEntries retrieves a page of entries recorded against an account
// within a date range, plus the total count.
func (r *PgxAccountRepository) ListAccountEntries(ctx context.Context, accountID string, from, to time.Time, page pagination.Page) ([]domain.AccountEntry, int64, error) {
	where := `WHERE account_id = $1 AND transaction_date >= $2 AND transaction_date <= $3`

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM account_entries `+where, accountID, from, to).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count entries for account "+accountID, err)
	}

	direction := string(page.Normalized().SortDirection)
	query := fmt.Sprintf(`
		SELECT entry_id, account_id, side, amount, balance, message, transaction_date
		FROM account_entries %s
		ORDER BY transaction_date %s, entry_id %s
		LIMIT $4 OFFSET $5;`, where, direction, direction)

	rows, err := r.Pool.Query(ctx, query, accountID, from, to, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list entries for account "+accountID, err)
	}
	defer rows.Close()

	entries := []domain.AccountEntry{}
	for rows.Next() {
		var m models.AccountEntry
		var message sql.NullString
		if err := rows.Scan(&m.EntryID, &m.AccountID, &m.Side, &m.Amount, &m.Balance, &message, &m.TransactionDate); err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan account entry", err)
		}
		m.Message = message.String
		entries = append(entries, mapping.ToDomainAccountEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to read account entry rows", err)
	}
	return entries, total, nil
}

// ListAccountCommands retrieves the executed state-machine commands for an
// account, oldest first.
func (r *PgxAccountRepository) ListAccountCommands(ctx context.Context, accountID string) ([]domain.AccountCommand, error) {
	query := `
		SELECT command_id, account_id, action, comment, created_at, created_by
		FROM account_commands
		WHERE account_id = $1
		ORDER BY created_at ASC, command_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list commands for account "+accountID, err)
	}
	defer rows.Close()

	commands := []domain.AccountCommand{}
	for rows.Next() {
		var m models.AccountCommand
		var comment sql.NullString
		if err := rows.Scan(&m.CommandID, &m.AccountID, &m.Action, &comment, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account command", err)
		}
		m.Comment = comment.String
		commands = append(commands, mapping.ToDomainAccountCommand(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read account command rows", err)
	}
	return commands, nil
}

// UpdateAccount updates an account's mutable details.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, holders = $3, signature_authorities = $4, reference_account_id = $5, last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.Holders,
		m.SignatureAuthorities,
		nullableString(m.ReferenceAccountID),
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", m.AccountID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteAccount removes an account row. Referential checks happen in the service.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("account %s: %w", accountID, apperrors.ErrReferenceExists)
		}
		return apperrors.NewAppError(500, "failed to delete account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	return nil
}

// UpdateAccountState persists a state transition and its audit command in one
// database transaction.
func (r *PgxAccountRepository) UpdateAccountState(ctx context.Context, accountID string, from, to domain.AccountState, command domain.AccountCommand) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Guard on the expected state so a concurrent command loses.
	tag, err := tx.Exec(ctx, `
		UPDATE accounts SET state = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND state = $5;`,
		accountID, string(to), command.CreatedAt, command.CreatedBy, string(from),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update state for account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s is no longer %s: %w", accountID, from, apperrors.ErrIllegalTransition)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO account_commands (command_id, account_id, action, comment, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		command.CommandID, command.AccountID, string(command.Action), nullableString(command.Comment), command.CreatedAt, command.CreatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record command for account "+accountID, err)
	}

	return r.Commit(ctx, tx)
}

// FindAccountsByIDsForUpdate retrieves multiple accounts by IDs and locks the
// rows for update. Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) FOR UPDATE;`

	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account: %w", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read locked account rows: %w", err)
	}

	for _, id := range accountIDs {
		if _, found := accounts[id]; !found {
			return nil, fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
		}
	}
	return accounts, nil
}

// UpdateAccountBalancesInTx applies balance deltas to multiple accounts within
// a transaction.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`

	batch := &pgx.Batch{}
	for accountID, delta := range balanceChanges {
		if !delta.IsZero() {
			batch.Queue(query, accountID, delta, now, userID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		tag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("failed to update account balance: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("balance update affected no rows: %w", apperrors.ErrNotFound)
		}
	}
	return nil
}

// SaveAccountEntriesInTx inserts immutable account entries within a transaction.
func (r *PgxAccountRepository) SaveAccountEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.AccountEntry) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
		INSERT INTO account_entries (entry_id, account_id, side, amount, balance, message, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := mapping.ToModelAccountEntry(entry)
		batch.Queue(query, m.EntryID, m.AccountID, m.Side, m.Amount, m.Balance, nullableString(m.Message), m.TransactionDate)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert account entry: %w", err)
		}
	}
	return nil
}
