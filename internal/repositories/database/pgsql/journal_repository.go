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
	"github.com/fincore/bookkeeper_svc/internal/utils/accounting"
	"github.com/fincore/bookkeeper_svc/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for the time-bucketed
// journal store.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const journalColumns = `date_bucket, transaction_id, transaction_date, transaction_type, clerk, note, message, debtors, creditors, state, created_at, created_by`

// SaveJournalEntry persists a PENDING entry into its date bucket, then writes
// the transaction-id lookup row. The two writes are intentionally not atomic:
// the lookup table is an optimization, not the source of truth. A failed
// lookup write after a successful primary write is surfaced as a fatal,
// operator-visible error for reconciliation.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	m, err := mapping.ToModelJournalEntry(entry)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode journal entry "+entry.TransactionID, err)
	}

	primaryQuery := `
		INSERT INTO journal_entries (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = r.Pool.Exec(ctx, primaryQuery,
		m.DateBucket,
		m.TransactionID,
		m.TransactionDate,
		nullableString(m.TransactionType),
		m.Clerk,
		nullableString(m.Note),
		nullableString(m.Message),
		m.Debtors,
		m.Creditors,
		m.State,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("journal entry %s: %w", m.TransactionID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.TransactionID, err)
	}

	// Dual write: the lookup row follows the committed primary row.
	lookupQuery := `INSERT INTO journal_entry_lookup (transaction_id, date_bucket) VALUES ($1, $2);`
	if _, err := r.Pool.Exec(ctx, lookupQuery, m.TransactionID, m.DateBucket); err != nil {
		return apperrors.NewAppError(500,
			"journal entry "+m.TransactionID+" stored but lookup index write failed; index requires reconciliation", err)
	}
	return nil
}

// FindBucketByTransactionID resolves a transaction identifier to its date
// bucket via the lookup index.
func (r *PgxJournalRepository) FindBucketByTransactionID(ctx context.Context, transactionID string) (string, error) {
	var bucket string
	err := r.Pool.QueryRow(ctx,
		`SELECT date_bucket FROM journal_entry_lookup WHERE transaction_id = $1;`, transactionID).Scan(&bucket)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("journal entry %s: %w", transactionID, apperrors.ErrNotFound)
		}
		return "", apperrors.NewAppError(500, "failed to look up journal entry "+transactionID, err)
	}
	return bucket, nil
}

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var txType, note, message sql.NullString
	err := row.Scan(
		&m.DateBucket,
		&m.TransactionID,
		&m.TransactionDate,
		&txType,
		&m.Clerk,
		&note,
		&message,
		&m.Debtors,
		&m.Creditors,
		&m.State,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return models.JournalEntry{}, err
	}
	m.TransactionType = txType.String
	m.Note = note.String
	m.Message = message.String
	return m, nil
}

// FindJournalEntryByID retrieves the primary row by (bucket, transaction id).
func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, bucket, transactionID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE date_bucket = $1 AND transaction_id = $2;`

	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, bucket, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("journal entry %s: %w", transactionID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+transactionID, err)
	}

	d, err := mapping.ToDomainJournalEntry(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode journal entry "+transactionID, err)
	}
	return &d, nil
}

// ListJournalEntries enumerates every calendar date between from and to
// inclusive and issues a single multi-bucket query, merging the results in
// ascending transaction date order. Point filters (account, amount) belong to
// the application layer, not this query.
func (r *PgxJournalRepository) ListJournalEntries(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error) {
	buckets := bucketsBetween(from, to)
	if len(buckets) == 0 {
		return []domain.JournalEntry{}, nil
	}

	query := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE date_bucket = ANY($1)
		ORDER BY transaction_date ASC, transaction_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, buckets)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan journal buckets", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry", err)
		}
		d, err := mapping.ToDomainJournalEntry(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode journal entry "+m.TransactionID, err)
		}
		entries = append(entries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read journal entry rows", err)
	}
	return entries, nil
}

// ReleaseJournalEntry applies a PENDING entry's legs and transitions it to
// PROCESSED, all within one database transaction: the touched accounts are
// locked for update, per-leg account entries are recorded with the balance
// resulting from each leg, and the running balances are updated.
func (r *PgxJournalRepository) ReleaseJournalEntry(ctx context.Context, entry domain.JournalEntry, releasedBy string, now time.Time) error {
	bucket := entry.TransactionDate.UTC().Format(models.DateBucketFormat)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Guard the transition inside the transaction so a concurrent release loses.
	tag, err := tx.Exec(ctx, `
		UPDATE journal_entries SET state = $3
		WHERE date_bucket = $1 AND transaction_id = $2 AND state = $4;`,
		bucket, entry.TransactionID, string(domain.Processed), string(domain.Pending),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to transition journal entry "+entry.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("journal entry %s is not pending: %w", entry.TransactionID, apperrors.ErrIllegalTransition)
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, entry.AccountIDs())
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for release", err)
	}

	// Walk debtor legs then creditor legs, tracking the balance after each leg.
	runningBalances := make(map[string]decimal.Decimal, len(lockedAccounts))
	balanceChanges := make(map[string]decimal.Decimal, len(lockedAccounts))
	for id, acc := range lockedAccounts {
		runningBalances[id] = acc.Balance
	}

	accountEntries := make([]domain.AccountEntry, 0, len(entry.Debtors)+len(entry.Creditors))
	appendLegs := func(side domain.EntrySide, legs []domain.Leg) error {
		for _, leg := range legs {
			account := lockedAccounts[leg.AccountID]
			signed, err := accounting.CalculateSignedAmount(side, account.Type, leg.Amount)
			if err != nil {
				return err
			}
			newBalance := runningBalances[leg.AccountID].Add(signed)
			runningBalances[leg.AccountID] = newBalance
			balanceChanges[leg.AccountID] = balanceChanges[leg.AccountID].Add(signed)

			accountEntries = append(accountEntries, domain.AccountEntry{
				EntryID:         uuid.NewString(),
				AccountID:       leg.AccountID,
				Side:            side,
				Amount:          leg.Amount,
				Balance:         newBalance,
				Message:         entry.Message,
				TransactionDate: entry.TransactionDate,
			})
		}
		return nil
	}
	if err := appendLegs(domain.Debit, entry.Debtors); err != nil {
		return apperrors.NewAppError(500, "failed to compute leg effects for "+entry.TransactionID, err)
	}
	if err := appendLegs(domain.Credit, entry.Creditors); err != nil {
		return apperrors.NewAppError(500, "failed to compute leg effects for "+entry.TransactionID, err)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, releasedBy, now); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances for "+entry.TransactionID, err)
	}
	if err := r.accountRepo.SaveAccountEntriesInTx(ctx, tx, accountEntries); err != nil {
		return apperrors.NewAppError(500, "failed to record account entries for "+entry.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// RepairLookupIndex re-inserts lookup rows missing after a failed dual write,
// scanning the buckets in [from, to]. Returns the number of repaired rows.
func (r *PgxJournalRepository) RepairLookupIndex(ctx context.Context, from, to time.Time) (int, error) {
	buckets := bucketsBetween(from, to)
	if len(buckets) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO journal_entry_lookup (transaction_id, date_bucket)
		SELECT transaction_id, date_bucket FROM journal_entries WHERE date_bucket = ANY($1)
		ON CONFLICT (transaction_id) DO NOTHING;
	`
	tag, err := r.Pool.Exec(ctx, query, buckets)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to repair journal lookup index", err)
	}
	return int(tag.RowsAffected()), nil
}

// bucketsBetween enumerates the calendar days between from and to inclusive.
func bucketsBetween(from, to time.Time) []string {
	start := from.UTC().Truncate(24 * time.Hour)
	end := to.UTC().Truncate(24 * time.Hour)
	if end.Before(start) {
		return nil
	}

	buckets := []string{}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		buckets = append(buckets, day.Format(models.DateBucketFormat))
	}
	return buckets
}
