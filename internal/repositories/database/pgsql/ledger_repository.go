package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fincore/bookkeeper_svc/internal/apperrors"
	"github.com/fincore/bookkeeper_svc/internal/core/domain"
	portsrepo "github.com/fincore/bookkeeper_svc/internal/core/ports/repositories"
	"github.com/fincore/bookkeeper_svc/internal/models"
	"github.com/fincore/bookkeeper_svc/internal/utils/mapping"
	"github.com/fincore/bookkeeper_svc/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerColumns = `ledger_id, ledger_type, name, description, parent_ledger_id, show_accounts_in_chart, created_at, created_by, last_updated_at, last_updated_by`

func scanLedger(row pgx.Row) (models.Ledger, error) {
	var m models.Ledger
	var description, parentID sql.NullString
	err := row.Scan(
		&m.LedgerID,
		&m.Type,
		&m.Name,
		&description,
		&parentID,
		&m.ShowAccountsInChart,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Ledger{}, err
	}
	m.Description = description.String
	m.ParentLedgerID = parentID.String
	return m, nil
}

// SaveLedger inserts a new ledger row.
func (r *PgxLedgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) error {
	m := mapping.ToModelLedger(ledger)

	query := `
		INSERT INTO ledgers (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LedgerID,
		m.Type,
		m.Name,
		nullableString(m.Description),
		nullableString(m.ParentLedgerID),
		m.ShowAccountsInChart,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ledger %s: %w", m.LedgerID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save ledger "+m.LedgerID, err)
	}
	return nil
}

// FindLedgerByID retrieves a ledger by its identifier.
func (r *PgxLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledgers WHERE ledger_id = $1;`

	m, err := scanLedger(r.Pool.QueryRow(ctx, query, ledgerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ledger %s: %w", ledgerID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger "+ledgerID, err)
	}

	d := mapping.ToDomainLedger(m)
	return &d, nil
}

// ListRootLedgers retrieves all ledgers without a parent, ordered by identifier.
func (r *PgxLedgerRepository) ListRootLedgers(ctx context.Context) ([]domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledgers WHERE parent_ledger_id IS NULL ORDER BY ledger_id ASC;`
	return r.queryLedgers(ctx, query)
}

// ListChildLedgers retrieves the immediate sub-ledgers of a parent, ordered by identifier.
func (r *PgxLedgerRepository) ListChildLedgers(ctx context.Context, parentLedgerID string) ([]domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledgers WHERE parent_ledger_id = $1 ORDER BY ledger_id ASC;`
	return r.queryLedgers(ctx, query, parentLedgerID)
}

func (r *PgxLedgerRepository) queryLedgers(ctx context.Context, query string, args ...any) ([]domain.Ledger, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledgers", err)
	}
	defer rows.Close()

	ledgers := []domain.Ledger{}
	for rows.Next() {
		m, err := scanLedger(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger", err)
		}
		ledgers = append(ledgers, mapping.ToDomainLedger(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read ledger rows", err)
	}
	return ledgers, nil
}

// ListLedgers retrieves a page of ledgers matching the search term, plus the total count.
func (r *PgxLedgerRepository) ListLedgers(ctx context.Context, term string, page pagination.Page) ([]domain.Ledger, int64, error) {
	where := `WHERE ($1 = '' OR ledger_id ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%')`

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM ledgers `+where, term).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count ledgers", err)
	}

	sortColumn := page.SortColumnOrDefault("ledger_id", "ledger_id", "name", "ledger_type", "created_at")
	direction := string(page.Normalized().SortDirection)

	query := fmt.Sprintf(`SELECT %s FROM ledgers %s ORDER BY %s %s LIMIT $2 OFFSET $3;`,
		ledgerColumns, where, sortColumn, direction)

	ledgers, err := r.queryLedgers(ctx, query, term, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	return ledgers, total, nil
}

// CountChildLedgers returns the number of immediate sub-ledgers.
func (r *PgxLedgerRepository) CountChildLedgers(ctx context.Context, ledgerID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM ledgers WHERE parent_ledger_id = $1;`, ledgerID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count child ledgers", err)
	}
	return count, nil
}

// TotalValue computes the signed sum of all account balances under the ledger,
// transitively through child ledgers, via a recursive aggregation query.
// A ledger with no descendants yields zero.
func (r *PgxLedgerRepository) TotalValue(ctx context.Context, ledgerID string) (decimal.Decimal, error) {
	query := `
		WITH RECURSIVE ledger_tree AS (
			SELECT ledger_id FROM ledgers WHERE ledger_id = $1
			UNION ALL
			SELECT l.ledger_id
			FROM ledgers l
			JOIN ledger_tree t ON l.parent_ledger_id = t.ledger_id
		)
		SELECT COALESCE(SUM(a.balance), 0)
		FROM accounts a
		WHERE a.ledger_id IN (SELECT ledger_id FROM ledger_tree);
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, ledgerID).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute total value for ledger "+ledgerID, err)
	}
	return total, nil
}

// UpdateLedger updates the mutable fields of a ledger row.
func (r *PgxLedgerRepository) UpdateLedger(ctx context.Context, ledger domain.Ledger) error {
	m := mapping.ToModelLedger(ledger)

	query := `
		UPDATE ledgers
		SET name = $2, description = $3, show_accounts_in_chart = $4, last_updated_at = $5, last_updated_by = $6
		WHERE ledger_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.LedgerID,
		m.Name,
		nullableString(m.Description),
		m.ShowAccountsInChart,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update ledger "+m.LedgerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ledger %s: %w", m.LedgerID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteLedger removes a ledger row. Referential checks happen in the service.
func (r *PgxLedgerRepository) DeleteLedger(ctx context.Context, ledgerID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM ledgers WHERE ledger_id = $1;`, ledgerID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("ledger %s: %w", ledgerID, apperrors.ErrReferenceExists)
		}
		return apperrors.NewAppError(500, "failed to delete ledger "+ledgerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ledger %s: %w", ledgerID, apperrors.ErrNotFound)
	}
	return nil
}

// nullableString converts an empty string to a NULL parameter.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
