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
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionTypeRepository struct {
	BaseRepository
}

func newPgxTransactionTypeRepository(pool *pgxpool.Pool) portsrepo.TransactionTypeRepositoryFacade {
	return &PgxTransactionTypeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionTypeRepositoryFacade = (*PgxTransactionTypeRepository)(nil)

const txTypeColumns = `code, name, description, created_at, created_by, last_updated_at, last_updated_by`

func scanTransactionType(row pgx.Row) (models.TransactionType, error) {
	var m models.TransactionType
	var description sql.NullString
	err := row.Scan(&m.Code, &m.Name, &description, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		return models.TransactionType{}, err
	}
	m.Description = description.String
	return m, nil
}

// SaveTransactionType inserts a new registry row.
func (r *PgxTransactionTypeRepository) SaveTransactionType(ctx context.Context, txType domain.TransactionType) error {
	m := mapping.ToModelTransactionType(txType)

	query := `INSERT INTO transaction_types (` + txTypeColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7);`
	_, err := r.Pool.Exec(ctx, query,
		m.Code, m.Name, nullableString(m.Description),
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("transaction type %s: %w", m.Code, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save transaction type "+m.Code, err)
	}
	return nil
}

// UpdateTransactionType updates a registry row's name and description.
func (r *PgxTransactionTypeRepository) UpdateTransactionType(ctx context.Context, txType domain.TransactionType) error {
	m := mapping.ToModelTransactionType(txType)

	query := `
		UPDATE transaction_types
		SET name = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE code = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Code, m.Name, nullableString(m.Description), m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction type "+m.Code, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction type %s: %w", m.Code, apperrors.ErrNotFound)
	}
	return nil
}

// FindTransactionTypeByCode retrieves a registry row by its code.
func (r *PgxTransactionTypeRepository) FindTransactionTypeByCode(ctx context.Context, code string) (*domain.TransactionType, error) {
	query := `SELECT ` + txTypeColumns + ` FROM transaction_types WHERE code = $1;`

	m, err := scanTransactionType(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction type %s: %w", code, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction type "+code, err)
	}

	d := mapping.ToDomainTransactionType(m)
	return &d, nil
}

// FindTransactionTypesByCodes retrieves multiple registry rows keyed by code.
func (r *PgxTransactionTypeRepository) FindTransactionTypesByCodes(ctx context.Context, codes []string) (map[string]domain.TransactionType, error) {
	if len(codes) == 0 {
		return map[string]domain.TransactionType{}, nil
	}

	query := `SELECT ` + txTypeColumns + ` FROM transaction_types WHERE code = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, codes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transaction types", err)
	}
	defer rows.Close()

	types := make(map[string]domain.TransactionType)
	for rows.Next() {
		m, err := scanTransactionType(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction type", err)
		}
		types[m.Code] = mapping.ToDomainTransactionType(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read transaction type rows", err)
	}
	return types, nil
}

// ListTransactionTypes retrieves a page of registry rows plus the total count.
func (r *PgxTransactionTypeRepository) ListTransactionTypes(ctx context.Context, term string, page pagination.Page) ([]domain.TransactionType, int64, error) {
	where := `WHERE ($1 = '' OR code ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%')`

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transaction_types `+where, term).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count transaction types", err)
	}

	sortColumn := page.SortColumnOrDefault("code", "code", "name", "created_at")
	direction := string(page.Normalized().SortDirection)

	query := fmt.Sprintf(`SELECT %s FROM transaction_types %s ORDER BY %s %s LIMIT $2 OFFSET $3;`,
		txTypeColumns, where, sortColumn, direction)

	rows, err := r.Pool.Query(ctx, query, term, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list transaction types", err)
	}
	defer rows.Close()

	types := []domain.TransactionType{}
	for rows.Next() {
		m, err := scanTransactionType(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan transaction type", err)
		}
		types = append(types, mapping.ToDomainTransactionType(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to read transaction type rows", err)
	}
	return types, total, nil
}
