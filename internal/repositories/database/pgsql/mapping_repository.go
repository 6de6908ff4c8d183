package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxio/fundledger/internal/apperrors"
	"github.com/praxio/fundledger/internal/core/domain"
	portsrepo "github.com/praxio/fundledger/internal/core/ports/repositories"
	"github.com/praxio/fundledger/internal/models"
	"github.com/praxio/fundledger/internal/utils/mapping"
)

type PgxMappingRepository struct {
	BaseRepository
}

// newPgxMappingRepository creates a new repository for mapping rule data.
func newPgxMappingRepository(pool *pgxpool.Pool) portsrepo.MappingRepositoryFacade {
	return &PgxMappingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxMappingRepository implements portsrepo.MappingRepositoryFacade
var _ portsrepo.MappingRepositoryFacade = (*PgxMappingRepository)(nil)

const mappingColumns = `
	mapping_id, source_system, source_type, source_sub_type, fund_id, priority,
	is_active, gl_account_id, debit_account_id, credit_account_id, amount_field,
	conditions, description, created_at, created_by, last_updated_at, last_updated_by
`

// SaveMapping persists a new mapping rule.
func (r *PgxMappingRepository) SaveMapping(ctx context.Context, m domain.GLAccountMapping) error {
	modelMapping, err := mapping.ToModelGLAccountMapping(m)
	if err != nil {
		return apperrors.NewAppError(400, "failed to convert mapping "+m.MappingID, err)
	}
	query := `
		INSERT INTO gl_account_mappings (` + mappingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = r.Pool.Exec(ctx, query,
		modelMapping.MappingID,
		modelMapping.SourceSystem,
		modelMapping.SourceType,
		nullableString(modelMapping.SourceSubType),
		nullableString(modelMapping.FundID),
		modelMapping.Priority,
		modelMapping.IsActive,
		nullableString(modelMapping.GLAccountID),
		nullableString(modelMapping.DebitAccountID),
		nullableString(modelMapping.CreditAccountID),
		modelMapping.AmountField,
		modelMapping.Conditions,
		modelMapping.Description,
		modelMapping.CreatedAt,
		modelMapping.CreatedBy,
		modelMapping.LastUpdatedAt,
		modelMapping.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert mapping "+modelMapping.MappingID, err)
	}
	return nil
}

// FindMappingByID retrieves a mapping rule by its ID.
func (r *PgxMappingRepository) FindMappingByID(ctx context.Context, mappingID string) (*domain.GLAccountMapping, error) {
	query := `SELECT ` + mappingColumns + ` FROM gl_account_mappings WHERE mapping_id = $1;`
	row := r.Pool.QueryRow(ctx, query, mappingID)
	modelMapping, err := scanMapping(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find mapping by ID "+mappingID, err)
	}
	domainMapping, err := mapping.ToDomainGLAccountMapping(modelMapping)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode mapping "+mappingID, err)
	}
	return &domainMapping, nil
}

// FindActiveMappings retrieves active mapping rules for a source system
// and type in evaluation order. Fund-specific rules sort before global
// rules at equal priority.
func (r *PgxMappingRepository) FindActiveMappings(ctx context.Context, sourceSystem string, sourceType string, fundID *string) ([]domain.GLAccountMapping, error) {
	query := `
		SELECT ` + mappingColumns + `
		FROM gl_account_mappings
		WHERE source_system = $1
		  AND source_type = $2
		  AND is_active = TRUE
		  AND (fund_id IS NULL OR fund_id = $3)
		ORDER BY priority ASC, fund_id ASC NULLS LAST, created_at ASC;
	`
	var fundArg sql.NullString
	if fundID != nil {
		fundArg = nullableString(*fundID)
	}
	rows, err := r.Pool.Query(ctx, query, sourceSystem, sourceType, fundArg)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query active mappings for "+sourceSystem+"/"+sourceType, err)
	}
	defer rows.Close()
	return collectMappings(rows)
}

// ListMappings retrieves mapping rules filtered by the given params,
// ordered for stable listings.
func (r *PgxMappingRepository) ListMappings(ctx context.Context, sourceSystem *string, sourceType *string, activeOnly bool) ([]domain.GLAccountMapping, error) {
	query := `
		SELECT ` + mappingColumns + `
		FROM gl_account_mappings
		WHERE ($1::text IS NULL OR source_system = $1)
		  AND ($2::text IS NULL OR source_type = $2)
		  AND ($3::boolean = FALSE OR is_active = TRUE)
		ORDER BY source_system, source_type, priority ASC;
	`
	rows, err := r.Pool.Query(ctx, query, sourceSystem, sourceType, activeOnly)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query mappings", err)
	}
	defer rows.Close()
	return collectMappings(rows)
}

// DeactivateMapping soft-deletes a mapping rule.
func (r *PgxMappingRepository) DeactivateMapping(ctx context.Context, mappingID string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE gl_account_mappings
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE mapping_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, mappingID, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate mapping "+mappingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func collectMappings(rows pgx.Rows) ([]domain.GLAccountMapping, error) {
	mappings := []domain.GLAccountMapping{}
	for rows.Next() {
		modelMapping, err := scanMapping(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan mapping row", err)
		}
		domainMapping, err := mapping.ToDomainGLAccountMapping(modelMapping)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode mapping "+modelMapping.MappingID, err)
		}
		mappings = append(mappings, domainMapping)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating mapping rows", err)
	}
	return mappings, nil
}

// scanMapping scans one gl_account_mappings row in mappingColumns order.
func scanMapping(row pgx.Row) (models.GLAccountMapping, error) {
	var m models.GLAccountMapping
	var subType, fundID, glAccountID, debitAccountID, creditAccountID sql.NullString
	err := row.Scan(
		&m.MappingID,
		&m.SourceSystem,
		&m.SourceType,
		&subType,
		&fundID,
		&m.Priority,
		&m.IsActive,
		&glAccountID,
		&debitAccountID,
		&creditAccountID,
		&m.AmountField,
		&m.Conditions,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.GLAccountMapping{}, err
	}
	m.SourceSubType = fromNullString(subType)
	m.FundID = fromNullString(fundID)
	m.GLAccountID = fromNullString(glAccountID)
	m.DebitAccountID = fromNullString(debitAccountID)
	m.CreditAccountID = fromNullString(creditAccountID)
	return m, nil
}
