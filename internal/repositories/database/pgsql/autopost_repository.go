package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxio/fundledger/internal/apperrors"
	portsrepo "github.com/praxio/fundledger/internal/core/ports/repositories"
)

type PgxAutoPostRuleRepository struct {
	BaseRepository
}

// newPgxAutoPostRuleRepository creates a new repository for auto-post rules.
func newPgxAutoPostRuleRepository(pool *pgxpool.Pool) portsrepo.AutoPostRuleRepository {
	return &PgxAutoPostRuleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAutoPostRuleRepository implements portsrepo.AutoPostRuleRepository
var _ portsrepo.AutoPostRuleRepository = (*PgxAutoPostRuleRepository)(nil)

// IsAutoPost reports whether an active auto-post rule covers the source.
// Absence of a rule means entries stay in draft for review.
func (r *PgxAutoPostRuleRepository) IsAutoPost(ctx context.Context, sourceSystem string, sourceType string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM auto_post_rules
			WHERE source_system = $1 AND source_type = $2 AND is_active = TRUE
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, sourceSystem, sourceType).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check auto-post rule for "+sourceSystem+"/"+sourceType, err)
	}
	return exists, nil
}
