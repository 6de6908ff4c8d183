package repositories

import (
	"context"
	"time"

	"github.com/praxio/fundledger/internal/core/domain"
)

// MappingReaderRepo defines read operations for event-to-GL mapping rules.
type MappingReaderRepo interface {
	// FindMappingByID retrieves a mapping rule by its ID.
	FindMappingByID(ctx context.Context, mappingID string) (*domain.GLAccountMapping, error)

	// FindActiveMappings retrieves active mapping rules for a source system
	// and type ordered by ascending priority. Fund-scoped rules for other
	// funds are excluded; global rules (nil fund) are always included.
	FindActiveMappings(ctx context.Context, sourceSystem string, sourceType string, fundID *string) ([]domain.GLAccountMapping, error)

	// ListMappings retrieves mapping rules filtered by the given params.
	ListMappings(ctx context.Context, sourceSystem *string, sourceType *string, activeOnly bool) ([]domain.GLAccountMapping, error)
}

// MappingWriterRepo defines write operations for event-to-GL mapping rules.
type MappingWriterRepo interface {
	// SaveMapping persists a new mapping rule.
	SaveMapping(ctx context.Context, mapping domain.GLAccountMapping) error

	// DeactivateMapping soft-deletes a mapping rule.
	DeactivateMapping(ctx context.Context, mappingID string, updatedBy string, updatedAt time.Time) error
}

// MappingRepositoryFacade combines mapping reader and writer operations.
type MappingRepositoryFacade interface {
	MappingReaderRepo
	MappingWriterRepo
}

// AutoPostRuleRepository answers whether events from a given source should
// be posted immediately rather than left in draft.
type AutoPostRuleRepository interface {
	IsAutoPost(ctx context.Context, sourceSystem string, sourceType string) (bool, error)
}
