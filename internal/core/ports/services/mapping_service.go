package services

import (
	"context"

	"github.com/praxio/fundledger/internal/core/domain"
	"github.com/praxio/fundledger/internal/dto"
)

// MappingSvcFacade defines event-to-GL mapping rule operations.
type MappingSvcFacade interface {
	// CreateMapping registers a new mapping rule after validating its
	// account references and condition tree.
	CreateMapping(ctx context.Context, creatorUserID string, req dto.CreateMappingRequest) (domain.GLAccountMapping, error)

	// GetMappingByID retrieves a mapping rule by its ID.
	GetMappingByID(ctx context.Context, mappingID string) (domain.GLAccountMapping, error)

	// ListMappings retrieves mapping rules filtered by the given params.
	ListMappings(ctx context.Context, params dto.ListMappingsParams) ([]domain.GLAccountMapping, error)

	// FindApplicableMappings returns the active mapping rules whose scope
	// and conditions match the event, in priority order.
	FindApplicableMappings(ctx context.Context, event domain.SourceEvent) ([]domain.GLAccountMapping, error)

	// ResolveLineItems translates a source event into balanced journal line
	// items using the applicable mapping rules.
	ResolveLineItems(ctx context.Context, event domain.SourceEvent) ([]domain.JournalEntryLineItem, error)

	// DeactivateMapping soft-deletes a mapping rule.
	DeactivateMapping(ctx context.Context, updaterUserID string, mappingID string) error
}
