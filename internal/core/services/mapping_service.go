package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/praxio/fundledger/internal/apperrors"
	"github.com/praxio/fundledger/internal/core/domain"
	portsrepo "github.com/praxio/fundledger/internal/core/ports/repositories"
	portssvc "github.com/praxio/fundledger/internal/core/ports/services"
	"github.com/praxio/fundledger/internal/dto"
	"github.com/praxio/fundledger/internal/utils/rules"
)

var (
	ErrNoApplicableMapping    = errors.New("no applicable mapping for source event")
	ErrNoLedgerActivity       = errors.New("source event produced no ledger activity")
	ErrMappingAccountsInvalid = errors.New("mapping must name either a single GL account or a debit/credit account pair")
	ErrMappingAccountNotFound = errors.New("mapping references an unknown account")
	ErrAccountNotPostable     = errors.New("account does not accept direct postings")
	ErrAmountNotNumeric       = errors.New("source data amount is not numeric")
)

// defaultAmountField is the source data key consulted when a mapping does
// not name one.
const defaultAmountField = "amount"

// mappingService implements mapping rule management and event resolution.
type mappingService struct {
	BaseService
	mappingRepo portsrepo.MappingRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewMappingService creates a new MappingService.
func NewMappingService(mappingRepo portsrepo.MappingRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.MappingSvcFacade {
	return &mappingService{
		mappingRepo: mappingRepo,
		accountRepo: accountRepo,
	}
}

// Ensure mappingService implements the portssvc.MappingSvcFacade interface
var _ portssvc.MappingSvcFacade = (*mappingService)(nil)

// CreateMapping registers a new mapping rule.
func (s *mappingService) CreateMapping(ctx context.Context, creatorUserID string, req dto.CreateMappingRequest) (domain.GLAccountMapping, error) {
	hasSingle := req.GLAccountID != ""
	hasPair := req.DebitAccountID != "" && req.CreditAccountID != ""
	if hasSingle == hasPair {
		return domain.GLAccountMapping{}, fmt.Errorf("%w", ErrMappingAccountsInvalid)
	}
	if !hasPair && (req.DebitAccountID != "" || req.CreditAccountID != "") {
		return domain.GLAccountMapping{}, fmt.Errorf("%w: debit and credit accounts must be set together", ErrMappingAccountsInvalid)
	}

	accountIDs := make([]string, 0, 2)
	if hasSingle {
		accountIDs = append(accountIDs, req.GLAccountID)
	} else {
		accountIDs = append(accountIDs, req.DebitAccountID, req.CreditAccountID)
	}
	for _, id := range accountIDs {
		account, err := s.accountRepo.FindAccountByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return domain.GLAccountMapping{}, fmt.Errorf("%w: %s", ErrMappingAccountNotFound, id)
			}
			s.LogError(ctx, err, "Failed to fetch account for mapping", slog.String("account_id", id))
			return domain.GLAccountMapping{}, fmt.Errorf("failed to fetch account %s: %w", id, err)
		}
		if !account.CanPostDirectly() {
			return domain.GLAccountMapping{}, fmt.Errorf("%w: %s", ErrAccountNotPostable, id)
		}
	}

	// Rules with unknown operators are rejected at creation rather
	// than at posting time.
	if err := rules.Validate(req.Conditions); err != nil {
		return domain.GLAccountMapping{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	amountField := req.AmountField
	if amountField == "" {
		amountField = defaultAmountField
	}

	now := time.Now().UTC()
	mapping := domain.GLAccountMapping{
		MappingID:       uuid.NewString(),
		SourceSystem:    req.SourceSystem,
		SourceType:      req.SourceType,
		SourceSubType:   req.SourceSubType,
		FundID:          req.FundID,
		Priority:        req.Priority,
		IsActive:        true,
		GLAccountID:     req.GLAccountID,
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		AmountField:     amountField,
		Conditions:      req.Conditions,
		Description:     req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.mappingRepo.SaveMapping(ctx, mapping); err != nil {
		s.LogError(ctx, err, "Failed to save mapping", slog.String("source_system", req.SourceSystem), slog.String("source_type", req.SourceType))
		return domain.GLAccountMapping{}, fmt.Errorf("failed to save mapping: %w", err)
	}

	s.LogInfo(ctx, "Mapping created", slog.String("mapping_id", mapping.MappingID), slog.String("source_system", mapping.SourceSystem), slog.String("source_type", mapping.SourceType))
	return mapping, nil
}

// GetMappingByID retrieves a mapping rule by its ID.
func (s *mappingService) GetMappingByID(ctx context.Context, mappingID string) (domain.GLAccountMapping, error) {
	mapping, err := s.mappingRepo.FindMappingByID(ctx, mappingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find mapping by ID", slog.String("mapping_id", mappingID))
		}
		return domain.GLAccountMapping{}, fmt.Errorf("failed to find mapping %s: %w", mappingID, err)
	}
	return *mapping, nil
}

// ListMappings retrieves mapping rules filtered by the given params.
func (s *mappingService) ListMappings(ctx context.Context, params dto.ListMappingsParams) ([]domain.GLAccountMapping, error) {
	var system, sourceType *string
	if params.SourceSystem != "" {
		system = &params.SourceSystem
	}
	if params.SourceType != "" {
		sourceType = &params.SourceType
	}
	mappings, err := s.mappingRepo.ListMappings(ctx, system, sourceType, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list mappings")
		return nil, fmt.Errorf("failed to list mappings: %w", err)
	}
	return mappings, nil
}

// FindApplicableMappings returns the active mapping rules matching the
// event. The repository narrows by system, type and fund scope; this
// method narrows further by sub type and condition evaluation, keeping
// the repository's priority ordering.
func (s *mappingService) FindApplicableMappings(ctx context.Context, event domain.SourceEvent) ([]domain.GLAccountMapping, error) {
	var fundID *string
	if event.FundID != "" {
		fundID = &event.FundID
	}
	candidates, err := s.mappingRepo.FindActiveMappings(ctx, event.SourceSystem, event.SourceType, fundID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch candidate mappings", slog.String("source_system", event.SourceSystem), slog.String("source_type", event.SourceType))
		return nil, fmt.Errorf("failed to fetch mappings: %w", err)
	}

	applicable := make([]domain.GLAccountMapping, 0, len(candidates))
	for _, mapping := range candidates {
		if mapping.SourceSubType != "" && mapping.SourceSubType != event.SourceSubType {
			continue
		}
		ok, err := rules.Evaluate(mapping.Conditions, event.SourceData)
		if err != nil {
			// Fail closed: a rule we cannot evaluate must not post.
			s.LogError(ctx, err, "Mapping condition evaluation failed", slog.String("mapping_id", mapping.MappingID))
			return nil, fmt.Errorf("mapping %s condition evaluation: %w", mapping.MappingID, err)
		}
		if ok {
			applicable = append(applicable, mapping)
		}
	}
	return applicable, nil
}

// ResolveLineItems translates a source event into journal line items. A
// pair mapping yields a debit and a credit line; a single-account mapping
// yields one line on the account's normal balance side, flipped when the
// event is reversal natured. Mappings whose extracted amount is zero or
// negative contribute nothing; when every matched mapping comes up
// empty the event carries no ledger activity, which is distinct from
// having no mapping at all.
func (s *mappingService) ResolveLineItems(ctx context.Context, event domain.SourceEvent) ([]domain.JournalEntryLineItem, error) {
	mappings, err := s.FindApplicableMappings(ctx, event)
	if err != nil {
		return nil, err
	}
	if len(mappings) == 0 {
		return nil, fmt.Errorf("%w: system=%s type=%s subType=%s", ErrNoApplicableMapping, event.SourceSystem, event.SourceType, event.SourceSubType)
	}

	lines := make([]domain.JournalEntryLineItem, 0, len(mappings)*2)
	for _, mapping := range mappings {
		amount, err := s.extractAmount(mapping, event.SourceData)
		if err != nil {
			return nil, err
		}
		if !amount.IsPositive() {
			s.LogDebug(ctx, "Mapping skipped for non-positive amount", slog.String("mapping_id", mapping.MappingID), slog.String("amount", amount.String()))
			continue
		}

		if mapping.HasAccountPair() {
			lines = append(lines,
				domain.JournalEntryLineItem{
					GLAccountID: mapping.DebitAccountID,
					DebitAmount: amount,
					Description: mapping.Description,
				},
				domain.JournalEntryLineItem{
					GLAccountID:  mapping.CreditAccountID,
					CreditAmount: amount,
					Description:  mapping.Description,
				},
			)
			continue
		}

		line, err := s.resolveSingleAccountLine(ctx, mapping, event, amount)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: all matched mapping amounts were zero or negative", ErrNoLedgerActivity)
	}
	return lines, nil
}

// resolveSingleAccountLine places the amount on the account's normal
// balance side, or the opposite side when the event reverses.
func (s *mappingService) resolveSingleAccountLine(ctx context.Context, mapping domain.GLAccountMapping, event domain.SourceEvent, amount decimal.Decimal) (domain.JournalEntryLineItem, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, mapping.GLAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.JournalEntryLineItem{}, fmt.Errorf("%w: %s", ErrMappingAccountNotFound, mapping.GLAccountID)
		}
		s.LogError(ctx, err, "Failed to fetch mapped account", slog.String("account_id", mapping.GLAccountID))
		return domain.JournalEntryLineItem{}, fmt.Errorf("failed to fetch account %s: %w", mapping.GLAccountID, err)
	}

	debitSide := account.NormalBalance == domain.DebitBalance
	if event.IsReversalNature() {
		debitSide = !debitSide
	}

	line := domain.JournalEntryLineItem{
		GLAccountID: mapping.GLAccountID,
		Description: mapping.Description,
	}
	if debitSide {
		line.DebitAmount = amount
	} else {
		line.CreditAmount = amount
	}
	return line, nil
}

// extractAmount pulls the mapping's amount field out of source data and
// parses it as a decimal.
func (s *mappingService) extractAmount(mapping domain.GLAccountMapping, sourceData map[string]any) (decimal.Decimal, error) {
	field := mapping.AmountField
	if field == "" {
		field = defaultAmountField
	}
	raw, ok := sourceData[field]
	if !ok {
		return decimal.Zero, nil
	}

	switch v := raw.(type) {
	case decimal.Decimal:
		return v, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: field '%s' value '%s'", ErrAmountNotNumeric, field, v)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: field '%s' has type %T", ErrAmountNotNumeric, field, raw)
	}
}

// DeactivateMapping soft-deletes a mapping rule.
func (s *mappingService) DeactivateMapping(ctx context.Context, updaterUserID string, mappingID string) error {
	if _, err := s.mappingRepo.FindMappingByID(ctx, mappingID); err != nil {
		return fmt.Errorf("failed to find mapping %s: %w", mappingID, err)
	}

	now := time.Now().UTC()
	if err := s.mappingRepo.DeactivateMapping(ctx, mappingID, updaterUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to deactivate mapping", slog.String("mapping_id", mappingID))
		return fmt.Errorf("failed to deactivate mapping %s: %w", mappingID, err)
	}

	s.LogInfo(ctx, "Mapping deactivated", slog.String("mapping_id", mappingID))
	return nil
}
