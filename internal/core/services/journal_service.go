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
	"github.com/praxio/fundledger/internal/utils/accounting"
)

var (
	ErrEntryNotDraft        = errors.New("entry must be in draft status to post")
	ErrEntryNotPosted       = errors.New("entry must be posted to reverse")
	ErrEntryAlreadyReversed = errors.New("entry has already been reversed")
	ErrDuplicateSourceEvent = errors.New("an entry already exists for this source document")
	ErrEntryHasNoLines      = errors.New("entry has no line items")
)

// systemUserID is recorded as the actor on entries the engine posts on
// its own from source events.
const systemUserID = "system"

// UnbalancedEntryError reports a debit/credit mismatch with both totals
// so callers can see exactly how far off the entry is.
type UnbalancedEntryError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("entry does not balance: total debits %s, total credits %s", e.Debits.String(), e.Credits.String())
}

// journalService implements the journal entry lifecycle.
type journalService struct {
	BaseService
	journalRepo  portsrepo.JournalRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	autoPostRepo portsrepo.AutoPostRuleRepository
	mappingSvc   portssvc.MappingSvcFacade
	notifier     portssvc.NotifierSvc

	// Automated postings at or above this total trigger a notification.
	materialityThreshold decimal.Decimal
}

// NewJournalService creates a new JournalService. notifier may be nil, in
// which case posting notifications are skipped.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	autoPostRepo portsrepo.AutoPostRuleRepository,
	mappingSvc portssvc.MappingSvcFacade,
	notifier portssvc.NotifierSvc,
	materialityThreshold decimal.Decimal,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:          journalRepo,
		accountRepo:          accountRepo,
		autoPostRepo:         autoPostRepo,
		mappingSvc:           mappingSvc,
		notifier:             notifier,
		materialityThreshold: materialityThreshold,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validateLines checks per-line side rules and the double-entry balance,
// returning the debit and credit totals.
func (s *journalService) validateLines(lines []domain.JournalEntryLineItem) (decimal.Decimal, decimal.Decimal, error) {
	if len(lines) == 0 {
		return decimal.Zero, decimal.Zero, ErrEntryHasNoLines
	}
	for _, line := range lines {
		if err := accounting.ValidateLineSides(line.DebitAmount, line.CreditAmount); err != nil {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: account %s: %s", apperrors.ErrValidation, line.GLAccountID, err.Error())
		}
	}
	debits, credits := accounting.SumLineTotals(lines)
	if !debits.Equal(credits) {
		return decimal.Zero, decimal.Zero, &UnbalancedEntryError{Debits: debits, Credits: credits}
	}
	return debits, credits, nil
}

// validateAccounts checks that every referenced account exists and
// accepts direct postings.
func (s *journalService) validateAccounts(ctx context.Context, lines []domain.JournalEntryLineItem) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.GLAccountID] {
			seen[line.GLAccountID] = true
			ids = append(ids, line.GLAccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for entry validation")
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range ids {
		account, found := accounts[id]
		if !found {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !account.CanPostDirectly() {
			return fmt.Errorf("%w: account %s (%s) does not accept direct postings", apperrors.ErrValidation, account.AccountNumber, id)
		}
	}
	return nil
}

// CreateEntry validates and persists a manual journal entry in draft
// status.
func (s *journalService) CreateEntry(ctx context.Context, creatorUserID string, req dto.CreateEntryRequest) (domain.JournalEntry, error) {
	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := make([]domain.JournalEntryLineItem, len(req.LineItems))
	for i, lineReq := range req.LineItems {
		lines[i] = domain.JournalEntryLineItem{
			LineItemID:   uuid.NewString(),
			EntryID:      entryID,
			LineNumber:   i + 1,
			GLAccountID:  lineReq.GLAccountID,
			DebitAmount:  lineReq.DebitAmount,
			CreditAmount: lineReq.CreditAmount,
			Description:  lineReq.Description,
			Reference:    lineReq.Reference,
			FundID:       lineReq.FundID,
			InvestorID:   lineReq.InvestorID,
			InvestmentID: lineReq.InvestmentID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}

	debits, credits, err := s.validateLines(lines)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	if err := s.validateAccounts(ctx, lines); err != nil {
		return domain.JournalEntry{}, err
	}

	sourceType := domain.SourceManual
	if req.SourceType != "" {
		sourceType = domain.EntrySourceType(req.SourceType)
		if !sourceType.IsValid() {
			return domain.JournalEntry{}, fmt.Errorf("%w: unknown source type '%s'", apperrors.ErrValidation, req.SourceType)
		}
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   req.EntryDate,
		Description: req.Description,
		Reference:   req.Reference,
		SourceType:  sourceType,
		SourceID:    req.SourceID,
		Status:      domain.Draft,
		TotalDebit:  debits,
		TotalCredit: credits,
		FundID:      req.FundID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, err := s.journalRepo.SaveEntry(ctx, entry, lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_id", entryID))
		return domain.JournalEntry{}, fmt.Errorf("failed to save entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry created", slog.String("entry_id", saved.EntryID), slog.String("entry_number", saved.EntryNumber))
	saved.LineItems = lines
	return saved, nil
}

// CreateAutomatedEntry translates a source event into a journal entry via
// the mapping rules. Resubmitting the same source document is rejected.
func (s *journalService) CreateAutomatedEntry(ctx context.Context, event domain.SourceEvent) (domain.JournalEntry, error) {
	if event.SourceID != "" {
		existing, err := s.journalRepo.FindEntriesBySource(ctx, event.SourceSystem, event.SourceID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check for duplicate source event", slog.String("source_id", event.SourceID))
			return domain.JournalEntry{}, fmt.Errorf("failed to check source event: %w", err)
		}
		if len(existing) > 0 {
			return domain.JournalEntry{}, fmt.Errorf("%w: %s/%s already produced entry %s", ErrDuplicateSourceEvent, event.SourceSystem, event.SourceID, existing[0].EntryNumber)
		}
	}

	resolved, err := s.mappingSvc.ResolveLineItems(ctx, event)
	if err != nil {
		if errors.Is(err, ErrNoLedgerActivity) {
			s.LogInfo(ctx, "Source event produced no ledger activity",
				slog.String("source_system", event.SourceSystem),
				slog.String("source_id", event.SourceID))
		}
		return domain.JournalEntry{}, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	lines := make([]domain.JournalEntryLineItem, len(resolved))
	for i, line := range resolved {
		line.LineItemID = uuid.NewString()
		line.EntryID = entryID
		line.LineNumber = i + 1
		if line.FundID == "" {
			line.FundID = event.FundID
		}
		if line.InvestorID == "" {
			line.InvestorID = stringField(event.SourceData, "investorID")
		}
		if line.InvestmentID == "" {
			line.InvestmentID = stringField(event.SourceData, "investmentID")
		}
		line.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     systemUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: systemUserID,
		}
		lines[i] = line
	}

	debits, credits, err := s.validateLines(lines)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	if err := s.validateAccounts(ctx, lines); err != nil {
		return domain.JournalEntry{}, err
	}

	autoPost, err := s.autoPostRepo.IsAutoPost(ctx, event.SourceSystem, event.SourceType)
	if err != nil {
		s.LogError(ctx, err, "Failed to check auto-post rule", slog.String("source_system", event.SourceSystem), slog.String("source_type", event.SourceType))
		return domain.JournalEntry{}, fmt.Errorf("failed to check auto-post rule: %w", err)
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   event.EntryDate,
		Description: event.Description,
		SourceType:  domain.SourceAutomated,
		SourceID:    event.SourceID,
		Status:      domain.Draft,
		TotalDebit:  debits,
		TotalCredit: credits,
		FundID:      event.FundID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     systemUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: systemUserID,
		},
	}
	if autoPost {
		postedAt := now
		entry.Status = domain.Posted
		entry.PostedBy = systemUserID
		entry.PostedAt = &postedAt
	}

	saved, err := s.journalRepo.SaveEntry(ctx, entry, lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to save automated entry", slog.String("source_system", event.SourceSystem), slog.String("source_id", event.SourceID))
		return domain.JournalEntry{}, fmt.Errorf("failed to save entry: %w", err)
	}

	s.LogInfo(ctx, "Automated entry created",
		slog.String("entry_id", saved.EntryID),
		slog.String("entry_number", saved.EntryNumber),
		slog.String("status", string(saved.Status)),
		slog.String("source_system", event.SourceSystem),
		slog.String("source_type", event.SourceType))

	if autoPost {
		s.notifyPosting(ctx, event, saved)
	}

	saved.LineItems = lines
	return saved, nil
}

// notifyPosting sends a best-effort notification for material automated
// postings. Failures are logged and swallowed.
func (s *journalService) notifyPosting(ctx context.Context, event domain.SourceEvent, entry domain.JournalEntry) {
	if s.notifier == nil {
		return
	}
	if entry.TotalDebit.LessThan(s.materialityThreshold) {
		return
	}
	notification := domain.PostingNotification{
		SourceSystem: event.SourceSystem,
		SourceType:   event.SourceType,
		EntryNumber:  entry.EntryNumber,
		EntryCount:   1,
		TotalAmount:  entry.TotalDebit,
		PostedAt:     time.Now().UTC(),
	}
	if err := s.notifier.NotifyPostingActivity(ctx, notification); err != nil {
		s.LogWarn(ctx, "Posting notification failed",
			slog.String("entry_number", entry.EntryNumber),
			slog.String("error", err.Error()))
	}
}

// PostEntry transitions a draft entry to posted after re-validating it.
// The draft may predate account deactivations, so postability is checked
// again at posting time.
func (s *journalService) PostEntry(ctx context.Context, posterUserID string, entryID string) (domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.Status != domain.Draft {
		return domain.JournalEntry{}, fmt.Errorf("%w: entry %s is %s", ErrEntryNotDraft, entry.EntryNumber, entry.Status)
	}

	lines, err := s.journalRepo.FindLineItemsByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch line items for posting", slog.String("entry_id", entryID))
		return domain.JournalEntry{}, fmt.Errorf("failed to fetch line items: %w", err)
	}
	if _, _, err := s.validateLines(lines); err != nil {
		return domain.JournalEntry{}, err
	}
	if err := s.validateAccounts(ctx, lines); err != nil {
		return domain.JournalEntry{}, err
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkEntryPosted(ctx, entryID, posterUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark entry posted", slog.String("entry_id", entryID))
		return domain.JournalEntry{}, fmt.Errorf("failed to post entry %s: %w", entryID, err)
	}

	entry.Status = domain.Posted
	entry.PostedBy = posterUserID
	entry.PostedAt = &now
	entry.LineItems = lines
	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return *entry, nil
}

// ReverseEntry creates a mirror-image adjustment entry for a posted
// entry, posts it, and links the two in one transaction. Sub-ledger tags
// carry over so fund and investor reporting reverses cleanly too.
func (s *journalService) ReverseEntry(ctx context.Context, reverserUserID string, entryID string, reason string) (domain.JournalEntry, error) {
	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if original.Status == domain.Reversed || original.ReversalEntryID != "" {
		return domain.JournalEntry{}, fmt.Errorf("%w: entry %s", ErrEntryAlreadyReversed, original.EntryNumber)
	}
	if original.Status != domain.Posted {
		return domain.JournalEntry{}, fmt.Errorf("%w: entry %s is %s", ErrEntryNotPosted, original.EntryNumber, original.Status)
	}

	originalLines, err := s.journalRepo.FindLineItemsByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch line items for reversal", slog.String("entry_id", entryID))
		return domain.JournalEntry{}, fmt.Errorf("failed to fetch line items: %w", err)
	}
	if len(originalLines) == 0 {
		return domain.JournalEntry{}, fmt.Errorf("%w: entry %s", ErrEntryHasNoLines, original.EntryNumber)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	reversalLines := make([]domain.JournalEntryLineItem, len(originalLines))
	for i, line := range originalLines {
		reversalLines[i] = domain.JournalEntryLineItem{
			LineItemID:   uuid.NewString(),
			EntryID:      reversalID,
			LineNumber:   line.LineNumber,
			GLAccountID:  line.GLAccountID,
			DebitAmount:  line.CreditAmount,
			CreditAmount: line.DebitAmount,
			Description:  line.Description,
			Reference:    line.Reference,
			FundID:       line.FundID,
			InvestorID:   line.InvestorID,
			InvestmentID: line.InvestmentID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     reverserUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: reverserUserID,
			},
		}
	}

	reversal := domain.JournalEntry{
		EntryID:     reversalID,
		EntryDate:   now,
		Description: fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, reason),
		Reference:   original.Reference,
		SourceType:  domain.SourceAdjustment,
		SourceID:    original.EntryID,
		Status:      domain.Posted,
		TotalDebit:  original.TotalCredit,
		TotalCredit: original.TotalDebit,
		FundID:      original.FundID,
		PostedBy:    reverserUserID,
		PostedAt:    &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     reverserUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: reverserUserID,
		},
	}

	original.Status = domain.Reversed
	original.ReversalEntryID = reversalID
	original.ReversedBy = reverserUserID
	original.ReversedAt = &now
	original.ReversalReason = reason
	original.LastUpdatedAt = now
	original.LastUpdatedBy = reverserUserID

	saved, err := s.journalRepo.ReverseEntry(ctx, *original, reversal, reversalLines)
	if err != nil {
		s.LogError(ctx, err, "Failed to reverse entry", slog.String("entry_id", entryID))
		return domain.JournalEntry{}, fmt.Errorf("failed to reverse entry %s: %w", entryID, err)
	}

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("entry_id", entryID),
		slog.String("entry_number", original.EntryNumber),
		slog.String("reversal_entry_number", saved.EntryNumber))
	saved.LineItems = reversalLines
	return saved, nil
}

// GetEntry retrieves an entry together with its line items.
func (s *journalService) GetEntry(ctx context.Context, entryID string) (domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry by ID", slog.String("entry_id", entryID))
		}
		return domain.JournalEntry{}, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	lines, err := s.journalRepo.FindLineItemsByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch line items", slog.String("entry_id", entryID))
		return domain.JournalEntry{}, fmt.Errorf("failed to fetch line items: %w", err)
	}
	entry.LineItems = lines
	return *entry, nil
}

// ListEntries retrieves entries newest first with token pagination.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, string, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var fundID *string
	if params.FundID != "" {
		fundID = &params.FundID
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, fundID, nil, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries")
		return nil, "", fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nextToken, nil
}

func stringField(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}
