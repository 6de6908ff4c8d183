package services

import (
	"context"

	"github.com/praxio/fundledger/internal/core/domain"
	"github.com/praxio/fundledger/internal/dto"
)

// JournalSvcFacade defines journal entry lifecycle operations.
type JournalSvcFacade interface {
	// CreateEntry validates and persists a manual journal entry in draft
	// status. Returns an error if the entry does not balance.
	CreateEntry(ctx context.Context, creatorUserID string, req dto.CreateEntryRequest) (domain.JournalEntry, error)

	// CreateAutomatedEntry translates a source event into a journal entry
	// via the mapping rules. The entry is posted immediately when an
	// auto-post rule covers the source, otherwise left in draft.
	CreateAutomatedEntry(ctx context.Context, event domain.SourceEvent) (domain.JournalEntry, error)

	// PostEntry transitions a draft entry to posted after re-validating
	// its balance and account postability.
	PostEntry(ctx context.Context, posterUserID string, entryID string) (domain.JournalEntry, error)

	// ReverseEntry creates and posts a mirror-image adjustment entry for a
	// posted entry and links the two.
	ReverseEntry(ctx context.Context, reverserUserID string, entryID string, reason string) (domain.JournalEntry, error)

	// GetEntry retrieves an entry together with its line items.
	GetEntry(ctx context.Context, entryID string) (domain.JournalEntry, error)

	// ListEntries retrieves entries newest first with token pagination.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, string, error)
}
