package repositories

import (
	"context"
	"time"

	"github.com/praxio/fundledger/internal/core/domain"
)

// JournalReaderRepo defines read operations for journal entries.
type JournalReaderRepo interface {
	// FindEntryByID retrieves a journal entry without its line items.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLineItemsByEntryID retrieves the line items of an entry joined
	// with account number and name for display.
	FindLineItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLineItem, error)

	// FindEntriesBySource retrieves entries produced from a given source
	// document, used to detect duplicate event submissions.
	FindEntriesBySource(ctx context.Context, sourceSystem string, sourceID string) ([]domain.JournalEntry, error)

	// ListEntries retrieves entries newest first with token pagination.
	// Returns the page and the token for the next page, empty when done.
	ListEntries(ctx context.Context, fundID *string, status *domain.EntryStatus, limit int, nextToken *string) ([]domain.JournalEntry, string, error)
}

// JournalWriterRepo defines write operations for journal entries. Each
// method runs in its own transaction; partially written entries are never
// visible.
type JournalWriterRepo interface {
	// SaveEntry persists a new entry with its line items and assigns the
	// next entry number for the entry date. Returns the persisted entry.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLineItem) (domain.JournalEntry, error)

	// MarkEntryPosted transitions a draft entry to posted.
	MarkEntryPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) error

	// ReverseEntry persists the reversal entry with its line items, assigns
	// its entry number, and links the original entry to it, all in one
	// transaction. Returns the persisted reversal entry.
	ReverseEntry(ctx context.Context, original domain.JournalEntry, reversal domain.JournalEntry, lines []domain.JournalEntryLineItem) (domain.JournalEntry, error)
}

// JournalRepositoryFacade combines journal reader and writer operations.
type JournalRepositoryFacade interface {
	JournalReaderRepo
	JournalWriterRepo
}
