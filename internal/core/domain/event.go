package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceEvent is an inbound business event from a collaborator service
// (fee calculator, capital activity, credit facility). The GL engine
// records it; it never decides the amounts.
type SourceEvent struct {
	SourceSystem  string         `json:"sourceSystem"`
	SourceType    string         `json:"sourceType"`
	SourceSubType string         `json:"sourceSubType"`
	SourceID      string         `json:"sourceID"`
	SourceData    map[string]any `json:"sourceData"`
	EntryDate     time.Time      `json:"entryDate"`
	Description   string         `json:"description"`
	FundID        string         `json:"fundID"`
}

// IsReversalNature reports whether the event flags a reversing
// transaction nature, which flips the leg side for single-account
// mappings.
func (e SourceEvent) IsReversalNature() bool {
	v, ok := e.SourceData["isReversal"]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// PostingNotification is the best-effort payload sent to the
// notification service when automated posting activity crosses the
// materiality threshold. Delivery failure never rolls back a posting.
type PostingNotification struct {
	SourceSystem string          `json:"sourceSystem"`
	SourceType   string          `json:"sourceType"`
	EntryNumber  string          `json:"entryNumber"`
	EntryCount   int             `json:"entryCount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	PostedAt     time.Time       `json:"postedAt"`
}

// AutoPostRule marks a (sourceSystem, sourceType) pair whose automated
// entries post immediately instead of waiting in draft for review.
type AutoPostRule struct {
	SourceSystem string `json:"sourceSystem"`
	SourceType   string `json:"sourceType"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
