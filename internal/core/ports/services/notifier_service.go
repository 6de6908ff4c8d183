package services

import (
	"context"

	"github.com/praxio/fundledger/internal/core/domain"
)

// NotifierSvc delivers posting activity notifications to downstream
// systems. Delivery is best effort; posting never fails on notifier errors.
type NotifierSvc interface {
	NotifyPostingActivity(ctx context.Context, notification domain.PostingNotification) error
}
