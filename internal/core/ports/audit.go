package ports

import (
	"context"

	"github.com/primstrade/platform/internal/core/domain"
)

// AuditRepository persists status change entries to the audit collection.
type AuditRepository interface {
	InsertStatusChange(ctx context.Context, change *domain.StatusChange) error
	ListStatusChanges(ctx context.Context, signalID string) ([]*domain.StatusChange, error)
}

// AuditSink accepts status changes for asynchronous recording.
type AuditSink interface {
	Enqueue(change domain.StatusChange)
}

// AuditService records a single status change.
type AuditService interface {
	Record(ctx context.Context, change domain.StatusChange) error
}

// AuditHistory reads the recorded status changes of one signal.
type AuditHistory interface {
	History(ctx context.Context, p *domain.Principal, signalID string) ([]*domain.StatusChange, error)
}
