package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/primstrade/platform/internal/core/domain"
	"github.com/primstrade/platform/internal/core/ports"
	"github.com/primstrade/platform/internal/pkg/ids"
)

// AuditService writes signal status changes to the audit trail.
type AuditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, log: log}
}

// Record assigns an id when missing and persists the entry.
func (s *AuditService) Record(ctx context.Context, change domain.StatusChange) error {
	if change.ID == "" {
		change.ID = ids.New(change.At)
	}
	if err := s.repo.InsertStatusChange(ctx, &change); err != nil {
		return fmt.Errorf("record status change: %w", err)
	}

	s.log.Info().
		Str("signal_id", change.SignalID).
		Str("from", string(change.From)).
		Str("to", string(change.To)).
		Str("actor", change.ActorID).
		Str("request_id", change.RequestID).
		Msg("status change recorded")
	return nil
}

// History returns a signal's status changes, oldest first. Admin only.
func (s *AuditService) History(ctx context.Context, p *domain.Principal, signalID string) ([]*domain.StatusChange, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}
	if !p.IsAdmin() {
		return nil, domain.Forbidden("insufficient permissions")
	}
	list, err := s.repo.ListStatusChanges(ctx, signalID)
	if err != nil {
		return nil, fmt.Errorf("list status changes: %w", err)
	}
	if list == nil {
		list = []*domain.StatusChange{}
	}
	return list, nil
}
