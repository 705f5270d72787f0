package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/primstrade/platform/internal/core/domain"
)

type stubAuditRepo struct {
	entries   []*domain.StatusChange
	insertErr error
}

func (r *stubAuditRepo) InsertStatusChange(_ context.Context, c *domain.StatusChange) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *c
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *stubAuditRepo) ListStatusChanges(_ context.Context, signalID string) ([]*domain.StatusChange, error) {
	var out []*domain.StatusChange
	for _, e := range r.entries {
		if e.SignalID == signalID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestAuditService_Record_AssignsID(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	err := svc.Record(context.Background(), domain.StatusChange{
		SignalID: "s1",
		From:     domain.SignalPending,
		To:       domain.SignalApproved,
		ActorID:  admin.ID,
		At:       time.Now(),
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(repo.entries) != 1 || repo.entries[0].ID == "" {
		t.Fatalf("expected one entry with an id, got %+v", repo.entries)
	}
}

func TestAuditService_Record_PropagatesStoreError(t *testing.T) {
	repo := &stubAuditRepo{insertErr: errors.New("boom")}
	svc := NewAuditService(repo, zerolog.Nop())

	if err := svc.Record(context.Background(), domain.StatusChange{SignalID: "s1", At: time.Now()}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestAuditService_History_AdminOnly(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())
	_ = svc.Record(context.Background(), domain.StatusChange{SignalID: "s1", To: domain.SignalApproved, At: time.Now()})
	_ = svc.Record(context.Background(), domain.StatusChange{SignalID: "s2", To: domain.SignalRejected, At: time.Now()})

	if _, err := svc.History(context.Background(), owner, "s1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	got, err := svc.History(context.Background(), admin, "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 1 || got[0].SignalID != "s1" {
		t.Fatalf("unexpected history: %+v", got)
	}
}
