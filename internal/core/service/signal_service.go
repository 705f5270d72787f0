package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/primstrade/platform/internal/core/domain"
	"github.com/primstrade/platform/internal/core/policy"
	"github.com/primstrade/platform/internal/core/ports"
	"github.com/primstrade/platform/pkg/logger"
)

const defaultSignalCacheTTL = 5 * time.Minute

// Cache keys for the four cached read paths.
const (
	cacheKeyAdminList  = "trade-signals:admin:all"
	cacheKeyPublicList = "trade-signals:public:approved"
)

func cacheKeySignal(id string) string        { return "trade-signal:" + id }
func cacheKeyOwnerList(ownerID string) string { return "trade-signals:user:" + ownerID }

// readPath is one cached view over signals.
type readPath int

const (
	pathByID readPath = iota
	pathOwnerList
	pathAdminList
	pathPublicList
)

func (p readPath) key(s *domain.TradeSignal) string {
	switch p {
	case pathByID:
		return cacheKeySignal(s.ID)
	case pathOwnerList:
		return cacheKeyOwnerList(s.CreatedBy)
	case pathAdminList:
		return cacheKeyAdminList
	default:
		return cacheKeyPublicList
	}
}

type mutation string

const (
	mutationCreated       mutation = "created"
	mutationUpdated       mutation = "updated"
	mutationStatusChanged mutation = "status_changed"
	mutationDeleted       mutation = "deleted"
)

// invalidates maps each mutation to the read paths that may hold the
// signal. A new read path must be added here for every mutation that can
// change what it returns.
var invalidates = map[mutation][]readPath{
	mutationCreated:       {pathOwnerList, pathAdminList},
	mutationUpdated:       {pathByID, pathOwnerList, pathAdminList, pathPublicList},
	mutationStatusChanged: {pathByID, pathOwnerList, pathAdminList, pathPublicList},
	mutationDeleted:       {pathByID, pathOwnerList, pathAdminList, pathPublicList},
}

// invalidationKeys returns the cache keys m must evict for s.
func invalidationKeys(m mutation, s *domain.TradeSignal) []string {
	paths := invalidates[m]
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		keys = append(keys, p.key(s))
	}
	return keys
}

// TradeSignalService implements the signal lifecycle with a read-through
// cache in front of the by-id and list reads.
type TradeSignalService struct {
	repo     ports.SignalRepository
	cache    ports.Cache
	cacheTTL time.Duration
	audit    ports.AuditSink
	logger   zerolog.Logger
	now      func() time.Time
}

// NewTradeSignalService wires the service. audit may be nil.
func NewTradeSignalService(repo ports.SignalRepository, cache ports.Cache, cacheTTL time.Duration, audit ports.AuditSink, logger zerolog.Logger) *TradeSignalService {
	if cacheTTL <= 0 {
		cacheTTL = defaultSignalCacheTTL
	}
	return &TradeSignalService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
	}
}

// Create stores a new signal owned by p. Status is always pending.
func (s *TradeSignalService) Create(ctx context.Context, p *domain.Principal, in ports.CreateSignalInput) (*domain.TradeSignal, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}

	asset, err := normalizeAsset(in.Asset)
	if err != nil {
		return nil, err
	}
	timeframe, err := requireText("timeframe", in.Timeframe)
	if err != nil {
		return nil, err
	}
	rationale, err := requireText("rationale", in.Rationale)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.TradeSignal{
		Asset:      asset,
		EntryPrice: in.EntryPrice,
		StopLoss:   in.StopLoss,
		TakeProfit: in.TakeProfit,
		Timeframe:  timeframe,
		Rationale:  rationale,
		ImageURL:   strings.TrimSpace(in.ImageURL),
		Status:     domain.SignalPending,
		CreatedBy:  p.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("create signal: %w", err)
	}

	s.invalidate(ctx, mutationCreated, created)
	s.logger.Info().Str("signal_id", created.ID).Str("owner", p.ID).Str("asset", asset).Msg("signal created")
	return created, nil
}

// Get returns a signal to its owner or an admin. Cached entries go through
// the same access check as fresh ones.
func (s *TradeSignalService) Get(ctx context.Context, p *domain.Principal, id string) (*domain.TradeSignal, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}

	var sig *domain.TradeSignal
	key := cacheKeySignal(id)
	if !s.cacheGet(ctx, key, &sig) || sig == nil {
		found, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		sig = found
		s.cacheSet(ctx, key, sig)
	}

	if !policy.CanReadResource(p, sig) {
		return nil, domain.Forbidden("access denied")
	}
	return sig, nil
}

// ListMine returns every signal owned by p regardless of status.
func (s *TradeSignalService) ListMine(ctx context.Context, p *domain.Principal) ([]*domain.TradeSignal, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.cachedList(ctx, cacheKeyOwnerList(p.ID), ports.SignalFilter{CreatedBy: p.ID})
}

// ListPublic returns approved signals. It needs no principal.
func (s *TradeSignalService) ListPublic(ctx context.Context) ([]*domain.TradeSignal, error) {
	return s.cachedList(ctx, cacheKeyPublicList, ports.SignalFilter{Status: domain.SignalApproved})
}

// ListAll returns every signal. Admin only.
func (s *TradeSignalService) ListAll(ctx context.Context, p *domain.Principal) ([]*domain.TradeSignal, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}
	if !p.IsAdmin() {
		return nil, domain.Forbidden("insufficient permissions")
	}
	return s.cachedList(ctx, cacheKeyAdminList, ports.SignalFilter{})
}

// Update changes non-status fields. Only the owner may do this, in any status.
func (s *TradeSignalService) Update(ctx context.Context, p *domain.Principal, id string, in ports.UpdateSignalInput) (*domain.TradeSignal, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanWriteResource(p, existing) {
		return nil, domain.Forbidden("access denied")
	}

	changes, err := toSignalChanges(in)
	if err != nil {
		return nil, err
	}
	changes.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, fmt.Errorf("update signal: %w", err)
	}

	s.invalidate(ctx, mutationUpdated, updated)
	s.logger.Info().Str("signal_id", id).Str("owner", p.ID).Msg("signal updated")
	return updated, nil
}

// UpdateStatus moves a signal to approved or rejected. Admin only.
// Re-applying the current status only rewrites updatedAt.
func (s *TradeSignalService) UpdateStatus(ctx context.Context, p *domain.Principal, id string, status domain.SignalStatus) (*domain.TradeSignal, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}
	if status != domain.SignalApproved && status != domain.SignalRejected {
		return nil, domain.NewValidationError("status", "must be one of: approved rejected")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanTransitionStatus(p) {
		return nil, domain.Forbidden("only admin can approve or reject signals")
	}
	if !existing.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, existing.Status, status)
	}

	now := s.now().UTC()
	updated, err := s.repo.UpdateStatus(ctx, id, status, now)
	if err != nil {
		return nil, fmt.Errorf("update signal status: %w", err)
	}

	s.invalidate(ctx, mutationStatusChanged, updated)

	if s.audit != nil {
		s.audit.Enqueue(domain.StatusChange{
			SignalID:  id,
			From:      existing.Status,
			To:        status,
			ActorID:   p.ID,
			RequestID: logger.RequestIDFromContext(ctx),
			At:        now,
		})
	}

	s.logger.Info().
		Str("signal_id", id).
		Str("from", string(existing.Status)).
		Str("to", string(status)).
		Str("admin", p.ID).
		Msg("signal status changed")
	return updated, nil
}

// Delete removes a signal. Owner or admin, any status.
func (s *TradeSignalService) Delete(ctx context.Context, p *domain.Principal, id string) error {
	if p == nil {
		return domain.ErrUnauthorized
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDeleteResource(p, existing) {
		return domain.Forbidden("access denied")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete signal: %w", err)
	}

	s.invalidate(ctx, mutationDeleted, existing)
	s.logger.Info().Str("signal_id", id).Str("by", p.ID).Msg("signal deleted")
	return nil
}

func (s *TradeSignalService) cachedList(ctx context.Context, key string, filter ports.SignalFilter) ([]*domain.TradeSignal, error) {
	var list []*domain.TradeSignal
	if s.cacheGet(ctx, key, &list) {
		return list, nil
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list signals: %w", err)
	}
	if list == nil {
		list = []*domain.TradeSignal{}
	}
	s.cacheSet(ctx, key, list)
	return list, nil
}

// Cache failures never fail a request; reads fall through to the store.

func (s *TradeSignalService) cacheGet(ctx context.Context, key string, dest any) bool {
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return false
	}
	return hit
}

func (s *TradeSignalService) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// invalidate runs after the write has committed. A reader racing between
// the two may still see the old cached value once.
func (s *TradeSignalService) invalidate(ctx context.Context, m mutation, sig *domain.TradeSignal) {
	keys := invalidationKeys(m, sig)
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn().Err(err).Str("mutation", string(m)).Strs("keys", keys).Msg("cache invalidation failed")
	}
}

func normalizeAsset(raw string) (string, error) {
	asset := strings.ToUpper(strings.TrimSpace(raw))
	if asset == "" {
		return "", domain.NewValidationError("asset", "must not be empty")
	}
	return asset, nil
}

func requireText(field, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", domain.NewValidationError(field, "must not be empty")
	}
	return v, nil
}

func toSignalChanges(in ports.UpdateSignalInput) (ports.SignalChanges, error) {
	changes := ports.SignalChanges{
		EntryPrice: in.EntryPrice,
		StopLoss:   in.StopLoss,
		TakeProfit: in.TakeProfit,
	}
	if in.Asset != nil {
		asset, err := normalizeAsset(*in.Asset)
		if err != nil {
			return changes, err
		}
		changes.Asset = &asset
	}
	if in.Timeframe != nil {
		v, err := requireText("timeframe", *in.Timeframe)
		if err != nil {
			return changes, err
		}
		changes.Timeframe = &v
	}
	if in.Rationale != nil {
		v, err := requireText("rationale", *in.Rationale)
		if err != nil {
			return changes, err
		}
		changes.Rationale = &v
	}
	if in.ImageURL != nil {
		v := strings.TrimSpace(*in.ImageURL)
		changes.ImageURL = &v
	}
	return changes, nil
}
