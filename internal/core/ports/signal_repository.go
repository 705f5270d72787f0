package ports

import (
	"context"
	"time"

	"github.com/primstrade/platform/internal/core/domain"
)

// SignalFilter narrows List. Zero values mean no filter.
type SignalFilter struct {
	CreatedBy string
	Status    domain.SignalStatus
}

// SignalChanges carries the non-status fields to overwrite. Nil means unchanged.
type SignalChanges struct {
	Asset      *string
	EntryPrice *float64
	StopLoss   *float64
	TakeProfit *float64
	Timeframe  *string
	Rationale  *string
	ImageURL   *string // "" clears the image
	UpdatedAt  time.Time
}

// SignalRepository defines persistence operations for trade signals.
// List results are ordered by creation time, newest first.
type SignalRepository interface {
	Create(ctx context.Context, s *domain.TradeSignal) (*domain.TradeSignal, error)
	FindByID(ctx context.Context, id string) (*domain.TradeSignal, error)
	List(ctx context.Context, filter SignalFilter) ([]*domain.TradeSignal, error)
	Update(ctx context.Context, id string, changes SignalChanges) (*domain.TradeSignal, error)
	UpdateStatus(ctx context.Context, id string, status domain.SignalStatus, at time.Time) (*domain.TradeSignal, error)
	Delete(ctx context.Context, id string) error
}
