package ports

import (
	"context"

	"github.com/primstrade/platform/internal/core/domain"
)

// CreateSignalInput carries the caller-supplied fields of a new signal.
// There is no status field: new signals always start pending.
type CreateSignalInput struct {
	Asset      string
	EntryPrice float64
	StopLoss   float64
	TakeProfit float64
	Timeframe  string
	Rationale  string
	ImageURL   string
}

// UpdateSignalInput is the owner's field update. Nil means unchanged.
type UpdateSignalInput struct {
	Asset      *string
	EntryPrice *float64
	StopLoss   *float64
	TakeProfit *float64
	Timeframe  *string
	Rationale  *string
	ImageURL   *string
}

// TradeSignalService defines the use cases of the signal lifecycle.
type TradeSignalService interface {
	Create(ctx context.Context, p *domain.Principal, in CreateSignalInput) (*domain.TradeSignal, error)
	Get(ctx context.Context, p *domain.Principal, id string) (*domain.TradeSignal, error)
	ListMine(ctx context.Context, p *domain.Principal) ([]*domain.TradeSignal, error)
	ListPublic(ctx context.Context) ([]*domain.TradeSignal, error)
	ListAll(ctx context.Context, p *domain.Principal) ([]*domain.TradeSignal, error)
	Update(ctx context.Context, p *domain.Principal, id string, in UpdateSignalInput) (*domain.TradeSignal, error)
	UpdateStatus(ctx context.Context, p *domain.Principal, id string, status domain.SignalStatus) (*domain.TradeSignal, error)
	Delete(ctx context.Context, p *domain.Principal, id string) error
}
