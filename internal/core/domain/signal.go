package domain

import "time"

// SignalStatus represents the review state of a trade signal.
type SignalStatus string

const (
	SignalPending  SignalStatus = "pending"
	SignalApproved SignalStatus = "approved"
	SignalRejected SignalStatus = "rejected"
)

// validTransitions lists the statuses an admin may move a signal to.
// approved and rejected are terminal for automatic flow but may be re-applied.
var validTransitions = map[SignalStatus][]SignalStatus{
	SignalPending:  {SignalApproved, SignalRejected},
	SignalApproved: {SignalApproved, SignalRejected},
	SignalRejected: {SignalApproved, SignalRejected},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s SignalStatus) CanTransitionTo(next SignalStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TradeSignal is a trade idea submitted by a user and reviewed by an admin.
type TradeSignal struct {
	ID         string       `json:"id"`
	Asset      string       `json:"asset"`
	EntryPrice float64      `json:"entryPrice"`
	StopLoss   float64      `json:"stopLoss"`
	TakeProfit float64      `json:"takeProfit"`
	Timeframe  string       `json:"timeframe"`
	Rationale  string       `json:"rationale"`
	ImageURL   string       `json:"imageUrl,omitempty"`
	Status     SignalStatus `json:"status"`
	CreatedBy  string       `json:"createdBy"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// OwnerID returns the id of the principal that created the signal.
func (s *TradeSignal) OwnerID() string { return s.CreatedBy }

// StatusChange is an audit entry written for every admin status transition.
type StatusChange struct {
	ID        string       `json:"id"`
	SignalID  string       `json:"signalId"`
	From      SignalStatus `json:"from"`
	To        SignalStatus `json:"to"`
	ActorID   string       `json:"actorId"`
	RequestID string       `json:"requestId,omitempty"`
	At        time.Time    `json:"at"`
}
