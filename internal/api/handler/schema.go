package handler

import (
	"time"

	"github.com/primstrade/platform/internal/core/domain"
)

// --- Path parameters ---

type idParam struct {
	ID string `param:"id" validate:"required,mongodb"`
}

type commentParam struct {
	ID        string `param:"id"        validate:"required,mongodb"`
	CommentID string `param:"commentId" validate:"required,mongodb"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Name     string `json:"name"     validate:"omitempty,min=1,max=100"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type authResponse struct {
	User         userResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// --- Users ---

type updateProfileRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
}

// --- Trade signals ---

type createSignalRequest struct {
	Asset      string   `json:"asset"      validate:"required,min=1,max=20"`
	EntryPrice *float64 `json:"entryPrice" validate:"required,gt=0"`
	StopLoss   *float64 `json:"stopLoss"   validate:"required"`
	TakeProfit *float64 `json:"takeProfit" validate:"required"`
	Timeframe  string   `json:"timeframe"  validate:"required,min=1,max=50"`
	Rationale  string   `json:"rationale"  validate:"required,min=1,max=5000"`
	ImageURL   string   `json:"imageUrl"   validate:"omitempty,url_or_empty,max=2048"`
}

type updateSignalRequest struct {
	Asset      *string  `json:"asset"      validate:"omitempty,min=1,max=20"`
	EntryPrice *float64 `json:"entryPrice" validate:"omitempty,gt=0"`
	StopLoss   *float64 `json:"stopLoss"`
	TakeProfit *float64 `json:"takeProfit"`
	Timeframe  *string  `json:"timeframe"  validate:"omitempty,min=1,max=50"`
	Rationale  *string  `json:"rationale"  validate:"omitempty,min=1,max=5000"`
	ImageURL   *string  `json:"imageUrl"   validate:"omitempty,url_or_empty,max=2048"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// --- Discussions ---

type createDiscussionRequest struct {
	Title   string `json:"title"   validate:"required,min=3,max=200"`
	Content string `json:"content" validate:"required,min=10,max=5000"`
}

type updateDiscussionRequest struct {
	Title   *string `json:"title"   validate:"omitempty,min=3,max=200"`
	Content *string `json:"content" validate:"omitempty,min=10,max=5000"`
}

type addCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

// --- Uploads ---

type uploadResponse struct {
	URL string `json:"url"`
}

// --- Swagger-only envelopes ---

type envelopeDoc struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type signalEnvelope struct {
	envelopeDoc
	Data domain.TradeSignal `json:"data"`
}

type signalListEnvelope struct {
	envelopeDoc
	Data []domain.TradeSignal `json:"data"`
}

type discussionEnvelope struct {
	envelopeDoc
	Data domain.Discussion `json:"data"`
}

type discussionListEnvelope struct {
	envelopeDoc
	Data []domain.Discussion `json:"data"`
}

type authEnvelope struct {
	envelopeDoc
	Data authResponse `json:"data"`
}

type userEnvelope struct {
	envelopeDoc
	Data userResponse `json:"data"`
}

type errorEnvelope struct {
	envelopeDoc
	Error []domain.FieldViolation `json:"error,omitempty"`
}
