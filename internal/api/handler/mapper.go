package handler

import (
	"github.com/primstrade/platform/internal/core/domain"
	"github.com/primstrade/platform/internal/core/ports"
)

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{
		User:         toUserResponse(r.User),
		AccessToken:  r.Tokens.AccessToken,
		RefreshToken: r.Tokens.RefreshToken,
	}
}

func toSignalChanges(req updateSignalRequest) ports.UpdateSignalInput {
	return ports.UpdateSignalInput{
		Asset:      req.Asset,
		EntryPrice: req.EntryPrice,
		StopLoss:   req.StopLoss,
		TakeProfit: req.TakeProfit,
		Timeframe:  req.Timeframe,
		Rationale:  req.Rationale,
		ImageURL:   req.ImageURL,
	}
}
