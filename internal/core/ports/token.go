package ports

import (
	"time"

	"github.com/primstrade/platform/internal/core/domain"
)

// TokenPair is the access/refresh pair handed to clients.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// TokenIssuer mints signed credentials for a principal.
type TokenIssuer interface {
	IssuePair(p domain.Principal) (TokenPair, error)
}

// TokenVerifier checks an access token's signature and expiry and returns
// the embedded principal. It never touches the credential store.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}

// TokenManager issues pairs and verifies both kinds; the auth service needs
// VerifyRefresh for refresh.
type TokenManager interface {
	TokenIssuer
	TokenVerifier
	VerifyRefresh(token string) (domain.Principal, error)
}
