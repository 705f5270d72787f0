package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/primstrade/platform/internal/core/domain"
	"github.com/primstrade/platform/internal/core/ports"
)

type stubUserRepo struct {
	byID   map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrConflict
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("%024x", r.nextID)
	r.byID[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateName(_ context.Context, id, name string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Name = name
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func newTestAuthService(t *testing.T, repo ports.UserRepository) (*AuthService, *TokenService) {
	t.Helper()
	tokens, err := NewTokenService([]byte("test-secret"))
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return NewAuthService(repo, tokens, zerolog.Nop()), tokens
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(t, repo)

	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "  A@X.com ",
		Password: "password1",
		Name:     "Alice",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.User.Email != "a@x.com" {
		t.Fatalf("expected normalised email, got %q", res.User.Email)
	}
	if res.User.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %s", res.User.Role)
	}
	if res.User.PasswordHash == "password1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("password1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	p, err := tokens.Verify(res.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if p.ID != res.User.ID || p.Email != "a@x.com" || p.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", p)
	}
}

func TestAuthService_Register_ExplicitAdmin(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubUserRepo())

	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "root@x.com", Password: "password1", Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.User.Role != domain.RoleAdmin {
		t.Fatalf("expected admin, got %s", res.User.Role)
	}
}

func TestAuthService_Register_UnknownRole(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubUserRepo())

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "x@x.com", Password: "password1", Role: "owner",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthService_Register_DuplicateIsConflict(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubUserRepo())
	in := ports.RegisterInput{Email: "bob@x.com", Password: "password1"}

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	in.Email = "BOB@x.com"
	if _, err := svc.Register(context.Background(), in); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

// racingRepo hides existing users from FindByEmail to simulate two
// registrations passing the pre-check at once.
type racingRepo struct {
	*stubUserRepo
}

func (r racingRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func TestAuthService_Register_UniqueIndexConflict(t *testing.T) {
	repo := racingRepo{newStubUserRepo()}
	svc, _ := newTestAuthService(t, repo)
	in := ports.RegisterInput{Email: "race@x.com", Password: "password1"}

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, tokens := newTestAuthService(t, newStubUserRepo())
	reg, err := svc.Register(context.Background(), ports.RegisterInput{Email: "carol@x.com", Password: "s3cretpass", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "Carol@X.com", "s3cretpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.User.ID != reg.User.ID {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	p, err := tokens.Verify(res.Tokens.AccessToken)
	if err != nil || p.Role != domain.RoleAdmin {
		t.Fatalf("unexpected token claims: %+v (%v)", p, err)
	}
}

func TestAuthService_Login_SameErrorForUnknownEmailAndBadPassword(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubUserRepo())
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "dave@x.com", Password: "goodpassword"})

	_, wrongPass := svc.Login(context.Background(), "dave@x.com", "badpassword")
	_, unknown := svc.Login(context.Background(), "ghost@x.com", "goodpassword")

	if wrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if unknown != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", unknown)
	}
}

func TestAuthService_Refresh_PicksUpRoleChange(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(t, repo)
	reg, err := svc.Register(context.Background(), ports.RegisterInput{Email: "eve@x.com", Password: "password1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	repo.byID[reg.User.ID].Role = domain.RoleAdmin

	// The old access token still carries the stale role until it expires.
	stale, _ := tokens.Verify(reg.Tokens.AccessToken)
	if stale.Role != domain.RoleUser {
		t.Fatalf("expected stale role in old token, got %s", stale.Role)
	}

	res, err := svc.Refresh(context.Background(), reg.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	p, err := tokens.Verify(res.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("new access token invalid: %v", err)
	}
	if p.Role != domain.RoleAdmin {
		t.Fatalf("expected refreshed role admin, got %s", p.Role)
	}
}

func TestAuthService_Refresh_ConcurrentRefreshTokensStayValid(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubUserRepo())
	reg, _ := svc.Register(context.Background(), ports.RegisterInput{Email: "f@x.com", Password: "password1"})

	first, err := svc.Refresh(context.Background(), reg.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), reg.Tokens.RefreshToken); err != nil {
		t.Fatalf("reusing a refresh token must still work: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), first.Tokens.RefreshToken); err != nil {
		t.Fatalf("new refresh token must work: %v", err)
	}
}

func TestAuthService_Refresh_PrincipalGone(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(t, repo)
	reg, _ := svc.Register(context.Background(), ports.RegisterInput{Email: "g@x.com", Password: "password1"})

	delete(repo.byID, reg.User.ID)

	if _, err := svc.Refresh(context.Background(), reg.Tokens.RefreshToken); err != domain.ErrPrincipalNotFound {
		t.Fatalf("expected ErrPrincipalNotFound, got %v", err)
	}
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubUserRepo())

	if _, err := svc.Refresh(context.Background(), "garbage"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubUserRepo())
	reg, _ := svc.Register(context.Background(), ports.RegisterInput{Email: "h@x.com", Password: "password1"})

	if _, err := svc.Refresh(context.Background(), reg.Tokens.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for access token, got %v", err)
	}
}
