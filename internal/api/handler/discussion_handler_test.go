package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/primstrade/platform/internal/core/domain"
	"github.com/primstrade/platform/internal/core/ports"
)

const commentID = "65f1c0ffee0000000000beef"

type stubDiscussionService struct {
	ports.DiscussionService

	createFn        func(p *domain.Principal, in ports.CreateDiscussionInput) (*domain.Discussion, error)
	deleteFn        func(p *domain.Principal, id string) error
	deleteCommentFn func(p *domain.Principal, id, commentID string) (*domain.Discussion, error)
}

func (s *stubDiscussionService) Create(_ context.Context, p *domain.Principal, in ports.CreateDiscussionInput) (*domain.Discussion, error) {
	return s.createFn(p, in)
}

func (s *stubDiscussionService) Delete(_ context.Context, p *domain.Principal, id string) error {
	return s.deleteFn(p, id)
}

func (s *stubDiscussionService) DeleteComment(_ context.Context, p *domain.Principal, id, commentID string) (*domain.Discussion, error) {
	return s.deleteCommentFn(p, id, commentID)
}

func TestDiscussionHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubDiscussionService{
		createFn: func(p *domain.Principal, in ports.CreateDiscussionInput) (*domain.Discussion, error) {
			return &domain.Discussion{ID: signalID, Title: in.Title, Content: in.Content, CreatedBy: p.ID, Comments: []domain.Comment{}}, nil
		},
	}
	h := NewDiscussionHandler(stub)

	req := withPrincipal(jsonRequest(http.MethodPost, "/api/v1/discussions",
		`{"title":"BTC outlook","content":"Thoughts on the weekly chart?"}`), "u1", domain.RoleUser)
	rec := httptest.NewRecorder()

	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Discussion created" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestDiscussionHandler_Create_TooShort(t *testing.T) {
	e := newTestEcho()
	h := NewDiscussionHandler(&stubDiscussionService{})

	req := withPrincipal(jsonRequest(http.MethodPost, "/", `{"title":"hi","content":"short"}`), "u1", domain.RoleUser)
	err := h.Create(e.NewContext(req, httptest.NewRecorder()))

	var ve *domain.ValidationError
	if !errors.As(err, &ve) || len(ve.Fields) != 2 {
		t.Fatalf("expected two violations, got %v", err)
	}
}

func TestDiscussionHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubDiscussionService{
		deleteFn: func(p *domain.Principal, id string) error {
			if p.ID != "u1" {
				return domain.Forbidden("you can only delete your own discussions")
			}
			return nil
		},
	}
	h := NewDiscussionHandler(stub)

	rec := httptest.NewRecorder()
	req := withPrincipal(httptest.NewRequest(http.MethodDelete, "/", nil), "u1", domain.RoleUser)
	if err := h.Delete(withID(e.NewContext(req, rec), signalID)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if env := decodeEnvelope(t, rec); string(env.Data) != `{"deleted":true}` {
		t.Fatalf("unexpected data %s", env.Data)
	}

	req = withPrincipal(httptest.NewRequest(http.MethodDelete, "/", nil), "u2", domain.RoleUser)
	if err := h.Delete(withID(e.NewContext(req, httptest.NewRecorder()), signalID)); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDiscussionHandler_DeleteComment_BindsBothIDs(t *testing.T) {
	e := newTestEcho()
	stub := &stubDiscussionService{
		deleteCommentFn: func(p *domain.Principal, id, cid string) (*domain.Discussion, error) {
			if id != signalID || cid != commentID {
				t.Fatalf("unexpected ids %s %s", id, cid)
			}
			return &domain.Discussion{ID: id, Comments: []domain.Comment{}}, nil
		},
	}
	h := NewDiscussionHandler(stub)

	req := withPrincipal(httptest.NewRequest(http.MethodDelete, "/", nil), "u1", domain.RoleUser)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "commentId")
	c.SetParamValues(signalID, commentID)

	if err := h.DeleteComment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Comment deleted" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}
