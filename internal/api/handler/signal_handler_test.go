package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/primstrade/platform/internal/core/domain"
	"github.com/primstrade/platform/internal/core/ports"
)

const signalID = "65f1c0ffee0000000000abcd"

type stubSignalService struct {
	ports.TradeSignalService

	createFn       func(p *domain.Principal, in ports.CreateSignalInput) (*domain.TradeSignal, error)
	getFn          func(p *domain.Principal, id string) (*domain.TradeSignal, error)
	updateFn       func(p *domain.Principal, id string, in ports.UpdateSignalInput) (*domain.TradeSignal, error)
	updateStatusFn func(p *domain.Principal, id string, status domain.SignalStatus) (*domain.TradeSignal, error)
	deleteFn       func(p *domain.Principal, id string) error
	listPublicFn   func() ([]*domain.TradeSignal, error)
}

func (s *stubSignalService) Create(_ context.Context, p *domain.Principal, in ports.CreateSignalInput) (*domain.TradeSignal, error) {
	return s.createFn(p, in)
}

func (s *stubSignalService) Get(_ context.Context, p *domain.Principal, id string) (*domain.TradeSignal, error) {
	return s.getFn(p, id)
}

func (s *stubSignalService) Update(_ context.Context, p *domain.Principal, id string, in ports.UpdateSignalInput) (*domain.TradeSignal, error) {
	return s.updateFn(p, id, in)
}

func (s *stubSignalService) UpdateStatus(_ context.Context, p *domain.Principal, id string, status domain.SignalStatus) (*domain.TradeSignal, error) {
	return s.updateStatusFn(p, id, status)
}

func (s *stubSignalService) Delete(_ context.Context, p *domain.Principal, id string) error {
	return s.deleteFn(p, id)
}

func (s *stubSignalService) ListPublic(context.Context) ([]*domain.TradeSignal, error) {
	return s.listPublicFn()
}

func withPrincipal(req *http.Request, id string, role domain.Role) *http.Request {
	return req.WithContext(domain.ContextWithPrincipal(req.Context(), domain.Principal{ID: id, Role: role}))
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func TestSignalHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubSignalService{
		createFn: func(p *domain.Principal, in ports.CreateSignalInput) (*domain.TradeSignal, error) {
			if p.ID != "u1" {
				t.Fatalf("principal not forwarded: %+v", p)
			}
			if in.Asset != "BTC/USD" || in.EntryPrice != 50000 || in.StopLoss != 0 || in.TakeProfit != 55000 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.TradeSignal{ID: signalID, Asset: in.Asset, Status: domain.SignalPending, CreatedBy: p.ID, CreatedAt: time.Now()}, nil
		},
	}
	h := NewSignalHandler(stub, nil)

	req := withPrincipal(jsonRequest(http.MethodPost, "/api/v1/trade-signals",
		`{"asset":"BTC/USD","entryPrice":50000,"stopLoss":0,"takeProfit":55000,"timeframe":"4h","rationale":"breakout"}`), "u1", domain.RoleUser)
	rec := httptest.NewRecorder()

	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	var s domain.TradeSignal
	_ = json.Unmarshal(env.Data, &s)
	if env.Message != "Trade signal created" || s.Status != domain.SignalPending {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
}

func TestSignalHandler_Create_IgnoresClientStatus(t *testing.T) {
	e := newTestEcho()
	stub := &stubSignalService{
		createFn: func(p *domain.Principal, in ports.CreateSignalInput) (*domain.TradeSignal, error) {
			if in != (ports.CreateSignalInput{Asset: "ETH", EntryPrice: 3000, StopLoss: 2800, TakeProfit: 3500, Timeframe: "1d", Rationale: "trend"}) {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.TradeSignal{ID: signalID, Asset: in.Asset, Status: domain.SignalPending, CreatedBy: p.ID}, nil
		},
		updateStatusFn: func(*domain.Principal, string, domain.SignalStatus) (*domain.TradeSignal, error) {
			t.Fatalf("create must not change status")
			return nil, nil
		},
	}
	h := NewSignalHandler(stub, nil)

	req := withPrincipal(jsonRequest(http.MethodPost, "/api/v1/trade-signals",
		`{"asset":"ETH","entryPrice":3000,"stopLoss":2800,"takeProfit":3500,"timeframe":"1d","rationale":"trend","status":"approved"}`), "u1", domain.RoleUser)
	rec := httptest.NewRecorder()

	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var s domain.TradeSignal
	_ = json.Unmarshal(decodeEnvelope(t, rec).Data, &s)
	if s.Status != domain.SignalPending {
		t.Fatalf("expected pending, got %q", s.Status)
	}
}

func TestSignalHandler_Update_IgnoresClientStatus(t *testing.T) {
	e := newTestEcho()
	stub := &stubSignalService{
		updateFn: func(p *domain.Principal, id string, in ports.UpdateSignalInput) (*domain.TradeSignal, error) {
			if in.EntryPrice == nil || *in.EntryPrice != 105 {
				t.Fatalf("expected entry price 105, got %v", in.EntryPrice)
			}
			if in.Asset != nil || in.StopLoss != nil || in.TakeProfit != nil || in.Timeframe != nil || in.Rationale != nil || in.ImageURL != nil {
				t.Fatalf("only entry price should be set: %+v", in)
			}
			return &domain.TradeSignal{ID: id, EntryPrice: *in.EntryPrice, Status: domain.SignalPending, CreatedBy: p.ID}, nil
		},
		updateStatusFn: func(*domain.Principal, string, domain.SignalStatus) (*domain.TradeSignal, error) {
			t.Fatalf("field update must not change status")
			return nil, nil
		},
	}
	h := NewSignalHandler(stub, nil)

	req := withPrincipal(jsonRequest(http.MethodPatch, "/", `{"entryPrice":105,"status":"rejected"}`), "u1", domain.RoleUser)
	rec := httptest.NewRecorder()
	c := withID(e.NewContext(req, rec), signalID)

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var s domain.TradeSignal
	_ = json.Unmarshal(decodeEnvelope(t, rec).Data, &s)
	if s.Status != domain.SignalPending || s.EntryPrice != 105 {
		t.Fatalf("unexpected signal: %+v", s)
	}
}

func TestSignalHandler_Create_Validation(t *testing.T) {
	e := newTestEcho()
	h := NewSignalHandler(&stubSignalService{}, nil)

	cases := map[string]string{
		"non-positive entry price": `{"asset":"BTC","entryPrice":0,"stopLoss":1,"takeProfit":2,"timeframe":"4h","rationale":"x"}`,
		"missing stop loss":        `{"asset":"BTC","entryPrice":1,"takeProfit":2,"timeframe":"4h","rationale":"x"}`,
		"asset too long":           `{"asset":"ABCDEFGHIJKLMNOPQRSTU","entryPrice":1,"stopLoss":1,"takeProfit":2,"timeframe":"4h","rationale":"x"}`,
		"bad image url":            `{"asset":"BTC","entryPrice":1,"stopLoss":1,"takeProfit":2,"timeframe":"4h","rationale":"x","imageUrl":"not a url"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := withPrincipal(jsonRequest(http.MethodPost, "/api/v1/trade-signals", body), "u1", domain.RoleUser)
			err := h.Create(e.NewContext(req, httptest.NewRecorder()))
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSignalHandler_RequiresPrincipal(t *testing.T) {
	e := newTestEcho()
	h := NewSignalHandler(&stubSignalService{}, nil)

	req := jsonRequest(http.MethodPost, "/api/v1/trade-signals", `{}`)
	if err := h.Create(e.NewContext(req, httptest.NewRecorder())); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSignalHandler_Get_InvalidID(t *testing.T) {
	e := newTestEcho()
	stub := &stubSignalService{
		getFn: func(*domain.Principal, string) (*domain.TradeSignal, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewSignalHandler(stub, nil)

	req := withPrincipal(httptest.NewRequest(http.MethodGet, "/", nil), "u1", domain.RoleUser)
	c := withID(e.NewContext(req, httptest.NewRecorder()), "not-an-object-id")

	var ve *domain.ValidationError
	if err := h.Get(c); !errors.As(err, &ve) || ve.Fields[0].Path != "id" {
		t.Fatalf("expected id violation, got %v", err)
	}
}

func TestSignalHandler_Get_PropagatesForbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubSignalService{
		getFn: func(p *domain.Principal, id string) (*domain.TradeSignal, error) {
			if id != signalID {
				t.Fatalf("unexpected id %s", id)
			}
			return nil, domain.Forbidden("access denied")
		},
	}
	h := NewSignalHandler(stub, nil)

	req := withPrincipal(httptest.NewRequest(http.MethodGet, "/", nil), "u2", domain.RoleUser)
	c := withID(e.NewContext(req, httptest.NewRecorder()), signalID)

	if err := h.Get(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSignalHandler_Update_ClearsImage(t *testing.T) {
	e := newTestEcho()
	stub := &stubSignalService{
		updateFn: func(p *domain.Principal, id string, in ports.UpdateSignalInput) (*domain.TradeSignal, error) {
			if in.ImageURL == nil || *in.ImageURL != "" {
				t.Fatalf("expected explicit empty image url, got %v", in.ImageURL)
			}
			if in.Asset != nil {
				t.Fatalf("asset should be unchanged")
			}
			return &domain.TradeSignal{ID: id}, nil
		},
	}
	h := NewSignalHandler(stub, nil)

	req := withPrincipal(jsonRequest(http.MethodPatch, "/", `{"imageUrl":""}`), "u1", domain.RoleUser)
	rec := httptest.NewRecorder()
	c := withID(e.NewContext(req, rec), signalID)

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Signal updated" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestSignalHandler_UpdateStatus(t *testing.T) {
	e := newTestEcho()
	stub := &stubSignalService{
		updateStatusFn: func(p *domain.Principal, id string, status domain.SignalStatus) (*domain.TradeSignal, error) {
			return &domain.TradeSignal{ID: id, Status: status}, nil
		},
	}
	h := NewSignalHandler(stub, nil)

	req := withPrincipal(jsonRequest(http.MethodPatch, "/", `{"status":"rejected"}`), "a1", domain.RoleAdmin)
	rec := httptest.NewRecorder()
	c := withID(e.NewContext(req, rec), signalID)

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Signal rejected" {
		t.Fatalf("unexpected message %q", env.Message)
	}

	req = withPrincipal(jsonRequest(http.MethodPatch, "/", `{"status":"pending"}`), "a1", domain.RoleAdmin)
	c = withID(e.NewContext(req, httptest.NewRecorder()), signalID)
	if err := h.UpdateStatus(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for pending, got %v", err)
	}
}

func TestSignalHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubSignalService{
		deleteFn: func(p *domain.Principal, id string) error { return nil },
	}
	h := NewSignalHandler(stub, nil)

	req := withPrincipal(httptest.NewRequest(http.MethodDelete, "/", nil), "u1", domain.RoleUser)
	rec := httptest.NewRecorder()
	c := withID(e.NewContext(req, rec), signalID)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "Signal deleted" || string(env.Data) != `{"deleted":true}` {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
}

func TestSignalHandler_ListPublic_EmptyIsArray(t *testing.T) {
	e := newTestEcho()
	stub := &stubSignalService{
		listPublicFn: func() ([]*domain.TradeSignal, error) { return []*domain.TradeSignal{}, nil },
	}
	h := NewSignalHandler(stub, nil)

	rec := httptest.NewRecorder()
	if err := h.ListPublic(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if env := decodeEnvelope(t, rec); string(env.Data) != "[]" {
		t.Fatalf("expected empty array, got %s", env.Data)
	}
}
