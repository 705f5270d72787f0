package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/primstrade/platform/internal/api/metrics"
	"github.com/primstrade/platform/internal/api/response"
	"github.com/primstrade/platform/internal/core/domain"
	"github.com/primstrade/platform/internal/core/ports"
)

// SignalHandler handles HTTP requests for the trade signal lifecycle.
type SignalHandler struct {
	service ports.TradeSignalService
	history ports.AuditHistory
}

// NewSignalHandler builds a SignalHandler. history may be nil, in which case
// the history route is not registered by the router.
func NewSignalHandler(service ports.TradeSignalService, history ports.AuditHistory) *SignalHandler {
	return &SignalHandler{service: service, history: history}
}

// ListPublic returns approved signals. No authentication required.
//
// @Summary      List approved signals
// @Tags         trade-signals
// @Produce      json
// @Success      200  {object}  signalListEnvelope
// @Router       /api/v1/trade-signals/public [get]
func (h *SignalHandler) ListPublic(c echo.Context) error {
	signals, err := h.service.ListPublic(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Approved signals retrieved", signals)
}

// Create submits a new signal in pending status.
//
// @Summary      Create a trade signal
// @Tags         trade-signals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSignalRequest  true  "Signal details"
// @Success      201   {object}  signalEnvelope
// @Failure      400   {object}  errorEnvelope
// @Failure      401   {object}  errorEnvelope
// @Router       /api/v1/trade-signals [post]
func (h *SignalHandler) Create(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req createSignalRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	signal, err := h.service.Create(c.Request().Context(), p, ports.CreateSignalInput{
		Asset:      req.Asset,
		EntryPrice: *req.EntryPrice,
		StopLoss:   *req.StopLoss,
		TakeProfit: *req.TakeProfit,
		Timeframe:  req.Timeframe,
		Rationale:  req.Rationale,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		return err
	}
	metrics.SignalsCreatedTotal.Inc()

	return response.OK(c, http.StatusCreated, "Trade signal created", signal)
}

// ListMine returns the caller's own signals in every status.
//
// @Summary      List my signals
// @Tags         trade-signals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  signalListEnvelope
// @Failure      401  {object}  errorEnvelope
// @Router       /api/v1/trade-signals [get]
func (h *SignalHandler) ListMine(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	signals, err := h.service.ListMine(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Signals retrieved", signals)
}

// ListAll returns every signal. Admin only.
//
// @Summary      List all signals
// @Tags         trade-signals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  signalListEnvelope
// @Failure      401  {object}  errorEnvelope
// @Failure      403  {object}  errorEnvelope
// @Router       /api/v1/trade-signals/admin [get]
func (h *SignalHandler) ListAll(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	signals, err := h.service.ListAll(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "All signals retrieved", signals)
}

// Get returns one signal visible to the caller.
//
// @Summary      Get a trade signal
// @Tags         trade-signals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Signal id"
// @Success      200  {object}  signalEnvelope
// @Failure      400  {object}  errorEnvelope
// @Failure      403  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Router       /api/v1/trade-signals/{id} [get]
func (h *SignalHandler) Get(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var path idParam
	if err := bindPath(c, &path); err != nil {
		return err
	}

	signal, err := h.service.Get(c.Request().Context(), p, path.ID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Signal retrieved", signal)
}

// Update edits the caller's own signal. Status cannot be changed here.
//
// @Summary      Update a trade signal
// @Tags         trade-signals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Signal id"
// @Param        body  body      updateSignalRequest  true  "Fields to change"
// @Success      200   {object}  signalEnvelope
// @Failure      400   {object}  errorEnvelope
// @Failure      403   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Router       /api/v1/trade-signals/{id} [patch]
func (h *SignalHandler) Update(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var path idParam
	if err := bindPath(c, &path); err != nil {
		return err
	}
	var req updateSignalRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	signal, err := h.service.Update(c.Request().Context(), p, path.ID, toSignalChanges(req))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Signal updated", signal)
}

// UpdateStatus approves or rejects a signal. Admin only.
//
// @Summary      Approve or reject a signal
// @Tags         trade-signals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Signal id"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  signalEnvelope
// @Failure      400   {object}  errorEnvelope
// @Failure      403   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Router       /api/v1/trade-signals/{id}/status [patch]
func (h *SignalHandler) UpdateStatus(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var path idParam
	if err := bindPath(c, &path); err != nil {
		return err
	}
	var req updateStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	status := domain.SignalStatus(req.Status)
	signal, err := h.service.UpdateStatus(c.Request().Context(), p, path.ID, status)
	if err != nil {
		return err
	}
	metrics.SignalStatusChangesTotal.WithLabelValues(string(status)).Inc()

	return response.OK(c, http.StatusOK, "Signal "+string(status), signal)
}

// Delete removes a signal. Owner or admin.
//
// @Summary      Delete a trade signal
// @Tags         trade-signals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Signal id"
// @Success      200  {object}  envelopeDoc
// @Failure      403  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Router       /api/v1/trade-signals/{id} [delete]
func (h *SignalHandler) Delete(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var path idParam
	if err := bindPath(c, &path); err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), p, path.ID); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Signal deleted", deletedResponse{Deleted: true})
}

// History lists the recorded status changes of a signal. Admin only.
//
// @Summary      Signal status history
// @Tags         trade-signals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Signal id"
// @Success      200  {object}  envelopeDoc
// @Failure      403  {object}  errorEnvelope
// @Router       /api/v1/trade-signals/{id}/history [get]
func (h *SignalHandler) History(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var path idParam
	if err := bindPath(c, &path); err != nil {
		return err
	}

	changes, err := h.history.History(c.Request().Context(), p, path.ID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Status history retrieved", changes)
}
