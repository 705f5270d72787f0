package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/primstrade/platform/internal/api/response"
	"github.com/primstrade/platform/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetMe returns the caller's profile.
//
// @Summary      Get current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userEnvelope
// @Failure      401  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Router       /api/v1/users/me [get]
func (h *UserHandler) GetMe(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetMe(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Profile retrieved", toUserResponse(user))
}

// UpdateMe changes the caller's display name.
//
// @Summary      Update current user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  userEnvelope
// @Failure      400   {object}  errorEnvelope
// @Failure      401   {object}  errorEnvelope
// @Router       /api/v1/users/me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateMe(c.Request().Context(), p, ports.UpdateProfileInput{Name: req.Name})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Profile updated", toUserResponse(user))
}
