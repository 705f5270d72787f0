package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/primstrade/platform/internal/api/response"
	"github.com/primstrade/platform/internal/core/ports"
)

// DiscussionHandler handles HTTP requests for discussions and their comments.
type DiscussionHandler struct {
	service ports.DiscussionService
}

func NewDiscussionHandler(service ports.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{service: service}
}

// List returns every discussion, newest first.
//
// @Summary      List discussions
// @Tags         discussions
// @Produce      json
// @Success      200  {object}  discussionListEnvelope
// @Router       /api/v1/discussions [get]
func (h *DiscussionHandler) List(c echo.Context) error {
	discussions, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Discussions retrieved", discussions)
}

// Get returns a discussion with its comments.
//
// @Summary      Get a discussion
// @Tags         discussions
// @Produce      json
// @Param        id   path      string  true  "Discussion id"
// @Success      200  {object}  discussionEnvelope
// @Failure      400  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Router       /api/v1/discussions/{id} [get]
func (h *DiscussionHandler) Get(c echo.Context) error {
	var path idParam
	if err := bindPath(c, &path); err != nil {
		return err
	}

	discussion, err := h.service.Get(c.Request().Context(), path.ID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Discussion retrieved", discussion)
}

// Create opens a new discussion.
//
// @Summary      Create a discussion
// @Tags         discussions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDiscussionRequest  true  "Discussion"
// @Success      201   {object}  discussionEnvelope
// @Failure      400   {object}  errorEnvelope
// @Failure      401   {object}  errorEnvelope
// @Router       /api/v1/discussions [post]
func (h *DiscussionHandler) Create(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req createDiscussionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	discussion, err := h.service.Create(c.Request().Context(), p, ports.CreateDiscussionInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, "Discussion created", discussion)
}

// Update edits a discussion. Author or admin.
//
// @Summary      Update a discussion
// @Tags         discussions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Discussion id"
// @Param        body  body      updateDiscussionRequest  true  "Fields to change"
// @Success      200   {object}  discussionEnvelope
// @Failure      403   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Router       /api/v1/discussions/{id} [patch]
func (h *DiscussionHandler) Update(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var path idParam
	if err := bindPath(c, &path); err != nil {
		return err
	}
	var req updateDiscussionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	discussion, err := h.service.Update(c.Request().Context(), p, path.ID, ports.UpdateDiscussionInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Discussion updated", discussion)
}

// Delete removes a discussion and its comments. Author or admin.
//
// @Summary      Delete a discussion
// @Tags         discussions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Discussion id"
// @Success      200  {object}  envelopeDoc
// @Failure      403  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Router       /api/v1/discussions/{id} [delete]
func (h *DiscussionHandler) Delete(c echo.Context) error {
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
	return response.OK(c, http.StatusOK, "Discussion deleted", deletedResponse{Deleted: true})
}

// AddComment appends a comment to a discussion.
//
// @Summary      Add a comment
// @Tags         discussions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Discussion id"
// @Param        body  body      addCommentRequest  true  "Comment"
// @Success      201   {object}  discussionEnvelope
// @Failure      400   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Router       /api/v1/discussions/{id}/comments [post]
func (h *DiscussionHandler) AddComment(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var path idParam
	if err := bindPath(c, &path); err != nil {
		return err
	}
	var req addCommentRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	discussion, err := h.service.AddComment(c.Request().Context(), p, path.ID, req.Content)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, "Comment added", discussion)
}

// DeleteComment removes a comment. Comment author or admin.
//
// @Summary      Delete a comment
// @Tags         discussions
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true  "Discussion id"
// @Param        commentId  path      string  true  "Comment id"
// @Success      200        {object}  discussionEnvelope
// @Failure      403        {object}  errorEnvelope
// @Failure      404        {object}  errorEnvelope
// @Router       /api/v1/discussions/{id}/comments/{commentId} [delete]
func (h *DiscussionHandler) DeleteComment(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var path commentParam
	if err := bindPath(c, &path); err != nil {
		return err
	}

	discussion, err := h.service.DeleteComment(c.Request().Context(), p, path.ID, path.CommentID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Comment deleted", discussion)
}
