package api

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/primstrade/platform/internal/api/handler"
	"github.com/primstrade/platform/internal/api/middleware"
	"github.com/primstrade/platform/internal/core/domain"
	"github.com/primstrade/platform/internal/core/ports"
)

// Prefix is the version prefix shared by every API route.
const Prefix = "/api/v1"

// RegisterAuthRoutes mounts /api/v1/auth. No authentication required.
func RegisterAuthRoutes(e *echo.Echo, h *handler.AuthHandler) {
	g := e.Group(Prefix + "/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/refresh", h.Refresh)
}

// RegisterUserRoutes mounts /api/v1/users behind bearer authentication.
func RegisterUserRoutes(e *echo.Echo, h *handler.UserHandler, verifier ports.TokenVerifier) {
	g := e.Group(Prefix+"/users", middleware.Auth(verifier))
	g.GET("/me", h.GetMe)
	g.PATCH("/me", h.UpdateMe)
}

// RegisterSignalRoutes mounts /api/v1/trade-signals. Only /public is open.
func RegisterSignalRoutes(e *echo.Echo, h *handler.SignalHandler, verifier ports.TokenVerifier, withHistory bool) {
	e.GET(Prefix+"/trade-signals/public", h.ListPublic)

	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	g := e.Group(Prefix+"/trade-signals", middleware.Auth(verifier))
	g.POST("", h.Create)
	g.GET("", h.ListMine)
	g.GET("/admin", h.ListAll, adminOnly)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.PATCH("/:id/status", h.UpdateStatus, adminOnly)
	g.DELETE("/:id", h.Delete)
	if withHistory {
		g.GET("/:id/history", h.History, adminOnly)
	}
}

// RegisterDiscussionRoutes mounts /api/v1/discussions. Reads are open.
func RegisterDiscussionRoutes(e *echo.Echo, h *handler.DiscussionHandler, verifier ports.TokenVerifier) {
	auth := middleware.Auth(verifier)

	g := e.Group(Prefix + "/discussions")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create, auth)
	g.PATCH("/:id", h.Update, auth)
	g.DELETE("/:id", h.Delete, auth)
	g.POST("/:id/comments", h.AddComment, auth)
	g.DELETE("/:id/comments/:commentId", h.DeleteComment, auth)
}

// RegisterUploadRoutes mounts /api/v1/upload behind bearer authentication.
func RegisterUploadRoutes(e *echo.Echo, h *handler.UploadHandler, verifier ports.TokenVerifier) {
	g := e.Group(Prefix+"/upload", middleware.Auth(verifier))
	g.POST("/image", h.Image)
}

// RegisterDocs serves the swagger UI at /api-docs/*.
func RegisterDocs(e *echo.Echo) {
	e.GET("/api-docs/*", echoSwagger.WrapHandler)
}
