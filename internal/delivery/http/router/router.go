// Package router contains routing setup for the HTTP delivery.
package router

import (
	"gatekeeper/internal/delivery/http/middleware"
	"gatekeeper/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CredentialHandler *handler.CredentialHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	credentialHandler *handler.CredentialHandler
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		credentialHandler: params.CredentialHandler,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Public credential routes
	e.POST("/signup", r.credentialHandler.SignUp)
	e.POST("/login", r.credentialHandler.SignIn)

	// Routes behind the access guard. The guard rejects before protected
	// logic runs; handlers read identity from the request context.
	guarded := e.Group("", r.authMiddleware.Authenticate)
	{
		guarded.GET("/profile", r.credentialHandler.GetProfile)
		guarded.PUT("/password", r.credentialHandler.ChangePassword)
		guarded.GET("/users", r.credentialHandler.ListAccounts)
		guarded.PUT("/users/:id", r.credentialHandler.UpdateProfile)
		guarded.DELETE("/users/:id", r.credentialHandler.DeleteAccount)
	}
}
