// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"basecamp/internal/delivery/api/middleware"
	"basecamp/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	DashboardHandler *handler.DashboardHandler
	RosterHandler    *handler.RosterHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	dashboardHandler *handler.DashboardHandler
	rosterHandler    *handler.RosterHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		dashboardHandler: params.DashboardHandler,
		rosterHandler:    params.RosterHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Dashboard page, guarded when auth is enabled
	e.GET("/", r.dashboardHandler.ShowDashboard, r.authMiddleware.Authenticate)

	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate)

	rosterGroup := apiV1.Group("/roster")
	{
		rosterGroup.GET("", r.rosterHandler.GetRoster)
		rosterGroup.GET("/geofences", r.rosterHandler.GetGeofences)
	}
}
