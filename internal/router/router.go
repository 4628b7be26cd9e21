// Package router defines how the HTTP routes of the booking API are
// registered: which endpoints are public, which require a valid access
// token and which are restricted to admins.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/handler"
	"github.com/romain-blanchot/ESIEA-S2-booking-engine/internal/middleware"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Rooms        *handler.RoomHandler
	Seasons      *handler.SeasonHandler
	Pricing      *handler.PricingHandler
	Reservations *handler.ReservationHandler
	Payments     *handler.PaymentHandler
}

// Register mounts all routes on e.
//
// Public routes let guests browse the catalog and price stays without
// an account.  Everything touching reservations or payments requires a
// token; catalog mutations and global listings additionally require
// the ADMIN role.
func Register(e *echo.Echo, h Handlers, jwtSecret string) {
	e.GET("/healthz", handler.Health)

	// Unauthenticated session endpoints.
	authGroup := e.Group("/v1/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)

	// Guest browsing: room and season catalogs, quotes, availability.
	e.GET("/v1/rooms", h.Rooms.List)
	e.GET("/v1/rooms/:id", h.Rooms.Get)
	e.GET("/v1/rooms/:id/quote", h.Pricing.Quote)
	e.GET("/v1/rooms/:id/availability", h.Reservations.Availability)
	e.GET("/v1/seasons", h.Seasons.List)
	e.GET("/v1/seasons/:id", h.Seasons.Get)

	// Authenticated endpoints, any role.
	user := e.Group("/v1")
	user.Use(middleware.JWTAuth(jwtSecret))
	user.Use(middleware.RequireRole("USER", "ADMIN"))
	user.GET("/me", h.Auth.Me)
	user.POST("/reservations", h.Reservations.Create)
	user.GET("/reservations/mine", h.Reservations.Mine)
	user.GET("/reservations/:id", h.Reservations.Get)
	user.POST("/reservations/:id/cancel", h.Reservations.Cancel)

	// Admin-only management endpoints.
	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole("ADMIN"))

	admin.POST("/rooms", h.Rooms.Create)
	admin.PUT("/rooms/:id", h.Rooms.Update)
	admin.DELETE("/rooms/:id", h.Rooms.Delete)

	admin.POST("/seasons", h.Seasons.Create)
	admin.PUT("/seasons/:id", h.Seasons.Update)
	admin.DELETE("/seasons/:id", h.Seasons.Delete)

	admin.GET("/rooms/:id/conflicts", h.Reservations.Conflicts)

	admin.GET("/reservations", h.Reservations.List)
	admin.PUT("/reservations/:id", h.Reservations.Update)
	admin.DELETE("/reservations/:id", h.Reservations.Delete)

	admin.GET("/payments", h.Payments.List)
	admin.POST("/payments", h.Payments.Create)
	admin.GET("/payments/:id", h.Payments.Get)
	admin.PUT("/payments/:id", h.Payments.Update)
	admin.DELETE("/payments/:id", h.Payments.Delete)
}
