package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/webroomers/pg-booking-service/internal/handler"    // tenant-side handlers
	"github.com/webroomers/pg-booking-service/internal/middleware" // JWT + role middlewares
)

// RegisterTenant registers the tenant-side endpoints under /v1.
// Mutating routes require the TENANT role; the browse reads are open to
// staff too, since owners review the same inventory listings.
func RegisterTenant(e *echo.Echo, prop *handler.PropertyHandler, enq *handler.EnquiryHandler, co *handler.CheckoutHandler, pay *handler.PaymentHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("TENANT"),
	)

	// ---- Browse (any authenticated role) ----
	browse := e.Group("/v1", middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("TENANT", "OWNER", "SUBUSER"))
	browse.GET("/pgs", prop.ListProperties, cache)
	browse.GET("/pgs/:id/rooms", prop.ListRooms, cache)

	// ---- Enquiries ----
	g.POST("/enquiries", enq.Submit)
	g.GET("/my-enquiries", enq.ListMine)

	// ---- Checkouts ----
	g.POST("/checkouts", co.Request)

	// ---- Payments ----
	g.POST("/payments", pay.Submit)
}
