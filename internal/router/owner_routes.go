package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/webroomers/pg-booking-service/internal/handler"    // owner-side handlers
	"github.com/webroomers/pg-booking-service/internal/middleware" // JWT + role middlewares
)

// RegisterOwner registers the landlord-side endpoints under /v1.  All
// routes require a valid JWT with the OWNER or SUBUSER role; per-action
// permission checks for sub-users happen inside the handlers, because
// which workflow a staff account may touch is data, not routing.
func RegisterOwner(e *echo.Echo, enq *handler.EnquiryHandler, co *handler.CheckoutHandler, pay *handler.PaymentHandler, perm *handler.PermissionHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER", "SUBUSER"),
	)

	// ---- Permissions ----
	g.GET("/permissions", perm.List, cache)
	// Granting is reserved to the owner account itself.
	g.POST("/subusers/permissions", perm.SetGrants, middleware.RequireRole("OWNER"))

	// ---- Enquiries ----
	g.GET("/enquiries", enq.ListCompany, cache)
	g.GET("/enquiries/:id", enq.Get)
	g.POST("/enquiries/resolve", enq.Resolve)
	g.POST("/inactivate", enq.Inactivate)

	// ---- Checkouts ----
	g.POST("/checkouts/resolve", co.Resolve)

	// ---- Payments ----
	g.POST("/payments/resolve", pay.Resolve)
}
