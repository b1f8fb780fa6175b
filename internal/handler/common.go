package handler // handler defines http handlers

import (
	"database/sql" // sentinel for missing rows
	"errors"       // errors.Is / errors.As comparisons
	"net/http"     // HTTP status codes
	"strconv"      // strconv converts strings to numeric types

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/webroomers/pg-booking-service/internal/allocator"
	"github.com/webroomers/pg-booking-service/internal/lifecycle"
	"github.com/webroomers/pg-booking-service/internal/permission"
	"github.com/webroomers/pg-booking-service/internal/repository"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	return contextUint(c, "user_id")
}

// getCompanyID extracts the company_id claim stored by the JWT middleware.
func getCompanyID(c echo.Context) (uint64, error) {
	return contextUint(c, "company_id")
}

// contextUint reads a numeric context value that may arrive as any of the
// types the JWT library produces when decoding claims.
func contextUint(c echo.Context, key string) (uint64, error) {
	switch t := c.Get(key).(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid " + key + " in context")
}

// ok writes the standard {success:true, message} envelope, optionally
// merged with extra payload fields.
func ok(c echo.Context, status int, message string, extra echo.Map) error {
	body := echo.Map{"success": true, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(status, body)
}

// fail writes the standard failure envelope.
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

// domainError maps domain failures onto the wire contract.  Validation
// problems are 400, ownership violations 403, state races 409 with an
// instruction to refetch, everything else 500.
func domainError(c echo.Context, err error) error {
	var verr *lifecycle.ValidationError
	switch {
	case errors.As(err, &verr):
		return fail(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, repository.ErrForbidden):
		return fail(c, http.StatusForbidden, "you do not have access to this resource")
	case errors.Is(err, lifecycle.ErrInvalidTransition),
		errors.Is(err, repository.ErrConflict),
		errors.Is(err, allocator.ErrRoomUnavailable),
		errors.Is(err, allocator.ErrStaleSelection):
		return fail(c, http.StatusConflict, "state has changed, refresh and try again")
	case errors.Is(err, sql.ErrNoRows):
		return fail(c, http.StatusNotFound, "not found")
	default:
		return fail(c, http.StatusInternalServerError, "internal error")
	}
}

// requirePermission enforces workflow permissions for staff accounts.
// Owners always pass; sub-users must hold an active grant for the key.
// It returns (handled, err): when handled is true a response was
// already written and the caller must stop.
func requirePermission(c echo.Context, perms *repository.PermissionRepo, key string) (bool, error) {
	uid, err := getUserID(c)
	if err != nil {
		return true, fail(c, http.StatusUnauthorized, "unauthorized")
	}
	companyID, err := getCompanyID(c)
	if err != nil {
		return true, fail(c, http.StatusUnauthorized, "unauthorized")
	}
	role, _ := c.Get("role").(string)

	ctx := c.Request().Context()
	cat, err := perms.CatalogByCompany(ctx, companyID)
	if err != nil {
		return true, domainError(c, err)
	}
	prof, err := perms.GrantsForUser(ctx, uid)
	if err != nil {
		return true, domainError(c, err)
	}
	p := permission.Principal{UserID: uid, Role: role}
	if !permission.HasPermission(p, prof, key, cat) {
		return true, fail(c, http.StatusForbidden, "missing permission: "+key)
	}
	return false, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, errors.New("invalid " + name)
	}
	return n, nil
}
