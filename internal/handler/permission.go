package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/webroomers/pg-booking-service/internal/lifecycle"
	"github.com/webroomers/pg-booking-service/internal/permission"
	"github.com/webroomers/pg-booking-service/internal/repository"
)

// PermissionHandler serves the permission catalog and sub-user grant
// management.  The catalog drives which workflow actions staff accounts
// may perform; granting is an owner-only operation.
type PermissionHandler struct {
	Perms *repository.PermissionRepo
}

func NewPermissionHandler(p *repository.PermissionRepo) *PermissionHandler {
	if p == nil {
		panic("nil repository passed to NewPermissionHandler")
	}
	return &PermissionHandler{Perms: p}
}

type permissionEntry struct {
	PermissionID    uint64 `json:"permission_id"`
	PermissionKey   string `json:"permission_key"`
	PermissionLabel string `json:"permission_label"`
	Status          string `json:"status"`
}

// List handles GET /v1/permissions.  It returns the company catalog and,
// for sub-users, the caller's granted permission ids so clients can
// render only the actions the user may take.
func (h *PermissionHandler) List(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx := c.Request().Context()

	cat, err := h.Perms.CatalogByCompany(ctx, companyID)
	if err != nil {
		return domainError(c, err)
	}
	entries := make([]permissionEntry, 0, len(cat))
	for _, e := range cat {
		entries = append(entries, permissionEntry{
			PermissionID:    e.ID,
			PermissionKey:   e.Key,
			PermissionLabel: e.Label,
			Status:          e.Status,
		})
	}

	payload := echo.Map{"permissions": entries}
	if uid, err := getUserID(c); err == nil {
		prof, err := h.Perms.GrantsForUser(ctx, uid)
		if err != nil {
			return domainError(c, err)
		}
		if prof.Loaded {
			payload["granted"] = permission.NormalizeGrants(prof.Granted, cat)
		}
	}
	return ok(c, http.StatusOK, "ok", payload)
}

type setGrantsReq struct {
	UserID        uint64   `json:"user_id"`
	PermissionIDs []string `json:"permission_ids"` // ids or keys, array or csv elements
}

// SetGrants handles POST /v1/subusers/permissions.  Grants are
// normalized through the catalog before storage so only active entries
// land in the database, regardless of whether the client sent ids, keys
// or a csv blob.
func (h *PermissionHandler) SetGrants(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req setGrantsReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.UserID == 0 {
		return fail(c, http.StatusBadRequest, "user_id required")
	}
	ctx := c.Request().Context()

	cat, err := h.Perms.CatalogByCompany(ctx, companyID)
	if err != nil {
		return domainError(c, err)
	}
	set := permission.NormalizeGrants(req.PermissionIDs, cat)
	if len(set) == 0 && len(req.PermissionIDs) > 0 {
		// Everything the client sent was unknown or inactive.
		return domainError(c, &lifecycle.ValidationError{
			Field: "permission_ids", Reason: "no grantable permissions in request",
		})
	}
	if err := h.Perms.SetGrants(ctx, companyID, req.UserID, set); err != nil {
		return domainError(c, err)
	}
	return ok(c, http.StatusOK, "permissions updated", echo.Map{
		"user_id":        strconv.FormatUint(req.UserID, 10),
		"permission_ids": set.CSV(),
	})
}
