package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/webroomers/pg-booking-service/internal/config"
	"github.com/webroomers/pg-booking-service/internal/guard"
	"github.com/webroomers/pg-booking-service/internal/lifecycle"
	"github.com/webroomers/pg-booking-service/internal/queue"
	"github.com/webroomers/pg-booking-service/internal/repository"
	queuepublisher "github.com/webroomers/pg-booking-service/internal/service"
	"github.com/webroomers/pg-booking-service/internal/utils"
)

// CheckoutHandler owns the checkout workflow: a tenant requests to leave
// an accepted tenancy, the landlord approves or rejects.  Eligibility is
// gated by the property's lock-in period.
type CheckoutHandler struct {
	Cfg       config.Config
	Checkouts *repository.CheckoutRepo
	Enquiries *repository.EnquiryRepo
	Props     *repository.PropertyRepo
	Perms     *repository.PermissionRepo
	Guard     *guard.Guard
}

func NewCheckoutHandler(cfg config.Config, co *repository.CheckoutRepo, e *repository.EnquiryRepo, p *repository.PropertyRepo, perms *repository.PermissionRepo, g *guard.Guard) *CheckoutHandler {
	if co == nil || e == nil || p == nil || perms == nil || g == nil {
		panic("nil dependency passed to NewCheckoutHandler")
	}
	return &CheckoutHandler{Cfg: cfg, Checkouts: co, Enquiries: e, Props: p, Perms: perms, Guard: g}
}

type requestCheckoutReq struct {
	EnquiryID    uint64 `json:"enquiry_id"`
	CheckoutDate string `json:"checkout_date"`
	Reason       string `json:"reason"`
}

// Request handles POST /v1/checkouts.  The requested date must clear
// the lock-in window counted from today, not from check-in; the precise
// boundary is midnight of today plus lock_in_days.
func (h *CheckoutHandler) Request(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req requestCheckoutReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.EnquiryID == 0 {
		return fail(c, http.StatusBadRequest, "enquiry_id required")
	}
	requested, err := utils.ParseDate(req.CheckoutDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "checkout_date must be YYYY-MM-DD")
	}

	ctx := c.Request().Context()
	enq, err := h.Enquiries.GetForTenant(ctx, req.EnquiryID, uid)
	if err != nil {
		return domainError(c, err)
	}
	prop, err := h.Props.GetByID(ctx, enq.PropertyID)
	if err != nil {
		return domainError(c, err)
	}
	if err := lifecycle.ValidateCheckoutRequest(
		lifecycle.EnquiryStatusFromCode(enq.StatusCode), enq.Active,
		requested, req.Reason, time.Now().UTC(), prop.LockInDays,
	); err != nil {
		return domainError(c, err)
	}

	rec := repository.CheckoutRecord{
		EnquiryID:     req.EnquiryID,
		RequestedDate: utils.FormatDate(requested),
		Reason:        req.Reason,
	}
	if err := h.Checkouts.Create(ctx, &rec, uid); err != nil {
		return domainError(c, err)
	}
	return ok(c, http.StatusCreated, "checkout requested", echo.Map{"checkout_id": rec.ID})
}

type resolveCheckoutReq struct {
	CheckoutID   uint64 `json:"checkout_id"`
	Status       string `json:"status"` // approved | rejected
	RejectReason string `json:"reject_reason"`
}

// Resolve handles POST /v1/checkouts/resolve.  Approving does not free
// the room; the tenancy stays active until the owner inactivates the
// enquiry after the tenant actually leaves.
func (h *CheckoutHandler) Resolve(c echo.Context) error {
	if handled, err := requirePermission(c, h.Perms, "checkout"); handled {
		return err
	}
	companyID, _ := getCompanyID(c)

	var req resolveCheckoutReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.CheckoutID == 0 {
		return fail(c, http.StatusBadRequest, "checkout_id required")
	}
	decision, err := lifecycle.CheckoutDecisionFromWire(req.Status)
	if err != nil {
		return domainError(c, err)
	}

	key := guard.Key("checkout", req.CheckoutID)
	if !h.Guard.TryAcquire(key) {
		return fail(c, http.StatusConflict, "checkout is being resolved, try again")
	}
	defer h.Guard.Release(key)

	ctx := c.Request().Context()
	co, err := h.Checkouts.GetByID(ctx, req.CheckoutID, companyID)
	if err != nil {
		return domainError(c, err)
	}
	target, err := lifecycle.ResolveCheckout(co.Status, decision, req.RejectReason)
	if err != nil {
		return domainError(c, err)
	}
	if err := h.Checkouts.Resolve(ctx, req.CheckoutID, companyID, target, req.RejectReason); err != nil {
		return domainError(c, err)
	}

	ev := queue.CheckoutResolvedEvent{
		CheckoutID:    co.ID,
		EnquiryID:     co.EnquiryID,
		CompanyID:     companyID,
		Status:        target,
		RequestedDate: utils.FormatDate(co.RequestedDate),
		RejectReason:  req.RejectReason,
		ResolvedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	// Best effort: the decision stands even when the broker is down.
	pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queuepublisher.PublishCheckoutResolved(pubCtx, h.Cfg.AMQPURL, ev)

	return ok(c, http.StatusOK, "checkout "+target, nil)
}
