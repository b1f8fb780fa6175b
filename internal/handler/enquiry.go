package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/webroomers/pg-booking-service/internal/allocator"
	"github.com/webroomers/pg-booking-service/internal/config"
	"github.com/webroomers/pg-booking-service/internal/guard"
	"github.com/webroomers/pg-booking-service/internal/lifecycle"
	"github.com/webroomers/pg-booking-service/internal/model"
	"github.com/webroomers/pg-booking-service/internal/queue"
	"github.com/webroomers/pg-booking-service/internal/repository"
	queuepublisher "github.com/webroomers/pg-booking-service/internal/service"
	"github.com/webroomers/pg-booking-service/internal/utils"
)

// EnquiryHandler owns the enquiry lifecycle: tenant submission, owner
// listing and the accept/reject/inactivate decisions.  Decisions are
// serialized per enquiry through the in-flight guard so a double tap
// cannot issue two transitions.
type EnquiryHandler struct {
	Cfg       config.Config
	Enquiries *repository.EnquiryRepo
	Rooms     *repository.RoomRepo
	Props     *repository.PropertyRepo
	Perms     *repository.PermissionRepo
	Payments  *repository.PaymentRepo
	Guard     *guard.Guard
}

func NewEnquiryHandler(cfg config.Config, e *repository.EnquiryRepo, r *repository.RoomRepo, p *repository.PropertyRepo, perms *repository.PermissionRepo, pay *repository.PaymentRepo, g *guard.Guard) *EnquiryHandler {
	if e == nil || r == nil || p == nil || perms == nil || pay == nil || g == nil {
		panic("nil dependency passed to NewEnquiryHandler")
	}
	return &EnquiryHandler{Cfg: cfg, Enquiries: e, Rooms: r, Props: p, Perms: perms, Payments: pay, Guard: g}
}

// ----- views -----

type checkoutView struct {
	CheckoutID   uint64  `json:"checkout_id"`
	EnquiryID    uint64  `json:"enquiry_id"`
	Status       string  `json:"status"`
	CheckoutDate string  `json:"checkout_date"`
	Reason       string  `json:"reason"`
	RejectReason *string `json:"reject_reason,omitempty"`
}

type paymentView struct {
	PaymentID uint64 `json:"payment_id"`
	EnquiryID uint64 `json:"enquiry_id"`
	Amount    int64  `json:"amount"`
	Discount  int64  `json:"discount"`
	Status    string `json:"status"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type enquiryView struct {
	EnquiryID      uint64        `json:"enquiry_id"`
	CompanyID      uint64        `json:"company_id"`
	UserID         uint64        `json:"user_id"`
	PGID           uint64        `json:"pg_id"`
	RoomID         *uint64       `json:"room_id,omitempty"`
	Status         int           `json:"status"`
	Active         bool          `json:"active"`
	Gender         string        `json:"gender"`
	FoodPreference string        `json:"food_preference"`
	Type           string        `json:"type"`
	Message        string        `json:"message,omitempty"`
	CheckInDate    string        `json:"check_in_date"`
	CheckOutDate   string        `json:"check_out_date"`
	Checkout       *checkoutView `json:"checkout,omitempty"`
	Payments       []paymentView `json:"payments,omitempty"`
}

func viewOf(e model.Enquiry) enquiryView {
	v := enquiryView{
		EnquiryID:      e.ID,
		CompanyID:      e.CompanyID,
		UserID:         e.TenantID,
		PGID:           e.PropertyID,
		RoomID:         e.RoomID,
		Status:         e.StatusCode,
		Active:         e.Active,
		Gender:         e.Gender,
		FoodPreference: e.FoodPreference,
		Type:           e.Type,
		Message:        e.Message,
		CheckInDate:    utils.FormatDate(e.CheckInDate),
		CheckOutDate:   utils.FormatDate(e.CheckOutDate),
	}
	if e.Checkout != nil {
		v.Checkout = &checkoutView{
			CheckoutID:   e.Checkout.ID,
			EnquiryID:    e.Checkout.EnquiryID,
			Status:       e.Checkout.Status,
			CheckoutDate: utils.FormatDate(e.Checkout.RequestedDate),
			Reason:       e.Checkout.Reason,
			RejectReason: e.Checkout.RejectReason,
		}
	}
	for _, p := range e.Payments {
		v.Payments = append(v.Payments, paymentView{
			PaymentID: p.ID,
			EnquiryID: p.EnquiryID,
			Amount:    p.AmountRupees,
			Discount:  p.DiscountRupees,
			Status:    p.Status,
			StartDate: utils.FormatDate(p.StartDate),
			EndDate:   utils.FormatDate(p.EndDate),
		})
	}
	return v
}

// ----- tenant side -----

type submitEnquiryReq struct {
	PGID           uint64  `json:"pg_id"`
	RoomID         *uint64 `json:"room_id"`
	Type           string  `json:"type"` // pg | room
	Gender         string  `json:"gender"`
	FoodPreference string  `json:"food_preference"`
	Message        string  `json:"message"`
	CheckInDate    string  `json:"check_in_date"`
	CheckOutDate   string  `json:"check_out_date"`
}

// Submit handles POST /v1/enquiries.  A room enquiry holds the per-room
// guard while it re-checks availability and inserts; the availability
// check is advisory only, the accept transaction is what actually books
// the room.
func (h *EnquiryHandler) Submit(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	companyID, err := getCompanyID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req submitEnquiryReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.PGID == 0 {
		return fail(c, http.StatusBadRequest, "pg_id required")
	}
	req.Type = strings.ToLower(strings.TrimSpace(req.Type))
	checkIn, err := utils.ParseDate(req.CheckInDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "check_in_date must be YYYY-MM-DD")
	}
	checkOut, err := utils.ParseDate(req.CheckOutDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "check_out_date must be YYYY-MM-DD")
	}
	if err := lifecycle.ValidateEnquirySubmission(req.Type, req.RoomID, checkIn, checkOut); err != nil {
		return domainError(c, err)
	}

	// A room-bound submission is serialized per room: a double tap must
	// not file two enquiries against the same room.
	if req.Type == model.EnquiryTypeRoom {
		key := guard.Key("room", *req.RoomID)
		if !h.Guard.TryAcquire(key) {
			return fail(c, http.StatusConflict, "room enquiry in flight, try again")
		}
		defer h.Guard.Release(key)
	}

	ctx := c.Request().Context()
	prop, err := h.Props.GetByID(ctx, req.PGID)
	if err != nil {
		return domainError(c, err)
	}
	if prop.CompanyID != companyID {
		return domainError(c, repository.ErrForbidden)
	}

	if req.Type == model.EnquiryTypeRoom {
		room, err := h.Rooms.GetByID(ctx, *req.RoomID)
		if err != nil {
			return domainError(c, err)
		}
		if room.PropertyID != req.PGID {
			return domainError(c, allocator.ErrStaleSelection)
		}
		if _, err := allocator.AttemptSelect(room); err != nil {
			return domainError(c, err)
		}
	}

	rec := repository.EnquiryRecord{
		CompanyID:      companyID,
		TenantID:       uid,
		PropertyID:     req.PGID,
		RoomID:         req.RoomID,
		StatusCode:     model.EnquiryCodePending,
		Gender:         req.Gender,
		FoodPreference: req.FoodPreference,
		Type:           req.Type,
		Message:        req.Message,
		CheckInDate:    utils.FormatDate(checkIn),
		CheckOutDate:   utils.FormatDate(checkOut),
	}
	if err := h.Enquiries.Create(ctx, &rec); err != nil {
		return fail(c, http.StatusInternalServerError, "create enquiry failed")
	}
	return ok(c, http.StatusCreated, "enquiry submitted", echo.Map{"enquiry_id": rec.ID})
}

// ListMine handles GET /v1/my-enquiries for tenants.
func (h *EnquiryHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	enquiries, err := h.Enquiries.ListByTenant(c.Request().Context(), uid)
	if err != nil {
		return domainError(c, err)
	}
	views := make([]enquiryView, 0, len(enquiries))
	for _, e := range enquiries {
		views = append(views, viewOf(e))
	}
	return ok(c, http.StatusOK, "ok", echo.Map{"enquiries": views})
}

// ----- owner side -----

// ListCompany handles GET /v1/enquiries with the filter combinator:
// status (numeric code), active (true/false) and checkout_status narrow
// independently and compose with AND.
func (h *EnquiryHandler) ListCompany(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var filter lifecycle.EnquiryFilter
	if s := c.QueryParam("status"); s != "" {
		code, err := strconv.Atoi(s)
		if err != nil {
			return fail(c, http.StatusBadRequest, "status must be numeric")
		}
		st := lifecycle.EnquiryStatusFromCode(code)
		filter.Status = &st
	}
	if s := c.QueryParam("active"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fail(c, http.StatusBadRequest, "active must be true or false")
		}
		filter.Active = &b
	}
	if s := c.QueryParam("checkout_status"); s != "" {
		filter.CheckoutStatus = &s
	}

	enquiries, err := h.Enquiries.ListByCompany(c.Request().Context(), companyID)
	if err != nil {
		return domainError(c, err)
	}
	enquiries = filter.Apply(enquiries)
	views := make([]enquiryView, 0, len(enquiries))
	for _, e := range enquiries {
		views = append(views, viewOf(e))
	}
	return ok(c, http.StatusOK, "ok", echo.Map{"enquiries": views})
}

type resolveEnquiryReq struct {
	EnquiryID uint64 `json:"enquiry_id"`
	Status    int    `json:"status"` // 2 accepts, 0 rejects
}

// Resolve handles POST /v1/enquiries/resolve.  The lifecycle decides
// whether a transition must be issued; the repository transaction is
// the authority on room availability.  A duplicate submission of the
// same decision answers success without touching storage.
func (h *EnquiryHandler) Resolve(c echo.Context) error {
	if handled, err := requirePermission(c, h.Perms, "enquiry"); handled {
		return err
	}
	companyID, _ := getCompanyID(c)

	var req resolveEnquiryReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.EnquiryID == 0 {
		return fail(c, http.StatusBadRequest, "enquiry_id required")
	}
	decision, err := lifecycle.DecisionFromCode(req.Status)
	if err != nil {
		return domainError(c, err)
	}

	key := guard.Key("enquiry", req.EnquiryID)
	if !h.Guard.TryAcquire(key) {
		return fail(c, http.StatusConflict, "enquiry is being resolved, try again")
	}
	defer h.Guard.Release(key)

	ctx := c.Request().Context()
	enq, err := h.Enquiries.GetByID(ctx, req.EnquiryID, companyID)
	if err != nil {
		return domainError(c, err)
	}
	target, issue, err := lifecycle.ResolveEnquiry(lifecycle.EnquiryStatusFromCode(enq.StatusCode), decision)
	if err != nil {
		return domainError(c, err)
	}
	if !issue {
		return ok(c, http.StatusOK, "enquiry already "+string(target), nil)
	}
	if err := h.Enquiries.Resolve(ctx, req.EnquiryID, companyID, target.Code()); err != nil {
		return domainError(c, err)
	}

	if target.Code() == model.EnquiryCodeAccepted {
		ev := queue.EnquiryAcceptedEvent{
			EnquiryID:    enq.ID,
			CompanyID:    enq.CompanyID,
			TenantID:     enq.TenantID,
			PGID:         enq.PropertyID,
			RoomID:       enq.RoomID,
			Type:         enq.Type,
			CheckInDate:  utils.FormatDate(enq.CheckInDate),
			CheckOutDate: utils.FormatDate(enq.CheckOutDate),
			AcceptedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		// Best effort: the decision stands even when the broker is down.
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queuepublisher.PublishEnquiryAccepted(pubCtx, h.Cfg.AMQPURL, ev)
	}
	return ok(c, http.StatusOK, "enquiry "+string(target), nil)
}

type inactivateReq struct {
	ID     uint64 `json:"id"`
	Status int    `json:"status"` // always 0
	Type   string `json:"type"`   // always "enquiry"
}

// Inactivate handles POST /v1/inactivate.  Archival is irreversible and
// releases the room when the enquiry was an accepted room tenancy.
func (h *EnquiryHandler) Inactivate(c echo.Context) error {
	if handled, err := requirePermission(c, h.Perms, "enquiry"); handled {
		return err
	}
	companyID, _ := getCompanyID(c)

	var req inactivateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.Type != "enquiry" {
		return fail(c, http.StatusBadRequest, "type must be enquiry")
	}
	if req.Status != 0 {
		return fail(c, http.StatusBadRequest, "status must be 0")
	}
	if req.ID == 0 {
		return fail(c, http.StatusBadRequest, "id required")
	}

	key := guard.Key("enquiry", req.ID)
	if !h.Guard.TryAcquire(key) {
		return fail(c, http.StatusConflict, "enquiry is being resolved, try again")
	}
	defer h.Guard.Release(key)

	if err := h.Enquiries.Inactivate(c.Request().Context(), req.ID, companyID); err != nil {
		return domainError(c, err)
	}
	return ok(c, http.StatusOK, "enquiry inactivated", nil)
}

// Get handles GET /v1/enquiries/:id, returning one enquiry with its
// checkout and payment history.
func (h *EnquiryHandler) Get(c echo.Context) error {
	companyID, err := getCompanyID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	enq, err := h.Enquiries.GetByID(ctx, id, companyID)
	if err != nil {
		return domainError(c, err)
	}
	payments, err := h.Payments.ListByEnquiry(ctx, enq.ID)
	if err != nil {
		return domainError(c, err)
	}
	enq.Payments = payments
	return ok(c, http.StatusOK, "ok", echo.Map{"enquiry": viewOf(enq)})
}
