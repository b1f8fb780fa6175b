package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/webroomers/pg-booking-service/internal/config"
	"github.com/webroomers/pg-booking-service/internal/guard"
	"github.com/webroomers/pg-booking-service/internal/lifecycle"
	"github.com/webroomers/pg-booking-service/internal/repository"
	"github.com/webroomers/pg-booking-service/internal/utils"
)

// PaymentHandler owns the payment ledger: tenants submit rent payments
// (multipart, with an optional screenshot), landlords approve or reject
// them.  The stored amount is always base minus discount.
type PaymentHandler struct {
	Cfg       config.Config
	Payments  *repository.PaymentRepo
	Enquiries *repository.EnquiryRepo
	Perms     *repository.PermissionRepo
	Guard     *guard.Guard
}

func NewPaymentHandler(cfg config.Config, pay *repository.PaymentRepo, e *repository.EnquiryRepo, perms *repository.PermissionRepo, g *guard.Guard) *PaymentHandler {
	if pay == nil || e == nil || perms == nil || g == nil {
		panic("nil dependency passed to NewPaymentHandler")
	}
	return &PaymentHandler{Cfg: cfg, Payments: pay, Enquiries: e, Perms: perms, Guard: g}
}

// Submit handles POST /v1/payments.  The body is multipart form data:
// enquiry_id, start_date, end_date, amount, discount, payment_mode and
// an optional payment_screenshot file stored under the upload dir.
func (h *PaymentHandler) Submit(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	enquiryID, err := strconv.ParseUint(c.FormValue("enquiry_id"), 10, 64)
	if err != nil || enquiryID == 0 {
		return fail(c, http.StatusBadRequest, "enquiry_id required")
	}
	base, err := strconv.ParseInt(c.FormValue("amount"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "amount must be numeric")
	}
	var discount int64
	if s := c.FormValue("discount"); s != "" {
		discount, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "discount must be numeric")
		}
	}
	start, err := utils.ParseDate(c.FormValue("start_date"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
	}
	end, err := utils.ParseDate(c.FormValue("end_date"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
	}

	net, err := lifecycle.PaymentAmount(base, discount)
	if err != nil {
		return domainError(c, err)
	}

	ctx := c.Request().Context()
	enq, err := h.Enquiries.GetForTenant(ctx, enquiryID, uid)
	if err != nil {
		return domainError(c, err)
	}
	if err := lifecycle.ValidatePaymentWindow(start, end, enq.CheckInDate, enq.CheckOutDate); err != nil {
		return domainError(c, err)
	}

	screenshotPath := ""
	if fh, err := c.FormFile("payment_screenshot"); err == nil && fh != nil {
		screenshotPath, err = h.saveScreenshot(fh.Filename, fh)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "store screenshot failed")
		}
	}

	rec := repository.PaymentRecord{
		EnquiryID:      enquiryID,
		AmountRupees:   net,
		DiscountRupees: discount,
		StartDate:      utils.FormatDate(start),
		EndDate:        utils.FormatDate(end),
		ScreenshotPath: screenshotPath,
		PaymentMode:    c.FormValue("payment_mode"),
	}
	if err := h.Payments.Create(ctx, &rec, uid); err != nil {
		return domainError(c, err)
	}
	return ok(c, http.StatusCreated, "payment submitted", echo.Map{
		"payment_id": rec.ID,
		"amount":     net,
	})
}

// saveScreenshot copies an uploaded file into the upload directory under
// a timestamped name and returns the stored path.
func (h *PaymentHandler) saveScreenshot(name string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		return "", err
	}
	dstName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(name))
	dstPath := filepath.Join(h.Cfg.UploadDir, dstName)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return dstPath, nil
}

type resolvePaymentReq struct {
	PaymentID uint64 `json:"payment_id"`
	Action    string `json:"action"` // approved | rejected
}

// Resolve handles POST /v1/payments/resolve.
func (h *PaymentHandler) Resolve(c echo.Context) error {
	if handled, err := requirePermission(c, h.Perms, "payment"); handled {
		return err
	}
	companyID, _ := getCompanyID(c)

	var req resolvePaymentReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.PaymentID == 0 {
		return fail(c, http.StatusBadRequest, "payment_id required")
	}

	key := guard.Key("payment", req.PaymentID)
	if !h.Guard.TryAcquire(key) {
		return fail(c, http.StatusConflict, "payment is being resolved, try again")
	}
	defer h.Guard.Release(key)

	ctx := c.Request().Context()
	p, err := h.Payments.GetByID(ctx, req.PaymentID, companyID)
	if err != nil {
		return domainError(c, err)
	}
	target, err := lifecycle.ResolvePayment(p.Status, req.Action)
	if err != nil {
		return domainError(c, err)
	}
	if err := h.Payments.Resolve(ctx, req.PaymentID, companyID, target); err != nil {
		return domainError(c, err)
	}
	return ok(c, http.StatusOK, "payment "+target, nil)
}
