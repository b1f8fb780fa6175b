package repository

import (
	"context"
	"database/sql"

	"github.com/webroomers/pg-booking-service/internal/model"
)

// CheckoutRepo provides persistence for checkout requests.  A request
// may only be created against an accepted active enquiry and only
// while no other request for that enquiry is pending; resolution is
// legal only from pending.  Both rules are re-checked inside
// transactions because the pre-checks in the handler see a snapshot
// that can go stale.
type CheckoutRepo struct {
	db *sql.DB
}

// NewCheckoutRepo returns a CheckoutRepo bound to the given database.
func NewCheckoutRepo(db *sql.DB) *CheckoutRepo { return &CheckoutRepo{db: db} }

// CheckoutRecord mirrors the checkout_requests table for insertion.
type CheckoutRecord struct {
	ID            uint64
	EnquiryID     uint64
	RequestedDate string // YYYY-MM-DD
	Reason        string
}

// Create inserts a pending checkout request for the tenant's accepted
// enquiry.  ErrForbidden is returned when the enquiry belongs to a
// different tenant, ErrConflict when the enquiry is not an accepted
// active tenancy or a pending request already exists.
func (r *CheckoutRepo) Create(ctx context.Context, rec *CheckoutRecord, tenantID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var actualTenant uint64
	var status int
	var active bool
	err = tx.QueryRowContext(ctx,
		`SELECT tenant_id, status, active FROM enquiries WHERE id = ? FOR UPDATE`,
		rec.EnquiryID).Scan(&actualTenant, &status, &active)
	if err != nil {
		return err
	}
	if actualTenant != tenantID {
		return ErrForbidden
	}
	if status != model.EnquiryCodeAccepted || !active {
		return ErrConflict
	}

	var pending int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM checkout_requests WHERE enquiry_id = ? AND status = ?`,
		rec.EnquiryID, model.CheckoutPending).Scan(&pending)
	if err != nil {
		return err
	}
	if pending > 0 {
		return ErrConflict
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO checkout_requests (enquiry_id, status, requested_date, reason) VALUES (?, ?, ?, ?)`,
		rec.EnquiryID, model.CheckoutPending, rec.RequestedDate, rec.Reason)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID loads one checkout request together with the company that
// owns the underlying enquiry.  ErrForbidden is returned when that
// company is not the caller's.
func (r *CheckoutRepo) GetByID(ctx context.Context, id, companyID uint64) (model.CheckoutRequest, error) {
	const q = `SELECT cr.id, cr.enquiry_id, cr.status, cr.requested_date, cr.reason, cr.reject_reason,
	                  cr.created_at, cr.updated_at, e.company_id
	           FROM checkout_requests cr
	           JOIN enquiries e ON e.id = cr.enquiry_id
	           WHERE cr.id = ?`
	var cr model.CheckoutRequest
	var rejectReason sql.NullString
	var actualCompany uint64
	err := r.db.QueryRowContext(ctx, q, id).Scan(&cr.ID, &cr.EnquiryID, &cr.Status, &cr.RequestedDate,
		&cr.Reason, &rejectReason, &cr.CreatedAt, &cr.UpdatedAt, &actualCompany)
	if err != nil {
		return cr, err
	}
	if actualCompany != companyID {
		return model.CheckoutRequest{}, ErrForbidden
	}
	if rejectReason.Valid {
		rr := rejectReason.String
		cr.RejectReason = &rr
	}
	return cr, nil
}

// Resolve commits a landlord decision on a pending checkout request.
// The row is locked and re-checked inside the transaction; resolving a
// request that is no longer pending returns ErrConflict so a duplicate
// tap cannot double-resolve.
func (r *CheckoutRepo) Resolve(ctx context.Context, id, companyID uint64, target, rejectReason string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var status string
	var actualCompany uint64
	err = tx.QueryRowContext(ctx,
		`SELECT cr.status, e.company_id
		 FROM checkout_requests cr JOIN enquiries e ON e.id = cr.enquiry_id
		 WHERE cr.id = ? FOR UPDATE`, id).Scan(&status, &actualCompany)
	if err != nil {
		return err
	}
	if actualCompany != companyID {
		return ErrForbidden
	}
	if status != model.CheckoutPending {
		return ErrConflict
	}

	var reject interface{}
	if target == model.CheckoutRejected {
		reject = rejectReason
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE checkout_requests SET status = ?, reject_reason = ? WHERE id = ?`,
		target, reject, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
