package repository

import (
	"context"
	"database/sql"

	"github.com/webroomers/pg-booking-service/internal/model"
)

// PaymentRepo provides persistence for payment records.  The net
// amount is computed by the lifecycle rules before insertion; this
// layer only stores and transitions.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// PaymentRecord mirrors the payments table for insertion.
type PaymentRecord struct {
	ID             uint64
	EnquiryID      uint64
	CompanyID      uint64
	AmountRupees   int64
	DiscountRupees int64
	StartDate      string // YYYY-MM-DD
	EndDate        string // YYYY-MM-DD
	ScreenshotPath string
	PaymentMode    string
}

// Create inserts a pending payment submitted by the tenant who owns
// the enquiry.  ErrForbidden is returned when the enquiry belongs to a
// different tenant, ErrConflict when the enquiry is not an accepted
// active tenancy.
func (r *PaymentRepo) Create(ctx context.Context, rec *PaymentRecord, tenantID uint64) error {
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

	var actualTenant, actualCompany uint64
	var status int
	var active bool
	err = tx.QueryRowContext(ctx,
		`SELECT tenant_id, company_id, status, active FROM enquiries WHERE id = ? FOR UPDATE`,
		rec.EnquiryID).Scan(&actualTenant, &actualCompany, &status, &active)
	if err != nil {
		return err
	}
	if actualTenant != tenantID {
		return ErrForbidden
	}
	if status != model.EnquiryCodeAccepted || !active {
		return ErrConflict
	}
	rec.CompanyID = actualCompany

	var screenshot interface{}
	if rec.ScreenshotPath != "" {
		screenshot = rec.ScreenshotPath
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO payments
		 (enquiry_id, company_id, amount_rupees, discount_rupees, status, start_date, end_date, screenshot_path, payment_mode)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.EnquiryID, rec.CompanyID, rec.AmountRupees, rec.DiscountRupees, model.PaymentPending,
		rec.StartDate, rec.EndDate, screenshot, rec.PaymentMode)
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

// GetByID loads one payment.  ErrForbidden is returned when it belongs
// to another company.
func (r *PaymentRepo) GetByID(ctx context.Context, id, companyID uint64) (model.Payment, error) {
	const q = `SELECT id, enquiry_id, company_id, amount_rupees, discount_rupees, status,
	                  start_date, end_date, screenshot_path, payment_mode, created_at, updated_at
	           FROM payments WHERE id = ?`
	var p model.Payment
	var screenshot sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.EnquiryID, &p.CompanyID,
		&p.AmountRupees, &p.DiscountRupees, &p.Status, &p.StartDate, &p.EndDate,
		&screenshot, &p.PaymentMode, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	if p.CompanyID != companyID {
		return model.Payment{}, ErrForbidden
	}
	if screenshot.Valid {
		s := screenshot.String
		p.ScreenshotPath = &s
	}
	return p, nil
}

// ListByEnquiry returns the payments of one enquiry, newest first.
func (r *PaymentRepo) ListByEnquiry(ctx context.Context, enquiryID uint64) ([]model.Payment, error) {
	const q = `SELECT id, enquiry_id, company_id, amount_rupees, discount_rupees, status,
	                  start_date, end_date, screenshot_path, payment_mode, created_at, updated_at
	           FROM payments WHERE enquiry_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, enquiryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	payments := make([]model.Payment, 0)
	for rows.Next() {
		var p model.Payment
		var screenshot sql.NullString
		if err := rows.Scan(&p.ID, &p.EnquiryID, &p.CompanyID, &p.AmountRupees, &p.DiscountRupees,
			&p.Status, &p.StartDate, &p.EndDate, &screenshot, &p.PaymentMode, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if screenshot.Valid {
			s := screenshot.String
			p.ScreenshotPath = &s
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// Resolve commits a landlord action on a pending payment.  The row is
// locked and re-checked; a payment that is no longer pending yields
// ErrConflict.
func (r *PaymentRepo) Resolve(ctx context.Context, id, companyID uint64, target string) error {
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
		`SELECT status, company_id FROM payments WHERE id = ? FOR UPDATE`, id).Scan(&status, &actualCompany)
	if err != nil {
		return err
	}
	if actualCompany != companyID {
		return ErrForbidden
	}
	if status != model.PaymentPending {
		return ErrConflict
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE payments SET status = ? WHERE id = ?`, target, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
