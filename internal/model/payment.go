package model

import "time"

// Payment status values.  Like checkout requests, a payment is
// submitted pending and resolved exactly once.
const (
	PaymentPending  = "pending"
	PaymentApproved = "approved"
	PaymentRejected = "rejected"
)

// Payment records a rent payment submitted by a tenant against an
// enquiry and approved or rejected by the landlord.  AmountRupees is
// always the base amount minus the discount; the discount may never
// exceed the base amount.
//
// Fields:
//  ID             – payment_id on the wire.
//  EnquiryID      – tenancy the payment belongs to.
//  CompanyID      – company receiving the payment.
//  AmountRupees   – net amount, base minus discount, in rupees.
//  DiscountRupees – discount applied by the submitting party.
//  Status         – pending / approved / rejected.
//  StartDate      – begin of the period being paid for (date only).
//  EndDate        – end of the period being paid for (date only).
//  ScreenshotPath – stored path of the uploaded payment screenshot.
//  PaymentMode    – free-form mode label (upi, cash, bank transfer).
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Payment struct {
	ID             uint64    // payments.id
	EnquiryID      uint64    // payments.enquiry_id
	CompanyID      uint64    // payments.company_id
	AmountRupees   int64     // payments.amount_rupees
	DiscountRupees int64     // payments.discount_rupees
	Status         string    // payments.status
	StartDate      time.Time // payments.start_date
	EndDate        time.Time // payments.end_date
	ScreenshotPath *string   // payments.screenshot_path (nullable)
	PaymentMode    string    // payments.payment_mode
	CreatedAt      time.Time // payments.created_at
	UpdatedAt      time.Time // payments.updated_at
}
