package model

import "time"

// Checkout request status values.  A request is created pending and is
// resolved exactly once to approved or rejected; both outcomes are
// terminal for that row.  A later checkout, where business rules allow
// one, is a fresh row.
const (
	CheckoutPending  = "pending"
	CheckoutApproved = "approved"
	CheckoutRejected = "rejected"
)

// CheckoutRequest is a tenant-initiated, landlord-resolved request to
// end an accepted tenancy.  It exists only against an accepted
// enquiry, and its requested date must clear the property's lock-in
// period at creation time.
//
// Fields:
//  ID            – checkout_id on the wire.
//  EnquiryID     – accepted enquiry this request ends.
//  Status        – pending / approved / rejected.
//  RequestedDate – date the tenant wants to leave (date only).
//  Reason        – tenant's stated reason, required.
//  RejectReason  – landlord's reason, set only on rejection.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type CheckoutRequest struct {
	ID            uint64    // checkout_requests.id
	EnquiryID     uint64    // checkout_requests.enquiry_id
	Status        string    // checkout_requests.status
	RequestedDate time.Time // checkout_requests.requested_date
	Reason        string    // checkout_requests.reason
	RejectReason  *string   // checkout_requests.reject_reason (nullable)
	CreatedAt     time.Time // checkout_requests.created_at
	UpdatedAt     time.Time // checkout_requests.updated_at
}
