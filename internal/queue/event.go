// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names for tenancy lifecycle events.
const (
	EnquiryAcceptedQueue  = "enquiry.accepted"
	CheckoutResolvedQueue = "checkout.resolved"
)

// EnquiryAcceptedEvent is published when a landlord accepts an enquiry
// and the tenancy begins.  It carries enough for downstream consumers
// to log or notify without querying the primary database.
type EnquiryAcceptedEvent struct {
	EnquiryID    uint64  `json:"enquiry_id"`
	CompanyID    uint64  `json:"company_id"`
	TenantID     uint64  `json:"tenant_id"`
	PGID         uint64  `json:"pg_id"`
	RoomID       *uint64 `json:"room_id,omitempty"`
	Type         string  `json:"type"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	AcceptedAt   string  `json:"accepted_at"`
}

// CheckoutResolvedEvent is published when a checkout request reaches a
// terminal status.
type CheckoutResolvedEvent struct {
	CheckoutID    uint64 `json:"checkout_id"`
	EnquiryID     uint64 `json:"enquiry_id"`
	CompanyID     uint64 `json:"company_id"`
	Status        string `json:"status"` // approved | rejected
	RequestedDate string `json:"checkout_date"`
	RejectReason  string `json:"reject_reason,omitempty"`
	ResolvedAt    string `json:"resolved_at"`
}
