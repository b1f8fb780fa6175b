package model

import "time"

// Numeric enquiry status codes as stored and exchanged on the wire.
// Code 1 is a freshly submitted enquiry awaiting the landlord's
// decision, 2 is an accepted tenancy.  0 and every unknown code
// collapse to rejected.
const (
	EnquiryCodeRejected = 0
	EnquiryCodePending  = 1
	EnquiryCodeAccepted = 2
)

// Enquiry type values: an enquiry either targets the PG as a whole or
// a specific room inside it.
const (
	EnquiryTypePG   = "pg"
	EnquiryTypeRoom = "room"
)

// Enquiry is a tenant's request to occupy a PG or a specific room, and
// after acceptance it doubles as the tenancy record.  StatusCode moves
// only Pending→Accepted or Pending→Rejected.  Active is an orthogonal
// administrative flag: inactivating archives the enquiry without
// changing its accept/reject outcome and is irreversible.
//
// Fields:
//  ID             – primary key identifier.
//  CompanyID      – company operating the targeted PG.
//  TenantID       – user who submitted the enquiry.
//  PropertyID     – targeted PG.
//  RoomID         – targeted room (nil when the enquiry is PG-level).
//  StatusCode     – numeric wire status code, see EnquiryCode*.
//  Active         – administrative visibility flag.
//  Gender         – tenant's stated gender.
//  FoodPreference – veg / non-veg preference.
//  Type           – "pg" or "room".
//  Message        – optional free-text note to the landlord.
//  CheckInDate    – requested tenancy begin (date only, UTC midnight).
//  CheckOutDate   – requested tenancy end (date only, UTC midnight).
//  Checkout       – pending or resolved checkout request, if any.
//  Payments       – payments recorded against this tenancy.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Enquiry struct {
	ID             uint64            // enquiries.id
	CompanyID      uint64            // enquiries.company_id
	TenantID       uint64            // enquiries.tenant_id
	PropertyID     uint64            // enquiries.property_id
	RoomID         *uint64           // enquiries.room_id (nullable)
	StatusCode     int               // enquiries.status
	Active         bool              // enquiries.active
	Gender         string            // enquiries.gender
	FoodPreference string            // enquiries.food_preference
	Type           string            // enquiries.type
	Message        string            // enquiries.message
	CheckInDate    time.Time         // enquiries.check_in_date
	CheckOutDate   time.Time         // enquiries.check_out_date
	Checkout       *CheckoutRequest  // latest checkout_requests row, if any
	Payments       []Payment         // payments rows, newest first
	CreatedAt      time.Time         // enquiries.created_at
	UpdatedAt      time.Time         // enquiries.updated_at
}
