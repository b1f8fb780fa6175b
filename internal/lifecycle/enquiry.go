package lifecycle

import (
	"strings"
	"time"

	"github.com/webroomers/pg-booking-service/internal/model"
)

// EnquiryStatus is the label form of an enquiry's numeric wire code.
type EnquiryStatus string

const (
	EnquiryPending  EnquiryStatus = "Pending"
	EnquiryAccepted EnquiryStatus = "Accepted"
	EnquiryRejected EnquiryStatus = "Rejected"
)

// EnquiryStatusFromCode maps a numeric wire status code to its label.
// 1 is Pending and 2 is Accepted; 0 and every unknown code collapse to
// Rejected so no code path ever produces a fourth status.
func EnquiryStatusFromCode(code int) EnquiryStatus {
	switch code {
	case model.EnquiryCodePending:
		return EnquiryPending
	case model.EnquiryCodeAccepted:
		return EnquiryAccepted
	default:
		return EnquiryRejected
	}
}

// Code returns the numeric wire code for a status label.
func (s EnquiryStatus) Code() int {
	switch s {
	case EnquiryPending:
		return model.EnquiryCodePending
	case EnquiryAccepted:
		return model.EnquiryCodeAccepted
	default:
		return model.EnquiryCodeRejected
	}
}

// Decision is a landlord's verdict on a pending enquiry or checkout.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// DecisionFromCode maps the resolve-enquiry wire status (2 accepts, 0
// rejects) to a Decision.  Any other code is not a legal decision.
func DecisionFromCode(code int) (Decision, error) {
	switch code {
	case model.EnquiryCodeAccepted:
		return DecisionAccept, nil
	case model.EnquiryCodeRejected:
		return DecisionReject, nil
	default:
		return "", &ValidationError{Field: "status", Reason: "must be 0 or 2"}
	}
}

func (d Decision) enquiryTarget() EnquiryStatus {
	if d == DecisionAccept {
		return EnquiryAccepted
	}
	return EnquiryRejected
}

// ResolveEnquiry applies a decision to the current enquiry status.  It
// returns the target status and whether a transition must actually be
// issued.  Resolving an enquiry already in the target status is a
// no-op (issue=false, no error), which makes double submission
// idempotent at the call site.  Any other move out of a resolved
// status fails with ErrInvalidTransition: status only ever goes
// Pending→Accepted or Pending→Rejected.
func ResolveEnquiry(current EnquiryStatus, d Decision) (target EnquiryStatus, issue bool, err error) {
	target = d.enquiryTarget()
	if current == target {
		return target, false, nil
	}
	if current != EnquiryPending {
		return current, false, ErrInvalidTransition
	}
	return target, true, nil
}

// ValidateEnquirySubmission checks a tenant's booking submission before
// it is persisted.  The checkout date must lie strictly after the
// check-in date, the enquiry type must be "pg" or "room", and a room
// enquiry must name a room.
func ValidateEnquirySubmission(typ string, roomID *uint64, checkIn, checkOut time.Time) error {
	switch strings.ToLower(strings.TrimSpace(typ)) {
	case model.EnquiryTypePG:
	case model.EnquiryTypeRoom:
		if roomID == nil || *roomID == 0 {
			return &ValidationError{Field: "room_id", Reason: "required for room enquiries"}
		}
	default:
		return &ValidationError{Field: "type", Reason: "must be pg or room"}
	}
	if checkIn.IsZero() || checkOut.IsZero() {
		return &ValidationError{Field: "check_in_date", Reason: "check-in and check-out dates are required"}
	}
	if !checkOut.After(checkIn) {
		return &ValidationError{Field: "check_out_date", Reason: "must be after check_in_date"}
	}
	return nil
}
