package lifecycle

import (
	"strings"
	"time"

	"github.com/webroomers/pg-booking-service/internal/model"
)

// MinimumCheckoutDate computes the earliest date a checkout may be
// requested: today plus the property's lock-in period in whole days.
// Both sides of the comparison are truncated to midnight UTC so the
// time of day never shifts eligibility.
func MinimumCheckoutDate(today time.Time, lockInDays int) time.Time {
	return Midnight(today).AddDate(0, 0, lockInDays)
}

// Midnight truncates t to 00:00 UTC of the same calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateCheckoutRequest checks a tenant's checkout request against
// the lock-in rule.  The enquiry must be an accepted, active tenancy;
// the requested date may not fall before the minimum checkout date; a
// reason is required.  A request on exactly the minimum date passes.
func ValidateCheckoutRequest(enquiryStatus EnquiryStatus, active bool, requested time.Time, reason string, today time.Time, lockInDays int) error {
	if enquiryStatus != EnquiryAccepted || !active {
		return ErrInvalidTransition
	}
	if strings.TrimSpace(reason) == "" {
		return &ValidationError{Field: "reason", Reason: "required"}
	}
	if requested.IsZero() {
		return &ValidationError{Field: "checkout_date", Reason: "required"}
	}
	if Midnight(requested).Before(MinimumCheckoutDate(today, lockInDays)) {
		return &ValidationError{Field: "checkout_date", Reason: "falls inside the lock-in period"}
	}
	return nil
}

// ResolveCheckout applies a landlord decision to a checkout request.
// Only a pending request may be resolved; approved and rejected are
// terminal, so a duplicate tap fails with ErrInvalidTransition instead
// of re-resolving.  Rejection requires a non-empty reject reason;
// approval must not carry one.
func ResolveCheckout(current string, d Decision, rejectReason string) (string, error) {
	if current != model.CheckoutPending {
		return current, ErrInvalidTransition
	}
	switch d {
	case DecisionAccept:
		if strings.TrimSpace(rejectReason) != "" {
			return current, &ValidationError{Field: "reject_reason", Reason: "only allowed when rejecting"}
		}
		return model.CheckoutApproved, nil
	case DecisionReject:
		if strings.TrimSpace(rejectReason) == "" {
			return current, &ValidationError{Field: "reject_reason", Reason: "required when rejecting"}
		}
		return model.CheckoutRejected, nil
	default:
		return current, &ValidationError{Field: "status", Reason: "must be approved or rejected"}
	}
}

// CheckoutDecisionFromWire maps the resolve-checkout wire status
// ("approved"/"rejected") to a Decision.
func CheckoutDecisionFromWire(status string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case model.CheckoutApproved:
		return DecisionAccept, nil
	case model.CheckoutRejected:
		return DecisionReject, nil
	default:
		return "", &ValidationError{Field: "status", Reason: "must be approved or rejected"}
	}
}
