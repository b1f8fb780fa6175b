package lifecycle

import (
	"strings"
	"time"

	"github.com/webroomers/pg-booking-service/internal/model"
)

// PaymentAmount computes the net amount of a payment submission.  The
// invariant 0 ≤ discount ≤ base holds for every stored payment; a
// discount outside that range fails validation and nothing is
// submitted.
func PaymentAmount(baseRupees, discountRupees int64) (int64, error) {
	if baseRupees <= 0 {
		return 0, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if discountRupees < 0 {
		return 0, &ValidationError{Field: "discount", Reason: "must not be negative"}
	}
	if discountRupees > baseRupees {
		return 0, &ValidationError{Field: "discount", Reason: "exceeds base amount"}
	}
	return baseRupees - discountRupees, nil
}

// ValidatePaymentWindow checks that the paid period lies within the
// tenancy dates.  The historical client never enforced this bound; it
// is adopted here deliberately as the stricter behavior.
func ValidatePaymentWindow(start, end, checkIn, checkOut time.Time) error {
	if start.IsZero() || end.IsZero() {
		return &ValidationError{Field: "start_date", Reason: "start and end dates are required"}
	}
	if end.Before(start) {
		return &ValidationError{Field: "end_date", Reason: "must not be before start_date"}
	}
	if Midnight(start).Before(Midnight(checkIn)) || Midnight(end).After(Midnight(checkOut)) {
		return &ValidationError{Field: "start_date", Reason: "period falls outside the tenancy dates"}
	}
	return nil
}

// ResolvePayment applies a landlord action to a payment record.  Only
// a pending payment may be resolved; both outcomes are terminal.
func ResolvePayment(current string, action string) (string, error) {
	if current != model.PaymentPending {
		return current, ErrInvalidTransition
	}
	switch strings.ToLower(strings.TrimSpace(action)) {
	case model.PaymentApproved:
		return model.PaymentApproved, nil
	case model.PaymentRejected:
		return model.PaymentRejected, nil
	default:
		return current, &ValidationError{Field: "action", Reason: "must be approved or rejected"}
	}
}
