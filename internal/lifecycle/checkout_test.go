package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webroomers/pg-booking-service/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMinimumCheckoutDate(t *testing.T) {
	// Lock-in of 15 days starting on the 4th puts the earliest
	// checkout on the 19th.
	today := day(2026, 3, 4)
	min := MinimumCheckoutDate(today, 15)
	assert.Equal(t, day(2026, 3, 19), min)
}

func TestMinimumCheckoutDateTruncatesTime(t *testing.T) {
	lateEvening := time.Date(2026, 3, 4, 23, 45, 12, 0, time.UTC)
	assert.Equal(t, day(2026, 3, 19), MinimumCheckoutDate(lateEvening, 15))
}

func TestValidateCheckoutRequestLockIn(t *testing.T) {
	today := day(2026, 3, 4)

	// Day 18 is one day short of the minimum and must fail.
	err := ValidateCheckoutRequest(EnquiryAccepted, true, day(2026, 3, 18), "relocating", today, 15)
	assert.True(t, IsValidation(err))

	// Exactly the minimum date passes.
	err = ValidateCheckoutRequest(EnquiryAccepted, true, day(2026, 3, 19), "relocating", today, 15)
	assert.NoError(t, err)

	// Any later date passes too.
	err = ValidateCheckoutRequest(EnquiryAccepted, true, day(2026, 4, 1), "relocating", today, 15)
	assert.NoError(t, err)
}

func TestValidateCheckoutRequestReasonRequired(t *testing.T) {
	today := day(2026, 3, 4)
	err := ValidateCheckoutRequest(EnquiryAccepted, true, day(2026, 3, 19), "   ", today, 15)
	assert.True(t, IsValidation(err))
}

func TestValidateCheckoutRequestNeedsAcceptedTenancy(t *testing.T) {
	today := day(2026, 3, 4)
	assert.ErrorIs(t,
		ValidateCheckoutRequest(EnquiryPending, true, day(2026, 3, 19), "moving", today, 15),
		ErrInvalidTransition)
	assert.ErrorIs(t,
		ValidateCheckoutRequest(EnquiryRejected, true, day(2026, 3, 19), "moving", today, 15),
		ErrInvalidTransition)
	// Inactivated tenancies cannot request checkout either.
	assert.ErrorIs(t,
		ValidateCheckoutRequest(EnquiryAccepted, false, day(2026, 3, 19), "moving", today, 15),
		ErrInvalidTransition)
}

func TestResolveCheckout(t *testing.T) {
	next, err := ResolveCheckout(model.CheckoutPending, DecisionAccept, "")
	require.NoError(t, err)
	assert.Equal(t, model.CheckoutApproved, next)

	next, err = ResolveCheckout(model.CheckoutPending, DecisionReject, "dues outstanding")
	require.NoError(t, err)
	assert.Equal(t, model.CheckoutRejected, next)
}

func TestResolveCheckoutRejectNeedsReason(t *testing.T) {
	_, err := ResolveCheckout(model.CheckoutPending, DecisionReject, "")
	assert.True(t, IsValidation(err))
}

func TestResolveCheckoutApproveRefusesRejectReason(t *testing.T) {
	_, err := ResolveCheckout(model.CheckoutPending, DecisionAccept, "dues outstanding")
	assert.True(t, IsValidation(err))
}

func TestResolveCheckoutTerminal(t *testing.T) {
	// An approved request cannot be rejected afterwards: terminal
	// states guard against double-resolving from a duplicate tap.
	_, err := ResolveCheckout(model.CheckoutApproved, DecisionReject, "changed my mind")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = ResolveCheckout(model.CheckoutRejected, DecisionAccept, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = ResolveCheckout(model.CheckoutApproved, DecisionAccept, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCheckoutDecisionFromWire(t *testing.T) {
	d, err := CheckoutDecisionFromWire("approved")
	require.NoError(t, err)
	assert.Equal(t, DecisionAccept, d)

	d, err = CheckoutDecisionFromWire(" REJECTED ")
	require.NoError(t, err)
	assert.Equal(t, DecisionReject, d)

	_, err = CheckoutDecisionFromWire("maybe")
	assert.True(t, IsValidation(err))
}
