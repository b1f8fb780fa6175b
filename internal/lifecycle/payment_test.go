package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webroomers/pg-booking-service/internal/model"
)

func TestPaymentAmount(t *testing.T) {
	// 7000 base with a 500 discount nets 6500.
	amount, err := PaymentAmount(7000, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(6500), amount)

	// Zero discount is fine.
	amount, err = PaymentAmount(7000, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(7000), amount)

	// Discount equal to base nets zero.
	amount, err = PaymentAmount(7000, 7000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), amount)
}

func TestPaymentAmountRejectsBadDiscount(t *testing.T) {
	// A discount above the base amount never submits.
	_, err := PaymentAmount(7000, 8000)
	assert.True(t, IsValidation(err))

	_, err = PaymentAmount(7000, -1)
	assert.True(t, IsValidation(err))

	_, err = PaymentAmount(0, 0)
	assert.True(t, IsValidation(err))
}

func TestValidatePaymentWindow(t *testing.T) {
	checkIn := day(2026, 1, 1)
	checkOut := day(2026, 12, 31)

	assert.NoError(t, ValidatePaymentWindow(day(2026, 2, 1), day(2026, 2, 28), checkIn, checkOut))
	// Exact tenancy bounds are allowed.
	assert.NoError(t, ValidatePaymentWindow(checkIn, checkOut, checkIn, checkOut))

	// Outside the tenancy on either side fails.
	assert.True(t, IsValidation(ValidatePaymentWindow(day(2025, 12, 20), day(2026, 1, 10), checkIn, checkOut)))
	assert.True(t, IsValidation(ValidatePaymentWindow(day(2026, 12, 20), day(2027, 1, 10), checkIn, checkOut)))
	// Inverted period fails.
	assert.True(t, IsValidation(ValidatePaymentWindow(day(2026, 3, 10), day(2026, 3, 1), checkIn, checkOut)))
}

func TestResolvePayment(t *testing.T) {
	next, err := ResolvePayment(model.PaymentPending, "approved")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentApproved, next)

	next, err = ResolvePayment(model.PaymentPending, "rejected")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentRejected, next)

	_, err = ResolvePayment(model.PaymentPending, "void")
	assert.True(t, IsValidation(err))

	_, err = ResolvePayment(model.PaymentApproved, "rejected")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = ResolvePayment(model.PaymentRejected, "approved")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
