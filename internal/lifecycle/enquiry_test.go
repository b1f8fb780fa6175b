package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webroomers/pg-booking-service/internal/model"
)

func TestEnquiryStatusCodeCollapse(t *testing.T) {
	assert.Equal(t, EnquiryPending, EnquiryStatusFromCode(1))
	assert.Equal(t, EnquiryAccepted, EnquiryStatusFromCode(2))
	assert.Equal(t, EnquiryRejected, EnquiryStatusFromCode(0))

	// Every code outside {0,1,2} collapses to Rejected; no fourth
	// status can appear.
	for _, code := range []int{-1, 3, 7, 42, 999} {
		assert.Equal(t, EnquiryRejected, EnquiryStatusFromCode(code), "code %d", code)
	}
}

func TestEnquiryStatusRoundTrip(t *testing.T) {
	assert.Equal(t, model.EnquiryCodePending, EnquiryPending.Code())
	assert.Equal(t, model.EnquiryCodeAccepted, EnquiryAccepted.Code())
	assert.Equal(t, model.EnquiryCodeRejected, EnquiryRejected.Code())
}

func TestResolveEnquiryFromPending(t *testing.T) {
	target, issue, err := ResolveEnquiry(EnquiryPending, DecisionAccept)
	require.NoError(t, err)
	assert.True(t, issue)
	assert.Equal(t, EnquiryAccepted, target)

	target, issue, err = ResolveEnquiry(EnquiryPending, DecisionReject)
	require.NoError(t, err)
	assert.True(t, issue)
	assert.Equal(t, EnquiryRejected, target)
}

func TestResolveEnquiryIdempotent(t *testing.T) {
	// Re-applying the decision an enquiry already carries must not
	// issue a second transition.
	_, issue, err := ResolveEnquiry(EnquiryAccepted, DecisionAccept)
	require.NoError(t, err)
	assert.False(t, issue)

	_, issue, err = ResolveEnquiry(EnquiryRejected, DecisionReject)
	require.NoError(t, err)
	assert.False(t, issue)
}

func TestResolveEnquiryNoWayBack(t *testing.T) {
	_, _, err := ResolveEnquiry(EnquiryAccepted, DecisionReject)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, _, err = ResolveEnquiry(EnquiryRejected, DecisionAccept)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDecisionFromCode(t *testing.T) {
	d, err := DecisionFromCode(2)
	require.NoError(t, err)
	assert.Equal(t, DecisionAccept, d)

	d, err = DecisionFromCode(0)
	require.NoError(t, err)
	assert.Equal(t, DecisionReject, d)

	_, err = DecisionFromCode(1)
	assert.True(t, IsValidation(err))
}

func TestValidateEnquirySubmission(t *testing.T) {
	in := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	out := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	roomID := uint64(5)

	assert.NoError(t, ValidateEnquirySubmission("pg", nil, in, out))
	assert.NoError(t, ValidateEnquirySubmission("room", &roomID, in, out))

	// Room enquiries must name a room.
	assert.True(t, IsValidation(ValidateEnquirySubmission("room", nil, in, out)))
	// Unknown type.
	assert.True(t, IsValidation(ValidateEnquirySubmission("flat", nil, in, out)))
	// Check-out must be strictly after check-in.
	assert.True(t, IsValidation(ValidateEnquirySubmission("pg", nil, in, in)))
	assert.True(t, IsValidation(ValidateEnquirySubmission("pg", nil, out, in)))
}

func TestEnquiryFilterCombinator(t *testing.T) {
	accepted := EnquiryAccepted
	active := true
	pendingCheckout := model.CheckoutPending

	enquiries := []model.Enquiry{
		{ID: 1, StatusCode: 1, Active: true},
		{ID: 2, StatusCode: 2, Active: true},
		{ID: 3, StatusCode: 2, Active: false},
		{ID: 4, StatusCode: 2, Active: true, Checkout: &model.CheckoutRequest{Status: model.CheckoutPending}},
		{ID: 5, StatusCode: 2, Active: true, Checkout: &model.CheckoutRequest{Status: model.CheckoutApproved}},
	}

	// No filters: everything passes.
	assert.Len(t, EnquiryFilter{}.Apply(enquiries), 5)

	// Status + active.
	got := EnquiryFilter{Status: &accepted, Active: &active}.Apply(enquiries)
	require.Len(t, got, 3)

	// Checkout-status filter keeps enquiries with no checkout at all:
	// ids 2 (no checkout) and 4 (pending) pass, 5 (approved) does not.
	got = EnquiryFilter{Status: &accepted, Active: &active, CheckoutStatus: &pendingCheckout}.Apply(enquiries)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(2), got[0].ID)
	assert.Equal(t, uint64(4), got[1].ID)
}
