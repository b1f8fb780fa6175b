package lifecycle

import "github.com/webroomers/pg-booking-service/internal/model"

// Predicate is a single enquiry filter condition.
type Predicate func(model.Enquiry) bool

// And combines predicates; an enquiry matches when every predicate
// matches.  And() with no predicates matches everything.
func And(ps ...Predicate) Predicate {
	return func(e model.Enquiry) bool {
		for _, p := range ps {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

// StatusIs matches enquiries whose status label equals s.
func StatusIs(s EnquiryStatus) Predicate {
	return func(e model.Enquiry) bool { return EnquiryStatusFromCode(e.StatusCode) == s }
}

// ActiveIs matches enquiries whose administrative active flag equals b.
func ActiveIs(b bool) Predicate {
	return func(e model.Enquiry) bool { return e.Active == b }
}

// CheckoutStatusIs matches enquiries whose checkout request is in the
// given status.  Enquiries without any checkout request are always
// included: the filter narrows on the sub-field where it exists, it
// must not hide legitimate non-checkout enquiries.
func CheckoutStatusIs(status string) Predicate {
	return func(e model.Enquiry) bool {
		if e.Checkout == nil {
			return true
		}
		return e.Checkout.Status == status
	}
}

// EnquiryFilter bundles the independent presentation filters.  A nil
// field means "no filter" for that dimension.
type EnquiryFilter struct {
	Status         *EnquiryStatus
	Active         *bool
	CheckoutStatus *string
}

// Predicate builds the combined predicate for the filter.
func (f EnquiryFilter) Predicate() Predicate {
	ps := make([]Predicate, 0, 3)
	if f.Status != nil {
		ps = append(ps, StatusIs(*f.Status))
	}
	if f.Active != nil {
		ps = append(ps, ActiveIs(*f.Active))
	}
	if f.CheckoutStatus != nil {
		ps = append(ps, CheckoutStatusIs(*f.CheckoutStatus))
	}
	return And(ps...)
}

// Apply filters the enquiry list in order.
func (f EnquiryFilter) Apply(in []model.Enquiry) []model.Enquiry {
	p := f.Predicate()
	out := make([]model.Enquiry, 0, len(in))
	for _, e := range in {
		if p(e) {
			out = append(out, e)
		}
	}
	return out
}
