package model

import "time"

// Property is a paying-guest accommodation (a "PG") containing one or
// more rooms.  The lock-in period lives on the property because the
// landlord sets it per building: a tenancy in this PG must run at least
// LockInDays days before a checkout may be requested.
//
// Fields:
//  ID         – primary key identifier.
//  CompanyID  – company that operates this PG.
//  Name       – display name of the PG.
//  Address    – street address.
//  LockInDays – minimum tenancy length in whole days.
//  CreatedAt  – creation timestamp.
type Property struct {
	ID         uint64    // properties.id
	CompanyID  uint64    // properties.company_id
	Name       string    // properties.name
	Address    string    // properties.address
	LockInDays int       // properties.lock_in_days
	CreatedAt  time.Time // properties.created_at
}
