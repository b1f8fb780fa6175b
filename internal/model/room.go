package model

import "time"

// Room availability values as exchanged on the wire in
// room_availability.  A room is either open for new enquiries or
// occupied by an accepted tenancy.
const (
	RoomAvailable = "available"
	RoomBooked    = "booked"
)

// Room belongs to a property and is the unit a tenant ultimately
// occupies.  Availability is flipped only as a consequence of enquiry
// acceptance or release (inactivation of the occupying enquiry); no
// other code path mutates it.
//
// Fields:
//  ID              – primary key identifier.
//  PropertyID      – PG this room belongs to.
//  Name            – room label shown to tenants (e.g. "201-B").
//  Availability    – "available" or "booked".
//  PriceRupees     – monthly rent in rupees.
//  SecurityDeposit – deposit in rupees.
//  Facilities      – comma separated facility labels.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Room struct {
	ID              uint64    // rooms.id
	PropertyID      uint64    // rooms.property_id
	Name            string    // rooms.name
	Availability    string    // rooms.availability
	PriceRupees     int64     // rooms.price_rupees
	SecurityDeposit int64     // rooms.security_deposit
	Facilities      string    // rooms.facilities
	CreatedAt       time.Time // rooms.created_at
	UpdatedAt       time.Time // rooms.updated_at
}
