// Package allocator tracks per-room availability on the selection path
// and prevents an unavailable room from being submitted with an
// enquiry.  Its checks are advisory: the authoritative availability
// check runs inside the enquiry acceptance transaction, and a conflict
// there means availability must be refetched and the room re-selected.
package allocator

import (
	"errors"

	"github.com/webroomers/pg-booking-service/internal/model"
)

// ErrRoomUnavailable is returned when a room with availability other
// than "available" is selected.
var ErrRoomUnavailable = errors.New("room unavailable")

// ErrStaleSelection is returned when a room is selected against a
// selection whose property has changed since the room list was loaded.
var ErrStaleSelection = errors.New("room list is stale for this property")

// ListSelectable filters the room list down to rooms open for
// selection.  Booked rooms are dropped entirely rather than flagged.
func ListSelectable(rooms []model.Room) []model.Room {
	out := make([]model.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.Availability == model.RoomAvailable {
			out = append(out, r)
		}
	}
	return out
}

// AttemptSelect validates a single room for selection and returns its
// id.  It fails with ErrRoomUnavailable when the room is not available
// at selection time.
func AttemptSelect(r model.Room) (uint64, error) {
	if r.Availability != model.RoomAvailable {
		return 0, ErrRoomUnavailable
	}
	return r.ID, nil
}

// Selection models the room-choice state for one enquiry in progress.
// Changing the property is an explicit transition with a defined
// postcondition: the previous room choice is cleared and the room list
// is marked stale until rooms for the new property are loaded.  A
// stale selection can never produce a submittable room id, which keeps
// room ids from one property out of enquiries for another.
type Selection struct {
	propertyID uint64
	roomID     uint64
	stale      bool
}

// NewSelection starts a selection for the given property.  The room
// list is stale until SetRooms delivers rooms for that property.
func NewSelection(propertyID uint64) *Selection {
	return &Selection{propertyID: propertyID, stale: true}
}

// PropertyID returns the property the selection currently targets.
func (s *Selection) PropertyID() uint64 { return s.propertyID }

// OnPropertyChanged switches the selection to a new property.
// Postcondition: no room is selected and the selection is stale.
// Re-choosing the current property is a no-op and keeps the loaded
// room list valid.
func (s *Selection) OnPropertyChanged(propertyID uint64) {
	if propertyID == s.propertyID {
		return
	}
	s.propertyID = propertyID
	s.roomID = 0
	s.stale = true
}

// SetRooms marks the selection fresh after the room list for the
// current property has been loaded.  Rooms for a different property
// are ignored and leave the selection stale.
func (s *Selection) SetRooms(rooms []model.Room) {
	for _, r := range rooms {
		if r.PropertyID != s.propertyID {
			return
		}
	}
	s.stale = false
}

// Select records the chosen room.  It fails with ErrStaleSelection
// when the room list has not been reloaded since the property changed,
// with ErrRoomUnavailable when the room is booked, and rejects rooms
// belonging to another property as stale.
func (s *Selection) Select(r model.Room) error {
	if s.stale || r.PropertyID != s.propertyID {
		return ErrStaleSelection
	}
	if _, err := AttemptSelect(r); err != nil {
		return err
	}
	s.roomID = r.ID
	return nil
}

// RoomID returns the selected room id.  ok is false when nothing is
// selected or the selection is stale.
func (s *Selection) RoomID() (uint64, bool) {
	if s.stale || s.roomID == 0 {
		return 0, false
	}
	return s.roomID, true
}
