package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webroomers/pg-booking-service/internal/model"
)

func room(id, pgID uint64, availability string) model.Room {
	return model.Room{ID: id, PropertyID: pgID, Availability: availability}
}

func TestListSelectableDropsBookedRooms(t *testing.T) {
	rooms := []model.Room{
		room(1, 10, model.RoomAvailable),
		room(2, 10, model.RoomBooked),
		room(3, 10, model.RoomAvailable),
	}
	got := ListSelectable(rooms)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.NotEqual(t, uint64(2), r.ID)
	}
}

func TestAttemptSelectBookedRoomFails(t *testing.T) {
	// Scenario: R1 is booked; selecting it must fail and it must be
	// absent from the selectable list.
	r1 := room(1, 10, model.RoomBooked)
	_, err := AttemptSelect(r1)
	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.Empty(t, ListSelectable([]model.Room{r1}))

	id, err := AttemptSelect(room(2, 10, model.RoomAvailable))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), id)
}

func TestSelectionPropertyChangeResets(t *testing.T) {
	s := NewSelection(10)
	s.SetRooms([]model.Room{room(1, 10, model.RoomAvailable)})
	require.NoError(t, s.Select(room(1, 10, model.RoomAvailable)))
	if id, ok := s.RoomID(); assert.True(t, ok) {
		assert.Equal(t, uint64(1), id)
	}

	// Switching properties invalidates the choice and the room list.
	s.OnPropertyChanged(20)
	_, ok := s.RoomID()
	assert.False(t, ok)
	assert.ErrorIs(t, s.Select(room(5, 20, model.RoomAvailable)), ErrStaleSelection)

	// After loading the new property's rooms, selection works again.
	s.SetRooms([]model.Room{room(5, 20, model.RoomAvailable)})
	require.NoError(t, s.Select(room(5, 20, model.RoomAvailable)))
}

func TestSelectionRejectsForeignRoom(t *testing.T) {
	s := NewSelection(10)
	s.SetRooms([]model.Room{room(1, 10, model.RoomAvailable)})
	// A room id carried over from a different property must never stick.
	assert.ErrorIs(t, s.Select(room(9, 99, model.RoomAvailable)), ErrStaleSelection)
}

func TestSelectionSamePropertyIsNoop(t *testing.T) {
	s := NewSelection(10)
	s.SetRooms([]model.Room{room(1, 10, model.RoomAvailable)})
	require.NoError(t, s.Select(room(1, 10, model.RoomAvailable)))
	s.OnPropertyChanged(10)
	_, ok := s.RoomID()
	assert.True(t, ok)
}
