package entity

// LedgerEntry aggregates all rooms' bookings for one calendar date. It is the
// unit of storage and of optimistic update: writers read the entry, modify one
// room's list, and write the whole map back guarded by the version token.
type LedgerEntry struct {
	DateKey string
	Rooms   map[string][]Booking
	Version int64
}

// RoomBookings returns the booking list for a room, nil when the room has
// none on this date.
func (e *LedgerEntry) RoomBookings(roomID string) []Booking {
	if e == nil || e.Rooms == nil {
		return nil
	}
	return e.Rooms[roomID]
}
