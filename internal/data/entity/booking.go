package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusApproved BookingStatus = "approved"
	BookingStatusRejected BookingStatus = "rejected"
)

const (
	// DateKeyLayout keys ledger entries by calendar day
	DateKeyLayout = "2006-01-02"
	// SlotLayout is the half-hour slot format
	SlotLayout = "15:04"
)

// Booking lives inside a ledger entry's per-room list. It is append-only
// except for the status field, which an admin may move off pending once.
type Booking struct {
	ID       uuid.UUID     `json:"id"`
	MemberID string        `json:"member_id"`
	RoomID   string        `json:"room_id"`
	RoomName string        `json:"room_name"`
	Date     string        `json:"date"`
	Time     string        `json:"time"`
	Purpose  string        `json:"purpose"`
	Status   BookingStatus `json:"status"`
	BookedAt time.Time     `json:"booked_at"`
}

// TimeSlots returns the bookable half-hour grid, 08:00 through 17:30.
func TimeSlots() []string {
	slots := make([]string, 0, 20)
	for h := 8; h <= 17; h++ {
		for m := 0; m < 60; m += 30 {
			slots = append(slots, time.Date(0, 1, 1, h, m, 0, 0, time.UTC).Format(SlotLayout))
		}
	}
	return slots
}

// IsValidSlot reports whether t is on the bookable grid.
func IsValidSlot(t string) bool {
	for _, slot := range TimeSlots() {
		if slot == t {
			return true
		}
	}
	return false
}

// CombineDateTime parses a date key and slot into one local timestamp.
func CombineDateTime(date, slot string) (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout+" "+SlotLayout, date+" "+slot, time.Local)
}
