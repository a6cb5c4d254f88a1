package response

import (
	"time"

	"room-booking/internal/data/entity"
)

type BookingResponse struct {
	ID       string               `json:"id"`
	MemberID string               `json:"member_id"`
	RoomID   string               `json:"room_id"`
	RoomName string               `json:"room_name"`
	Date     string               `json:"date"`
	Time     string               `json:"time"`
	Purpose  string               `json:"purpose"`
	Status   entity.BookingStatus `json:"status"`
	BookedAt time.Time            `json:"booked_at"`
}

// SlotResponse pairs a grid slot with its availability for one room and date.
type SlotResponse struct {
	Time   string `json:"time"`
	Booked bool   `json:"booked"`
}

// RoomDayResponse is one room's booking list for one date, with the slot grid.
type RoomDayResponse struct {
	RoomID   string            `json:"room_id"`
	Date     string            `json:"date"`
	Bookings []BookingResponse `json:"bookings"`
	Slots    []SlotResponse    `json:"slots"`
}

func BookingToResponse(booking entity.Booking) BookingResponse {
	return BookingResponse{
		ID:       booking.ID.String(),
		MemberID: booking.MemberID,
		RoomID:   booking.RoomID,
		RoomName: booking.RoomName,
		Date:     booking.Date,
		Time:     booking.Time,
		Purpose:  booking.Purpose,
		Status:   booking.Status,
		BookedAt: booking.BookedAt,
	}
}
