package usecase

import (
	"context"
	"testing"
	"time"

	"room-booking/internal/data/entity"
	"room-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBookingServiceAt(t *testing.T, now time.Time) (*bookingService, *fakeRoomRepo, *fakeLedgerRepo) {
	t.Helper()
	repo, _, _, rooms, ledger := newTestRepository()
	require.NoError(t, rooms.SaveAll(context.Background(), entity.DefaultRooms()))
	rooms.saveCalls = 0

	svc := &bookingService{
		repo: repo,
		log:  zap.NewNop(),
		now:  func() time.Time { return now },
	}
	return svc, rooms, ledger
}

func seedBooking(ledger *fakeLedgerRepo, roomID, date, slot string, status entity.BookingStatus) entity.Booking {
	booking := entity.Booking{
		ID:       uuid.New(),
		MemberID: "alice",
		RoomID:   roomID,
		RoomName: "Conference Room 1",
		Date:     date,
		Time:     slot,
		Purpose:  "Team sync",
		Status:   status,
		BookedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	entry, ok := ledger.entries[date]
	if !ok {
		entry = &entity.LedgerEntry{
			DateKey: date,
			Rooms:   make(map[string][]entity.Booking),
			Version: 1,
		}
		ledger.entries[date] = entry
	}
	entry.Rooms[roomID] = append(entry.Rooms[roomID], booking)
	return booking
}

func createReq(roomID, date, slot string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		RoomID:  roomID,
		Date:    date,
		Time:    slot,
		Purpose: "Quarterly planning",
	}
}

func TestCreateBookingFirstOfDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)
	svc, _, ledger := newBookingServiceAt(t, now)

	resp, err := svc.CreateBooking(context.Background(), "bob", createReq("room-1", "2025-03-10", "09:00"))

	require.NoError(t, err)
	assert.Equal(t, "bob", resp.MemberID)
	assert.Equal(t, "room-1", resp.RoomID)
	assert.Equal(t, "Conference Room 1", resp.RoomName)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)

	entry := ledger.entries["2025-03-10"]
	require.NotNil(t, entry)
	assert.Equal(t, int64(1), entry.Version)
	assert.Len(t, entry.Rooms["room-1"], 1)
	assert.Equal(t, 1, ledger.inserts)
	assert.Equal(t, 0, ledger.updates)
}

func TestCreateBookingAppendsToExistingDay(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, ledger := newBookingServiceAt(t, now)
	existing := seedBooking(ledger, "room-1", "2025-03-10", "09:00", entity.BookingStatusPending)
	other := seedBooking(ledger, "room-2", "2025-03-10", "09:00", entity.BookingStatusApproved)

	resp, err := svc.CreateBooking(context.Background(), "bob", createReq("room-1", "2025-03-10", "09:30"))

	require.NoError(t, err)
	assert.Equal(t, "09:30", resp.Time)

	entry := ledger.entries["2025-03-10"]
	require.Len(t, entry.Rooms["room-1"], 2)
	assert.Equal(t, existing.ID, entry.Rooms["room-1"][0].ID)
	assert.Equal(t, entity.BookingStatusPending, entry.Rooms["room-1"][0].Status)

	// The other room's list rides along untouched through the whole-entry write
	require.Len(t, entry.Rooms["room-2"], 1)
	assert.Equal(t, other.ID, entry.Rooms["room-2"][0].ID)
	assert.Equal(t, int64(2), entry.Version)
}

func TestCreateBookingOccupiedSlot(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)

	for _, status := range []entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusApproved} {
		t.Run(string(status), func(t *testing.T) {
			svc, _, ledger := newBookingServiceAt(t, now)
			seedBooking(ledger, "room-1", "2025-03-10", "09:00", status)

			resp, err := svc.CreateBooking(context.Background(), "bob", createReq("room-1", "2025-03-10", "09:00"))

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Contains(t, err.Error(), "already booked")
			assert.Len(t, ledger.entries["2025-03-10"].Rooms["room-1"], 1)
			assert.Equal(t, 0, ledger.updates)
		})
	}
}

func TestCreateBookingRejectedSlotIsFree(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, ledger := newBookingServiceAt(t, now)
	seedBooking(ledger, "room-1", "2025-03-10", "09:00", entity.BookingStatusRejected)

	resp, err := svc.CreateBooking(context.Background(), "bob", createReq("room-1", "2025-03-10", "09:00"))

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Len(t, ledger.entries["2025-03-10"].Rooms["room-1"], 2)
}

func TestCreateBookingSameSlotOtherRoom(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, ledger := newBookingServiceAt(t, now)
	seedBooking(ledger, "room-1", "2025-03-10", "09:00", entity.BookingStatusPending)

	_, err := svc.CreateBooking(context.Background(), "bob", createReq("room-2", "2025-03-10", "09:00"))

	require.NoError(t, err)
	assert.Len(t, ledger.entries["2025-03-10"].Rooms["room-2"], 1)
}

func TestCreateBookingInPast(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	svc, _, ledger := newBookingServiceAt(t, now)

	resp, err := svc.CreateBooking(context.Background(), "bob", createReq("room-1", "2025-03-10", "09:00"))

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "past")
	assert.Empty(t, ledger.entries)
}

func TestCreateBookingOffGridSlot(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, _ := newBookingServiceAt(t, now)

	_, err := svc.CreateBooking(context.Background(), "bob", createReq("room-1", "2025-03-10", "09:15"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid time slot")
}

func TestCreateBookingUnknownRoom(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, _ := newBookingServiceAt(t, now)

	_, err := svc.CreateBooking(context.Background(), "bob", createReq("room-9", "2025-03-10", "09:00"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "room room-9 not found")
}

func TestCreateBookingValidation(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, _ := newBookingServiceAt(t, now)

	_, err := svc.CreateBooking(context.Background(), "bob", &request.CreateBookingRequest{
		RoomID: "room-1",
		Date:   "10/03/2025",
		Time:   "09:00",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestCreateBookingRetriesVersionConflict(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, ledger := newBookingServiceAt(t, now)
	seedBooking(ledger, "room-1", "2025-03-10", "09:00", entity.BookingStatusPending)
	ledger.conflicts = 1

	resp, err := svc.CreateBooking(context.Background(), "bob", createReq("room-1", "2025-03-10", "09:30"))

	require.NoError(t, err)
	assert.Equal(t, "09:30", resp.Time)
	// First write loses the race, the retry re-reads and lands
	assert.Equal(t, 2, ledger.updates)
	assert.Len(t, ledger.entries["2025-03-10"].Rooms["room-1"], 2)
}

func TestCreateBookingGivesUpAfterRetries(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, ledger := newBookingServiceAt(t, now)
	seedBooking(ledger, "room-1", "2025-03-10", "09:00", entity.BookingStatusPending)
	ledger.conflicts = casRetries

	_, err := svc.CreateBooking(context.Background(), "bob", createReq("room-1", "2025-03-10", "09:30"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "try again")
	assert.Equal(t, casRetries, ledger.updates)
}

func TestGetRoomBookings(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, ledger := newBookingServiceAt(t, now)
	seedBooking(ledger, "room-1", "2025-03-10", "10:30", entity.BookingStatusApproved)
	seedBooking(ledger, "room-1", "2025-03-10", "09:00", entity.BookingStatusPending)
	seedBooking(ledger, "room-1", "2025-03-10", "14:00", entity.BookingStatusRejected)
	seedBooking(ledger, "room-2", "2025-03-10", "11:00", entity.BookingStatusPending)

	day, err := svc.GetRoomBookings(context.Background(), "room-1", "2025-03-10")

	require.NoError(t, err)
	require.Len(t, day.Bookings, 3)
	assert.Equal(t, "09:00", day.Bookings[0].Time)
	assert.Equal(t, "10:30", day.Bookings[1].Time)
	assert.Equal(t, "14:00", day.Bookings[2].Time)

	require.Len(t, day.Slots, 20)
	booked := make(map[string]bool)
	for _, slot := range day.Slots {
		booked[slot.Time] = slot.Booked
	}
	assert.True(t, booked["09:00"])
	assert.True(t, booked["10:30"])
	// Rejected bookings do not hold the slot
	assert.False(t, booked["14:00"])
	// Another room's booking has no bearing on this grid
	assert.False(t, booked["11:00"])
}

func TestGetRoomBookingsEmptyDay(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, _ := newBookingServiceAt(t, now)

	day, err := svc.GetRoomBookings(context.Background(), "room-1", "2025-03-10")

	require.NoError(t, err)
	assert.Empty(t, day.Bookings)
	require.Len(t, day.Slots, 20)
	for _, slot := range day.Slots {
		assert.False(t, slot.Booked, "slot %s", slot.Time)
	}
}

func TestGetRoomBookingsBadDate(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, _ := newBookingServiceAt(t, now)

	_, err := svc.GetRoomBookings(context.Background(), "room-1", "10-03-2025")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestGetMemberBookings(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, ledger := newBookingServiceAt(t, now)
	seedBooking(ledger, "room-1", "2025-03-10", "09:00", entity.BookingStatusPending)
	seedBooking(ledger, "room-1", "2025-03-09", "10:00", entity.BookingStatusApproved)
	seedBooking(ledger, "room-2", "2025-03-11", "09:30", entity.BookingStatusPending)
	// One booking belongs to someone else and must be filtered out
	ledger.entries["2025-03-09"].Rooms["room-1"][0].MemberID = "bob"

	page, err := svc.GetMemberBookings(context.Background(), "alice", &request.PaginatedRequest{Page: 1, PerPage: 10})

	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	// Newest date first
	assert.Equal(t, "2025-03-11", page.Data[0].Date)
	assert.Equal(t, "2025-03-10", page.Data[1].Date)
	for _, b := range page.Data {
		assert.Equal(t, "alice", b.MemberID)
	}
	assert.Equal(t, int64(2), page.Pagination.Total)
}

func TestGetAllBookingsOrderAndPaging(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, ledger := newBookingServiceAt(t, now)
	seedBooking(ledger, "room-1", "2025-03-11", "09:00", entity.BookingStatusPending)
	seedBooking(ledger, "room-2", "2025-03-10", "10:00", entity.BookingStatusPending)
	seedBooking(ledger, "room-1", "2025-03-10", "09:00", entity.BookingStatusApproved)

	page, err := svc.GetAllBookings(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 2})

	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	// Review queue runs oldest date first, then by slot
	assert.Equal(t, "2025-03-10", page.Data[0].Date)
	assert.Equal(t, "09:00", page.Data[0].Time)
	assert.Equal(t, "2025-03-10", page.Data[1].Date)
	assert.Equal(t, "10:00", page.Data[1].Time)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	page2, err := svc.GetAllBookings(context.Background(), &request.PaginatedRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, page2.Data, 1)
	assert.Equal(t, "2025-03-11", page2.Data[0].Date)
}

// Full patron-then-admin pass: a pending 09:00 blocks a second 09:00, 09:30
// still books, and approving 09:30 leaves 09:00 pending.
func TestBookingLifecycle(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, _ := newBookingServiceAt(t, now)
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, "alice", createReq("room-1", "2025-03-10", "09:00"))
	require.NoError(t, err)
	require.Equal(t, entity.BookingStatusPending, first.Status)

	_, err = svc.CreateBooking(ctx, "bob", createReq("room-1", "2025-03-10", "09:00"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already booked")

	second, err := svc.CreateBooking(ctx, "bob", createReq("room-1", "2025-03-10", "09:30"))
	require.NoError(t, err)

	_, err = svc.UpdateBookingStatus(ctx, "2025-03-10", "room-1", second.ID,
		&request.UpdateBookingStatusRequest{Status: string(entity.BookingStatusApproved)})
	require.NoError(t, err)

	day, err := svc.GetRoomBookings(ctx, "room-1", "2025-03-10")
	require.NoError(t, err)
	require.Len(t, day.Bookings, 2)
	assert.Equal(t, entity.BookingStatusPending, day.Bookings[0].Status)
	assert.Equal(t, "09:00", day.Bookings[0].Time)
	assert.Equal(t, entity.BookingStatusApproved, day.Bookings[1].Status)
	assert.Equal(t, "09:30", day.Bookings[1].Time)
}

func approveReq() *request.UpdateBookingStatusRequest {
	return &request.UpdateBookingStatusRequest{Status: string(entity.BookingStatusApproved)}
}

func TestUpdateBookingStatusApprove(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, ledger := newBookingServiceAt(t, now)
	sibling := seedBooking(ledger, "room-1", "2025-03-10", "09:00", entity.BookingStatusPending)
	target := seedBooking(ledger, "room-1", "2025-03-10", "09:30", entity.BookingStatusPending)

	resp, err := svc.UpdateBookingStatus(context.Background(), "2025-03-10", "room-1", target.ID.String(), approveReq())

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusApproved, resp.Status)
	assert.Equal(t, target.ID.String(), resp.ID)

	stored := ledger.entries["2025-03-10"].Rooms["room-1"]
	require.Len(t, stored, 2)
	// Sibling keeps its status and its position in the list
	assert.Equal(t, sibling.ID, stored[0].ID)
	assert.Equal(t, entity.BookingStatusPending, stored[0].Status)
	assert.Equal(t, entity.BookingStatusApproved, stored[1].Status)
	assert.Equal(t, target.Purpose, stored[1].Purpose)
}

func TestUpdateBookingStatusReject(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, ledger := newBookingServiceAt(t, now)
	target := seedBooking(ledger, "room-1", "2025-03-10", "09:00", entity.BookingStatusPending)

	resp, err := svc.UpdateBookingStatus(context.Background(), "2025-03-10", "room-1", target.ID.String(),
		&request.UpdateBookingStatusRequest{Status: string(entity.BookingStatusRejected)})

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusRejected, resp.Status)
}

func TestUpdateBookingStatusMissingDay(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, _ := newBookingServiceAt(t, now)

	_, err := svc.UpdateBookingStatus(context.Background(), "2025-03-10", "room-1", uuid.NewString(), approveReq())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bookings for 2025-03-10 not found")
}

func TestUpdateBookingStatusMissingRoomList(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, ledger := newBookingServiceAt(t, now)
	seedBooking(ledger, "room-2", "2025-03-10", "09:00", entity.BookingStatusPending)

	_, err := svc.UpdateBookingStatus(context.Background(), "2025-03-10", "room-1", uuid.NewString(), approveReq())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "room room-1")
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateBookingStatusUnknownBooking(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, ledger := newBookingServiceAt(t, now)
	seedBooking(ledger, "room-1", "2025-03-10", "09:00", entity.BookingStatusPending)

	missing := uuid.NewString()
	_, err := svc.UpdateBookingStatus(context.Background(), "2025-03-10", "room-1", missing, approveReq())

	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateBookingStatusTerminal(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)

	for _, status := range []entity.BookingStatus{entity.BookingStatusApproved, entity.BookingStatusRejected} {
		t.Run(string(status), func(t *testing.T) {
			svc, _, ledger := newBookingServiceAt(t, now)
			target := seedBooking(ledger, "room-1", "2025-03-10", "09:00", status)

			_, err := svc.UpdateBookingStatus(context.Background(), "2025-03-10", "room-1", target.ID.String(), approveReq())

			require.Error(t, err)
			assert.Contains(t, err.Error(), "cannot change status")
			assert.Equal(t, status, ledger.entries["2025-03-10"].Rooms["room-1"][0].Status)
		})
	}
}

func TestUpdateBookingStatusBadRequest(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, ledger := newBookingServiceAt(t, now)
	target := seedBooking(ledger, "room-1", "2025-03-10", "09:00", entity.BookingStatusPending)

	_, err := svc.UpdateBookingStatus(context.Background(), "2025-03-10", "room-1", target.ID.String(),
		&request.UpdateBookingStatusRequest{Status: "pending"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	_, err = svc.UpdateBookingStatus(context.Background(), "2025-03-10", "room-1", "not-a-uuid", approveReq())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid booking ID")
}

func TestUpdateBookingStatusRetriesVersionConflict(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.Local)
	svc, _, ledger := newBookingServiceAt(t, now)
	target := seedBooking(ledger, "room-1", "2025-03-10", "09:00", entity.BookingStatusPending)
	ledger.conflicts = 1

	resp, err := svc.UpdateBookingStatus(context.Background(), "2025-03-10", "room-1", target.ID.String(), approveReq())

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusApproved, resp.Status)
	assert.Equal(t, 2, ledger.updates)
}
