package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"room-booking/internal/data/entity"
	"room-booking/internal/data/repository"
	"room-booking/internal/dto/request"
	"room-booking/internal/dto/response"
	"room-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// casRetries bounds the read-check-write loop against the ledger. Each retry
// re-reads the entry, so a loser of the version race re-runs the conflict
// check before appending again.
const casRetries = 3

type BookingService interface {
	CreateBooking(ctx context.Context, memberID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetRoomBookings(ctx context.Context, roomID, date string) (*response.RoomDayResponse, error)
	GetMemberBookings(ctx context.Context, memberID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Admin endpoints
	GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateBookingStatus(ctx context.Context, dateKey, roomID, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
		now:  time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, memberID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !entity.IsValidSlot(req.Time) {
		return nil, fmt.Errorf("invalid time slot %s: must be a half-hour slot between 08:00 and 17:30", req.Time)
	}

	// Validate room exists
	room, err := s.repo.Room.FindByID(ctx, req.RoomID)
	if err != nil {
		s.log.Error("Failed to check room", zap.Error(err), zap.String("room_id", req.RoomID))
		return nil, fmt.Errorf("check room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %s not found", req.RoomID)
	}

	// Reject bookings strictly before the current moment
	slotStart, err := entity.CombineDateTime(req.Date, req.Time)
	if err != nil {
		return nil, fmt.Errorf("invalid date or time: %w", err)
	}
	if slotStart.Before(s.now()) {
		return nil, fmt.Errorf("cannot book a time in the past")
	}

	booking := entity.Booking{
		ID:       uuid.New(),
		MemberID: memberID,
		RoomID:   room.ID,
		RoomName: room.Name,
		Date:     req.Date,
		Time:     req.Time,
		Purpose:  req.Purpose,
		Status:   entity.BookingStatusPending,
		BookedAt: s.now(),
	}

	// Read-check-append under a version guard. A concurrent writer bumps the
	// entry version, the write fails, and the loop re-checks against the
	// fresh list, so two bookers can never both hold the same slot.
	for attempt := 0; attempt < casRetries; attempt++ {
		entry, err := s.repo.Ledger.Find(ctx, req.Date)
		if err != nil {
			s.log.Error("Failed to load ledger entry",
				zap.Error(err), zap.String("date_key", req.Date))
			return nil, fmt.Errorf("load bookings: %w", err)
		}

		fresh := entry == nil
		if fresh {
			entry = &entity.LedgerEntry{
				DateKey: req.Date,
				Rooms:   make(map[string][]entity.Booking),
			}
		}

		// Conflict: same slot, any status except rejected
		for _, b := range entry.RoomBookings(room.ID) {
			if b.Time == booking.Time && b.Status != entity.BookingStatusRejected {
				return nil, fmt.Errorf("room already booked for the selected time slot")
			}
		}

		entry.Rooms[room.ID] = append(entry.Rooms[room.ID], booking)

		if fresh {
			err = s.repo.Ledger.Insert(ctx, entry)
		} else {
			err = s.repo.Ledger.Update(ctx, entry, entry.Version)
		}

		if errors.Is(err, repository.ErrVersionConflict) {
			s.log.Warn("Ledger version conflict on create, retrying",
				zap.String("date_key", req.Date),
				zap.String("room_id", room.ID),
				zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			s.log.Error("Failed to persist booking",
				zap.Error(err),
				zap.String("date_key", req.Date),
				zap.String("room_id", room.ID))
			return nil, fmt.Errorf("persist booking: %w", err)
		}

		s.log.Info("Booking created",
			zap.String("booking_id", booking.ID.String()),
			zap.String("member_id", memberID),
			zap.String("room_id", room.ID),
			zap.String("date", req.Date),
			zap.String("time", req.Time))

		resp := response.BookingToResponse(booking)
		return &resp, nil
	}

	return nil, fmt.Errorf("booking not saved after %d attempts, please try again", casRetries)
}

func (s *bookingService) GetRoomBookings(ctx context.Context, roomID, date string) (*response.RoomDayResponse, error) {
	if roomID == "" || date == "" {
		return nil, fmt.Errorf("invalid request: room ID and date are required")
	}
	if _, err := time.Parse(entity.DateKeyLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", date, err)
	}

	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		s.log.Error("Failed to check room", zap.Error(err), zap.String("room_id", roomID))
		return nil, fmt.Errorf("check room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %s not found", roomID)
	}

	entry, err := s.repo.Ledger.Find(ctx, date)
	if err != nil {
		s.log.Error("Failed to load ledger entry", zap.Error(err), zap.String("date_key", date))
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	// Absent entry means an empty day
	bookings := entry.RoomBookings(roomID)
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].Time < bookings[j].Time
	})

	taken := make(map[string]bool, len(bookings))
	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		bookingResponses[i] = response.BookingToResponse(b)
		if b.Status != entity.BookingStatusRejected {
			taken[b.Time] = true
		}
	}

	grid := entity.TimeSlots()
	slots := make([]response.SlotResponse, len(grid))
	for i, slot := range grid {
		slots[i] = response.SlotResponse{Time: slot, Booked: taken[slot]}
	}

	return &response.RoomDayResponse{
		RoomID:   roomID,
		Date:     date,
		Bookings: bookingResponses,
		Slots:    slots,
	}, nil
}

func (s *bookingService) GetMemberBookings(ctx context.Context, memberID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	all, err := s.collectBookings(ctx, func(b entity.Booking) bool {
		return b.MemberID == memberID
	})
	if err != nil {
		return nil, err
	}

	// Newest dates first for a member's own history
	sort.Slice(all, func(i, j int) bool {
		if all[i].Date != all[j].Date {
			return all[i].Date > all[j].Date
		}
		return all[i].Time < all[j].Time
	})

	return paginateBookings(all, req), nil
}

func (s *bookingService) GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	all, err := s.collectBookings(ctx, func(entity.Booking) bool { return true })
	if err != nil {
		return nil, err
	}

	// Review queue runs oldest date first, then by slot
	sort.Slice(all, func(i, j int) bool {
		if all[i].Date != all[j].Date {
			return all[i].Date < all[j].Date
		}
		return all[i].Time < all[j].Time
	})

	return paginateBookings(all, req), nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, dateKey, roomID, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking status validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	targetID, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}
	newStatus := entity.BookingStatus(req.Status)

	for attempt := 0; attempt < casRetries; attempt++ {
		entry, err := s.repo.Ledger.Find(ctx, dateKey)
		if err != nil {
			s.log.Error("Failed to load ledger entry",
				zap.Error(err), zap.String("date_key", dateKey))
			return nil, fmt.Errorf("load bookings: %w", err)
		}
		// The entry vanishing out from under a transition is an anomaly the
		// caller must see, not a silent no-op.
		if entry == nil {
			return nil, fmt.Errorf("bookings for %s not found", dateKey)
		}

		bookings := entry.RoomBookings(roomID)
		if len(bookings) == 0 {
			return nil, fmt.Errorf("bookings for room %s on %s not found", roomID, dateKey)
		}

		idx := -1
		for i, b := range bookings {
			if b.ID == targetID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, fmt.Errorf("booking %s not found", bookingID)
		}

		if bookings[idx].Status != entity.BookingStatusPending {
			return nil, fmt.Errorf("cannot change status of a %s booking", bookings[idx].Status)
		}

		// Only the targeted booking's status changes; siblings keep their
		// fields and order.
		updated := make([]entity.Booking, len(bookings))
		copy(updated, bookings)
		updated[idx].Status = newStatus
		entry.Rooms[roomID] = updated

		err = s.repo.Ledger.Update(ctx, entry, entry.Version)
		if errors.Is(err, repository.ErrVersionConflict) {
			s.log.Warn("Ledger version conflict on status update, retrying",
				zap.String("date_key", dateKey),
				zap.String("booking_id", bookingID),
				zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			s.log.Error("Failed to persist status update",
				zap.Error(err),
				zap.String("date_key", dateKey),
				zap.String("booking_id", bookingID))
			return nil, fmt.Errorf("persist status update: %w", err)
		}

		s.log.Info("Booking status updated",
			zap.String("booking_id", bookingID),
			zap.String("date_key", dateKey),
			zap.String("room_id", roomID),
			zap.String("status", req.Status))

		resp := response.BookingToResponse(updated[idx])
		return &resp, nil
	}

	return nil, fmt.Errorf("status not saved after %d attempts, please try again", casRetries)
}

// ==================== HELPER METHODS ====================

// collectBookings flattens every ledger entry's room lists through a filter.
func (s *bookingService) collectBookings(ctx context.Context, keep func(entity.Booking) bool) ([]entity.Booking, error) {
	entries, err := s.repo.Ledger.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to load ledger entries", zap.Error(err))
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	var all []entity.Booking
	for _, entry := range entries {
		for _, bookings := range entry.Rooms {
			for _, b := range bookings {
				if keep(b) {
					all = append(all, b)
				}
			}
		}
	}

	return all, nil
}

func paginateBookings(all []entity.Booking, req *request.PaginatedRequest) *response.PaginatedResponse[response.BookingResponse] {
	total := int64(len(all))
	offset := req.Offset()
	limit := req.Limit()

	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	page := make([]response.BookingResponse, 0, end-offset)
	for _, b := range all[offset:end] {
		page = append(page, response.BookingToResponse(b))
	}

	return response.NewPaginatedResponse(page, req.Page, limit, total)
}
