package wire

import (
	"room-booking/internal/adaptor"
	"room-booking/internal/data/repository"
	"room-booking/pkg/middleware"
	"room-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Member, log))

		// POST /api/bookings - submit a pending booking request
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/rooms/{id}/bookings?date=YYYY-MM-DD - one room's day
		r.Get("/api/rooms/{id}/bookings", bookingHandler.GetRoomBookings)

		// GET /api/member/bookings - caller's booking history
		r.Get("/api/member/bookings", bookingHandler.GetMemberBookings)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(repo.Session, repo.Member, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/bookings - review queue across all dates
		r.Get("/", bookingHandler.GetAllBookings)

		// PUT /api/admin/bookings/{date}/{roomId}/{id}/status - approve/reject
		r.Put("/{date}/{roomId}/{id}/status", bookingHandler.UpdateBookingStatus)
	})
}
