package wire

import (
	"room-booking/internal/adaptor"
	"room-booking/internal/data/repository"
	"room-booking/pkg/middleware"
	"room-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRoom(
	r chi.Router,
	roomHandler *adaptor.RoomHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Member, log))

		// GET /api/rooms - list the catalog (seeds defaults when empty)
		r.Get("/api/rooms", roomHandler.GetRooms)

		// GET /api/rooms/{id} - one room's details
		r.Get("/api/rooms/{id}", roomHandler.GetRoomByID)
	})
}
