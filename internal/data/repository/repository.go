package repository

import (
	"room-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Member  MemberRepository
	Session SessionRepository
	Room    RoomRepository
	Ledger  LedgerRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Member:  NewMemberRepository(db, log),
		Session: NewSessionRepository(db, log),
		Room:    NewRoomRepository(db, log),
		Ledger:  NewLedgerRepository(db, log),
	}
}
