package repository

import (
	"context"
	"fmt"

	"room-booking/internal/data/entity"
	"room-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoomRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Room, error)
	FindAll(ctx context.Context) ([]*entity.Room, error)
	CountAll(ctx context.Context) (int64, error)
	SaveAll(ctx context.Context, rooms []*entity.Room) error
}

type roomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRepository(db database.PgxIface, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

func (r *roomRepository) FindByID(ctx context.Context, id string) (*entity.Room, error) {
	query := `
		SELECT id, name, capacity, amenities, description, image_url
		FROM rooms
		WHERE id = $1
	`

	var room entity.Room
	err := r.db.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.Name,
		&room.Capacity,
		&room.Amenities,
		&room.Description,
		&room.ImageURL,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID",
			zap.Error(err),
			zap.String("room_id", id),
		)
		return nil, fmt.Errorf("find room by ID %s: %w", id, err)
	}

	return &room, nil
}

func (r *roomRepository) FindAll(ctx context.Context) ([]*entity.Room, error) {
	query := `
		SELECT id, name, capacity, amenities, description, image_url
		FROM rooms
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to get all rooms", zap.Error(err))
		return nil, fmt.Errorf("find all rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		var room entity.Room
		err := rows.Scan(
			&room.ID,
			&room.Name,
			&room.Capacity,
			&room.Amenities,
			&room.Description,
			&room.ImageURL,
		)
		if err != nil {
			r.log.Error("Failed to scan room row", zap.Error(err))
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate room rows: %w", err)
	}

	return rooms, nil
}

func (r *roomRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM rooms`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count rooms", zap.Error(err))
		return 0, fmt.Errorf("count all rooms: %w", err)
	}

	return count, nil
}

// SaveAll upserts the given rooms in one transaction. Fixed room IDs make a
// repeated seed overwrite identical data instead of duplicating it.
func (r *roomRepository) SaveAll(ctx context.Context, rooms []*entity.Room) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin room seed transaction", zap.Error(err))
		return fmt.Errorf("begin room seed: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO rooms (id, name, capacity, amenities, description, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, capacity = EXCLUDED.capacity,
		    amenities = EXCLUDED.amenities, description = EXCLUDED.description,
		    image_url = EXCLUDED.image_url
	`

	for _, room := range rooms {
		_, err := tx.Exec(ctx, query,
			room.ID,
			room.Name,
			room.Capacity,
			room.Amenities,
			room.Description,
			room.ImageURL,
		)
		if err != nil {
			r.log.Error("Failed to save room",
				zap.Error(err),
				zap.String("room_id", room.ID),
			)
			return fmt.Errorf("save room %s: %w", room.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit room seed transaction", zap.Error(err))
		return fmt.Errorf("commit room seed: %w", err)
	}

	return nil
}
