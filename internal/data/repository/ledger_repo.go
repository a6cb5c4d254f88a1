package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"room-booking/internal/data/entity"
	"room-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrVersionConflict is returned when a ledger write loses the race against a
// concurrent writer of the same entry. Callers re-read and retry.
var ErrVersionConflict = errors.New("ledger entry version conflict")

// LedgerRepository stores one document per calendar date in booking_ledger
// (date_key text primary key, rooms jsonb, version bigint). The rooms column
// holds the room ID to booking list map; version guards optimistic updates.
type LedgerRepository interface {
	Find(ctx context.Context, dateKey string) (*entity.LedgerEntry, error)
	FindAll(ctx context.Context) ([]*entity.LedgerEntry, error)
	Insert(ctx context.Context, entry *entity.LedgerEntry) error
	Update(ctx context.Context, entry *entity.LedgerEntry, expectedVersion int64) error
}

type ledgerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLedgerRepository(db database.PgxIface, log *zap.Logger) LedgerRepository {
	return &ledgerRepository{
		db:  db,
		log: log.With(zap.String("repository", "ledger")),
	}
}

func (r *ledgerRepository) Find(ctx context.Context, dateKey string) (*entity.LedgerEntry, error) {
	query := `
		SELECT date_key, rooms, version
		FROM booking_ledger
		WHERE date_key = $1
	`

	var (
		entry    entity.LedgerEntry
		roomsRaw []byte
	)
	err := r.db.QueryRow(ctx, query, dateKey).Scan(
		&entry.DateKey,
		&roomsRaw,
		&entry.Version,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ledger entry",
			zap.Error(err),
			zap.String("date_key", dateKey),
		)
		return nil, fmt.Errorf("find ledger entry %s: %w", dateKey, err)
	}

	if err := json.Unmarshal(roomsRaw, &entry.Rooms); err != nil {
		r.log.Error("Failed to decode ledger entry",
			zap.Error(err),
			zap.String("date_key", dateKey),
		)
		return nil, fmt.Errorf("decode ledger entry %s: %w", dateKey, err)
	}

	return &entry, nil
}

func (r *ledgerRepository) FindAll(ctx context.Context) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT date_key, rooms, version
		FROM booking_ledger
		ORDER BY date_key
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to get all ledger entries", zap.Error(err))
		return nil, fmt.Errorf("find all ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.LedgerEntry
	for rows.Next() {
		var (
			entry    entity.LedgerEntry
			roomsRaw []byte
		)
		if err := rows.Scan(&entry.DateKey, &roomsRaw, &entry.Version); err != nil {
			r.log.Error("Failed to scan ledger row", zap.Error(err))
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		if err := json.Unmarshal(roomsRaw, &entry.Rooms); err != nil {
			r.log.Error("Failed to decode ledger row",
				zap.Error(err),
				zap.String("date_key", entry.DateKey),
			)
			return nil, fmt.Errorf("decode ledger entry %s: %w", entry.DateKey, err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate ledger rows: %w", err)
	}

	return entries, nil
}

// Insert creates a fresh entry at version 1. A concurrent first-writer wins
// the primary key and the loser gets ErrVersionConflict instead of clobbering.
func (r *ledgerRepository) Insert(ctx context.Context, entry *entity.LedgerEntry) error {
	roomsRaw, err := json.Marshal(entry.Rooms)
	if err != nil {
		return fmt.Errorf("encode ledger entry %s: %w", entry.DateKey, err)
	}

	query := `
		INSERT INTO booking_ledger (date_key, rooms, version)
		VALUES ($1, $2, 1)
		ON CONFLICT (date_key) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query, entry.DateKey, roomsRaw)
	if err != nil {
		r.log.Error("Failed to insert ledger entry",
			zap.Error(err),
			zap.String("date_key", entry.DateKey),
		)
		return fmt.Errorf("insert ledger entry %s: %w", entry.DateKey, err)
	}

	if result.RowsAffected() == 0 {
		return ErrVersionConflict
	}

	entry.Version = 1
	return nil
}

// Update writes the whole rooms map back, guarded by the version the caller
// read. Sibling rooms survive because the caller mutated only its own list.
func (r *ledgerRepository) Update(ctx context.Context, entry *entity.LedgerEntry, expectedVersion int64) error {
	roomsRaw, err := json.Marshal(entry.Rooms)
	if err != nil {
		return fmt.Errorf("encode ledger entry %s: %w", entry.DateKey, err)
	}

	query := `
		UPDATE booking_ledger
		SET rooms = $2, version = version + 1
		WHERE date_key = $1 AND version = $3
	`

	result, err := r.db.Exec(ctx, query, entry.DateKey, roomsRaw, expectedVersion)
	if err != nil {
		r.log.Error("Failed to update ledger entry",
			zap.Error(err),
			zap.String("date_key", entry.DateKey),
			zap.Int64("expected_version", expectedVersion),
		)
		return fmt.Errorf("update ledger entry %s: %w", entry.DateKey, err)
	}

	if result.RowsAffected() == 0 {
		return ErrVersionConflict
	}

	entry.Version = expectedVersion + 1
	return nil
}
