package repository

import (
	"context"
	"fmt"

	"room-booking/internal/data/entity"
	"room-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MemberRepository interface {
	Create(ctx context.Context, member *entity.Member) error
	FindByID(ctx context.Context, memberID string) (*entity.Member, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Member, error)
	CountAll(ctx context.Context) (int64, error)
}

type memberRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMemberRepository(db database.PgxIface, log *zap.Logger) MemberRepository {
	return &memberRepository{
		db:  db,
		log: log.With(zap.String("repository", "member")),
	}
}

// Create inserts a new member record
func (r *memberRepository) Create(ctx context.Context, member *entity.Member) error {
	query := `
		INSERT INTO members (member_id, email, password, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		member.MemberID,
		member.Email,
		member.PasswordHash,
		member.Role,
		member.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create member",
			zap.Error(err),
			zap.String("member_id", member.MemberID),
		)
		return fmt.Errorf("create member %s: %w", member.MemberID, err)
	}

	return nil
}

func (r *memberRepository) FindByID(ctx context.Context, memberID string) (*entity.Member, error) {
	query := `
		SELECT member_id, email, password, role, created_at
		FROM members
		WHERE member_id = $1
	`

	var member entity.Member
	err := r.db.QueryRow(ctx, query, memberID).Scan(
		&member.MemberID,
		&member.Email,
		&member.PasswordHash,
		&member.Role,
		&member.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find member by ID",
			zap.Error(err),
			zap.String("member_id", memberID),
		)
		return nil, fmt.Errorf("find member by ID %s: %w", memberID, err)
	}

	return &member, nil
}

// FindAll retrieves a paginated member list
func (r *memberRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Member, error) {
	query := `
		SELECT member_id, email, password, role, created_at
		FROM members
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get all members",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all members limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var members []*entity.Member
	for rows.Next() {
		var member entity.Member
		err := rows.Scan(
			&member.MemberID,
			&member.Email,
			&member.PasswordHash,
			&member.Role,
			&member.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan member row", zap.Error(err))
			return nil, fmt.Errorf("scan member row: %w", err)
		}
		members = append(members, &member)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate member rows: %w", err)
	}

	return members, nil
}

func (r *memberRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM members`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count members", zap.Error(err))
		return 0, fmt.Errorf("count all members: %w", err)
	}

	return count, nil
}
