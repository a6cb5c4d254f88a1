package usecase

import (
	"context"
	"fmt"
	"time"

	"room-booking/internal/data/entity"
	"room-booking/internal/data/repository"
	"room-booking/internal/dto/request"
	"room-booking/internal/dto/response"
	"room-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo   *repository.Repository // grouping memberRepo & sessionRepo
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Confirmation must match before anything touches storage
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("validation failed: passwords do not match")
	}

	// 3. The member ID is the profile key, so collisions are checked here
	existing, err := s.repo.Member.FindByID(ctx, req.MemberID)
	if err != nil {
		s.log.Error("Failed to check member ID", zap.Error(err), zap.String("member_id", req.MemberID))
		return nil, fmt.Errorf("failed to check member ID")
	}
	if existing != nil {
		return nil, fmt.Errorf("member ID already registered")
	}

	// 4. Hash password
	hashedPassword, err := utils.HashPassword(req.Password, s.config.Auth.BcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	// 5. Create member entity; the email is derived, never user-supplied
	member := &entity.Member{
		MemberID:     req.MemberID,
		Email:        fmt.Sprintf("%s@%s", req.MemberID, s.config.Auth.EmailDomain),
		PasswordHash: hashedPassword,
		Role:         entity.RolePatron,
		CreatedAt:    time.Now(),
	}

	// 6. Save member
	if err := s.repo.Member.Create(ctx, member); err != nil {
		s.log.Error("Failed to create member", zap.Error(err), zap.String("member_id", req.MemberID))
		return nil, fmt.Errorf("failed to create account")
	}

	// 7. Auto login after register
	session, err := s.createSession(ctx, member.MemberID)
	if err != nil {
		s.log.Warn("Failed to create session after register",
			zap.Error(err), zap.String("member_id", member.MemberID))
		// Continue without session
	}

	s.log.Info("Member registered",
		zap.String("member_id", member.MemberID),
		zap.String("email", member.Email))

	return response.AuthToResponse(member, session), nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find member by ID
	member, err := s.repo.Member.FindByID(ctx, req.MemberID)
	if err != nil {
		s.log.Error("Failed to find member", zap.Error(err), zap.String("member_id", req.MemberID))
		return nil, fmt.Errorf("failed to find member")
	}

	// 3. Member not found
	if member == nil {
		s.log.Warn("Member not found for login", zap.String("member_id", req.MemberID))
		return nil, fmt.Errorf("invalid credentials")
	}

	// 4. Check password
	if !utils.CheckPasswordHash(req.Password, member.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("member_id", member.MemberID))
		return nil, fmt.Errorf("invalid credentials")
	}

	// 5. Create session
	session, err := s.createSession(ctx, member.MemberID)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("member_id", member.MemberID))
		return nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("Member logged in", zap.String("member_id", member.MemberID))

	return response.AuthToResponse(member, session), nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	// 1. Parse token
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		s.log.Warn("Invalid token format", zap.String("token", token), zap.Error(err))
		return fmt.Errorf("invalid token format")
	}

	// 2. Revoke session
	if err := s.repo.Session.Revoke(ctx, tokenUUID.String()); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err), zap.String("token", token))
		return fmt.Errorf("failed to logout")
	}

	s.log.Info("Member logged out", zap.String("token", token))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, memberID string) (*entity.Session, error) {
	ttl := time.Duration(s.config.Auth.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		MemberID:  memberID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: time.Now().Add(ttl),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
