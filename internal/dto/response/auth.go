package response

import (
	"time"

	"room-booking/internal/data/entity"
)

type AuthResponse struct {
	MemberID  string            `json:"member_id"`
	Email     string            `json:"email"`
	Role      entity.MemberRole `json:"role"`
	Token     string            `json:"token,omitempty"`
	ExpiresAt time.Time         `json:"expires_at,omitempty"`
}

type MemberResponse struct {
	MemberID  string            `json:"member_id"`
	Email     string            `json:"email"`
	Role      entity.MemberRole `json:"role"`
	CreatedAt time.Time         `json:"created_at"`
}

// Helper converters
func MemberToResponse(member *entity.Member) MemberResponse {
	return MemberResponse{
		MemberID:  member.MemberID,
		Email:     member.Email,
		Role:      member.Role,
		CreatedAt: member.CreatedAt,
	}
}

func AuthToResponse(member *entity.Member, session *entity.Session) *AuthResponse {
	resp := &AuthResponse{
		MemberID: member.MemberID,
		Email:    member.Email,
		Role:     member.Role,
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}
