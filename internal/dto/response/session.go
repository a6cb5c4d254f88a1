package response

import (
	"room-booking/internal/data/entity"
	"room-booking/internal/view"
)

// SessionResponse tells the client which screen its session resolves to.
type SessionResponse struct {
	MemberID string            `json:"member_id"`
	Role     entity.MemberRole `json:"role"`
	Screen   view.Screen       `json:"screen"`
}
