package request

type RegisterRequest struct {
	MemberID        string `json:"member_id" validate:"required,alphanum,min=3,max=50"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type LoginRequest struct {
	MemberID string `json:"member_id" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}
