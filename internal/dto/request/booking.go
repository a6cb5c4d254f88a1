package request

type CreateBookingRequest struct {
	RoomID  string `json:"room_id" validate:"required"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string `json:"time" validate:"required,datetime=15:04"`
	Purpose string `json:"purpose" validate:"required,min=3,max=500"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}
