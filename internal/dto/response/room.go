package response

import (
	"room-booking/internal/data/entity"
)

type RoomResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	Amenities   []string `json:"amenities"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
}

func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:          room.ID,
		Name:        room.Name,
		Capacity:    room.Capacity,
		Amenities:   room.Amenities,
		Description: room.Description,
		ImageURL:    room.ImageURL,
	}
}
