package entity

// Room is a static catalog record, read-only after the catalog seed.
type Room struct {
	ID          string   `db:"id" json:"id"`
	Name        string   `db:"name" json:"name"`
	Capacity    int      `db:"capacity" json:"capacity"`
	Amenities   []string `db:"amenities" json:"amenities"`
	Description string   `db:"description" json:"description"`
	ImageURL    string   `db:"image_url" json:"image_url"`
}

// DefaultRooms is the fixed set used to seed an empty catalog. IDs are fixed
// so a racing double-seed overwrites with identical data.
func DefaultRooms() []*Room {
	return []*Room{
		{
			ID:          "room-1",
			Name:        "Conference Room 1",
			Capacity:    10,
			Amenities:   []string{"TV Screen", "Whiteboard"},
			Description: "Spacious room for large meetings.",
			ImageURL:    "https://via.placeholder.com/400x250/C7E2E0/000000?text=Room+1",
		},
		{
			ID:          "room-2",
			Name:        "Conference Room 2",
			Capacity:    10,
			Amenities:   []string{"Large Table & Chairs"},
			Description: "Ideal for small team discussions.",
			ImageURL:    "https://via.placeholder.com/400x250/D1E8D0/000000?text=Room+2",
		},
	}
}
