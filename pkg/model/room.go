package model

// Room availability is the single source of truth for bookability:
// Available is false iff an active booking references the room.
type Room struct {
	ID        int    `json:"id" bson:"id"`
	HostelID  int    `json:"hostel_id" bson:"hostel_id"`
	Number    string `json:"number" bson:"number"`
	Capacity  int    `json:"capacity" bson:"capacity"`
	Available bool   `json:"available" bson:"available"`
}

type RoomCreate struct {
	HostelID int    `json:"hostel_id" validate:"required,min=1"`
	Number   string `json:"number" validate:"required,min=1,max=50"`
	Capacity int    `json:"capacity" validate:"required,min=1,max=200"`
}
