package model

import "time"

// Booking timestamps are persisted as ISO-8601 strings (RFC 3339 in the
// JSON encoding of time.Time).
type Booking struct {
	ID           int       `json:"id" bson:"id"`
	RoomID       int       `json:"room_id" bson:"room_id"`
	GuestName    string    `json:"guest_name" bson:"guest_name"`
	GuestEmail   string    `json:"guest_email" bson:"guest_email"`
	CheckInDate  time.Time `json:"check_in_date" bson:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date" bson:"check_out_date"`
}

type BookingCreate struct {
	RoomID       int       `json:"room_id" validate:"required,min=1"`
	GuestName    string    `json:"guest_name" validate:"required,min=1,max=200"`
	GuestEmail   string    `json:"guest_email" validate:"required,email"`
	CheckInDate  time.Time `json:"check_in_date" validate:"required"`
	CheckOutDate time.Time `json:"check_out_date" validate:"required"`
}
