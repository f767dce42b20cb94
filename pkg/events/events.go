package events

import (
	"context"
	"time"

	"hostelhub/pkg/model"
)

// Header keys attached to every published event.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"

	TypeBookingCreated = "booking.created"
)

// BookingCreated is the payload published after a booking batch commits.
type BookingCreated struct {
	BookingID    int       `json:"booking_id"`
	RoomID       int       `json:"room_id"`
	GuestEmail   string    `json:"guest_email"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publisher emits domain events after a successful commit. Publishing is
// best-effort: failures are logged by callers and never affect the
// committed state.
type Publisher interface {
	PublishBookingsCreated(ctx context.Context, bookings []model.Booking) error
	Close() error
}
