package service

import (
	"context"

	"hostelhub/internal/booking/validator"
	"hostelhub/internal/store"
	"hostelhub/pkg/config"
	apperrors "hostelhub/pkg/errors"
	"hostelhub/pkg/events"
	"hostelhub/pkg/model"
	"hostelhub/pkg/sanitizer"
)

type BookingService interface {
	CreateBookings(ctx context.Context, requests []model.BookingCreate) ([]model.Booking, error)
	ListBookings(ctx context.Context) ([]model.Booking, error)
	GetByID(ctx context.Context, id int) (*model.Booking, error)
}

type bookingService struct {
	store     store.Store
	publisher events.Publisher
	validator *validator.BookingValidator
	cfg       *config.Config
}

// NewBookingService wires the allocator. publisher may be nil when booking
// events are disabled.
func NewBookingService(st store.Store, publisher events.Publisher, v *validator.BookingValidator, cfg *config.Config) BookingService {
	return &bookingService{
		store:     st,
		publisher: publisher,
		validator: v,
		cfg:       cfg,
	}
}

// CreateBookings allocates rooms for an ordered batch of requests. The
// whole batch commits with a single atomic save or not at all: any
// unknown, already-booked, or repeated room aborts every request,
// including earlier ones that looked valid. Reservations made earlier in
// the batch are visible to later requests, so a duplicate room reference
// fails the same way a genuinely booked room does.
func (s *bookingService) CreateBookings(ctx context.Context, requests []model.BookingCreate) ([]model.Booking, error) {
	if len(requests) == 0 {
		return nil, apperrors.InvalidInput("Booking batch cannot be empty")
	}

	for i := range requests {
		requests[i].GuestName = sanitizer.NormalizeName(requests[i].GuestName)
		requests[i].GuestEmail = sanitizer.NormalizeEmail(requests[i].GuestEmail)
	}

	// Date ranges are checked before any room is touched.
	if err := s.validator.ValidateBatch(requests); err != nil {
		s.cfg.Log.Warn("Booking batch rejected by validation", "error", err)
		return nil, err
	}

	var created []model.Booking
	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		created = created[:0]
		nextID := snap.NextBookingID()

		for _, req := range requests {
			room := snap.Room(req.RoomID)
			if room == nil || !room.Available {
				return apperrors.RoomUnavailable(req.RoomID)
			}

			room.Available = false
			booking := model.Booking{
				ID:           nextID,
				RoomID:       req.RoomID,
				GuestName:    req.GuestName,
				GuestEmail:   req.GuestEmail,
				CheckInDate:  req.CheckInDate,
				CheckOutDate: req.CheckOutDate,
			}
			nextID++

			snap.Bookings = append(snap.Bookings, booking)
			created = append(created, booking)
		}

		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create bookings", "requested", len(requests), "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Bookings created", "count", len(created))
	s.publishCreated(ctx, created)

	return created, nil
}

func (s *bookingService) ListBookings(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	err := s.store.View(ctx, func(snap *model.Snapshot) error {
		bookings = append([]model.Booking{}, snap.Bookings...)
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, err
	}
	return bookings, nil
}

func (s *bookingService) GetByID(ctx context.Context, id int) (*model.Booking, error) {
	var booking *model.Booking
	err := s.store.View(ctx, func(snap *model.Snapshot) error {
		for i := range snap.Bookings {
			if snap.Bookings[i].ID == id {
				copied := snap.Bookings[i]
				booking = &copied
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperrors.NotFoundWithID("Booking", id)
	}
	return booking, nil
}

// publishCreated emits booking.created events after the commit. Event
// delivery never affects the already-committed result.
func (s *bookingService) publishCreated(ctx context.Context, bookings []model.Booking) {
	if s.publisher == nil || len(bookings) == 0 {
		return
	}

	if err := s.publisher.PublishBookingsCreated(ctx, bookings); err != nil {
		s.cfg.Log.Warn("Failed to publish booking events", "count", len(bookings), "error", err)
	}
}
