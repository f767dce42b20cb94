package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"hostelhub/internal/booking/validator"
	"hostelhub/internal/store"
	"hostelhub/pkg/config"
	apperrors "hostelhub/pkg/errors"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/model"
)

type mockPublisher struct {
	PublishBookingsCreatedFunc func(ctx context.Context, bookings []model.Booking) error
	published                  [][]model.Booking
	mu                         sync.Mutex
}

func (m *mockPublisher) PublishBookingsCreated(ctx context.Context, bookings []model.Booking) error {
	m.mu.Lock()
	m.published = append(m.published, bookings)
	m.mu.Unlock()
	if m.PublishBookingsCreatedFunc != nil {
		return m.PublishBookingsCreatedFunc(ctx, bookings)
	}
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func newTestService(t *testing.T, publisher *mockPublisher) (BookingService, store.Store) {
	t.Helper()
	cfg := testConfig()
	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "database.json"), cfg.Log)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if publisher == nil {
		return NewBookingService(st, nil, validator.NewBookingValidator(cfg.Log), cfg), st
	}
	return NewBookingService(st, publisher, validator.NewBookingValidator(cfg.Log), cfg), st
}

func seedRooms(t *testing.T, st store.Store, rooms ...model.Room) {
	t.Helper()
	err := st.Update(context.Background(), func(snap *model.Snapshot) error {
		snap.Rooms = append(snap.Rooms, rooms...)
		return nil
	})
	if err != nil {
		t.Fatalf("seed rooms: %v", err)
	}
}

func validRequest(roomID int) model.BookingCreate {
	return model.BookingCreate{
		RoomID:       roomID,
		GuestName:    "Alice Smith",
		GuestEmail:   "alice@example.com",
		CheckInDate:  time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateBookings_SingleRoom(t *testing.T) {
	svc, st := newTestService(t, nil)
	seedRooms(t, st, model.Room{ID: 1, HostelID: 1, Number: "101", Capacity: 2, Available: true})

	created, err := svc.CreateBookings(context.Background(), []model.BookingCreate{validRequest(1)})
	if err != nil {
		t.Fatalf("CreateBookings: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(created))
	}
	if created[0].ID != 1 {
		t.Errorf("expected booking ID 1, got %d", created[0].ID)
	}
	if created[0].RoomID != 1 {
		t.Errorf("expected room ID 1, got %d", created[0].RoomID)
	}

	err = st.View(context.Background(), func(snap *model.Snapshot) error {
		room := snap.Room(1)
		if room == nil {
			t.Fatal("room 1 missing from snapshot")
		}
		if room.Available {
			t.Error("expected room 1 to be booked")
		}
		if len(snap.Bookings) != 1 {
			t.Errorf("expected 1 persisted booking, got %d", len(snap.Bookings))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestCreateBookings_BatchAbortsOnUnavailableRoom(t *testing.T) {
	svc, st := newTestService(t, nil)
	seedRooms(t, st,
		model.Room{ID: 1, HostelID: 1, Number: "101", Capacity: 2, Available: true},
		model.Room{ID: 2, HostelID: 1, Number: "102", Capacity: 2, Available: false},
		model.Room{ID: 3, HostelID: 1, Number: "103", Capacity: 2, Available: true},
	)

	created, err := svc.CreateBookings(context.Background(), []model.BookingCreate{
		validRequest(1),
		validRequest(2),
		validRequest(3),
	})
	if !apperrors.IsCode(err, apperrors.CodeRoomUnavailable) {
		t.Fatalf("expected ROOM_UNAVAILABLE, got %v", err)
	}
	if created != nil {
		t.Errorf("expected no bookings on abort, got %v", created)
	}

	err = st.View(context.Background(), func(snap *model.Snapshot) error {
		if len(snap.Bookings) != 0 {
			t.Errorf("expected no persisted bookings, got %d", len(snap.Bookings))
		}
		if room := snap.Room(1); room == nil || !room.Available {
			t.Error("expected room 1 to remain available after abort")
		}
		if room := snap.Room(3); room == nil || !room.Available {
			t.Error("expected room 3 to remain available after abort")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestCreateBookings_UnknownRoomAbortsBatch(t *testing.T) {
	svc, st := newTestService(t, nil)
	seedRooms(t, st, model.Room{ID: 1, HostelID: 1, Number: "101", Capacity: 2, Available: true})

	_, err := svc.CreateBookings(context.Background(), []model.BookingCreate{
		validRequest(1),
		validRequest(42),
	})
	if !apperrors.IsCode(err, apperrors.CodeRoomUnavailable) {
		t.Fatalf("expected ROOM_UNAVAILABLE for unknown room, got %v", err)
	}

	err = st.View(context.Background(), func(snap *model.Snapshot) error {
		if len(snap.Bookings) != 0 {
			t.Errorf("expected no persisted bookings, got %d", len(snap.Bookings))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestCreateBookings_DuplicateRoomInBatch(t *testing.T) {
	svc, st := newTestService(t, nil)
	seedRooms(t, st, model.Room{ID: 1, HostelID: 1, Number: "101", Capacity: 2, Available: true})

	// The first request reserves the room inside the batch, so the second
	// sees it as booked.
	_, err := svc.CreateBookings(context.Background(), []model.BookingCreate{
		validRequest(1),
		validRequest(1),
	})
	if !apperrors.IsCode(err, apperrors.CodeRoomUnavailable) {
		t.Fatalf("expected ROOM_UNAVAILABLE for duplicate room, got %v", err)
	}

	err = st.View(context.Background(), func(snap *model.Snapshot) error {
		if len(snap.Bookings) != 0 {
			t.Errorf("expected no persisted bookings, got %d", len(snap.Bookings))
		}
		if room := snap.Room(1); room == nil || !room.Available {
			t.Error("expected room 1 to remain available")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestCreateBookings_InvalidDateRange(t *testing.T) {
	svc, st := newTestService(t, nil)
	seedRooms(t, st, model.Room{ID: 1, HostelID: 1, Number: "101", Capacity: 2, Available: true})

	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{"equal dates", day, day},
		{"check-out before check-in", day, day.AddDate(0, 0, -1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest(1)
			req.CheckInDate = tc.checkIn
			req.CheckOutDate = tc.checkOut

			_, err := svc.CreateBookings(context.Background(), []model.BookingCreate{req})
			if !apperrors.IsCode(err, apperrors.CodeInvalidDateRange) {
				t.Fatalf("expected INVALID_DATE_RANGE, got %v", err)
			}

			err = st.View(context.Background(), func(snap *model.Snapshot) error {
				if len(snap.Bookings) != 0 {
					t.Errorf("expected no persisted bookings, got %d", len(snap.Bookings))
				}
				if room := snap.Room(1); room == nil || !room.Available {
					t.Error("expected room 1 to remain available")
				}
				return nil
			})
			if err != nil {
				t.Fatalf("View: %v", err)
			}
		})
	}
}

func TestCreateBookings_EmptyBatch(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.CreateBookings(context.Background(), nil)
	if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestCreateBookings_ConcurrentBatchesOneWins(t *testing.T) {
	svc, st := newTestService(t, nil)
	seedRooms(t, st, model.Room{ID: 1, HostelID: 1, Number: "101", Capacity: 2, Available: true})

	const contenders = 8

	var wg sync.WaitGroup
	wg.Add(contenders)
	results := make(chan error, contenders)

	for i := 0; i < contenders; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.CreateBookings(context.Background(), []model.BookingCreate{validRequest(1)})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, unavailable int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case apperrors.IsCode(err, apperrors.CodeRoomUnavailable):
			unavailable++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("expected exactly 1 successful batch, got %d", successes)
	}
	if unavailable != contenders-1 {
		t.Errorf("expected %d ROOM_UNAVAILABLE results, got %d", contenders-1, unavailable)
	}

	err := st.View(context.Background(), func(snap *model.Snapshot) error {
		if len(snap.Bookings) != 1 {
			t.Errorf("expected exactly 1 persisted booking, got %d", len(snap.Bookings))
		}
		if room := snap.Room(1); room == nil || room.Available {
			t.Error("expected room 1 to end up booked")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestCreateBookings_SequentialIDsAcrossBatches(t *testing.T) {
	svc, st := newTestService(t, nil)
	seedRooms(t, st,
		model.Room{ID: 1, HostelID: 1, Number: "101", Capacity: 2, Available: true},
		model.Room{ID: 2, HostelID: 1, Number: "102", Capacity: 2, Available: true},
		model.Room{ID: 3, HostelID: 1, Number: "103", Capacity: 2, Available: true},
	)
	ctx := context.Background()

	first, err := svc.CreateBookings(ctx, []model.BookingCreate{validRequest(1), validRequest(2)})
	if err != nil {
		t.Fatalf("CreateBookings: %v", err)
	}
	if first[0].ID != 1 || first[1].ID != 2 {
		t.Errorf("expected IDs 1 and 2, got %d and %d", first[0].ID, first[1].ID)
	}

	second, err := svc.CreateBookings(ctx, []model.BookingCreate{validRequest(3)})
	if err != nil {
		t.Fatalf("CreateBookings: %v", err)
	}
	if second[0].ID != 3 {
		t.Errorf("expected ID 3, got %d", second[0].ID)
	}
}

func TestCreateBookings_PublishesEvents(t *testing.T) {
	pub := &mockPublisher{}
	svc, st := newTestService(t, pub)
	seedRooms(t, st, model.Room{ID: 1, HostelID: 1, Number: "101", Capacity: 2, Available: true})

	created, err := svc.CreateBookings(context.Background(), []model.BookingCreate{validRequest(1)})
	if err != nil {
		t.Fatalf("CreateBookings: %v", err)
	}

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if len(pub.published) != 1 {
		t.Fatalf("expected 1 publish call, got %d", len(pub.published))
	}
	if len(pub.published[0]) != len(created) {
		t.Errorf("expected %d bookings in event, got %d", len(created), len(pub.published[0]))
	}
}

func TestCreateBookings_PublishFailureDoesNotAffectResult(t *testing.T) {
	pub := &mockPublisher{
		PublishBookingsCreatedFunc: func(context.Context, []model.Booking) error {
			return apperrors.Internal("broker down", nil)
		},
	}
	svc, st := newTestService(t, pub)
	seedRooms(t, st, model.Room{ID: 1, HostelID: 1, Number: "101", Capacity: 2, Available: true})

	created, err := svc.CreateBookings(context.Background(), []model.BookingCreate{validRequest(1)})
	if err != nil {
		t.Fatalf("expected commit to survive publish failure, got %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(created))
	}
}

func TestGetByID(t *testing.T) {
	svc, st := newTestService(t, nil)
	seedRooms(t, st, model.Room{ID: 1, HostelID: 1, Number: "101", Capacity: 2, Available: true})

	created, err := svc.CreateBookings(context.Background(), []model.BookingCreate{validRequest(1)})
	if err != nil {
		t.Fatalf("CreateBookings: %v", err)
	}

	got, err := svc.GetByID(context.Background(), created[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ID != created[0].ID || got.RoomID != 1 {
		t.Errorf("unexpected booking: %+v", got)
	}

	_, err = svc.GetByID(context.Background(), 999)
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestListBookings(t *testing.T) {
	svc, st := newTestService(t, nil)
	seedRooms(t, st,
		model.Room{ID: 1, HostelID: 1, Number: "101", Capacity: 2, Available: true},
		model.Room{ID: 2, HostelID: 1, Number: "102", Capacity: 2, Available: true},
	)

	bookings, err := svc.ListBookings(context.Background())
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(bookings) != 0 {
		t.Errorf("expected empty list, got %d", len(bookings))
	}

	if _, err := svc.CreateBookings(context.Background(), []model.BookingCreate{validRequest(1), validRequest(2)}); err != nil {
		t.Fatalf("CreateBookings: %v", err)
	}

	bookings, err = svc.ListBookings(context.Background())
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(bookings) != 2 {
		t.Errorf("expected 2 bookings, got %d", len(bookings))
	}
}
