package model

import "testing"

func TestNextIDs_EmptySnapshot(t *testing.T) {
	snap := NewSnapshot()

	if got := snap.NextUserID(); got != 1 {
		t.Errorf("NextUserID() = %d, want 1", got)
	}
	if got := snap.NextHostelID(); got != 1 {
		t.Errorf("NextHostelID() = %d, want 1", got)
	}
	if got := snap.NextRoomID(); got != 1 {
		t.Errorf("NextRoomID() = %d, want 1", got)
	}
	if got := snap.NextBookingID(); got != 1 {
		t.Errorf("NextBookingID() = %d, want 1", got)
	}
}

func TestNextIDs_MaxBasedNotCountBased(t *testing.T) {
	// Gaps from removed records must not cause ID reuse.
	snap := &Snapshot{
		Rooms: []Room{
			{ID: 1},
			{ID: 7},
			{ID: 3},
		},
	}
	if got := snap.NextRoomID(); got != 8 {
		t.Errorf("NextRoomID() = %d, want 8", got)
	}

	snap.Bookings = []Booking{{ID: 5}}
	if got := snap.NextBookingID(); got != 6 {
		t.Errorf("NextBookingID() = %d, want 6", got)
	}
}

func TestRoomLookup(t *testing.T) {
	snap := &Snapshot{
		Rooms: []Room{
			{ID: 1, Number: "101", Available: true},
			{ID: 2, Number: "102", Available: false},
		},
	}

	room := snap.Room(2)
	if room == nil {
		t.Fatal("expected room 2")
	}
	if room.Number != "102" {
		t.Errorf("unexpected room: %+v", room)
	}

	// The lookup returns a pointer into the slice, so mutations stick.
	room.Available = true
	if !snap.Rooms[1].Available {
		t.Error("expected mutation through the pointer to be visible")
	}

	if snap.Room(99) != nil {
		t.Error("expected nil for unknown room")
	}
}

func TestHostelLookup(t *testing.T) {
	snap := &Snapshot{
		Hostels: []Hostel{{ID: 4, Name: "Sunrise"}},
	}
	if h := snap.Hostel(4); h == nil || h.Name != "Sunrise" {
		t.Errorf("unexpected hostel: %+v", h)
	}
	if snap.Hostel(5) != nil {
		t.Error("expected nil for unknown hostel")
	}
}
