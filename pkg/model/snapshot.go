package model

// Snapshot is the full entity set as persisted by the store. A loaded
// snapshot is treated as an immutable value by readers; writers mutate a
// private copy inside the store's critical section and commit it with one
// atomic save.
type Snapshot struct {
	Users    []User    `json:"users" bson:"users"`
	Hostels  []Hostel  `json:"hostels" bson:"hostels"`
	Rooms    []Room    `json:"rooms" bson:"rooms"`
	Bookings []Booking `json:"bookings" bson:"bookings"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Users:    []User{},
		Hostels:  []Hostel{},
		Rooms:    []Room{},
		Bookings: []Booking{},
	}
}

// Room returns a pointer into the snapshot's room slice, or nil if the ID
// is unknown. The pointer is only valid until the snapshot is discarded.
func (s *Snapshot) Room(id int) *Room {
	for i := range s.Rooms {
		if s.Rooms[i].ID == id {
			return &s.Rooms[i]
		}
	}
	return nil
}

func (s *Snapshot) Hostel(id int) *Hostel {
	for i := range s.Hostels {
		if s.Hostels[i].ID == id {
			return &s.Hostels[i]
		}
	}
	return nil
}

// Identifiers derive from the max existing ID, not the record count, so
// they are never reused even across process restarts.
func (s *Snapshot) NextUserID() int {
	next := 1
	for i := range s.Users {
		if s.Users[i].ID >= next {
			next = s.Users[i].ID + 1
		}
	}
	return next
}

func (s *Snapshot) NextHostelID() int {
	next := 1
	for i := range s.Hostels {
		if s.Hostels[i].ID >= next {
			next = s.Hostels[i].ID + 1
		}
	}
	return next
}

func (s *Snapshot) NextRoomID() int {
	next := 1
	for i := range s.Rooms {
		if s.Rooms[i].ID >= next {
			next = s.Rooms[i].ID + 1
		}
	}
	return next
}

func (s *Snapshot) NextBookingID() int {
	next := 1
	for i := range s.Bookings {
		if s.Bookings[i].ID >= next {
			next = s.Bookings[i].ID + 1
		}
	}
	return next
}
