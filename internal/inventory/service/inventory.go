package service

import (
	"context"

	"hostelhub/internal/inventory/validator"
	"hostelhub/internal/store"
	"hostelhub/pkg/config"
	apperrors "hostelhub/pkg/errors"
	"hostelhub/pkg/model"
	"hostelhub/pkg/sanitizer"
)

// Hostels created without an explicit owner belong to the default owner.
const defaultOwnerID = 1

type InventoryService interface {
	ListHostels(ctx context.Context) ([]model.Hostel, error)
	ListRooms(ctx context.Context, hostelID *int) ([]model.Room, error)
	FindRoom(ctx context.Context, id int) (*model.Room, error)
	CreateHostels(ctx context.Context, batch []model.HostelCreate) ([]model.Hostel, error)
	CreateRooms(ctx context.Context, batch []model.RoomCreate) ([]model.Room, error)
}

type inventoryService struct {
	store     store.Store
	validator *validator.InventoryValidator
	cfg       *config.Config
}

func NewInventoryService(st store.Store, v *validator.InventoryValidator, cfg *config.Config) InventoryService {
	return &inventoryService{
		store:     st,
		validator: v,
		cfg:       cfg,
	}
}

func (s *inventoryService) ListHostels(ctx context.Context) ([]model.Hostel, error) {
	var hostels []model.Hostel
	err := s.store.View(ctx, func(snap *model.Snapshot) error {
		hostels = append([]model.Hostel{}, snap.Hostels...)
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to list hostels", "error", err)
		return nil, err
	}
	return hostels, nil
}

func (s *inventoryService) ListRooms(ctx context.Context, hostelID *int) ([]model.Room, error) {
	var rooms []model.Room
	err := s.store.View(ctx, func(snap *model.Snapshot) error {
		rooms = make([]model.Room, 0, len(snap.Rooms))
		for _, r := range snap.Rooms {
			if hostelID != nil && r.HostelID != *hostelID {
				continue
			}
			rooms = append(rooms, r)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to list rooms", "error", err)
		return nil, err
	}
	return rooms, nil
}

func (s *inventoryService) FindRoom(ctx context.Context, id int) (*model.Room, error) {
	var room *model.Room
	err := s.store.View(ctx, func(snap *model.Snapshot) error {
		if r := snap.Room(id); r != nil {
			copied := *r
			room = &copied
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperrors.NotFoundWithID("Room", id)
	}
	return room, nil
}

// CreateHostels appends the whole batch with fresh sequential identifiers,
// or persists nothing.
func (s *inventoryService) CreateHostels(ctx context.Context, batch []model.HostelCreate) ([]model.Hostel, error) {
	if len(batch) == 0 {
		return nil, apperrors.InvalidInput("Hostel batch cannot be empty")
	}

	for i := range batch {
		batch[i].Name = sanitizer.NormalizeName(batch[i].Name)
		batch[i].Location = sanitizer.NormalizeLocation(batch[i].Location)
	}
	if err := s.validator.ValidateHostels(batch); err != nil {
		s.cfg.Log.Warn("Hostel batch validation failed", "error", err)
		return nil, apperrors.Validation("Hostel validation failed", map[string]any{"error": err.Error()})
	}

	var created []model.Hostel
	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		created = created[:0]
		nextID := snap.NextHostelID()
		for _, h := range batch {
			hostel := model.Hostel{
				ID:       nextID,
				Name:     h.Name,
				Location: h.Location,
				OwnerID:  defaultOwnerID,
			}
			nextID++
			snap.Hostels = append(snap.Hostels, hostel)
			created = append(created, hostel)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create hostels", "count", len(batch), "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Hostels created", "count", len(created))
	return created, nil
}

// CreateRooms does not check that the referenced hostel exists; orphaned
// hostel references are accepted. New rooms always start available.
func (s *inventoryService) CreateRooms(ctx context.Context, batch []model.RoomCreate) ([]model.Room, error) {
	if len(batch) == 0 {
		return nil, apperrors.InvalidInput("Room batch cannot be empty")
	}

	for i := range batch {
		batch[i].Number = sanitizer.NormalizeRoomNumber(batch[i].Number)
	}
	if err := s.validator.ValidateRooms(batch); err != nil {
		s.cfg.Log.Warn("Room batch validation failed", "error", err)
		return nil, apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}

	var created []model.Room
	err := s.store.Update(ctx, func(snap *model.Snapshot) error {
		created = created[:0]
		nextID := snap.NextRoomID()
		for _, r := range batch {
			room := model.Room{
				ID:        nextID,
				HostelID:  r.HostelID,
				Number:    r.Number,
				Capacity:  r.Capacity,
				Available: true,
			}
			nextID++
			snap.Rooms = append(snap.Rooms, room)
			created = append(created, room)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create rooms", "count", len(batch), "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Rooms created", "count", len(created))
	return created, nil
}
