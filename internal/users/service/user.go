package service

import (
	"context"

	"hostelhub/internal/store"
	"hostelhub/internal/users/validator"
	"hostelhub/pkg/config"
	apperrors "hostelhub/pkg/errors"
	"hostelhub/pkg/model"
	"hostelhub/pkg/sanitizer"

	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Register(ctx context.Context, req model.UserCreate) (*model.UserResponse, error)
}

type userService struct {
	store     store.Store
	validator *validator.UserValidator
	cfg       *config.Config
}

func NewUserService(st store.Store, v *validator.UserValidator, cfg *config.Config) UserService {
	return &userService{
		store:     st,
		validator: v,
		cfg:       cfg,
	}
}

// Register creates a user record with a bcrypt password hash. Email and
// username must be unique across the store.
func (s *userService) Register(ctx context.Context, req model.UserCreate) (*model.UserResponse, error) {
	req.Username = sanitizer.NormalizeName(req.Username)
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validator.Validate(&req); err != nil {
		s.cfg.Log.Warn("User registration rejected by validation", "error", err)
		return nil, apperrors.Validation("User validation failed", map[string]any{"error": err.Error()})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	var created model.User
	err = s.store.Update(ctx, func(snap *model.Snapshot) error {
		for i := range snap.Users {
			if snap.Users[i].Email == req.Email {
				return apperrors.Conflict("Email already registered")
			}
			if snap.Users[i].Username == req.Username {
				return apperrors.Conflict("Username already taken")
			}
		}

		created = model.User{
			ID:             snap.NextUserID(),
			Username:       req.Username,
			Email:          req.Email,
			HashedPassword: string(hash),
		}
		snap.Users = append(snap.Users, created)
		return nil
	})
	if err != nil {
		if !apperrors.IsCode(err, apperrors.CodeConflict) {
			s.cfg.Log.Error("Failed to register user", "error", err)
		}
		return nil, err
	}

	s.cfg.Log.Info("User registered", "id", created.ID, "username", created.Username)
	return &model.UserResponse{
		ID:       created.ID,
		Username: created.Username,
		Email:    created.Email,
	}, nil
}
