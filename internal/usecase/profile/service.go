package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"pharmaflux/internal/domain/profile"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

type Service struct {
	profiles profile.Repository
}

func NewService(profiles profile.Repository) *Service {
	return &Service{profiles: profiles}
}

func (s *Service) GetMe(ctx context.Context, profileID uuid.UUID) (profile.Profile, error) {
	return s.profiles.GetByID(ctx, profileID)
}

// UpdateMe mutates the caller's own profile. The role is not part of
// UpdateInput, so it stays immutable by construction.
func (s *Service) UpdateMe(ctx context.Context, profileID uuid.UUID, in profile.UpdateInput) (profile.Profile, error) {
	current, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return profile.Profile{}, err
	}

	// Role-specific fields only apply to the matching role.
	if current.Role == profile.RoleCandidate {
		in.CompanyName = nil
		in.RegistrationNumber = nil
		in.Address = nil
		in.HRContact = nil
	} else {
		in.SkillTags = nil
		in.Availability = nil
	}

	if err := s.profiles.Update(ctx, profileID, in); err != nil {
		return profile.Profile{}, err
	}
	return s.profiles.GetByID(ctx, profileID)
}
