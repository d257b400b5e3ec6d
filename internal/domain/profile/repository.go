package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

type UpdateInput struct {
	FullName     *string
	Phone        *string
	Lat          *float64
	Lon          *float64
	SkillTags    []string
	Availability []AvailabilityWindow

	CompanyName        *string
	RegistrationNumber *string
	Address            *string
	HRContact          *string

	OnboardingDone *bool
}

type Repository interface {
	Create(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (Profile, error)
	GetByAuthID(ctx context.Context, authID uuid.UUID) (Profile, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) error
	ListCandidates(ctx context.Context) ([]Profile, error)
}
