package mission

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("mission not found")

type Repository interface {
	Create(ctx context.Context, m Mission) error
	GetByID(ctx context.Context, id uuid.UUID) (Mission, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]Mission, error)
	ListOpen(ctx context.Context) ([]WithEmployer, error)
}
