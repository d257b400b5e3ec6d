package contract

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("contract not found")
	ErrAlreadySigned = errors.New("contract already signed by this party")
)

type Contract struct {
	ID          uuid.UUID
	MissionID   uuid.UUID
	CandidateID uuid.UUID
	EmployerID  uuid.UUID

	Document string

	CandidateSignedAt *time.Time
	EmployerSignedAt  *time.Time

	CreatedAt time.Time
}

type Repository interface {
	// CreateIfAbsent persists the contract unless one already exists for
	// the mission (unique index on mission_id). Reports whether a row was
	// inserted.
	CreateIfAbsent(ctx context.Context, c Contract) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (Contract, error)
	GetByMission(ctx context.Context, missionID uuid.UUID) (Contract, error)

	SignByCandidate(ctx context.Context, id uuid.UUID, at time.Time) error
	SignByEmployer(ctx context.Context, id uuid.UUID, at time.Time) error
}
