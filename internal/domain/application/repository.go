package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("application not found")

	// ErrDuplicate is raised from the (candidate_id, mission_id) unique
	// index, which is the authority on duplicates. Callers must not rely
	// on a pre-check.
	ErrDuplicate = errors.New("application already exists")
)

type Repository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ListByMission(ctx context.Context, missionID uuid.UUID) ([]Application, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]Application, error)

	// CandidateIDsByMission returns candidates holding an application on
	// the mission in any status.
	CandidateIDsByMission(ctx context.Context, missionID uuid.UUID) ([]uuid.UUID, error)

	// CreateProposedBatch inserts proposed applications, silently skipping
	// (candidate, mission) pairs that already exist. Returns the number of
	// rows actually inserted.
	CreateProposedBatch(ctx context.Context, missionID uuid.UUID, candidateIDs []uuid.UUID) (int64, error)

	// Accept flips the mission to assigned, the application to accepted and
	// the mission's remaining proposed applications to rejected, all in one
	// transaction. The mission swap is conditional on status=open and the
	// application swap on status=proposed, so concurrent accepts cannot
	// both win.
	Accept(ctx context.Context, applicationID, missionID uuid.UUID) error

	// RejectIfProposed is a conditional single-row update; reports whether
	// the row was still proposed.
	RejectIfProposed(ctx context.Context, applicationID uuid.UUID) (bool, error)
}

var (
	// ErrMissionNotOpen is returned by Accept when the mission status swap
	// loses, i.e. another application was accepted first.
	ErrMissionNotOpen = errors.New("mission is not open")

	// ErrNotProposed is returned by Accept when the application itself has
	// already left the proposed state.
	ErrNotProposed = errors.New("application is not proposed")
)
