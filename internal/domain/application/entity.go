package application

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusProposed Status = "proposed"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusProposed, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransition reports whether from -> to is a legal move.
// Accepted and rejected are terminal.
func CanTransition(from, to Status) bool {
	if from != StatusProposed {
		return false
	}
	return to == StatusAccepted || to == StatusRejected
}

type Application struct {
	ID          uuid.UUID
	CandidateID uuid.UUID
	MissionID   uuid.UUID
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
