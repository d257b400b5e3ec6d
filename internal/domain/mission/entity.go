package mission

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOpen      Status = "open"
	StatusAssigned  Status = "assigned"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusAssigned, StatusCompleted:
		return true
	}
	return false
}

type FacilityType string

const (
	FacilityPharmacy FacilityType = "pharmacy"
	FacilityHospital FacilityType = "hospital"
)

func (t FacilityType) Valid() bool {
	switch t {
	case FacilityPharmacy, FacilityHospital:
		return true
	}
	return false
}

type Mission struct {
	ID         uuid.UUID
	EmployerID uuid.UUID

	Title        string
	Description  string
	FacilityType FacilityType

	Location string
	Lat      float64
	Lon      float64

	StartDate time.Time
	EndDate   time.Time
	StartTime string
	EndTime   string

	HourlyRate float64
	Status     Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WithEmployer joins a mission with the minimal employer display info
// shown on the candidate-facing listing.
type WithEmployer struct {
	Mission
	EmployerName  string
	EmployerEmail string
}
