package profile

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleEmployer:
		return true
	}
	return false
}

// AvailabilityWindow is a date range with a daily time-of-day span
// during which a candidate can take missions.
type AvailabilityWindow struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}

type Profile struct {
	ID     uuid.UUID
	AuthID uuid.UUID
	Role   Role

	FullName string
	Email    string
	Phone    string

	Lat *float64
	Lon *float64

	// Candidate fields.
	SkillTags    []string
	Availability []AvailabilityWindow

	// Employer fields.
	CompanyName        string
	RegistrationNumber string
	Address            string
	HRContact          string

	OnboardingDone bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Profile) IsCandidate() bool {
	return p.Role == RoleCandidate
}

func (p Profile) IsEmployer() bool {
	return p.Role == RoleEmployer
}
