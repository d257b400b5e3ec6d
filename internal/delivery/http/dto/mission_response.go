package dto

import (
	"time"

	"github.com/google/uuid"

	"pharmaflux/internal/domain/mission"
)

type MissionResponse struct {
	ID           uuid.UUID `json:"id"`
	EmployerID   uuid.UUID `json:"employer_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	FacilityType string    `json:"facility_type"`
	Location     string    `json:"location"`
	Lat          float64   `json:"lat"`
	Lon          float64   `json:"lon"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	HourlyRate   float64   `json:"hourly_rate"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewMissionResponse(m mission.Mission) MissionResponse {
	return MissionResponse{
		ID:           m.ID,
		EmployerID:   m.EmployerID,
		Title:        m.Title,
		Description:  m.Description,
		FacilityType: string(m.FacilityType),
		Location:     m.Location,
		Lat:          m.Lat,
		Lon:          m.Lon,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		HourlyRate:   m.HourlyRate,
		Status:       string(m.Status),
		CreatedAt:    m.CreatedAt,
	}
}

type OpenMissionResponse struct {
	MissionResponse
	EmployerName  string `json:"employer_name"`
	EmployerEmail string `json:"employer_email"`
}

func NewOpenMissionResponse(m mission.WithEmployer) OpenMissionResponse {
	return OpenMissionResponse{
		MissionResponse: NewMissionResponse(m.Mission),
		EmployerName:    m.EmployerName,
		EmployerEmail:   m.EmployerEmail,
	}
}
