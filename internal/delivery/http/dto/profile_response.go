package dto

import (
	"time"

	"github.com/google/uuid"

	"pharmaflux/internal/domain/profile"
)

type ProfileResponse struct {
	ID             uuid.UUID                    `json:"id"`
	Role           string                       `json:"role"`
	FullName       string                       `json:"full_name"`
	Email          string                       `json:"email"`
	Phone          string                       `json:"phone,omitempty"`
	Lat            *float64                     `json:"lat,omitempty"`
	Lon            *float64                     `json:"lon,omitempty"`
	SkillTags      []string                     `json:"skill_tags,omitempty"`
	Availability   []profile.AvailabilityWindow `json:"availability,omitempty"`
	CompanyName    string                       `json:"company_name,omitempty"`
	RegistrationNo string                       `json:"registration_number,omitempty"`
	Address        string                       `json:"address,omitempty"`
	HRContact      string                       `json:"hr_contact,omitempty"`
	OnboardingDone bool                         `json:"onboarding_done"`
	CreatedAt      time.Time                    `json:"created_at"`
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	return ProfileResponse{
		ID:             p.ID,
		Role:           string(p.Role),
		FullName:       p.FullName,
		Email:          p.Email,
		Phone:          p.Phone,
		Lat:            p.Lat,
		Lon:            p.Lon,
		SkillTags:      p.SkillTags,
		Availability:   p.Availability,
		CompanyName:    p.CompanyName,
		RegistrationNo: p.RegistrationNumber,
		Address:        p.Address,
		HRContact:      p.HRContact,
		OnboardingDone: p.OnboardingDone,
		CreatedAt:      p.CreatedAt,
	}
}

type AuthResponse struct {
	Profile      ProfileResponse `json:"profile"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}
