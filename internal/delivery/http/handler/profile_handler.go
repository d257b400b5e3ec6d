package handler

import (
	"github.com/gofiber/fiber/v3"

	"pharmaflux/internal/delivery/http/dto"
	"pharmaflux/internal/delivery/http/middleware"
	"pharmaflux/internal/domain/profile"
	"pharmaflux/internal/pkg/response"
	profileuc "pharmaflux/internal/usecase/profile"
)

type ProfileHandler struct {
	uc    *profileuc.Service
	actor *ActorResolver
}

type updateProfileRequest struct {
	FullName           *string                      `json:"full_name"`
	Phone              *string                      `json:"phone"`
	Lat                *float64                     `json:"lat"`
	Lon                *float64                     `json:"lon"`
	SkillTags          []string                     `json:"skill_tags"`
	Availability       []profile.AvailabilityWindow `json:"availability"`
	CompanyName        *string                      `json:"company_name"`
	RegistrationNumber *string                      `json:"registration_number"`
	Address            *string                      `json:"address"`
	HRContact          *string                      `json:"hr_contact"`
	OnboardingDone     *bool                        `json:"onboarding_done"`
}

func NewProfileHandler(uc *profileuc.Service, actor *ActorResolver) *ProfileHandler {
	return &ProfileHandler{uc: uc, actor: actor}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.GetMe)
	r.Put("/", h.UpdateMe)
}

func (h *ProfileHandler) GetMe(c fiber.Ctx) error {
	p, err := h.actor.Actor(c)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) UpdateMe(c fiber.Ctx) error {
	p, err := h.actor.Actor(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	updated, err := h.uc.UpdateMe(c.Context(), p.ID, profile.UpdateInput{
		FullName:           req.FullName,
		Phone:              req.Phone,
		Lat:                req.Lat,
		Lon:                req.Lon,
		SkillTags:          req.SkillTags,
		Availability:       req.Availability,
		CompanyName:        req.CompanyName,
		RegistrationNumber: req.RegistrationNumber,
		Address:            req.Address,
		HRContact:          req.HRContact,
		OnboardingDone:     req.OnboardingDone,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(updated))
}
