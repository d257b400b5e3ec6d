package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"pharmaflux/internal/delivery/http/dto"
	"pharmaflux/internal/delivery/http/middleware"
	"pharmaflux/internal/domain/mission"
	"pharmaflux/internal/pkg/response"
	"pharmaflux/internal/usecase"
)

type MissionHandler struct {
	uc    usecase.MissionUsecase
	actor *ActorResolver
}

type createMissionRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	FacilityType string  `json:"facility_type"`
	Location     string  `json:"location"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	HourlyRate   float64 `json:"hourly_rate"`
}

func NewMissionHandler(uc usecase.MissionUsecase, actor *ActorResolver) *MissionHandler {
	return &MissionHandler{uc: uc, actor: actor}
}

func (h *MissionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.ListOpen)
	r.Get("/mine", h.ListMine)
	r.Get("/:id", h.Get)
}

func (h *MissionHandler) Create(c fiber.Ctx) error {
	actor, err := h.actor.Actor(c)
	if err != nil {
		return err
	}

	var req createMissionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	startDate, err1 := time.Parse("2006-01-02", req.StartDate)
	endDate, err2 := time.Parse("2006-01-02", req.EndDate)
	if err1 != nil || err2 != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Dates must be YYYY-MM-DD", nil, nil)
	}

	m, err := h.uc.Create(c.Context(), actor, usecase.CreateMissionInput{
		Title:        req.Title,
		Description:  req.Description,
		FacilityType: mission.FacilityType(req.FacilityType),
		Location:     req.Location,
		StartDate:    startDate,
		EndDate:      endDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		HourlyRate:   req.HourlyRate,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewMissionResponse(m))
}

func (h *MissionHandler) ListOpen(c fiber.Ctx) error {
	if _, err := h.actor.Actor(c); err != nil {
		return err
	}

	missions, err := h.uc.ListOpen(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.OpenMissionResponse, 0, len(missions))
	for _, m := range missions {
		out = append(out, dto.NewOpenMissionResponse(m))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MissionHandler) ListMine(c fiber.Ctx) error {
	actor, err := h.actor.Actor(c)
	if err != nil {
		return err
	}

	missions, err := h.uc.ListForEmployer(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.MissionResponse, 0, len(missions))
	for _, m := range missions {
		out = append(out, dto.NewMissionResponse(m))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MissionHandler) Get(c fiber.Ctx) error {
	if _, err := h.actor.Actor(c); err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	m, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMissionResponse(m))
}
