package handler

import (
	"github.com/gofiber/fiber/v3"

	"pharmaflux/internal/delivery/http/dto"
	"pharmaflux/internal/delivery/http/middleware"
	"pharmaflux/internal/domain/application"
	"pharmaflux/internal/pkg/response"
	"pharmaflux/internal/usecase"
)

type ApplicationHandler struct {
	uc    usecase.ApplicationUsecase
	actor *ActorResolver
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase, actor *ActorResolver) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, actor: actor}
}

// RegisterMissionRoutes mounts the routes nested under /missions.
func (h *ApplicationHandler) RegisterMissionRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/:id/applications", h.Apply)
	r.Get("/:id/applications", h.ListForMission)
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/mine", h.ListMine)
	r.Patch("/:id/status", h.UpdateStatus)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	actor, err := h.actor.Actor(c)
	if err != nil {
		return err
	}

	missionID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	a, err := h.uc.Apply(c.Context(), actor, missionID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) ListForMission(c fiber.Ctx) error {
	actor, err := h.actor.Actor(c)
	if err != nil {
		return err
	}

	missionID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.ListForMission(c.Context(), actor, missionID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationListResponse(items))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	actor, err := h.actor.Actor(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationListResponse(items))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	actor, err := h.actor.Actor(c)
	if err != nil {
		return err
	}

	applicationID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	a, err := h.uc.UpdateStatus(c.Context(), actor, applicationID, application.Status(req.Status))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(a))
}
