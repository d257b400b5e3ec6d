package handler

import (
	"github.com/gofiber/fiber/v3"

	"pharmaflux/internal/delivery/http/dto"
	"pharmaflux/internal/pkg/response"
	"pharmaflux/internal/usecase"
)

type ContractHandler struct {
	uc    usecase.ContractUsecase
	actor *ActorResolver
}

func NewContractHandler(uc usecase.ContractUsecase, actor *ActorResolver) *ContractHandler {
	return &ContractHandler{uc: uc, actor: actor}
}

// RegisterMissionRoutes mounts the contract lookup nested under /missions.
func (h *ContractHandler) RegisterMissionRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/:id/contract", h.GetForMission)
}

func (h *ContractHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/:id/sign", h.Sign)
}

func (h *ContractHandler) GetForMission(c fiber.Ctx) error {
	actor, err := h.actor.Actor(c)
	if err != nil {
		return err
	}

	missionID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	contractRecord, err := h.uc.GetForMission(c.Context(), actor, missionID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewContractResponse(contractRecord))
}

func (h *ContractHandler) Sign(c fiber.Ctx) error {
	actor, err := h.actor.Actor(c)
	if err != nil {
		return err
	}

	contractID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	signed, err := h.uc.Sign(c.Context(), actor, contractID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewContractResponse(signed))
}
