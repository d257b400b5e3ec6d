package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"pharmaflux/internal/delivery/http/middleware"
	"pharmaflux/internal/domain/application"
	"pharmaflux/internal/domain/contract"
	"pharmaflux/internal/domain/mission"
	"pharmaflux/internal/domain/profile"
	"pharmaflux/internal/pkg/response"
	"pharmaflux/internal/usecase"
	profileuc "pharmaflux/internal/usecase/profile"
)

// ActorResolver loads the authenticated profile that handlers pass
// explicitly into every usecase call.
type ActorResolver struct {
	profiles *profileuc.Service
}

func NewActorResolver(profiles *profileuc.Service) *ActorResolver {
	return &ActorResolver{profiles: profiles}
}

func (r *ActorResolver) Actor(c fiber.Ctx) (profile.Profile, error) {
	profileID, ok := c.Locals(middleware.CtxProfileIDKey).(uuid.UUID)
	if !ok {
		return profile.Profile{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	p, err := r.profiles.GetMe(c.Context(), profileID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}
		return profile.Profile{}, middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return p, nil
}

func parseUUIDParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

// mapUsecaseError translates usecase sentinels into HTTP app errors.
func mapUsecaseError(err error) *middleware.AppError {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrDuplicateApplication):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied to this mission", nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Application is already decided", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Status must be accepted or rejected", nil, err)
	case errors.Is(err, usecase.ErrMissionNotOpen):
		return middleware.NewAppError(fiber.StatusConflict, "Mission is no longer open", nil, err)
	case errors.Is(err, usecase.ErrNoAcceptedApplication):
		return middleware.NewAppError(fiber.StatusConflict, "Mission has no accepted application", nil, err)
	case errors.Is(err, mission.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Mission not found", nil, err)
	case errors.Is(err, application.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, contract.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Contract not found", nil, err)
	case errors.Is(err, contract.ErrAlreadySigned):
		return middleware.NewAppError(fiber.StatusConflict, "Contract already signed", nil, err)
	case errors.Is(err, profile.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
