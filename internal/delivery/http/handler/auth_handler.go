package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"pharmaflux/internal/delivery/http/dto"
	"pharmaflux/internal/delivery/http/middleware"
	"pharmaflux/internal/domain/profile"
	"pharmaflux/internal/pkg/jwt"
	"pharmaflux/internal/pkg/response"
	authuc "pharmaflux/internal/usecase/auth"
	profileuc "pharmaflux/internal/usecase/profile"
)

type AuthHandler struct {
	uc       authuc.AuthUsecase
	profiles *profileuc.Service
	jwt      jwt.Service
}

type registerRequest struct {
	Email              string `json:"email"`
	Password           string `json:"password"`
	Role               string `json:"role"`
	FullName           string `json:"full_name"`
	CompanyName        string `json:"company_name"`
	RegistrationNumber string `json:"registration_number"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func NewAuthHandler(uc authuc.AuthUsecase, profiles *profileuc.Service, jwtSvc jwt.Service) *AuthHandler {
	return &AuthHandler{uc: uc, profiles: profiles, jwt: jwtSvc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	p, err := h.uc.Register(c.Context(), authuc.RegisterInput{
		Email:              req.Email,
		Password:           req.Password,
		Role:               profile.Role(req.Role),
		FullName:           req.FullName,
		CompanyName:        req.CompanyName,
		RegistrationNumber: req.RegistrationNumber,
	})
	if err != nil {
		return mapAuthError(err)
	}

	return h.respondWithTokens(c, fiber.StatusCreated, p)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	p, err := h.uc.Login(c.Context(), authuc.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthError(err)
	}

	return h.respondWithTokens(c, fiber.StatusOK, p)
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req refreshRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	claims, err := h.jwt.ValidateToken(req.RefreshToken)
	if err != nil || !h.jwt.IsRefreshToken(claims) {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	}

	p, err := h.profiles.GetMe(c.Context(), claims.ProfileID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	}

	return h.respondWithTokens(c, fiber.StatusOK, p)
}

func (h *AuthHandler) respondWithTokens(c fiber.Ctx, status int, p profile.Profile) error {
	access, err := h.jwt.GenerateAccessToken(p.ID, string(p.Role))
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	refresh, err := h.jwt.GenerateRefreshToken(p.ID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, status, response.MessageOK, dto.AuthResponse{
		Profile:      dto.NewProfileResponse(p),
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

func mapAuthError(err error) *middleware.AppError {
	switch {
	case errors.Is(err, authuc.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, authuc.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
	case errors.Is(err, authuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
