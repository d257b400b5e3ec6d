package handler

import (
	"github.com/gofiber/fiber/v3"

	"pharmaflux/internal/database"
	"pharmaflux/internal/infrastructure/cache"
	"pharmaflux/internal/pkg/response"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, cacheClient *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheClient}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	status := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}

	if h.db == nil {
		status["database"] = "down"
	} else if err := h.db.Ping(c.Context()); err != nil {
		status["database"] = "down"
	}

	if err := h.cache.Ping(c.Context()); err != nil {
		status["cache"] = "bypassed"
	}

	code := fiber.StatusOK
	if status["database"] == "down" {
		code = fiber.StatusServiceUnavailable
	}
	return response.Success(c, code, response.MessageOK, status)
}
