package handler

import (
	"context"
	"time"

	"talentboard/internal/delivery/http/middleware"
	"talentboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const readyTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	return response.OK(c, fiber.Map{"status": "ok"})
}

func (h *HealthHandler) Ready(c fiber.Ctx) error {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Context(), readyTimeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			return middleware.NewAppError(fiber.StatusServiceUnavailable, "Store unavailable", err)
		}
	}
	return response.OK(c, fiber.Map{"status": "ok"})
}
