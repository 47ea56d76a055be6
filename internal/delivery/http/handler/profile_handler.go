package handler

import (
	"errors"

	"talentboard/internal/delivery/http/dto"
	"talentboard/internal/delivery/http/middleware"
	"talentboard/internal/domain/profile"
	"talentboard/internal/pkg/response"
	"talentboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc *usecase.Profiles
}

func NewProfileHandler(uc *usecase.Profiles) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/profile", auth, h.Get)
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	who, ok := middleware.IdentityFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
	}

	p, err := h.uc.Get(c.Context(), who.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "User profile not found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "Internal server error fetching profile", err)
	}

	return response.OK(c, fiber.Map{"user": dto.NewUserProfileResponse(p)})
}
