package handler

import (
	"errors"
	"time"

	"talentboard/internal/delivery/http/dto"
	"talentboard/internal/delivery/http/middleware"
	"talentboard/internal/domain/profile"
	"talentboard/internal/infrastructure/identity"
	"talentboard/internal/pkg/response"
	"talentboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	msgSignupMissing = "Missing required fields: email, password, name, userType"
	msgLoginMissing  = "Missing required fields: email, password"
	msgInvalidRole   = "Invalid userType. Must be 'startup', 'contractor', or 'employer'"
)

type AuthHandler struct {
	uc      *usecase.Auth
	anonKey fiber.Handler
}

func NewAuthHandler(uc *usecase.Auth, anonKey string) *AuthHandler {
	return &AuthHandler{uc: uc, anonKey: middleware.RequireAnonKey(anonKey)}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/signup", h.anonKey, h.Signup)
	r.Post("/login", h.Login)
}

func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidBody, err)
	}

	p, err := h.uc.Signup(c.Context(), usecase.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		UserType: req.UserType,
	})
	if err != nil {
		return mapSignupError(err)
	}

	return response.OK(c, fiber.Map{"user": dto.NewSignupUserResponse(p)})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidBody, err)
	}

	res, err := h.uc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return mapLoginError(err)
	}

	out := dto.LoginResponse{
		AccessToken: res.Session.AccessToken,
		TokenType:   res.Session.TokenType,
		ExpiresIn:   res.Session.ExpiresIn(time.Now()),
	}
	if res.Profile != nil {
		u := dto.NewUserProfileResponse(*res.Profile)
		out.User = &u
	}
	return response.OK(c, out)
}

func mapSignupError(err error) error {
	var rej *identity.RejectedError
	switch {
	case errors.Is(err, usecase.ErrMissingFields):
		return middleware.NewAppError(fiber.StatusBadRequest, msgSignupMissing, err)
	case errors.Is(err, profile.ErrInvalidRole):
		return middleware.NewAppError(fiber.StatusBadRequest, msgInvalidRole, err)
	case errors.As(err, &rej):
		return middleware.NewAppError(fiber.StatusBadRequest, rej.Message, err)
	case errors.Is(err, profile.ErrDuplicate):
		return middleware.NewAppError(fiber.StatusBadRequest, "User profile already exists", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "Internal server error during signup", err)
	}
}

func mapLoginError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrLoginUnsupported):
		return middleware.NewAppError(fiber.StatusNotFound, "Password login is not available", err)
	case errors.Is(err, usecase.ErrMissingFields):
		return middleware.NewAppError(fiber.StatusBadRequest, msgLoginMissing, err)
	case errors.Is(err, identity.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid login credentials", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "Internal server error during login", err)
	}
}
