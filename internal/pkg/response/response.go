package response

import "github.com/gofiber/fiber/v3"

// ErrorBody is the only error envelope the API emits.
type ErrorBody struct {
	Error string `json:"error"`
}

const (
	MessageBadRequest          = "Bad request"
	MessageInvalidBody         = "Invalid request body"
	MessageUnauthorized        = "Unauthorized"
	MessageForbidden           = "Forbidden"
	MessageNotFound            = "Not found"
	MessageInternalServerError = "Internal server error"
	MessageServiceUnavailable  = "Service unavailable"
)

// JSON writes data as the response body unchanged; success payloads are
// not wrapped.
func JSON(c fiber.Ctx, status int, data any) error {
	return c.Status(normalizeStatus(status)).JSON(data)
}

func OK(c fiber.Ctx, data any) error {
	return JSON(c, fiber.StatusOK, data)
}

func Error(c fiber.Ctx, status int, message string) error {
	st := normalizeStatus(status)
	if message == "" {
		message = defaultMessageForStatus(st)
	}
	return c.Status(st).JSON(ErrorBody{Error: message})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func defaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusServiceUnavailable:
		return MessageServiceUnavailable
	default:
		return MessageInternalServerError
	}
}
