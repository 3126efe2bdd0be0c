package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dkowalski/quoteshelf/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondError is the single boundary translator from the domain error
// taxonomy to HTTP statuses. Authentication failures all present as the
// same 401 body; storage failures log internal detail but surface a
// generic 500 message.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: err.Error()})

	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{Error: common.ErrUnauthorized.Error()})

	case errors.Is(err, common.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(errorResponse{Error: common.ErrForbidden.Error()})

	case errors.Is(err, common.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{Error: common.ErrNotFound.Error()})

	case errors.Is(err, common.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(errorResponse{Error: common.ErrConflict.Error()})

	case errors.Is(err, common.ErrRateLimited):
		return c.Status(fiber.StatusTooManyRequests).JSON(errorResponse{Error: common.ErrRateLimited.Error()})

	default:
		s.logger.Error(c.UserContext(), "internal error",
			"request_id", c.Locals("request_id"),
			"error", err.Error(),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "internal error"})
	}
}
