package httpapi

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/dkowalski/quoteshelf/internal/common"
	"github.com/dkowalski/quoteshelf/internal/server/ratelimit"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister gates the attempt on the per-IP counter before anything
// else, the way a sensitive action should: the attempt counts even when
// the payload turns out to be invalid.
func (s *Server) handleRegister(c *fiber.Ctx) error {
	key := ratelimit.RegisterKey(clientIP(c))
	if _, err := s.limiter.Allow(c.UserContext(), key); err != nil {
		return s.respondError(c, err)
	}

	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
	}

	res, err := s.users.Register(c.UserContext(), req.Email, req.Name, req.Password)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toAuthResponse(res))
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
	}

	res, err := s.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(toAuthResponse(res))
}
