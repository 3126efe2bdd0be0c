package httpapi

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// authCookie is the fallback credential slot for browser clients that do not
// set the Authorization header.
const authCookie = "auth_token"

// bearerToken extracts the presented credential: the Authorization header
// ("Bearer <token>") first, the named cookie second. Returns "" when no
// credential is presented, which is an ordinary state for read endpoints.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimPrefix(header, "Bearer ")
		}
		return header
	}
	return c.Cookies(authCookie)
}

// clientIP derives the client network identity for rate limiting, honoring
// X-Forwarded-For when a proxy sits in front.
func clientIP(c *fiber.Ctx) string {
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		if idx := strings.IndexByte(forwarded, ','); idx > 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}
	return c.IP()
}

// requestLogger tags every request with a generated id and logs method,
// path, status, and duration.
func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := uuid.NewString()
		c.Locals("request_id", requestID)

		start := time.Now()
		err := c.Next()

		s.logger.Info(c.UserContext(), "request",
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start).String(),
		)

		return err
	}
}
