package httpapi

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/dkowalski/quoteshelf/internal/common"
)

type favoriteRequest struct {
	PostID int64 `json:"postId"`
}

func (s *Server) handleListFavorites(c *fiber.Ctx) error {
	userID, err := s.verifier.RequireAuth(bearerToken(c))
	if err != nil {
		return s.respondError(c, err)
	}

	posts, err := s.favorites.List(c.UserContext(), userID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(toPostDTOs(posts))
}

func (s *Server) handleAddFavorite(c *fiber.Ctx) error {
	userID, err := s.verifier.RequireAuth(bearerToken(c))
	if err != nil {
		return s.respondError(c, err)
	}

	var req favoriteRequest
	if err := c.BodyParser(&req); err != nil || req.PostID <= 0 {
		return s.respondError(c, fmt.Errorf("%w: invalid post id", common.ErrValidation))
	}

	if err := s.favorites.Add(c.UserContext(), userID, req.PostID); err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

func (s *Server) handleRemoveFavorite(c *fiber.Ctx) error {
	userID, err := s.verifier.RequireAuth(bearerToken(c))
	if err != nil {
		return s.respondError(c, err)
	}

	id, err := parseID(c, "postID")
	if err != nil {
		return s.respondError(c, err)
	}

	if err := s.favorites.Remove(c.UserContext(), userID, id); err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
