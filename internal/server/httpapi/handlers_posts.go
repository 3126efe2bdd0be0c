package httpapi

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dkowalski/quoteshelf/internal/common"
	"github.com/dkowalski/quoteshelf/internal/server/services"
)

type postRequest struct {
	Content string  `json:"content"`
	Author  string  `json:"author"`
	Source  *string `json:"source"`
	Private bool    `json:"private"`
}

func (r postRequest) input() services.PostInput {
	return services.PostInput{
		Content: r.Content,
		Author:  r.Author,
		Source:  r.Source,
		Private: r.Private,
	}
}

func parseID(c *fiber.Ctx, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id", common.ErrValidation)
	}
	return id, nil
}

// handleListPosts personalizes the listing when a credential is presented
// but never requires one: guests get the public view.
func (s *Server) handleListPosts(c *fiber.Ctx) error {
	result := s.verifier.Verify(bearerToken(c))

	posts, err := s.posts.List(c.UserContext(), result.Viewer())
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(toPostDTOs(posts))
}

func (s *Server) handleGetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}

	result := s.verifier.Verify(bearerToken(c))

	post, err := s.posts.Get(c.UserContext(), result.Viewer(), id)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(toPostDTO(post))
}

func (s *Server) handleCreatePost(c *fiber.Ctx) error {
	userID, err := s.verifier.RequireAuth(bearerToken(c))
	if err != nil {
		return s.respondError(c, err)
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
	}

	post, err := s.posts.Create(c.UserContext(), userID, req.input())
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toPostDTO(post))
}

func (s *Server) handleUpdatePost(c *fiber.Ctx) error {
	userID, err := s.verifier.RequireAuth(bearerToken(c))
	if err != nil {
		return s.respondError(c, err)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
	}

	post, err := s.posts.Update(c.UserContext(), userID, id, req.input())
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(toPostDTO(post))
}

func (s *Server) handleDeletePost(c *fiber.Ctx) error {
	userID, err := s.verifier.RequireAuth(bearerToken(c))
	if err != nil {
		return s.respondError(c, err)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}

	if err := s.posts.Delete(c.UserContext(), userID, id); err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// handleFilters serves the facet sidebar under the same visibility scope as
// the listing endpoint.
func (s *Server) handleFilters(c *fiber.Ctx) error {
	result := s.verifier.Verify(bearerToken(c))

	facets, err := s.posts.Facets(c.UserContext(), result.Viewer())
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(toFiltersResponse(facets))
}
