package server

import (
	"chika/internal/middleware"
	"chika/internal/models"
	"chika/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req service.CreatePostInput
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	post, err := s.postService.CreatePost(c.UserContext(), middleware.ViewerFrom(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := param(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req service.UpdatePostInput
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	post, err := s.postService.UpdatePost(c.UserContext(), middleware.ViewerFrom(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := param(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.postService.DeletePost(c.UserContext(), middleware.ViewerFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type voteRequest struct {
	Direction string `json:"direction"`
}

// VotePost handles POST /api/posts/:id/vote
func (s *Server) VotePost(c *fiber.Ctx) error {
	return s.vote(c, models.TargetPost)
}

// VoteComment handles POST /api/comments/:id/vote
func (s *Server) VoteComment(c *fiber.Ctx) error {
	return s.vote(c, models.TargetComment)
}

func (s *Server) vote(c *fiber.Ctx, targetType string) error {
	id, err := param(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req voteRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	result, err := s.voteService.Vote(c.UserContext(), middleware.ViewerFrom(c), targetType, id, req.Direction)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
