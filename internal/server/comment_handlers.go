package server

import (
	"chika/internal/middleware"
	"chika/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := param(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req service.CreateCommentInput
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	comment, err := s.commentService.CreateComment(c.UserContext(), middleware.ViewerFrom(c), postID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PUT /api/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := param(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req service.UpdateCommentInput
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	comment, err := s.commentService.UpdateComment(c.UserContext(), middleware.ViewerFrom(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := param(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.commentService.DeleteComment(c.UserContext(), middleware.ViewerFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
