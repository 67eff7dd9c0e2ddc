package server

import (
	"chika/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/users/:name
func (s *Server) GetProfile(c *fiber.Ctx) error {
	name, err := param(c, "name")
	if err != nil {
		return respondError(c, err)
	}
	profile, err := s.profileService.Profile(c.UserContext(), middleware.ViewerFrom(c), name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// GetAuthorPosts handles GET /api/users/:name/posts
func (s *Server) GetAuthorPosts(c *fiber.Ctx) error {
	name, err := param(c, "name")
	if err != nil {
		return respondError(c, err)
	}
	page, err := s.profileService.Posts(c.UserContext(), middleware.ViewerFrom(c), name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// GetAuthorComments handles GET /api/users/:name/comments
func (s *Server) GetAuthorComments(c *fiber.Ctx) error {
	name, err := param(c, "name")
	if err != nil {
		return respondError(c, err)
	}
	page, err := s.profileService.Comments(c.UserContext(), middleware.ViewerFrom(c), name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// GetFollowing handles GET /api/me/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	follows, err := s.followService.Following(c.UserContext(), middleware.ViewerFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"following": follows})
}

// FollowAuthor handles POST /api/me/following/:name
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	name, err := param(c, "name")
	if err != nil {
		return respondError(c, err)
	}
	follows, err := s.followService.Follow(c.UserContext(), middleware.ViewerFrom(c), name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"following": follows})
}

// UnfollowAuthor handles DELETE /api/me/following/:name
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	name, err := param(c, "name")
	if err != nil {
		return respondError(c, err)
	}
	follows, err := s.followService.Unfollow(c.UserContext(), middleware.ViewerFrom(c), name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"following": follows})
}
