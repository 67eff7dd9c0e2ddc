package server

import (
	"chika/internal/middleware"
	"chika/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPreferences handles GET /api/me/preferences
func (s *Server) GetPreferences(c *fiber.Ctx) error {
	prefs, err := s.preferencesService.Get(c.UserContext(), middleware.ViewerFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(prefs)
}

// BlockAuthor handles POST /api/me/blocked/:name
func (s *Server) BlockAuthor(c *fiber.Ctx) error {
	name, err := param(c, "name")
	if err != nil {
		return respondError(c, err)
	}
	prefs, err := s.preferencesService.Block(c.UserContext(), middleware.ViewerFrom(c), name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(prefs)
}

// UnblockAuthor handles DELETE /api/me/blocked/:name
func (s *Server) UnblockAuthor(c *fiber.Ctx) error {
	name, err := param(c, "name")
	if err != nil {
		return respondError(c, err)
	}
	prefs, err := s.preferencesService.Unblock(c.UserContext(), middleware.ViewerFrom(c), name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(prefs)
}

// AddKeyword handles POST /api/me/keywords
func (s *Server) AddKeyword(c *fiber.Ctx) error {
	var req struct {
		Keyword string `json:"keyword"`
	}
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	prefs, err := s.preferencesService.AddKeyword(c.UserContext(), middleware.ViewerFrom(c), req.Keyword)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(prefs)
}

// RemoveKeyword handles DELETE /api/me/keywords/:keyword
func (s *Server) RemoveKeyword(c *fiber.Ctx) error {
	keyword, err := param(c, "keyword")
	if err != nil {
		return respondError(c, err)
	}
	prefs, err := s.preferencesService.RemoveKeyword(c.UserContext(), middleware.ViewerFrom(c), keyword)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(prefs)
}

// GetFavorites handles GET /api/me/favorites
func (s *Server) GetFavorites(c *fiber.Ctx) error {
	page, err := s.favoriteService.ListFavorites(c.UserContext(), middleware.ViewerFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// AddFavorite handles POST /api/posts/:id/favorite
func (s *Server) AddFavorite(c *fiber.Ctx) error {
	id, err := param(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.favoriteService.AddFavorite(c.UserContext(), middleware.ViewerFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveFavorite handles DELETE /api/posts/:id/favorite
func (s *Server) RemoveFavorite(c *fiber.Ctx) error {
	id, err := param(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.favoriteService.RemoveFavorite(c.UserContext(), middleware.ViewerFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateReport handles POST /api/reports
func (s *Server) CreateReport(c *fiber.Ctx) error {
	var req service.CreateReportInput
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	report, err := s.reportService.CreateReport(c.UserContext(), middleware.ViewerFrom(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}
