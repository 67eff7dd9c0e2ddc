package server

import (
	"strings"

	"chika/internal/feed"
	"chika/internal/middleware"
	"chika/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/posts?category=&q=&sort=
// A search without an explicit sort is ordered by relevance.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	q := feed.FeedQuery{
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("q")),
	}
	if q.Category != "" && q.Category != models.AllCategories && !models.IsCategory(q.Category) {
		return respondError(c, models.NewValidationError("Invalid category"))
	}

	sortParam := c.Query("sort")
	if sortParam == "" && q.Search != "" {
		q.Sort = feed.SortRelevant
	} else {
		strategy, err := feed.ParseStrategy(sortParam)
		if err != nil {
			return respondError(c, models.NewValidationError(err.Error()))
		}
		q.Sort = strategy
	}

	page, err := s.feedService.Feed(c.UserContext(), middleware.ViewerFrom(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// GetThread handles GET /api/posts/:id
func (s *Server) GetThread(c *fiber.Ctx) error {
	id, err := param(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	page, err := s.feedService.Thread(c.UserContext(), middleware.ViewerFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// GetGallery handles GET /api/posts/:id/gallery
func (s *Server) GetGallery(c *fiber.Ctx) error {
	id, err := param(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	page, err := s.feedService.Gallery(c.UserContext(), middleware.ViewerFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}
