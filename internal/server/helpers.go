package server

import (
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"chika/internal/middleware"
	"chika/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError writes err with the status its code maps to. Errors that
// are not AppErrors are logged and reported as internal errors.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
		err = models.NewInternalError(err)
	}
	return models.RespondWithError(c, models.StatusFor(err), err)
}

// errorHandler renders errors that escape handlers, such as unknown routes.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
	}
	return respondError(c, err)
}

// bindJSON parses the request body into dest.
func bindJSON(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		return models.NewValidationError("Invalid request body")
	}
	return nil
}

// param returns a decoded, trimmed route parameter or a validation error naming it.
func param(c *fiber.Ctx, name string) (string, error) {
	raw, err := url.PathUnescape(c.Params(name))
	if err != nil {
		return "", models.NewValidationError("Invalid " + name)
	}
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", models.NewValidationError("Missing " + name)
	}
	return v, nil
}
