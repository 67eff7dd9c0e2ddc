// Package middleware provides authentication, rate limiting, logging and tracing middleware for the application.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chika/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// RoleModerator is the role claim that grants moderation rights.
const RoleModerator = "moderator"

const viewerLocal = "viewer"

// ViewerClaims is the token payload issued by the identity provider.
type ViewerClaims struct {
	Name      string `json:"name"`
	Anonymous bool   `json:"anonymous,omitempty"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ParseViewer validates an HS256 token and returns the viewer it identifies.
func ParseViewer(secret, tokenString string) (models.Viewer, error) {
	claims := &ViewerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Anonymous, err
	}
	if !token.Valid {
		return models.Anonymous, errors.New("invalid token")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return models.Anonymous, errors.New("token has no subject")
	}

	return models.Viewer{
		ID:        claims.Subject,
		Name:      claims.Name,
		Guest:     claims.Anonymous,
		Moderator: claims.Role == RoleModerator,
	}, nil
}

// IssueToken signs a token for v. It is used by tooling and tests; real
// tokens come from the identity provider.
func IssueToken(secret string, v models.Viewer, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := ViewerClaims{
		Name:      v.Name,
		Anonymous: v.Guest,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   v.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if v.Moderator {
		claims.Role = RoleModerator
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authenticate resolves the viewer of every request. A request without an
// Authorization header is served as models.Anonymous; a header that is
// present but malformed or invalid is rejected.
func Authenticate(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			c.Locals(viewerLocal, models.Anonymous)
			return c.Next()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid authorization header format"))
		}

		viewer, err := ParseViewer(secret, parts[1])
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		c.Locals(viewerLocal, viewer)
		c.Locals("userID", viewer.ID)
		// Sync to UserContext for logging and downstream services
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, viewer.ID))

		return c.Next()
	}
}

// ViewerRequired rejects requests that carry no identity.
// Must be placed after Authenticate.
func ViewerRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !ViewerFrom(c).SignedIn() {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}
		return c.Next()
	}
}

// ViewerFrom returns the viewer resolved by Authenticate.
func ViewerFrom(c *fiber.Ctx) models.Viewer {
	if v, ok := c.Locals(viewerLocal).(models.Viewer); ok {
		return v
	}
	return models.Anonymous
}
