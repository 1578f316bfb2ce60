package middleware

import (
	"net/http"

	"github.com/wayra-app/backend/internal/models"
	"github.com/wayra-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// SessionAuth validates the opaque session token from the Session-ID header,
// resolves the acting user once, and stores it in the request context. Every
// authenticated request slides the session TTL forward.
func SessionAuth(sessionRepo repositories.SessionRepository, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := c.Request().Header.Get("Session-ID")
			if sessionID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Session-ID header")
			}

			ctx := c.Request().Context()
			userSub, err := sessionRepo.ValidateSession(ctx, sessionID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Session is invalid")
			}

			user, err := userRepo.GetUserBySub(userSub)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Session is invalid")
			}

			// Sliding expiry: a failed reset is not fatal for the request
			if err := sessionRepo.TouchSession(ctx, sessionID); err != nil {
				c.Logger().Warnf("failed to touch session: %v", err)
			}

			c.Set("actor", models.Actor{ID: user.Sub, UserName: user.Username})
			c.Set("sessionID", sessionID)

			return next(c)
		}
	}
}
