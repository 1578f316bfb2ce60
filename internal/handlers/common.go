package handlers

import (
	"errors"
	"net/http"

	"github.com/wayra-app/backend/internal/models"
	"github.com/wayra-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// getActor returns the authenticated actor resolved by the session middleware
func getActor(c echo.Context) (models.Actor, error) {
	actor, ok := c.Get("actor").(models.Actor)
	if !ok {
		return models.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return actor, nil
}

// message writes a {"message": ...} success body
func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}

// persistPost writes a mutated post document back whole, mapping store
// errors to HTTP ones
func persistPost(c echo.Context, repo repositories.PostRepository, post *models.Post) error {
	err := repo.ReplacePost(c.Request().Context(), post)
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrVersionConflict) {
		return echo.NewHTTPError(http.StatusConflict, "Post was modified concurrently, please retry")
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// persistDestination writes a mutated destination document back whole,
// mapping store errors to HTTP ones
func persistDestination(c echo.Context, repo repositories.DestinationRepository, destination *models.Destination) error {
	err := repo.ReplaceDestination(c.Request().Context(), destination)
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrVersionConflict) {
		return echo.NewHTTPError(http.StatusConflict, "Destination was modified concurrently, please retry")
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Destination not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
