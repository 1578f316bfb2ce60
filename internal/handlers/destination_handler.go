package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/wayra-app/backend/internal/models"
	"github.com/wayra-app/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// DestinationHandler handles HTTP requests related to destinations
type DestinationHandler struct {
	destinationRepository repositories.DestinationRepository
}

// NewDestinationHandler creates a new DestinationHandler
func NewDestinationHandler(destinationRepo repositories.DestinationRepository) *DestinationHandler {
	return &DestinationHandler{destinationRepository: destinationRepo}
}

// RegisterDestinationRoutes registers destination-related routes
func (h *DestinationHandler) RegisterDestinationRoutes(g *echo.Group) {
	g.GET("/destinations", h.GetDestinations)
	g.POST("/destinations", h.CreateDestination)
	g.PUT("/destinations/:id", h.UpdateDestination)
	g.DELETE("/destinations/:id", h.DeleteDestination)
}

// GetDestinations retrieves all destinations
func (h *DestinationHandler) GetDestinations(c echo.Context) error {
	destinations, err := h.destinationRepository.GetAllDestinations(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, destinations)
}

// CreateDestination adds a destination. Names are globally unique.
func (h *DestinationHandler) CreateDestination(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	var req models.CreateDestinationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}

	// Unique-name check
	_, err = h.destinationRepository.GetDestinationByName(c.Request().Context(), req.Name)
	if err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Destination name must be unique")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	destinationID, err := h.destinationRepository.NextDestinationID(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	destination := &models.Destination{
		ID:          destinationID,
		UserID:      actor.ID,
		UserName:    actor.UserName,
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		Country:     req.Country,
		Media:       req.Media,
		Reactions:   []models.Reaction{},
		Comments:    []models.Comment{},
	}

	if err := h.destinationRepository.CreateDestination(c.Request().Context(), destination); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return message(c, http.StatusCreated, "Destination added successfully")
}

// UpdateDestination edits a destination. Only the creator may edit.
func (h *DestinationHandler) UpdateDestination(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	destinationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid destination ID")
	}

	destination, err := h.destinationRepository.GetDestinationByID(c.Request().Context(), destinationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Destination not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if destination.UserID != actor.ID {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	var req models.UpdateDestinationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Name != "" {
		destination.Name = req.Name
	}
	if req.Description != "" {
		destination.Description = req.Description
	}
	if req.City != "" {
		destination.City = req.City
	}
	if req.Country != "" {
		destination.Country = req.Country
	}
	if req.Media != nil {
		destination.Media = req.Media
	}

	if err := persistDestination(c, h.destinationRepository, destination); err != nil {
		return err
	}

	return message(c, http.StatusOK, "Destination edited successfully")
}

// DeleteDestination deletes a destination. Only the creator may delete.
func (h *DestinationHandler) DeleteDestination(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	destinationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid destination ID")
	}

	destination, err := h.destinationRepository.GetDestinationByID(c.Request().Context(), destinationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Destination not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if destination.UserID != actor.ID {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	if err := h.destinationRepository.DeleteDestination(c.Request().Context(), destinationID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return message(c, http.StatusOK, "Destination deleted successfully")
}
