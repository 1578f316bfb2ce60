package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/wayra-app/backend/internal/models"
	"github.com/wayra-app/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// TripGoalHandler handles HTTP requests related to trip goals
type TripGoalHandler struct {
	tripGoalRepository    repositories.TripGoalRepository
	followRepository      repositories.FollowRepository
	destinationRepository repositories.DestinationRepository
}

// NewTripGoalHandler creates a new TripGoalHandler
func NewTripGoalHandler(tripGoalRepo repositories.TripGoalRepository, followRepo repositories.FollowRepository, destinationRepo repositories.DestinationRepository) *TripGoalHandler {
	return &TripGoalHandler{
		tripGoalRepository:    tripGoalRepo,
		followRepository:      followRepo,
		destinationRepository: destinationRepo,
	}
}

// RegisterTripGoalRoutes registers trip-goal-related routes
func (h *TripGoalHandler) RegisterTripGoalRoutes(g *echo.Group) {
	g.GET("/trip-goals/followed", h.GetFollowedTripGoals)
	g.GET("/trip-goals/:user_id", h.GetTripGoals)
	g.POST("/trip-goals", h.CreateTripGoal)
	g.PUT("/trip-goals/:id", h.UpdateTripGoal)
	g.DELETE("/trip-goals/:id", h.DeleteTripGoal)
	g.POST("/trip-goals/:id/follow", h.FollowTripGoal)
	g.POST("/trip-goals/:id/unfollow", h.UnfollowTripGoal)
}

// GetTripGoals retrieves the trip goals created by a user
func (h *TripGoalHandler) GetTripGoals(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	tripGoal, err := h.tripGoalRepository.GetTripGoalByUserID(c.Request().Context(), uint(userID))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Trip goals not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, tripGoal)
}

// GetFollowedTripGoals lists the trip goals the actor follows. The relational
// join table is the authoritative follow record for this query.
func (h *TripGoalHandler) GetFollowedTripGoals(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	ids, err := h.followRepository.GetFollowedTripGoalIDs(actor.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	tripGoals, err := h.tripGoalRepository.GetTripGoalsByIDs(c.Request().Context(), ids)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, tripGoals)
}

// CreateTripGoal creates a trip goal for the actor
func (h *TripGoalHandler) CreateTripGoal(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	var req models.CreateTripGoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Destination IDs are required")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Destination IDs are required")
	}

	destinations, err := h.resolveDestinationRefs(c.Request().Context(), req.DestinationIDs)
	if err != nil {
		return err
	}

	tripGoalID, err := h.tripGoalRepository.NextTripGoalID(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	tripGoal := &models.TripGoal{
		ID:           tripGoalID,
		UserID:       actor.ID,
		UserName:     actor.UserName,
		Destinations: destinations,
		Followers:    []models.Follower{},
	}

	if err := h.tripGoalRepository.CreateTripGoal(c.Request().Context(), tripGoal); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return message(c, http.StatusCreated, "Trip goal added successfully")
}

// UpdateTripGoal replaces a trip goal's destinations. Only the creator may edit.
func (h *TripGoalHandler) UpdateTripGoal(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	tripGoal, err := h.fetchTripGoal(c)
	if err != nil {
		return err
	}

	if tripGoal.UserID != actor.ID {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	var req models.UpdateTripGoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Destination IDs are required")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Destination IDs are required")
	}

	destinations, err := h.resolveDestinationRefs(c.Request().Context(), req.DestinationIDs)
	if err != nil {
		return err
	}
	tripGoal.Destinations = destinations

	if err := h.tripGoalRepository.ReplaceTripGoal(c.Request().Context(), tripGoal); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return message(c, http.StatusOK, "Trip goal edited successfully")
}

// DeleteTripGoal deletes a trip goal. Only the creator may delete.
func (h *TripGoalHandler) DeleteTripGoal(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	tripGoal, err := h.fetchTripGoal(c)
	if err != nil {
		return err
	}

	if tripGoal.UserID != actor.ID {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	if err := h.tripGoalRepository.DeleteTripGoal(c.Request().Context(), tripGoal.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return message(c, http.StatusOK, "Trip goal deleted successfully")
}

// FollowTripGoal adds the actor to a trip goal's followers. The follow lives
// in two stores: the embedded follower list and a relational join row. The
// two writes are not atomic; a failed second write rolls the first one back
// so a partial follow never looks like success.
func (h *TripGoalHandler) FollowTripGoal(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	tripGoal, err := h.fetchTripGoal(c)
	if err != nil {
		return err
	}

	for _, f := range tripGoal.Followers {
		if f.UserID == actor.ID {
			return echo.NewHTTPError(http.StatusBadRequest, "User already follows this trip goal")
		}
	}

	tripGoal.Followers = append(tripGoal.Followers, models.Follower{
		UserID:   actor.ID,
		UserName: actor.UserName,
	})

	if err := h.tripGoalRepository.ReplaceTripGoal(c.Request().Context(), tripGoal); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.followRepository.CreateFollow(tripGoal.ID, actor.ID); err != nil {
		c.Logger().Errorf("follow row write failed for trip goal %d, rolling back follower list: %v", tripGoal.ID, err)
		tripGoal.Followers = removeFollower(tripGoal.Followers, actor.ID)
		if rbErr := h.tripGoalRepository.ReplaceTripGoal(c.Request().Context(), tripGoal); rbErr != nil {
			c.Logger().Errorf("rollback failed, stores are inconsistent for trip goal %d: %v", tripGoal.ID, rbErr)
			return echo.NewHTTPError(http.StatusInternalServerError, "Follow partially applied")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to follow trip goal")
	}

	return message(c, http.StatusOK, "Trip goal followed successfully")
}

// UnfollowTripGoal removes the actor from a trip goal's followers, with the
// same two-store compensation as FollowTripGoal.
func (h *TripGoalHandler) UnfollowTripGoal(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	tripGoal, err := h.fetchTripGoal(c)
	if err != nil {
		return err
	}

	var following bool
	for _, f := range tripGoal.Followers {
		if f.UserID == actor.ID {
			following = true
			break
		}
	}
	if !following {
		return echo.NewHTTPError(http.StatusBadRequest, "User does not follow this trip goal")
	}

	tripGoal.Followers = removeFollower(tripGoal.Followers, actor.ID)

	if err := h.tripGoalRepository.ReplaceTripGoal(c.Request().Context(), tripGoal); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.followRepository.DeleteFollow(tripGoal.ID, actor.ID); err != nil {
		c.Logger().Errorf("follow row delete failed for trip goal %d, restoring follower list: %v", tripGoal.ID, err)
		tripGoal.Followers = append(tripGoal.Followers, models.Follower{UserID: actor.ID, UserName: actor.UserName})
		if rbErr := h.tripGoalRepository.ReplaceTripGoal(c.Request().Context(), tripGoal); rbErr != nil {
			c.Logger().Errorf("rollback failed, stores are inconsistent for trip goal %d: %v", tripGoal.ID, rbErr)
			return echo.NewHTTPError(http.StatusInternalServerError, "Unfollow partially applied")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to unfollow trip goal")
	}

	return message(c, http.StatusOK, "Trip goal unfollowed successfully")
}

func (h *TripGoalHandler) fetchTripGoal(c echo.Context) (*models.TripGoal, error) {
	tripGoalID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid trip goal ID")
	}

	tripGoal, err := h.tripGoalRepository.GetTripGoalByID(c.Request().Context(), tripGoalID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Trip goal not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return tripGoal, nil
}

func (h *TripGoalHandler) resolveDestinationRefs(ctx context.Context, ids []int) ([]models.DestinationRef, error) {
	refs := make([]models.DestinationRef, 0, len(ids))
	for _, id := range ids {
		destination, err := h.destinationRepository.GetDestinationByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Destination with id %d not found", id))
			}
			return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		refs = append(refs, models.DestinationRef{ID: destination.ID, Name: destination.Name})
	}
	return refs, nil
}

func removeFollower(followers []models.Follower, userID uint) []models.Follower {
	kept := make([]models.Follower, 0, len(followers))
	for _, f := range followers {
		if f.UserID != userID {
			kept = append(kept, f)
		}
	}
	return kept
}
