package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/wayra-app/backend/internal/models"
)

func newTripGoalFixture() (*stubTripGoalRepository, *stubFollowRepository, *TripGoalHandler) {
	tripGoalRepo := newStubTripGoalRepository(models.TripGoal{
		ID:       1,
		UserID:   7,
		UserName: "ana",
		Destinations: []models.DestinationRef{
			{ID: 3, Name: "Paris"},
		},
		Followers: []models.Follower{},
	})
	followRepo := newStubFollowRepository()
	destinationRepo := newStubDestinationRepository(models.Destination{
		ID: 3, UserID: 7, UserName: "ana", Name: "Paris",
	})
	return tripGoalRepo, followRepo, NewTripGoalHandler(tripGoalRepo, followRepo, destinationRepo)
}

func followContext(t *testing.T, goalID string, actor models.Actor) echo.Context {
	t.Helper()
	c, _ := newTestContext(t, http.MethodPost, "/trip-goals/"+goalID+"/follow", nil)
	c.SetParamNames("id")
	c.SetParamValues(goalID)
	asActor(c, actor)
	return c
}

func TestCreateTripGoal(t *testing.T) {
	tripGoalRepo, _, handler := newTripGoalFixture()

	c, rec := newTestContext(t, http.MethodPost, "/trip-goals", models.CreateTripGoalRequest{DestinationIDs: []int{3}})
	asActor(c, models.Actor{ID: 9, UserName: "carla"})

	if err := handler.CreateTripGoal(c); err != nil {
		t.Fatalf("create trip goal: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	stored, ok := tripGoalRepo.tripGoals[2]
	if !ok {
		t.Fatalf("trip goal not persisted: %+v", tripGoalRepo.tripGoals)
	}
	if stored.UserID != 9 || len(stored.Destinations) != 1 || stored.Destinations[0].Name != "Paris" {
		t.Fatalf("wrong trip goal stored: %+v", stored)
	}
	if stored.Followers == nil {
		t.Fatalf("followers must start empty, not nil")
	}
}

func TestCreateTripGoalWithoutDestinations(t *testing.T) {
	_, _, handler := newTripGoalFixture()

	c, _ := newTestContext(t, http.MethodPost, "/trip-goals", models.CreateTripGoalRequest{})
	asActor(c, models.Actor{ID: 9, UserName: "carla"})

	err := handler.CreateTripGoal(c)
	if code := httpErrorCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

// A follow lands in both stores: the embedded follower list and the
// relational join row.
func TestFollowTripGoal(t *testing.T) {
	tripGoalRepo, followRepo, handler := newTripGoalFixture()

	c := followContext(t, "1", models.Actor{ID: 8, UserName: "ben"})
	if err := handler.FollowTripGoal(c); err != nil {
		t.Fatalf("follow: %v", err)
	}

	stored := tripGoalRepo.tripGoals[1]
	if len(stored.Followers) != 1 || stored.Followers[0].UserID != 8 {
		t.Fatalf("follower not embedded: %+v", stored.Followers)
	}
	if rows := followRepo.rows[1]; len(rows) != 1 || rows[0] != 8 {
		t.Fatalf("follow row not written: %+v", followRepo.rows)
	}
}

func TestFollowTripGoalTwice(t *testing.T) {
	tripGoalRepo, _, handler := newTripGoalFixture()

	if err := handler.FollowTripGoal(followContext(t, "1", models.Actor{ID: 8, UserName: "ben"})); err != nil {
		t.Fatalf("first follow: %v", err)
	}

	err := handler.FollowTripGoal(followContext(t, "1", models.Actor{ID: 8, UserName: "ben"}))
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	if he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", he.Code)
	}
	if msg, _ := he.Message.(string); msg != "User already follows this trip goal" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
	if got := len(tripGoalRepo.tripGoals[1].Followers); got != 1 {
		t.Fatalf("expected a single follower entry, got %d", got)
	}
}

// When the relational write fails the embedded follower is rolled back, so
// the two stores agree that the follow never happened.
func TestFollowTripGoalRollsBackOnRowFailure(t *testing.T) {
	tripGoalRepo, followRepo, handler := newTripGoalFixture()
	followRepo.createErr = errors.New("connection reset")

	err := handler.FollowTripGoal(followContext(t, "1", models.Actor{ID: 8, UserName: "ben"}))
	if code := httpErrorCode(t, err); code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}

	if got := len(tripGoalRepo.tripGoals[1].Followers); got != 0 {
		t.Fatalf("follower left behind after rollback: %+v", tripGoalRepo.tripGoals[1].Followers)
	}
	if got := len(followRepo.rows[1]); got != 0 {
		t.Fatalf("follow row present after failed follow: %+v", followRepo.rows)
	}
}

func TestUnfollowTripGoal(t *testing.T) {
	tripGoalRepo, followRepo, handler := newTripGoalFixture()

	if err := handler.FollowTripGoal(followContext(t, "1", models.Actor{ID: 8, UserName: "ben"})); err != nil {
		t.Fatalf("follow: %v", err)
	}

	c, _ := newTestContext(t, http.MethodPost, "/trip-goals/1/unfollow", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	asActor(c, models.Actor{ID: 8, UserName: "ben"})

	if err := handler.UnfollowTripGoal(c); err != nil {
		t.Fatalf("unfollow: %v", err)
	}

	if got := len(tripGoalRepo.tripGoals[1].Followers); got != 0 {
		t.Fatalf("follower still embedded: %+v", tripGoalRepo.tripGoals[1].Followers)
	}
	if got := len(followRepo.rows[1]); got != 0 {
		t.Fatalf("follow row still present: %+v", followRepo.rows)
	}
}

func TestUnfollowWithoutFollowing(t *testing.T) {
	_, _, handler := newTripGoalFixture()

	c, _ := newTestContext(t, http.MethodPost, "/trip-goals/1/unfollow", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	asActor(c, models.Actor{ID: 8, UserName: "ben"})

	err := handler.UnfollowTripGoal(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	if he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", he.Code)
	}
	if msg, _ := he.Message.(string); msg != "User does not follow this trip goal" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestGetFollowedTripGoals(t *testing.T) {
	_, _, handler := newTripGoalFixture()

	if err := handler.FollowTripGoal(followContext(t, "1", models.Actor{ID: 8, UserName: "ben"})); err != nil {
		t.Fatalf("follow: %v", err)
	}

	c, rec := newTestContext(t, http.MethodGet, "/trip-goals/followed", nil)
	asActor(c, models.Actor{ID: 8, UserName: "ben"})

	if err := handler.GetFollowedTripGoals(c); err != nil {
		t.Fatalf("get followed: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Paris") {
		t.Fatalf("followed trip goal missing from response: %s", rec.Body.String())
	}
}

func TestGetFollowedTripGoalsEmpty(t *testing.T) {
	_, _, handler := newTripGoalFixture()

	c, rec := newTestContext(t, http.MethodGet, "/trip-goals/followed", nil)
	asActor(c, models.Actor{ID: 8, UserName: "ben"})

	if err := handler.GetFollowedTripGoals(c); err != nil {
		t.Fatalf("get followed: %v", err)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty list, got %s", body)
	}
}

func TestUpdateTripGoalForeignUserRejected(t *testing.T) {
	tripGoalRepo, _, handler := newTripGoalFixture()

	c, _ := newTestContext(t, http.MethodPut, "/trip-goals/1", models.UpdateTripGoalRequest{DestinationIDs: []int{3}})
	c.SetParamNames("id")
	c.SetParamValues("1")
	asActor(c, models.Actor{ID: 8, UserName: "ben"})

	err := handler.UpdateTripGoal(c)
	if code := httpErrorCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if got := tripGoalRepo.tripGoals[1].UserID; got != 7 {
		t.Fatalf("trip goal owner changed: %d", got)
	}
}
