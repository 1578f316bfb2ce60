package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"slices"
	"strconv"
	"testing"

	"github.com/wayra-app/backend/internal/models"
	"github.com/wayra-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// In-memory repository stubs. They hand out copies so tests can assert that
// failed requests left the stored documents untouched.

func clonePost(p models.Post) models.Post {
	p.Media = slices.Clone(p.Media)
	p.Destinations = slices.Clone(p.Destinations)
	p.Reactions = slices.Clone(p.Reactions)
	p.Comments = cloneComments(p.Comments)
	return p
}

func cloneDestination(d models.Destination) models.Destination {
	d.Media = slices.Clone(d.Media)
	d.Reactions = slices.Clone(d.Reactions)
	d.Comments = cloneComments(d.Comments)
	return d
}

func cloneComments(comments []models.Comment) []models.Comment {
	cloned := slices.Clone(comments)
	for i := range cloned {
		cloned[i].Reactions = slices.Clone(cloned[i].Reactions)
	}
	return cloned
}

type stubPostRepository struct {
	posts map[int]models.Post
}

func newStubPostRepository(posts ...models.Post) *stubPostRepository {
	s := &stubPostRepository{posts: make(map[int]models.Post)}
	for _, p := range posts {
		s.posts[p.ID] = clonePost(p)
	}
	return s
}

func (s *stubPostRepository) CreatePost(_ context.Context, post *models.Post) error {
	s.posts[post.ID] = clonePost(*post)
	return nil
}

func (s *stubPostRepository) GetPostByID(_ context.Context, id int) (*models.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cloned := clonePost(p)
	return &cloned, nil
}

func (s *stubPostRepository) GetAllPosts(_ context.Context) ([]models.Post, error) {
	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, clonePost(p))
	}
	return posts, nil
}

func (s *stubPostRepository) ReplacePost(_ context.Context, post *models.Post) error {
	stored, ok := s.posts[post.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if stored.Version != post.Version {
		return repositories.ErrVersionConflict
	}
	post.Version++
	s.posts[post.ID] = clonePost(*post)
	return nil
}

func (s *stubPostRepository) DeletePost(_ context.Context, id int) error {
	if _, ok := s.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

type stubDestinationRepository struct {
	destinations map[int]models.Destination
}

func newStubDestinationRepository(destinations ...models.Destination) *stubDestinationRepository {
	s := &stubDestinationRepository{destinations: make(map[int]models.Destination)}
	for _, d := range destinations {
		s.destinations[d.ID] = cloneDestination(d)
	}
	return s
}

func (s *stubDestinationRepository) CreateDestination(_ context.Context, destination *models.Destination) error {
	s.destinations[destination.ID] = cloneDestination(*destination)
	return nil
}

func (s *stubDestinationRepository) GetDestinationByID(_ context.Context, id int) (*models.Destination, error) {
	d, ok := s.destinations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cloned := cloneDestination(d)
	return &cloned, nil
}

func (s *stubDestinationRepository) GetDestinationByName(_ context.Context, name string) (*models.Destination, error) {
	for _, d := range s.destinations {
		if d.Name == name {
			cloned := cloneDestination(d)
			return &cloned, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *stubDestinationRepository) GetAllDestinations(_ context.Context) ([]models.Destination, error) {
	destinations := make([]models.Destination, 0, len(s.destinations))
	for _, d := range s.destinations {
		destinations = append(destinations, cloneDestination(d))
	}
	return destinations, nil
}

func (s *stubDestinationRepository) ReplaceDestination(_ context.Context, destination *models.Destination) error {
	stored, ok := s.destinations[destination.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if stored.Version != destination.Version {
		return repositories.ErrVersionConflict
	}
	destination.Version++
	s.destinations[destination.ID] = cloneDestination(*destination)
	return nil
}

func (s *stubDestinationRepository) DeleteDestination(_ context.Context, id int) error {
	if _, ok := s.destinations[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.destinations, id)
	return nil
}

func (s *stubDestinationRepository) NextDestinationID(_ context.Context) (int, error) {
	next := 1
	for id := range s.destinations {
		if id >= next {
			next = id + 1
		}
	}
	return next, nil
}

type stubPostCacheRepository struct {
	cached map[int]models.Post
}

func newStubPostCacheRepository() *stubPostCacheRepository {
	return &stubPostCacheRepository{cached: make(map[int]models.Post)}
}

func (s *stubPostCacheRepository) SetPost(_ context.Context, post *models.Post) error {
	s.cached[post.ID] = clonePost(*post)
	return nil
}

func (s *stubPostCacheRepository) GetPost(_ context.Context, id int) (*models.Post, error) {
	p, ok := s.cached[id]
	if !ok {
		return nil, repositories.ErrCacheMiss
	}
	cloned := clonePost(p)
	return &cloned, nil
}

type stubPostRecordRepository struct {
	nextID int
}

func (s *stubPostRecordRepository) CreateRecord(_ uint) (int, error) {
	s.nextID++
	return s.nextID, nil
}

func (s *stubPostRecordRepository) DeleteRecord(_ int) error { return nil }

type stubTripGoalRepository struct {
	tripGoals map[int]models.TripGoal
}

func newStubTripGoalRepository(tripGoals ...models.TripGoal) *stubTripGoalRepository {
	s := &stubTripGoalRepository{tripGoals: make(map[int]models.TripGoal)}
	for _, tg := range tripGoals {
		s.tripGoals[tg.ID] = tg
	}
	return s
}

func (s *stubTripGoalRepository) CreateTripGoal(_ context.Context, tripGoal *models.TripGoal) error {
	s.tripGoals[tripGoal.ID] = *tripGoal
	return nil
}

func (s *stubTripGoalRepository) GetTripGoalByID(_ context.Context, id int) (*models.TripGoal, error) {
	tg, ok := s.tripGoals[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cloned := tg
	cloned.Followers = slices.Clone(tg.Followers)
	cloned.Destinations = slices.Clone(tg.Destinations)
	return &cloned, nil
}

func (s *stubTripGoalRepository) GetTripGoalByUserID(_ context.Context, userID uint) (*models.TripGoal, error) {
	for _, tg := range s.tripGoals {
		if tg.UserID == userID {
			cloned := tg
			return &cloned, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *stubTripGoalRepository) GetTripGoalsByIDs(_ context.Context, ids []int) ([]models.TripGoal, error) {
	tripGoals := make([]models.TripGoal, 0, len(ids))
	for _, id := range ids {
		if tg, ok := s.tripGoals[id]; ok {
			tripGoals = append(tripGoals, tg)
		}
	}
	return tripGoals, nil
}

func (s *stubTripGoalRepository) ReplaceTripGoal(_ context.Context, tripGoal *models.TripGoal) error {
	if _, ok := s.tripGoals[tripGoal.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.tripGoals[tripGoal.ID] = *tripGoal
	return nil
}

func (s *stubTripGoalRepository) DeleteTripGoal(_ context.Context, id int) error {
	if _, ok := s.tripGoals[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.tripGoals, id)
	return nil
}

func (s *stubTripGoalRepository) NextTripGoalID(_ context.Context) (int, error) {
	next := 1
	for id := range s.tripGoals {
		if id >= next {
			next = id + 1
		}
	}
	return next, nil
}

type stubFollowRepository struct {
	rows      map[int][]uint
	createErr error
	deleteErr error
}

func newStubFollowRepository() *stubFollowRepository {
	return &stubFollowRepository{rows: make(map[int][]uint)}
}

func (s *stubFollowRepository) CreateFollow(tripGoalID int, userID uint) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.rows[tripGoalID] = append(s.rows[tripGoalID], userID)
	return nil
}

func (s *stubFollowRepository) DeleteFollow(tripGoalID int, userID uint) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	kept := s.rows[tripGoalID][:0]
	for _, id := range s.rows[tripGoalID] {
		if id != userID {
			kept = append(kept, id)
		}
	}
	s.rows[tripGoalID] = kept
	return nil
}

func (s *stubFollowRepository) GetFollowedTripGoalIDs(userID uint) ([]int, error) {
	var ids []int
	for tripGoalID, users := range s.rows {
		for _, id := range users {
			if id == userID {
				ids = append(ids, tripGoalID)
			}
		}
	}
	return ids, nil
}

type stubUserRepository struct {
	nextSub uint
	users   map[uint]models.User
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{users: make(map[uint]models.User)}
}

func (s *stubUserRepository) CreateUser(user *models.User) error {
	s.nextSub++
	user.Sub = s.nextSub
	s.users[user.Sub] = *user
	return nil
}

func (s *stubUserRepository) GetUserBySub(sub uint) (*models.User, error) {
	u, ok := s.users[sub]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (s *stubUserRepository) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			cloned := u
			return &cloned, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type stubSessionRepository struct {
	nextID   int
	sessions map[string]uint
	touched  map[string]int
}

func newStubSessionRepository() *stubSessionRepository {
	return &stubSessionRepository{
		sessions: make(map[string]uint),
		touched:  make(map[string]int),
	}
}

func (s *stubSessionRepository) CreateSession(_ context.Context, userSub uint) (string, error) {
	s.nextID++
	sessionID := "session-" + strconv.Itoa(s.nextID)
	s.sessions[sessionID] = userSub
	return sessionID, nil
}

func (s *stubSessionRepository) ValidateSession(_ context.Context, sessionID string) (uint, error) {
	sub, ok := s.sessions[sessionID]
	if !ok {
		return 0, repositories.ErrSessionInvalid
	}
	return sub, nil
}

func (s *stubSessionRepository) TouchSession(_ context.Context, sessionID string) error {
	if _, ok := s.sessions[sessionID]; !ok {
		return repositories.ErrSessionInvalid
	}
	s.touched[sessionID]++
	return nil
}

func (s *stubSessionRepository) DestroySession(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

// newTestContext builds an echo context carrying an optional JSON body
func newTestContext(t *testing.T, method, target string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	return c, rec
}

func asActor(c echo.Context, actor models.Actor) {
	c.Set("actor", actor)
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}
