package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/wayra-app/backend/internal/models"
)

func reactions(n int) []models.Reaction {
	out := make([]models.Reaction, n)
	for i := range out {
		out[i] = models.Reaction{UserID: uint(100 + i), UserName: "user", Reaction: "like"}
	}
	return out
}

func TestRefreshPopularPostsThreshold(t *testing.T) {
	popular := models.Post{ID: 1, UserID: 7, Content: "popular", Reactions: reactions(5)}
	unpopular := models.Post{ID: 2, UserID: 7, Content: "quiet", Reactions: reactions(4)}

	postRepo := newStubPostRepository(popular, unpopular)
	cacheRepo := newStubPostCacheRepository()
	handler := NewCacheHandler(postRepo, cacheRepo, 5)

	c, rec := newTestContext(t, http.MethodPost, "/cache-posts", nil)
	if err := handler.RefreshPopularPosts(c); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if _, ok := cacheRepo.cached[1]; !ok {
		t.Fatalf("post with 5 reactions should be cached")
	}
	if _, ok := cacheRepo.cached[2]; ok {
		t.Fatalf("post with 4 reactions should not be cached")
	}
}

func TestGetPostPrefersCache(t *testing.T) {
	live := models.Post{ID: 1, UserID: 7, Content: "live version", Reactions: reactions(5)}
	postRepo := newStubPostRepository(live)
	cacheRepo := newStubPostCacheRepository()

	stale := clonePost(live)
	stale.Content = "cached version"
	cacheRepo.cached[1] = stale

	handler := NewPostHandler(postRepo, &stubPostRecordRepository{}, newStubDestinationRepository(), cacheRepo)

	c, rec := newTestContext(t, http.MethodGet, "/posts/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.GetPost(c); err != nil {
		t.Fatalf("get post: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	// The cached copy wins even when it lags the document store
	if body := rec.Body.String(); !strings.Contains(body, "cached version") {
		t.Fatalf("expected cached content, got %s", body)
	}
}

func TestGetPostFallsThroughToStore(t *testing.T) {
	live := models.Post{ID: 2, UserID: 7, Content: "only in store", Reactions: reactions(4)}
	postRepo := newStubPostRepository(live)
	handler := NewPostHandler(postRepo, &stubPostRecordRepository{}, newStubDestinationRepository(), newStubPostCacheRepository())

	c, rec := newTestContext(t, http.MethodGet, "/posts/2", nil)
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := handler.GetPost(c); err != nil {
		t.Fatalf("get post: %v", err)
	}
	if body := rec.Body.String(); !strings.Contains(body, "only in store") {
		t.Fatalf("expected live content, got %s", body)
	}
}

func TestGetPostMissingEverywhere(t *testing.T) {
	handler := NewPostHandler(newStubPostRepository(), &stubPostRecordRepository{}, newStubDestinationRepository(), newStubPostCacheRepository())

	c, _ := newTestContext(t, http.MethodGet, "/posts/404", nil)
	c.SetParamNames("id")
	c.SetParamValues("404")

	err := handler.GetPost(c)
	if code := httpErrorCode(t, err); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}
