package handlers

import (
	"net/http"

	"github.com/wayra-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CacheHandler handles the periodic popular-post cache refresh. It is meant
// to be invoked by an external scheduler, not end users.
type CacheHandler struct {
	postRepository      repositories.PostRepository
	postCacheRepository repositories.PostCacheRepository
	threshold           int
}

// NewCacheHandler creates a new CacheHandler
func NewCacheHandler(postRepo repositories.PostRepository, cacheRepo repositories.PostCacheRepository, threshold int) *CacheHandler {
	return &CacheHandler{
		postRepository:      postRepo,
		postCacheRepository: cacheRepo,
		threshold:           threshold,
	}
}

// RegisterCacheRoutes registers cache-related routes
func (h *CacheHandler) RegisterCacheRoutes(g *echo.Group) {
	g.POST("/cache-posts", h.RefreshPopularPosts)
}

// RefreshPopularPosts scans every post and caches the ones whose reaction
// count meets the popularity threshold. The selected set is fully recomputed
// on each run; entries for posts that fell below the threshold simply age out
// with their TTL.
func (h *CacheHandler) RefreshPopularPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	cached := 0
	for i := range posts {
		if len(posts[i].Reactions) < h.threshold {
			continue
		}
		if err := h.postCacheRepository.SetPost(c.Request().Context(), &posts[i]); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		cached++
	}

	c.Logger().Infof("popular post cache refreshed: %d of %d posts cached", cached, len(posts))

	return message(c, http.StatusOK, "Posts cached successfully")
}
