package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/wayra-app/backend/internal/interactions"
	"github.com/wayra-app/backend/internal/models"
	"github.com/wayra-app/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository        repositories.PostRepository
	postRecordRepository  repositories.PostRecordRepository
	destinationRepository repositories.DestinationRepository
	postCacheRepository   repositories.PostCacheRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, recordRepo repositories.PostRecordRepository, destinationRepo repositories.DestinationRepository, cacheRepo repositories.PostCacheRepository) *PostHandler {
	return &PostHandler{
		postRepository:        postRepo,
		postRecordRepository:  recordRepo,
		destinationRepository: destinationRepo,
		postCacheRepository:   cacheRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPosts)
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// GetPosts retrieves all posts
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

// CreatePost creates a new post. The post id comes from the relational store;
// the document itself lives in MongoDB.
func (h *PostHandler) CreatePost(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Content, destinations, and media are required")
	}

	destinations, err := h.resolveDestinationRefs(c.Request().Context(), req.Destinations)
	if err != nil {
		return err
	}

	postID, err := h.postRecordRepository.CreateRecord(actor.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post := &models.Post{
		ID:           postID,
		UserID:       actor.ID,
		UserName:     actor.UserName,
		Content:      req.Content,
		Media:        req.Media,
		Destinations: destinations,
		Reactions:    []models.Reaction{},
		Comments:     []models.Comment{},
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return message(c, http.StatusCreated, "Post created successfully")
}

// GetPost retrieves a post, checking the popular-post cache before the
// document store. A cached copy may be stale; that is accepted.
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	cached, err := h.postCacheRepository.GetPost(c.Request().Context(), postID)
	if err == nil {
		return c.JSON(http.StatusOK, cached)
	}
	if !errors.Is(err, repositories.ErrCacheMiss) {
		c.Logger().Warnf("post cache lookup failed, falling back to store: %v", err)
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, post)
}

// UpdatePost edits a post's body. Only the creator may edit; edited content
// carries the edited marker.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.UserID != actor.ID {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Content != "" {
		post.Content = req.Content + interactions.EditedSuffix
	}
	if req.Media != nil {
		post.Media = req.Media
	}
	if req.Destinations != nil {
		destinations, err := h.resolveDestinationRefs(c.Request().Context(), req.Destinations)
		if err != nil {
			return err
		}
		post.Destinations = destinations
	}

	if err := persistPost(c, h.postRepository, post); err != nil {
		return err
	}

	return message(c, http.StatusOK, "Post edited successfully")
}

// DeletePost deletes a post. Only the creator may delete.
func (h *PostHandler) DeletePost(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.UserID != actor.ID {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.postRecordRepository.DeleteRecord(postID); err != nil {
		c.Logger().Errorf("post %d deleted from document store but relational row remains: %v", postID, err)
	}

	return message(c, http.StatusOK, "Post deleted successfully")
}

// resolveDestinationRefs validates that every destination id exists and
// returns the embedded (id, name) pairs for the post document
func (h *PostHandler) resolveDestinationRefs(ctx context.Context, ids []int) ([]models.DestinationRef, error) {
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
