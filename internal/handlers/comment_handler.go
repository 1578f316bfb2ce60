package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/wayra-app/backend/internal/interactions"
	"github.com/wayra-app/backend/internal/models"
	"github.com/wayra-app/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles commenting on posts and destinations
type CommentHandler struct {
	postRepository        repositories.PostRepository
	destinationRepository repositories.DestinationRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(postRepo repositories.PostRepository, destinationRepo repositories.DestinationRepository) *CommentHandler {
	return &CommentHandler{
		postRepository:        postRepo,
		destinationRepository: destinationRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateCommentOnPost)
	g.PUT("/posts/:id/comments/:comment_id", h.UpdateCommentOnPost)
	g.DELETE("/posts/:id/comments/:comment_id", h.DeleteCommentOnPost)
	g.POST("/destinations/:id/comments", h.CreateCommentOnDestination)
	g.PUT("/destinations/:id/comments/:comment_id", h.UpdateCommentOnDestination)
	g.DELETE("/destinations/:id/comments/:comment_id", h.DeleteCommentOnDestination)
}

// CreateCommentOnPost appends a comment to a post
func (h *CommentHandler) CreateCommentOnPost(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	text, err := bindCommentText(c)
	if err != nil {
		return err
	}

	post, err := h.fetchPost(c)
	if err != nil {
		return err
	}

	comments, err := interactions.AddComment(post.Comments, actor, text)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Comment is required")
	}
	post.Comments = comments

	if err := persistPost(c, h.postRepository, post); err != nil {
		return err
	}

	return message(c, http.StatusCreated, "Comment added successfully")
}

// UpdateCommentOnPost edits the actor's own comment on a post
func (h *CommentHandler) UpdateCommentOnPost(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	text, err := bindCommentText(c)
	if err != nil {
		return err
	}

	commentID, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	post, err := h.fetchPost(c)
	if err != nil {
		return err
	}

	if err := interactions.EditComment(post.Comments, commentID, actor.ID, text); err != nil {
		return mapCommentError(err)
	}

	if err := persistPost(c, h.postRepository, post); err != nil {
		return err
	}

	return message(c, http.StatusOK, "Comment edited successfully")
}

// DeleteCommentOnPost removes the actor's own comment from a post
func (h *CommentHandler) DeleteCommentOnPost(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	commentID, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	post, err := h.fetchPost(c)
	if err != nil {
		return err
	}

	comments, err := interactions.DeleteComment(post.Comments, commentID, actor.ID)
	if err != nil {
		return mapCommentError(err)
	}
	post.Comments = comments

	if err := persistPost(c, h.postRepository, post); err != nil {
		return err
	}

	return message(c, http.StatusOK, "Comment deleted successfully")
}

// CreateCommentOnDestination appends a comment to a destination
func (h *CommentHandler) CreateCommentOnDestination(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	text, err := bindCommentText(c)
	if err != nil {
		return err
	}

	destination, err := h.fetchDestination(c)
	if err != nil {
		return err
	}

	comments, err := interactions.AddComment(destination.Comments, actor, text)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Comment is required")
	}
	destination.Comments = comments

	if err := persistDestination(c, h.destinationRepository, destination); err != nil {
		return err
	}

	return message(c, http.StatusCreated, "Comment added successfully")
}

// UpdateCommentOnDestination edits the actor's own comment on a destination
func (h *CommentHandler) UpdateCommentOnDestination(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	text, err := bindCommentText(c)
	if err != nil {
		return err
	}

	commentID, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	destination, err := h.fetchDestination(c)
	if err != nil {
		return err
	}

	if err := interactions.EditComment(destination.Comments, commentID, actor.ID, text); err != nil {
		return mapCommentError(err)
	}

	if err := persistDestination(c, h.destinationRepository, destination); err != nil {
		return err
	}

	return message(c, http.StatusOK, "Comment edited successfully")
}

// DeleteCommentOnDestination removes the actor's own comment from a destination
func (h *CommentHandler) DeleteCommentOnDestination(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	commentID, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	destination, err := h.fetchDestination(c)
	if err != nil {
		return err
	}

	comments, err := interactions.DeleteComment(destination.Comments, commentID, actor.ID)
	if err != nil {
		return mapCommentError(err)
	}
	destination.Comments = comments

	if err := persistDestination(c, h.destinationRepository, destination); err != nil {
		return err
	}

	return message(c, http.StatusOK, "Comment deleted successfully")
}

func (h *CommentHandler) fetchPost(c echo.Context) (*models.Post, error) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return post, nil
}

func (h *CommentHandler) fetchDestination(c echo.Context) (*models.Destination, error) {
	destinationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid destination ID")
	}

	destination, err := h.destinationRepository.GetDestinationByID(c.Request().Context(), destinationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Destination not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return destination, nil
}

func bindCommentText(c echo.Context) (string, error) {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Comment is required")
	}
	return req.Comment, nil
}

// mapCommentError turns comment engine errors into HTTP ones. A comment the
// actor does not own looks exactly like a missing comment.
func mapCommentError(err error) error {
	if errors.Is(err, interactions.ErrEmptyComment) {
		return echo.NewHTTPError(http.StatusBadRequest, "Comment is required")
	}
	return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
}
