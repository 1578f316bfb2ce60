package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/wayra-app/backend/internal/interactions"
	"github.com/wayra-app/backend/internal/models"
	"github.com/wayra-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ReactionHandler handles reacting to posts, destinations and their comments
type ReactionHandler struct {
	postRepository        repositories.PostRepository
	destinationRepository repositories.DestinationRepository
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(postRepo repositories.PostRepository, destinationRepo repositories.DestinationRepository) *ReactionHandler {
	return &ReactionHandler{
		postRepository:        postRepo,
		destinationRepository: destinationRepo,
	}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/posts/:id/reactions", h.ReactToPost)
	g.DELETE("/posts/:id/reactions", h.UnreactToPost)
	g.POST("/posts/:id/comments/:comment_id/reactions", h.ReactToPostComment)
	g.DELETE("/posts/:id/comments/:comment_id/reactions", h.UnreactToPostComment)
	g.POST("/destinations/:id/reactions", h.ReactToDestination)
	g.DELETE("/destinations/:id/reactions", h.UnreactToDestination)
	g.POST("/destinations/:id/comments/:comment_id/reactions", h.ReactToDestinationComment)
	g.DELETE("/destinations/:id/comments/:comment_id/reactions", h.UnreactToDestinationComment)
}

// ReactToPost adds or switches the actor's reaction on a post
func (h *ReactionHandler) ReactToPost(c echo.Context) error {
	return h.reactOnPost(c, false)
}

// ReactToPostComment adds or switches the actor's reaction on one comment of a post
func (h *ReactionHandler) ReactToPostComment(c echo.Context) error {
	return h.reactOnPost(c, true)
}

// UnreactToPost removes the actor's reaction from a post, if any
func (h *ReactionHandler) UnreactToPost(c echo.Context) error {
	return h.unreactOnPost(c, false)
}

// UnreactToPostComment removes the actor's reaction from one comment of a post
func (h *ReactionHandler) UnreactToPostComment(c echo.Context) error {
	return h.unreactOnPost(c, true)
}

// ReactToDestination adds or switches the actor's reaction on a destination
func (h *ReactionHandler) ReactToDestination(c echo.Context) error {
	return h.reactOnDestination(c, false)
}

// ReactToDestinationComment adds or switches the actor's reaction on one comment of a destination
func (h *ReactionHandler) ReactToDestinationComment(c echo.Context) error {
	return h.reactOnDestination(c, true)
}

// UnreactToDestination removes the actor's reaction from a destination, if any
func (h *ReactionHandler) UnreactToDestination(c echo.Context) error {
	return h.unreactOnDestination(c, false)
}

// UnreactToDestinationComment removes the actor's reaction from one comment of a destination
func (h *ReactionHandler) UnreactToDestinationComment(c echo.Context) error {
	return h.unreactOnDestination(c, true)
}

func (h *ReactionHandler) reactOnPost(c echo.Context, onComment bool) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	kind, err := bindReactionKind(c)
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

	target, err := resolveTarget(c, post, post.Comments, onComment)
	if err != nil {
		return err
	}

	if err := applyReaction(target, actor, kind); err != nil {
		return err
	}

	if err := persistPost(c, h.postRepository, post); err != nil {
		return err
	}

	return message(c, http.StatusOK, "Reaction added successfully")
}

func (h *ReactionHandler) unreactOnPost(c echo.Context, onComment bool) error {
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

	target, err := resolveTarget(c, post, post.Comments, onComment)
	if err != nil {
		return err
	}

	interactions.Unreact(target, actor.ID)

	if err := persistPost(c, h.postRepository, post); err != nil {
		return err
	}

	return message(c, http.StatusOK, "Reaction deleted successfully")
}

func (h *ReactionHandler) reactOnDestination(c echo.Context, onComment bool) error {
	actor, err := getActor(c)
	if err != nil {
		return err
	}

	kind, err := bindReactionKind(c)
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

	target, err := resolveTarget(c, destination, destination.Comments, onComment)
	if err != nil {
		return err
	}

	if err := applyReaction(target, actor, kind); err != nil {
		return err
	}

	if err := persistDestination(c, h.destinationRepository, destination); err != nil {
		return err
	}

	return message(c, http.StatusOK, "Reaction added successfully")
}

func (h *ReactionHandler) unreactOnDestination(c echo.Context, onComment bool) error {
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

	target, err := resolveTarget(c, destination, destination.Comments, onComment)
	if err != nil {
		return err
	}

	interactions.Unreact(target, actor.ID)

	if err := persistDestination(c, h.destinationRepository, destination); err != nil {
		return err
	}

	return message(c, http.StatusOK, "Reaction deleted successfully")
}

// bindReactionKind reads and checks the reaction field. An unknown kind fails
// before the target is even looked up.
func bindReactionKind(c echo.Context) (string, error) {
	var req models.ReactionRequest
	if err := c.Bind(&req); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if !models.IsValidReactionKind(req.Reaction) {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid reaction")
	}
	return req.Reaction, nil
}

// resolveTarget picks the reaction target: the parent document itself, or the
// comment named by the comment_id path parameter
func resolveTarget(c echo.Context, parent interactions.Target, comments []models.Comment, onComment bool) (interactions.Target, error) {
	if !onComment {
		return parent, nil
	}

	commentID, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := interactions.FindComment(comments, commentID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}
	return comment, nil
}

func applyReaction(target interactions.Target, actor models.Actor, kind string) error {
	if err := interactions.React(target, actor, kind); err != nil {
		if errors.Is(err, interactions.ErrSameReaction) {
			return echo.NewHTTPError(http.StatusBadRequest, "User has already reacted with the same reaction")
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid reaction")
	}
	return nil
}
