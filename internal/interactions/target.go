package interactions

import "github.com/wayra-app/backend/internal/models"

// Target is the object a reaction applies to: a post, a destination, or one
// comment embedded in either. Mutations happen on the target in memory; the
// owning top-level document is what gets persisted afterwards.
type Target interface {
	GetReactions() []models.Reaction
	SetReactions([]models.Reaction)
}

// FindComment locates a comment by id within a parent document's comment list.
// Returns ErrCommentNotFound if no comment has that id.
func FindComment(comments []models.Comment, commentID int) (*models.Comment, error) {
	for i := range comments {
		if comments[i].CommentID == commentID {
			return &comments[i], nil
		}
	}
	return nil, ErrCommentNotFound
}

// FindUserComment locates a comment by id that is also authored by userID.
// A comment owned by another user is indistinguishable from a missing one:
// both return ErrCommentNotFound.
func FindUserComment(comments []models.Comment, commentID int, userID uint) (*models.Comment, error) {
	for i := range comments {
		if comments[i].CommentID == commentID && comments[i].UserID == userID {
			return &comments[i], nil
		}
	}
	return nil, ErrCommentNotFound
}
