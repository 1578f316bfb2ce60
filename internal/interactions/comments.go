package interactions

import "github.com/wayra-app/backend/internal/models"

// EditedSuffix is appended to edited comment text and edited post content so
// readers can tell the body was changed after publication.
const EditedSuffix = " (Editado)"

// AddComment appends a new comment to a parent document's comment list and
// returns the new list. The comment id is the current list length plus one;
// ids are never renumbered after deletion, so gaps are expected and deleting
// a non-last comment lets a later add reuse its id.
func AddComment(comments []models.Comment, actor models.Actor, text string) ([]models.Comment, error) {
	if text == "" {
		return nil, ErrEmptyComment
	}

	return append(comments, models.Comment{
		CommentID: len(comments) + 1,
		UserID:    actor.ID,
		UserName:  actor.UserName,
		Comment:   text,
		Reactions: []models.Reaction{},
	}), nil
}

// EditComment replaces the text of the actor's own comment, suffixed with the
// edited marker. Authorship is part of the lookup: another user's comment
// yields ErrCommentNotFound, not an authorization error.
func EditComment(comments []models.Comment, commentID int, userID uint, text string) error {
	if text == "" {
		return ErrEmptyComment
	}

	comment, err := FindUserComment(comments, commentID, userID)
	if err != nil {
		return err
	}

	comment.Comment = text + EditedSuffix
	return nil
}

// DeleteComment filters the actor's own comment out of the list and returns
// the remaining comments. Same authorship-scoped lookup as EditComment.
func DeleteComment(comments []models.Comment, commentID int, userID uint) ([]models.Comment, error) {
	if _, err := FindUserComment(comments, commentID, userID); err != nil {
		return nil, err
	}

	kept := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		if c.CommentID != commentID {
			kept = append(kept, c)
		}
	}
	return kept, nil
}
