package interactions

import "errors"

var (
	ErrInvalidReaction = errors.New("invalid reaction")
	ErrSameReaction    = errors.New("user has already reacted with the same reaction")
	ErrCommentNotFound = errors.New("comment not found")
	ErrEmptyComment    = errors.New("comment is required")
)
