package models

// Comment represents a comment embedded in a post or destination document.
// CommentID is only unique within the owning document, not globally.
type Comment struct {
	CommentID int        `json:"comment_id" bson:"comment_id"`
	UserID    uint       `json:"user_id" bson:"user_id"`
	UserName  string     `json:"userName" bson:"userName"`
	Comment   string     `json:"comment" bson:"comment"`
	Reactions []Reaction `json:"reactions" bson:"reactions"`
}

// GetReactions returns the comment's reaction list
func (c *Comment) GetReactions() []Reaction { return c.Reactions }

// SetReactions replaces the comment's reaction list
func (c *Comment) SetReactions(reactions []Reaction) { c.Reactions = reactions }

// CreateCommentRequest defines the request body for commenting on a post or destination
type CreateCommentRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=500"`
}

// UpdateCommentRequest defines the request body for editing an existing comment
type UpdateCommentRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=500"`
}
