package models

// ReactionKinds is the fixed set of reaction kinds users can leave on a target.
var ReactionKinds = []string{"like", "love", "haha", "wow", "sad", "angry"}

// Reaction represents one user's reaction on a post, destination or comment.
// A target's reaction list holds at most one entry per user.
type Reaction struct {
	UserID   uint   `json:"user_id" bson:"user_id"`
	UserName string `json:"userName" bson:"userName"`
	Reaction string `json:"reaction" bson:"reaction"`
}

// IsValidReactionKind reports whether kind is one of the supported reaction kinds.
func IsValidReactionKind(kind string) bool {
	for _, k := range ReactionKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// ReactionRequest defines the request body for reacting to a target
type ReactionRequest struct {
	Reaction string `json:"reaction" validate:"required"`
}
