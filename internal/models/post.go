package models

// DestinationRef is an embedded (id, name) pair pointing at a destination document
type DestinationRef struct {
	ID   int    `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// Post represents a travel post stored in MongoDB. The whole document is the
// unit of persistence: reactions and comments are embedded and every mutation
// rewrites the full document. Version is the optimistic concurrency token
// checked on replace.
type Post struct {
	ID           int              `json:"id" bson:"id"` // assigned by the relational store at creation
	UserID       uint             `json:"user_id" bson:"user_id"`
	UserName     string           `json:"userName" bson:"userName"`
	Content      string           `json:"content" bson:"content"`
	Media        []string         `json:"media" bson:"media"`
	Destinations []DestinationRef `json:"destinations" bson:"destinations"`
	Reactions    []Reaction       `json:"reactions" bson:"reactions"`
	Comments     []Comment        `json:"comments" bson:"comments"`
	Version      int64            `json:"-" bson:"version"`
}

// GetReactions returns the post's reaction list
func (p *Post) GetReactions() []Reaction { return p.Reactions }

// SetReactions replaces the post's reaction list
func (p *Post) SetReactions(reactions []Reaction) { p.Reactions = reactions }

// PostRecord is the relational row mirroring a post. Its auto-incremented
// primary key is the id of the MongoDB document.
type PostRecord struct {
	ID     int  `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"index;column:sub"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content      string   `json:"content" validate:"required,min=1,max=2000"`
	Media        []string `json:"media" validate:"required,min=1"`
	Destinations []int    `json:"destinations" validate:"required,min=1"`
}

// UpdatePostRequest defines the request body for updating an existing post.
// All fields are optional; only the provided ones are changed.
type UpdatePostRequest struct {
	Content      string   `json:"content,omitempty" validate:"omitempty,min=1,max=2000"`
	Media        []string `json:"media,omitempty"`
	Destinations []int    `json:"destinations,omitempty"`
}
