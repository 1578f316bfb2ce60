package models

// Destination represents a travel destination stored in MongoDB. Like posts,
// destinations embed their reactions and comments and are rewritten whole on
// every mutation. Name is globally unique across the collection.
type Destination struct {
	ID          int        `json:"id" bson:"id"`
	UserID      uint       `json:"user_id" bson:"user_id"`
	UserName    string     `json:"userName" bson:"userName"`
	Name        string     `json:"name" bson:"name"`
	Description string     `json:"description" bson:"description"`
	City        string     `json:"city" bson:"city"`
	Country     string     `json:"country" bson:"country"`
	Media       []string   `json:"media" bson:"media"`
	Reactions   []Reaction `json:"reactions" bson:"reactions"`
	Comments    []Comment  `json:"comments" bson:"comments"`
	Version     int64      `json:"-" bson:"version"`
}

// GetReactions returns the destination's reaction list
func (d *Destination) GetReactions() []Reaction { return d.Reactions }

// SetReactions replaces the destination's reaction list
func (d *Destination) SetReactions(reactions []Reaction) { d.Reactions = reactions }

// CreateDestinationRequest defines the request body for adding a destination
type CreateDestinationRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Description string   `json:"description" validate:"required,min=1,max=2000"`
	City        string   `json:"city" validate:"required,min=1,max=100"`
	Country     string   `json:"country" validate:"required,min=1,max=100"`
	Media       []string `json:"media" validate:"required,min=1"`
}

// UpdateDestinationRequest defines the request body for editing a destination.
// All fields are optional; only the provided ones are changed.
type UpdateDestinationRequest struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description string   `json:"description,omitempty" validate:"omitempty,min=1,max=2000"`
	City        string   `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
	Country     string   `json:"country,omitempty" validate:"omitempty,min=1,max=100"`
	Media       []string `json:"media,omitempty"`
}
