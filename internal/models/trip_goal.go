package models

// Follower is an embedded (user_id, userName) pair in a trip goal's follower list
type Follower struct {
	UserID   uint   `json:"user_id" bson:"user_id"`
	UserName string `json:"userName" bson:"userName"`
}

// TripGoal represents a followable collection of destinations stored in MongoDB.
// Followers holds at most one entry per user and is mirrored by TripGoalFollow
// rows in PostgreSQL.
type TripGoal struct {
	ID           int              `json:"id" bson:"id"`
	UserID       uint             `json:"user_id" bson:"user_id"`
	UserName     string           `json:"userName" bson:"userName"`
	Destinations []DestinationRef `json:"destinations" bson:"destinations"`
	Followers    []Follower       `json:"followers" bson:"followers"`
}

// TripGoalFollow is the relational join row mirroring one follower of a trip goal
type TripGoalFollow struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	TripGoalID int  `json:"trip_goal_id" gorm:"index"`
	UserID     uint `json:"user_id" gorm:"index;column:sub"`
}

// CreateTripGoalRequest defines the request body for creating a trip goal
type CreateTripGoalRequest struct {
	DestinationIDs []int `json:"destination_ids" validate:"required,min=1"`
}

// UpdateTripGoalRequest defines the request body for replacing a trip goal's destinations
type UpdateTripGoalRequest struct {
	DestinationIDs []int `json:"destination_ids" validate:"required,min=1"`
}
