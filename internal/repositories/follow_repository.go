package repositories

import (
	"github.com/wayra-app/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for the relational trip goal follow rows
type FollowRepository interface {
	CreateFollow(tripGoalID int, userID uint) error
	DeleteFollow(tripGoalID int, userID uint) error
	GetFollowedTripGoalIDs(userID uint) ([]int, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts a follow row for (tripGoalID, userID)
func (r *PostgresFollowRepository) CreateFollow(tripGoalID int, userID uint) error {
	follow := models.TripGoalFollow{TripGoalID: tripGoalID, UserID: userID}
	return r.db.Create(&follow).Error
}

// DeleteFollow removes the follow row for (tripGoalID, userID)
func (r *PostgresFollowRepository) DeleteFollow(tripGoalID int, userID uint) error {
	return r.db.Where("trip_goal_id = ? AND sub = ?", tripGoalID, userID).
		Delete(&models.TripGoalFollow{}).Error
}

// GetFollowedTripGoalIDs lists the ids of every trip goal the user follows
func (r *PostgresFollowRepository) GetFollowedTripGoalIDs(userID uint) ([]int, error) {
	var ids []int
	err := r.db.Model(&models.TripGoalFollow{}).
		Where("sub = ?", userID).
		Pluck("trip_goal_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
