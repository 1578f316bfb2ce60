package repositories

import (
	"github.com/wayra-app/backend/internal/models"
	"gorm.io/gorm"
)

// PostRecordRepository defines the interface for the relational post rows.
// The auto-incremented row id is what the MongoDB document uses as its id.
type PostRecordRepository interface {
	CreateRecord(userID uint) (int, error)
	DeleteRecord(id int) error
}

// PostgresPostRecordRepository implements PostRecordRepository for PostgreSQL
type PostgresPostRecordRepository struct {
	db *gorm.DB
}

// NewPostgresPostRecordRepository creates a new PostgresPostRecordRepository
func NewPostgresPostRecordRepository(db *gorm.DB) *PostgresPostRecordRepository {
	return &PostgresPostRecordRepository{db: db}
}

// CreateRecord inserts a post row and returns its generated id
func (r *PostgresPostRecordRepository) CreateRecord(userID uint) (int, error) {
	record := models.PostRecord{UserID: userID}
	if err := r.db.Create(&record).Error; err != nil {
		return 0, err
	}
	return record.ID, nil
}

// DeleteRecord deletes a post row by id
func (r *PostgresPostRecordRepository) DeleteRecord(id int) error {
	return r.db.Delete(&models.PostRecord{}, id).Error
}
