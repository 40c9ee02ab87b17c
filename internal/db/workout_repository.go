package db

import (
	"github.com/terraincognita07/fitledger/internal/models"
	"gorm.io/gorm"
)

type WorkoutRepository struct {
	database *gorm.DB
}

func NewWorkoutRepository(database *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{database: database}
}

func (repo *WorkoutRepository) Create(set *models.WorkoutSet) error {
	return repo.database.Create(set).Error
}

func (repo *WorkoutRepository) ListByUser(userID uint) ([]models.WorkoutSet, error) {
	sets := make([]models.WorkoutSet, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("performed_on ASC, id ASC").
		Find(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}
