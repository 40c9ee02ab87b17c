package db

import (
	"time"

	"github.com/terraincognita07/fitledger/internal/models"
	"gorm.io/gorm"
)

type GoalRepository struct {
	database *gorm.DB
}

func NewGoalRepository(database *gorm.DB) *GoalRepository {
	return &GoalRepository{database: database}
}

// FindLatestByUser returns the most recently created goal for the user.
func (repo *GoalRepository) FindLatestByUser(userID uint) (models.UserGoal, bool, error) {
	goal := models.UserGoal{}
	result := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&goal)
	if result.Error != nil {
		return models.UserGoal{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.UserGoal{}, false, nil
	}
	return goal, true, nil
}

func (repo *GoalRepository) Create(goal *models.UserGoal) error {
	return repo.database.Create(goal).Error
}

func (repo *GoalRepository) Save(goal *models.UserGoal) error {
	return repo.database.Save(goal).Error
}

type GoalChangeRepository struct {
	database *gorm.DB
}

func NewGoalChangeRepository(database *gorm.DB) *GoalChangeRepository {
	return &GoalChangeRepository{database: database}
}

func (repo *GoalChangeRepository) CountSince(userID uint, since time.Time) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.GoalChangeEvent{}).
		Where("user_id = ? AND created_at >= ?", userID, since.UTC()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *GoalChangeRepository) Create(event *models.GoalChangeEvent) error {
	return repo.database.Create(event).Error
}
