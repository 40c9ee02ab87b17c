package db

import (
	"strings"
	"time"

	"github.com/terraincognita07/fitledger/internal/models"
	"gorm.io/gorm"
)

type FoodRepository struct {
	database *gorm.DB
}

func NewFoodRepository(database *gorm.DB) *FoodRepository {
	return &FoodRepository{database: database}
}

func (repo *FoodRepository) CountCreatedSince(userID uint, since time.Time) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.FoodItem{}).
		Where("user_id = ? AND created_at >= ?", userID, since.UTC()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *FoodRepository) Create(item *models.FoodItem) error {
	return repo.database.Create(item).Error
}

func (repo *FoodRepository) ListByUser(userID uint) ([]models.FoodItem, error) {
	items := make([]models.FoodItem, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("name ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByUserAndName matches names case-insensitively; the newest duplicate wins.
func (repo *FoodRepository) FindByUserAndName(userID uint, name string) (models.FoodItem, bool, error) {
	item := models.FoodItem{}
	result := repo.database.
		Where("user_id = ? AND lower(trim(name)) = ?", userID, strings.ToLower(strings.TrimSpace(name))).
		Order("id DESC").
		Limit(1).
		Find(&item)
	if result.Error != nil {
		return models.FoodItem{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.FoodItem{}, false, nil
	}
	return item, true, nil
}
