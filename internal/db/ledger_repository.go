package db

import (
	"github.com/terraincognita07/fitledger/internal/models"
	"gorm.io/gorm"
)

type LedgerRepository struct {
	database *gorm.DB
}

func NewLedgerRepository(database *gorm.DB) *LedgerRepository {
	return &LedgerRepository{database: database}
}

func (repo *LedgerRepository) FindByUserAndDate(userID uint, logDate string) (models.DailyLedgerEntry, bool, error) {
	entry := models.DailyLedgerEntry{}
	result := repo.database.
		Where("user_id = ? AND log_date = ?", userID, logDate).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.DailyLedgerEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyLedgerEntry{}, false, nil
	}
	return entry, true, nil
}

// ListByUserDateRange returns entries with from <= log_date <= to, oldest
// first. Empty bounds are open.
func (repo *LedgerRepository) ListByUserDateRange(userID uint, from string, to string) ([]models.DailyLedgerEntry, error) {
	query := repo.database.Model(&models.DailyLedgerEntry{}).Where("user_id = ?", userID)
	if from != "" {
		query = query.Where("log_date >= ?", from)
	}
	if to != "" {
		query = query.Where("log_date <= ?", to)
	}

	entries := make([]models.DailyLedgerEntry, 0)
	if err := query.Order("log_date ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *LedgerRepository) Create(entry *models.DailyLedgerEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *LedgerRepository) Save(entry *models.DailyLedgerEntry) error {
	return repo.database.Save(entry).Error
}
