package db

import (
	"time"

	"github.com/terraincognita07/fitledger/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) UpdateDisplayName(userID uint, displayName string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("display_name", displayName).Error
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"password_hash":        passwordHash,
		"must_change_password": mustChangePassword,
	}).Error
}

// AddXP records the award and bumps the cached total in one transaction.
func (repo *UserRepository) AddXP(userID uint, reason string, amount int, at time.Time) (int, error) {
	var total int
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		event := models.XPEvent{
			UserID:    userID,
			Reason:    reason,
			Amount:    amount,
			CreatedAt: at.UTC(),
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("xp", gorm.Expr("xp + ?", amount)).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.Select("xp").First(&user, userID).Error; err != nil {
			return err
		}
		total = user.XP
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (repo *UserRepository) CountXPEvents(userID uint, reason string) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.XPEvent{}).
		Where("user_id = ? AND reason = ?", userID, reason).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *UserRepository) ListTopByXP(limit int) ([]models.User, error) {
	users := make([]models.User, 0, limit)
	if err := repo.database.
		Select("id", "display_name", "xp").
		Order("xp DESC, id ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
