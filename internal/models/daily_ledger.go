package models

import "time"

// LogDateLayout is the calendar-date format of DailyLedgerEntry.LogDate.
const LogDateLayout = "2006-01-02"

type DailyLedgerEntry struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;uniqueIndex:uidx_ledger_user_date" json:"user_id"`
	LogDate           string    `gorm:"not null;uniqueIndex:uidx_ledger_user_date" json:"log_date"`
	CalorieBudget     int       `gorm:"not null;default:0" json:"calorie_budget"`
	ProteinTargetG    int       `gorm:"column:protein_target_g;not null;default:0" json:"protein_target_g"`
	CarbTargetG       int       `gorm:"column:carb_target_g;not null;default:0" json:"carb_target_g"`
	FatTargetG        int       `gorm:"column:fat_target_g;not null;default:0" json:"fat_target_g"`
	RemainingCalories int       `gorm:"not null;default:0" json:"remaining_calories"`
	ProteinG          float64   `gorm:"column:protein_g;not null;default:0" json:"protein_g"`
	CarbG             float64   `gorm:"column:carb_g;not null;default:0" json:"carb_g"`
	FatG              float64   `gorm:"column:fat_g;not null;default:0" json:"fat_g"`
	Streak            int       `gorm:"not null;default:0" json:"streak"`
	StreakCounted     bool      `gorm:"not null;default:false" json:"streak_counted"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (DailyLedgerEntry) TableName() string {
	return "daily_ledger_entries"
}

type FoodItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Serving   string    `gorm:"not null" json:"serving"`
	ProteinG  float64   `gorm:"column:protein_g;not null" json:"protein_g"`
	CarbG     float64   `gorm:"column:carb_g;not null" json:"carb_g"`
	FatG      float64   `gorm:"column:fat_g;not null" json:"fat_g"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
