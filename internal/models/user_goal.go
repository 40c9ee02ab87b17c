package models

import "time"

const (
	SexMale   = "male"
	SexFemale = "female"
)

const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

const (
	GoalCut      = "cut"
	GoalMaintain = "maintain"
	GoalBulk     = "bulk"
)

// UserGoal holds biometrics, preferences and the targets derived from them.
// The latest row by CreatedAt is authoritative for a user.
type UserGoal struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	Age             int       `gorm:"not null" json:"age"`
	Sex             string    `gorm:"not null" json:"sex"`
	HeightCm        float64   `gorm:"not null" json:"height_cm"`
	WeightLbs       float64   `gorm:"not null" json:"weight_lbs"`
	TargetWeightLbs float64   `gorm:"not null;default:0" json:"target_weight_lbs"`
	ActivityLevel   string    `gorm:"not null" json:"activity_level"`
	GoalType        string    `gorm:"not null" json:"goal_type"`
	DailyCalories   int       `gorm:"not null" json:"daily_calories"`
	ProteinG        int       `gorm:"column:protein_g;not null" json:"protein_g"`
	CarbG           int       `gorm:"column:carb_g;not null" json:"carb_g"`
	FatG            int       `gorm:"column:fat_g;not null" json:"fat_g"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// GoalChangeEvent is written once per successful goal submission and only
// feeds the goal edit rate limit.
type GoalChangeEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
