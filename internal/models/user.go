package models

import "time"

type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	DisplayName        string    `gorm:"not null;default:''" json:"display_name"`
	XP                 int       `gorm:"column:xp;not null;default:0" json:"xp"`
	MustChangePassword bool      `gorm:"not null;default:false" json:"must_change_password"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
}

const (
	XPReasonFirstGoal = "first_goal"
	XPReasonStreakDay = "streak_day"

	FirstGoalXP = 50
	StreakDayXP = 10
)

// XPEvent is the append-only record behind User.XP.
type XPEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Reason    string    `gorm:"not null" json:"reason"`
	Amount    int       `gorm:"not null" json:"amount"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (XPEvent) TableName() string {
	return "xp_events"
}
