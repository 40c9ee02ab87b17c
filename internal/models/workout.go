package models

import "time"

type WorkoutSet struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"not null;index" json:"user_id"`
	Exercise           string    `gorm:"not null" json:"exercise"`
	WeightLbs          float64   `gorm:"not null" json:"weight_lbs"`
	Reps               int       `gorm:"not null" json:"reps"`
	EstimatedOneRepMax float64   `gorm:"column:estimated_one_rep_max;not null" json:"estimated_one_rep_max"`
	PerformedOn        string    `gorm:"not null" json:"performed_on"`
	CreatedAt          time.Time `json:"created_at"`
}
