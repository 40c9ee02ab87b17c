package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Goals       *GoalRepository
	GoalChanges *GoalChangeRepository
	Ledger      *LedgerRepository
	Foods       *FoodRepository
	Workouts    *WorkoutRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Goals:       NewGoalRepository(database),
		GoalChanges: NewGoalChangeRepository(database),
		Ledger:      NewLedgerRepository(database),
		Foods:       NewFoodRepository(database),
		Workouts:    NewWorkoutRepository(database),
	}
}
