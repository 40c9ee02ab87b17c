package api

import (
	"github.com/terraincognita07/fitledger/internal/db"
	"github.com/terraincognita07/fitledger/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB, options HandlerOptions) *Handler {
	runtime := services.Runtime{
		Clock:    options.Clock,
		Location: options.Location,
		Logger:   options.Logger,
	}
	repos := db.NewRepositories(database)

	handler.authService = services.NewAuthService(repos.Users)
	handler.progressService = services.NewProgressService(repos.Users, runtime)
	handler.streakService = services.NewStreakService(repos.Ledger, repos.Goals, handler.progressService, runtime)
	handler.goalService = services.NewGoalService(
		repos.Goals,
		repos.GoalChanges,
		repos.Ledger,
		handler.progressService,
		services.GoalChangePolicy(options.RateLimitFailClosed),
		runtime,
	)
	handler.ledgerService = services.NewLedgerService(repos.Goals, repos.Ledger, repos.Foods, handler.streakService, runtime)
	handler.catalogService = services.NewFoodCatalogService(repos.Foods, services.FoodCatalogPolicy(options.RateLimitFailClosed), runtime)
	handler.strengthService = services.NewStrengthService(repos.Workouts, runtime)
	return handler
}
