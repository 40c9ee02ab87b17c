package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth", handler.ThrottleAuth)
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Get("/leaderboard", handler.Leaderboard)
	api.Post("/goals/calculate", handler.CalculateGoal)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
	profile.Patch("", handler.UpdateProfile)
	profile.Post("/password", handler.ChangePassword)

	goals := api.Group("/goals", handler.AuthRequired)
	goals.Get("", handler.GetGoal)
	goals.Put("", handler.SubmitGoal)

	ledger := api.Group("/ledger", handler.AuthRequired)
	ledger.Get("", handler.LedgerHistory)
	ledger.Get("/today", handler.LedgerToday)
	ledger.Post("/entries", handler.LogFood)

	api.Post("/streak/advance", handler.AuthRequired, handler.AdvanceStreak)

	foods := api.Group("/foods", handler.AuthRequired)
	foods.Get("", handler.ListFoods)
	foods.Post("", handler.AddFood)

	workouts := api.Group("/workouts", handler.AuthRequired)
	workouts.Post("/sets", handler.LogWorkoutSet)
	workouts.Get("/records", handler.PersonalRecords)

	body := api.Group("/body")
	body.Post("/fat", handler.EstimateBodyFat)
	body.Post("/bmi", handler.CalculateBMI)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
