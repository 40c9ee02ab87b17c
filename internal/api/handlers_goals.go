package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitledger/internal/services"
)

// CalculateGoal previews targets for a quiz without saving anything.
func (handler *Handler) CalculateGoal(c *fiber.Ctx) error {
	input := services.GoalInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidRequestBody)
	}
	targets, err := services.PreviewTargets(input)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to calculate targets")
	}
	return c.JSON(targets)
}

func (handler *Handler) GetGoal(c *fiber.Ctx) error {
	goal, found, err := handler.goalService.LatestGoal(currentUserID(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load goal")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, services.ErrGoalsNotSet.Error())
	}
	return c.JSON(goal)
}

func (handler *Handler) SubmitGoal(c *fiber.Ctx) error {
	input := services.GoalInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidRequestBody)
	}
	submission, err := handler.goalService.SubmitGoal(currentUserID(c), input)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to save goal")
	}
	return c.JSON(submission)
}
