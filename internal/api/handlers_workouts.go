package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitledger/internal/services"
)

func (handler *Handler) LogWorkoutSet(c *fiber.Ctx) error {
	input := services.WorkoutSetInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidRequestBody)
	}
	set, err := handler.strengthService.LogSet(currentUserID(c), input)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to save workout set")
	}
	return c.Status(fiber.StatusCreated).JSON(set)
}

func (handler *Handler) PersonalRecords(c *fiber.Ctx) error {
	records, err := handler.strengthService.PersonalRecords(currentUserID(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load records")
	}
	return c.JSON(fiber.Map{"records": records})
}
