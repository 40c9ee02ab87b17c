package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitledger/internal/services"
)

type bmiRequest struct {
	HeightCm  float64 `json:"height_cm"`
	WeightLbs float64 `json:"weight_lbs"`
}

func (handler *Handler) EstimateBodyFat(c *fiber.Ctx) error {
	input := services.BodyFatInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidRequestBody)
	}
	estimate, err := services.EstimateBodyFat(input)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to estimate body fat")
	}
	return c.JSON(estimate)
}

func (handler *Handler) CalculateBMI(c *fiber.Ctx) error {
	request := bmiRequest{}
	if err := parseJSONBody(c, &request); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidRequestBody)
	}
	result, err := services.BMIFromImperial(request.HeightCm, request.WeightLbs)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to calculate bmi")
	}
	return c.JSON(result)
}
