package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitledger/internal/services"
)

type foodItemRequest struct {
	Name     string    `json:"name"`
	Serving  string    `json:"serving"`
	ProteinG formValue `json:"protein_g"`
	CarbG    formValue `json:"carb_g"`
	FatG     formValue `json:"fat_g"`
}

func (handler *Handler) ListFoods(c *fiber.Ctx) error {
	items, err := handler.catalogService.ListFoods(currentUserID(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load foods")
	}
	return c.JSON(fiber.Map{"foods": items})
}

func (handler *Handler) AddFood(c *fiber.Ctx) error {
	request := foodItemRequest{}
	if err := parseJSONBody(c, &request); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidRequestBody)
	}
	item, err := handler.catalogService.AddFood(currentUserID(c), services.FoodItemInput{
		Name:     request.Name,
		Serving:  request.Serving,
		ProteinG: request.ProteinG.String(),
		CarbG:    request.CarbG.String(),
		FatG:     request.FatG.String(),
	})
	if err != nil {
		return handler.respondServiceError(c, err, "failed to save food")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}
