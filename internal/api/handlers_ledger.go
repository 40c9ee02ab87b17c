package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitledger/internal/services"
)

type foodLogRequest struct {
	FoodName formValue `json:"food_name"`
	Servings formValue `json:"servings"`
	ProteinG formValue `json:"protein_g"`
	CarbG    formValue `json:"carb_g"`
	FatG     formValue `json:"fat_g"`
}

func (request foodLogRequest) input() services.FoodLogInput {
	return services.FoodLogInput{
		FoodName: request.FoodName.String(),
		Servings: request.Servings.String(),
		ProteinG: request.ProteinG.String(),
		CarbG:    request.CarbG.String(),
		FatG:     request.FatG.String(),
	}
}

func (handler *Handler) LedgerToday(c *fiber.Ctx) error {
	session, err := handler.ledgerService.LoadSession(currentUserID(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load ledger")
	}
	return c.JSON(session)
}

func (handler *Handler) LedgerHistory(c *fiber.Ctx) error {
	history, err := handler.ledgerService.History(currentUserID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load ledger")
	}
	return c.JSON(fiber.Map{"days": history})
}

func (handler *Handler) LogFood(c *fiber.Ctx) error {
	request := foodLogRequest{}
	if err := parseJSONBody(c, &request); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidRequestBody)
	}
	result, err := handler.ledgerService.LogFood(currentUserID(c), request.input())
	if err != nil {
		return handler.respondServiceError(c, err, "failed to log food")
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (handler *Handler) AdvanceStreak(c *fiber.Ctx) error {
	count, err := handler.streakService.AdvanceStreak(currentUserID(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to update streak")
	}
	if count == nil {
		return apiError(c, fiber.StatusUnauthorized, services.ErrNotSignedIn.Error())
	}
	return c.JSON(fiber.Map{"streak": *count})
}
