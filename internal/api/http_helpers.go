package api

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitledger/internal/services"
)

const invalidRequestBody = "invalid request body"

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseJSONBody(c *fiber.Ctx, target any) error {
	if len(bytes.TrimSpace(c.Body())) == 0 {
		return errors.New("empty body")
	}
	return json.Unmarshal(c.Body(), target)
}

// serviceErrorStatus maps domain errors to a status and the reason shown to
// the client. Unknown errors are internal and get the caller's fallback.
func serviceErrorStatus(err error) (int, string, bool) {
	switch {
	case errors.Is(err, services.ErrNotSignedIn):
		return fiber.StatusUnauthorized, services.ErrNotSignedIn.Error(), true
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return fiber.StatusUnauthorized, "invalid credentials", true
	case errors.Is(err, services.ErrRateLimited):
		return fiber.StatusTooManyRequests, services.ErrRateLimited.Error(), true
	case errors.Is(err, services.ErrRateProbeFailed):
		return fiber.StatusServiceUnavailable, "rate limit unavailable", true
	case errors.Is(err, services.ErrGoalsNotSet), errors.Is(err, services.ErrEmailTaken):
		return fiber.StatusConflict, err.Error(), true
	case errors.Is(err, services.ErrGoalInfeasible):
		return fiber.StatusUnprocessableEntity, services.ErrGoalInfeasible.Error(), true
	case errors.Is(err, services.ErrFoodNotFound):
		return fiber.StatusNotFound, services.ErrFoodNotFound.Error(), true
	}

	for _, validation := range []error{
		services.ErrQuizIncomplete,
		services.ErrIncompleteInput,
		services.ErrInvalidMacroNumber,
		services.ErrInvalidServings,
		services.ErrInvalidFoodName,
		services.ErrInvalidDateRange,
		services.ErrInvalidDisplayName,
		services.ErrInvalidWorkoutSet,
		services.ErrInvalidBodyMeasurements,
		services.ErrWeakPassword,
		services.ErrPasswordChangeInvalid,
		services.ErrInvalidCurrentPassword,
		services.ErrNewPasswordMustDiffer,
	} {
		if errors.Is(err, validation) {
			return fiber.StatusBadRequest, validation.Error(), true
		}
	}
	return fiber.StatusInternalServerError, "", false
}

func (handler *Handler) respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	status, message, known := serviceErrorStatus(err)
	if !known {
		handler.logger.WithError(err).WithField("path", c.Path()).Error(fallback)
		return apiError(c, status, fallback)
	}
	return apiError(c, status, message)
}
