package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitledger/internal/services"
)

type profileUpdateRequest struct {
	DisplayName string `json:"display_name"`
}

type passwordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (handler *Handler) Leaderboard(c *fiber.Ctx) error {
	limit := services.DefaultLeaderboardSize
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return apiError(c, fiber.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}
	entries, err := handler.progressService.Leaderboard(limit)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load leaderboard")
	}
	return c.JSON(fiber.Map{"entries": entries})
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	profile, err := handler.progressService.Profile(currentUserID(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load profile")
	}
	return c.JSON(profile)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	request := profileUpdateRequest{}
	if err := parseJSONBody(c, &request); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidRequestBody)
	}
	profile, err := handler.progressService.UpdateDisplayName(currentUserID(c), request.DisplayName)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to update profile")
	}
	return c.JSON(profile)
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	request := passwordChangeRequest{}
	if err := parseJSONBody(c, &request); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidRequestBody)
	}
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, services.ErrNotSignedIn.Error())
	}
	if err := handler.authService.ChangePassword(user.ID, request.CurrentPassword, request.NewPassword); err != nil {
		return handler.respondServiceError(c, err, "failed to change password")
	}

	refreshed, err := handler.authService.FindByID(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load profile")
	}
	return handler.startSession(c, fiber.StatusOK, refreshed)
}
