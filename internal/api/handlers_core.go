package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Health(c *fiber.Ctx) error {
	sqlDB, err := handler.database.DB()
	if err != nil || sqlDB.Ping() != nil {
		return apiError(c, fiber.StatusServiceUnavailable, "database unavailable")
	}
	return c.JSON(fiber.Map{"ok": true})
}
