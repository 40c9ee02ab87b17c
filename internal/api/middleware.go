package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitledger/internal/models"
	"github.com/terraincognita07/fitledger/internal/services"
)

const (
	authCookieName = "fitledger_auth"
	contextUserKey = "current_user"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

// currentUserID is zero for anonymous requests; services treat zero as
// not signed in.
func currentUserID(c *fiber.Ctx) uint {
	if user, ok := currentUser(c); ok {
		return user.ID
	}
	return 0
}

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, services.ErrNotSignedIn.Error())
	}
	c.Locals(contextUserKey, user)
	return c.Next()
}

// ThrottleAuth applies the per-client token bucket to credential routes.
func (handler *Handler) ThrottleAuth(c *fiber.Ctx) error {
	if !handler.requestLimiter.allow(requestLimiterKey(c)) {
		return apiError(c, fiber.StatusTooManyRequests, services.ErrRateLimited.Error())
	}
	return c.Next()
}
