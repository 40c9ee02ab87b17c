package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitledger/internal/models"
	"github.com/terraincognita07/fitledger/internal/services"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User      services.ProfileView `json:"user"`
	Token     string               `json:"token"`
	ExpiresAt string               `json:"expires_at"`
}

func profileFromUser(user models.User) services.ProfileView {
	return services.ProfileView{
		ID:                 user.ID,
		Email:              user.Email,
		DisplayName:        user.DisplayName,
		XP:                 user.XP,
		Level:              services.LevelForXP(user.XP),
		MustChangePassword: user.MustChangePassword,
	}
}

func (handler *Handler) startSession(c *fiber.Ctx, status int, user models.User) error {
	token, err := handler.buildToken(&user)
	if err != nil {
		handler.logger.WithError(err).Error("sign auth token failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	handler.setAuthCookie(c, token)
	return c.Status(status).JSON(sessionResponse{
		User:      profileFromUser(user),
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt.Format(time.RFC3339),
	})
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := services.RegistrationInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidRequestBody)
	}

	user, err := handler.authService.Register(input)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			return apiError(c, fiber.StatusBadRequest, "invalid credentials")
		}
		return handler.respondServiceError(c, err, "failed to create account")
	}
	handler.logger.WithField("user_id", user.ID).Info("user registered")
	return handler.startSession(c, fiber.StatusCreated, user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := credentialsRequest{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidRequestBody)
	}

	now := handler.clock.Now()
	attemptKey := loginAttemptKey(c, input.Email)
	if handler.loginLimiter.tooManyRecent(attemptKey, now, loginFailureLimit, loginFailureWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginLimiter.addFailure(attemptKey, now, loginFailureWindow)
			return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return handler.respondServiceError(c, err, "failed to sign in")
	}

	handler.loginLimiter.reset(attemptKey)
	return handler.startSession(c, fiber.StatusOK, user)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}
