package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cardatelier/cardforge/backend/models"
	"github.com/cardatelier/cardforge/backend/utils"
)

// Register creates an account and starts a session.
func Register(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if details := utils.ValidateRegisterRequest(&req); details != nil {
			return utils.SendUnprocessableEntity(c, "Validation failed", details)
		}

		user, err := webApp.UserService.Register(c.Context(), &req)
		if err != nil {
			return sendServiceError(c, err)
		}

		session := &models.UserSession{
			UserID:   user.ID,
			Email:    user.Email,
			Username: user.Username,
		}
		token, err := webApp.SessionService.CreateSession(c, session)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to create session")
		}

		return utils.SendCreated(c, fiber.Map{
			"user":  models.NewUserResponse(user),
			"token": token,
		}, "Account created")
	}
}

// Login authenticates and starts a session.
func Login(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		user, err := webApp.UserService.Authenticate(c.Context(), &req)
		if err != nil {
			return sendServiceError(c, err)
		}

		session := &models.UserSession{
			UserID:   user.ID,
			Email:    user.Email,
			Username: user.Username,
		}
		token, err := webApp.SessionService.CreateSession(c, session)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to create session")
		}

		return utils.SendSuccess(c, fiber.Map{
			"user":  models.NewUserResponse(user),
			"token": token,
		}, "Logged in")
	}
}

// Logout clears the session cookie.
func Logout(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		webApp.SessionService.DestroySession(c)
		return utils.SendSuccess(c, nil, "Logged out")
	}
}

// Me returns the authenticated user's profile.
func Me(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := currentUser(c)

		user, err := webApp.UserService.GetByID(c.Context(), session.UserID)
		if err != nil {
			return sendServiceError(c, err)
		}
		return utils.SendSuccess(c, models.NewUserResponse(user), "")
	}
}
