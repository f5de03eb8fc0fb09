package handlers

import (
	"log/slog"

	"github.com/firewatchhq/firewatch-backend/internal/database"
	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/middleware"
	"github.com/firewatchhq/firewatch-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth     *services.AuthService
	activity *services.ActivityService
}

func NewAuthHandler(auth *services.AuthService, activity *services.ActivityService) *AuthHandler {
	return &AuthHandler{auth: auth, activity: activity}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "Email and password are required")
	}

	var resp *dto.AuthResponse
	err := database.Do(func() error {
		resp2, newUser, err := h.auth.Register(&req)
		if err != nil {
			return err
		}
		resp = resp2
		if logErr := h.activity.LogRegistration(newUser, c.IP(), c.Get("User-Agent")); logErr != nil {
			slog.Warn("failed to record registration activity", "error", logErr)
		}
		return nil
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var resp *dto.AuthResponse
	err := database.Do(func() error {
		resp2, user, err := h.auth.Login(&req)
		if err != nil {
			return err
		}
		resp = resp2
		if logErr := h.activity.LogLogin(user, c.IP(), c.Get("User-Agent")); logErr != nil {
			slog.Warn("failed to record login activity", "error", logErr)
		}
		return nil
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var resp *dto.AuthResponse
	err := database.Do(func() error {
		var err error
		resp, err = h.auth.Refresh(&req)
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	err = database.Do(func() error {
		if err := h.auth.Logout(&req); err != nil {
			return err
		}
		if user, err := h.auth.GetUser(userID); err == nil {
			if logErr := h.activity.LogLogout(user, c.IP(), c.Get("User-Agent")); logErr != nil {
				slog.Warn("failed to record logout activity", "error", logErr)
			}
		}
		return nil
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var resp dto.UserResponse
	err = database.Do(func() error {
		user, err := h.auth.GetUser(userID)
		if err != nil {
			return err
		}
		resp = dto.NewUserResponse(user)
		return nil
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}
