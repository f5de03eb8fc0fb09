package handlers

import (
	"github.com/firewatchhq/firewatch-backend/internal/database"
	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/middleware"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/firewatchhq/firewatch-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// UserHandler serves the admin user-management endpoints.
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 100)

	var resp []dto.UserResponse
	err := database.Do(func() error {
		var err error
		resp, err = h.users.List(skip, limit)
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

func (h *UserHandler) Stats(c *fiber.Ctx) error {
	var resp *dto.UserStatsResponse
	err := database.Do(func() error {
		var err error
		resp, err = h.users.Stats()
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	targetID, err := paramUint(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var req dto.RoleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var resp *dto.UserResponse
	err = database.Do(func() error {
		var err error
		resp, err = h.users.UpdateRole(targetID, models.Role(req.Role), actor)
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	targetID, err := paramUint(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid user id")
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	err = database.Do(func() error {
		return h.users.Delete(targetID, actor)
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted"})
}
