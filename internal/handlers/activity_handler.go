package handlers

import (
	"github.com/firewatchhq/firewatch-backend/internal/database"
	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/firewatchhq/firewatch-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ActivityHandler exposes the admin audit trail.
type ActivityHandler struct {
	activity *services.ActivityService
}

func NewActivityHandler(activity *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var userID *uint
	if raw := queryInt(c, "user_id", 0); raw > 0 {
		id := uint(raw)
		userID = &id
	}

	var logs []dto.ActivityLogResponse
	err := database.Do(func() error {
		var err error
		logs, err = h.activity.List(
			queryInt(c, "page", 1),
			queryInt(c, "page_size", 50),
			c.Query("action_type"),
			userID,
		)
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"activities": logs})
}

// ForUser returns the newest entries attributed to one user.
func (h *ActivityHandler) ForUser(c *fiber.Ctx) error {
	userID, err := paramUint(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var logs []dto.ActivityLogResponse
	err = database.Do(func() error {
		var err error
		logs, err = h.activity.ListForUser(userID, queryInt(c, "limit", 50))
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"activities": logs})
}

func (h *ActivityHandler) Stats(c *fiber.Ctx) error {
	var resp *dto.ActivityStatsResponse
	err := database.Do(func() error {
		var err error
		resp, err = h.activity.Stats()
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

// Types lists the known action types so the dashboard can build its filter
// dropdown without hardcoding them.
func (h *ActivityHandler) Types(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"types": models.AllActivityTypes})
}
