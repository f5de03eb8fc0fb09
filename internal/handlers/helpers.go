package handlers

import (
	"errors"
	"strconv"

	"github.com/firewatchhq/firewatch-backend/internal/database"
	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// serviceError maps service sentinels onto HTTP statuses. Anything
// unrecognized becomes a 500 with a generic body.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, database.ErrUnavailable):
		return fail(c, fiber.StatusServiceUnavailable, "Database temporarily unavailable, please retry")
	case errors.Is(err, services.ErrNewsNotFound),
		errors.Is(err, services.ErrTagNotFound),
		errors.Is(err, services.ErrBookmarkNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken):
		return fail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		return fail(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrSelfModification),
		errors.Is(err, services.ErrLastAdmin):
		return fail(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrContentRequired),
		errors.Is(err, services.ErrTagNameEmpty),
		errors.Is(err, services.ErrTagNameTaken),
		errors.Is(err, services.ErrTagInactive),
		errors.Is(err, services.ErrBookmarkExists),
		errors.Is(err, services.ErrUnsupportedFormat):
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	var missing *services.MissingColumnsError
	if errors.As(err, &missing) {
		return fail(c, fiber.StatusBadRequest, missing.Error())
	}

	return fail(c, fiber.StatusInternalServerError, "Internal server error")
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}

func queryBoolPtr(c *fiber.Ctx, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func paramUint(c *fiber.Ctx, key string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(key), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
