package middleware

import (
	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RoleRequired loads the authenticated user from the database and rejects
// the request unless their role is one of the allowed set. The loaded user
// is stashed in locals for handlers that need the actor (audit logging).
func RoleRequired(db *gorm.DB, roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *fiber.Ctx) error {
		userID, err := UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !user.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Account is inactive",
			})
		}
		if !allowed[user.Role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Insufficient role",
			})
		}

		c.Locals("current_user", &user)
		return c.Next()
	}
}

// AdminRequired is RoleRequired narrowed to admins.
func AdminRequired(db *gorm.DB) fiber.Handler {
	return RoleRequired(db, models.RoleAdmin)
}

// CurrentUser returns the user loaded by RoleRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	if u, ok := c.Locals("current_user").(*models.User); ok {
		return u
	}
	return nil
}
