package handlers

import (
	"github.com/firewatchhq/firewatch-backend/internal/database"
	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/middleware"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/firewatchhq/firewatch-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BookmarkHandler struct {
	bookmarks *services.BookmarkService
}

func NewBookmarkHandler(bookmarks *services.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks}
}

func (h *BookmarkHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.BookmarkCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.NewsID == 0 {
		return fail(c, fiber.StatusBadRequest, "news_id is required")
	}

	var resp *dto.BookmarkResponse
	err = database.Do(func() error {
		var err error
		resp, err = h.bookmarks.Create(userID, &req)
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *BookmarkHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var items []dto.BookmarkWithNewsResponse
	var total int64
	err = database.Do(func() error {
		var err error
		items, total, err = h.bookmarks.List(userID, models.DataType(c.Query("data_type")), queryInt(c, "page", 1), queryInt(c, "page_size", 20))
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":     total,
		"bookmarks": items,
	})
}

func (h *BookmarkHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	bookmarkID, err := paramUint(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid bookmark id")
	}

	err = database.Do(func() error {
		return h.bookmarks.Delete(userID, bookmarkID)
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Bookmark removed"})
}

// DeleteByNews removes the caller's bookmark for a record without needing
// the bookmark id.
func (h *BookmarkHandler) DeleteByNews(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	newsID, err := paramUint(c, "newsId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid record id")
	}
	dataType := models.DataType(c.Query("data_type", string(models.DataTypeFireNews)))

	err = database.Do(func() error {
		return h.bookmarks.DeleteByNews(userID, newsID, dataType)
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Bookmark removed"})
}

func (h *BookmarkHandler) Status(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	newsID, err := paramUint(c, "newsId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid record id")
	}
	dataType := models.DataType(c.Query("data_type", string(models.DataTypeFireNews)))

	var resp *dto.BookmarkStatusResponse
	err = database.Do(func() error {
		var err error
		resp, err = h.bookmarks.Status(userID, newsID, dataType)
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}
