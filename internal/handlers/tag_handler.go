package handlers

import (
	"github.com/firewatchhq/firewatch-backend/internal/database"
	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/firewatchhq/firewatch-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type TagHandler struct {
	tags *services.TagService
}

func NewTagHandler(tags *services.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

func (h *TagHandler) List(c *fiber.Ctx) error {
	filter := services.TagFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		IsActive: queryBoolPtr(c, "is_active"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 100),
	}

	var resp *dto.TagListResponse
	err := database.Do(func() error {
		var err error
		resp, err = h.tags.List(filter)
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

func (h *TagHandler) Search(c *fiber.Ctx) error {
	var resp []dto.TagSummary
	err := database.Do(func() error {
		var err error
		resp, err = h.tags.Search(c.Query("q"), queryInt(c, "limit", 20))
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

func (h *TagHandler) Categories(c *fiber.Ctx) error {
	var categories []string
	err := database.Do(func() error {
		var err error
		categories, err = h.tags.Categories()
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

func (h *TagHandler) Create(c *fiber.Ctx) error {
	var req dto.TagCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var tag *models.Tag
	err := database.Do(func() error {
		var err error
		tag, err = h.tags.Create(&req)
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

func (h *TagHandler) Update(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid tag id")
	}

	var req dto.TagUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var tag *models.Tag
	err = database.Do(func() error {
		var err error
		tag, err = h.tags.Update(id, &req)
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(tag)
}

func (h *TagHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid tag id")
	}

	err = database.Do(func() error {
		return h.tags.Delete(id)
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Tag deactivated"})
}

func (h *TagHandler) GetForNews(c *fiber.Ctx) error {
	newsID, err := paramUint(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid record id")
	}

	var resp []dto.TagSummary
	err = database.Do(func() error {
		var err error
		resp, err = h.tags.GetForNews(newsID)
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"tags": resp})
}

// AssignForNews replaces the record's tag set with the supplied ids.
func (h *TagHandler) AssignForNews(c *fiber.Ctx) error {
	newsID, err := paramUint(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid record id")
	}

	var req dto.AssignTagsRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var resp []dto.TagSummary
	err = database.Do(func() error {
		var err error
		resp, err = h.tags.ReplaceForNews(newsID, req.TagIDs)
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"tags": resp})
}

func (h *TagHandler) RemoveForNews(c *fiber.Ctx) error {
	newsID, err := paramUint(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid record id")
	}
	tagID, err := paramUint(c, "tagId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid tag id")
	}

	err = database.Do(func() error {
		return h.tags.RemoveForNews(newsID, tagID)
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Tag removed"})
}
