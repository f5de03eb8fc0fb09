package handlers

import (
	"fmt"
	"log/slog"

	"github.com/firewatchhq/firewatch-backend/internal/database"
	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/middleware"
	"github.com/firewatchhq/firewatch-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// NewsHandler serves the record listing, slices and mutations.
type NewsHandler struct {
	news     *services.NewsService
	activity *services.ActivityService
}

func NewNewsHandler(news *services.NewsService, activity *services.ActivityService) *NewsHandler {
	return &NewsHandler{news: news, activity: activity}
}

func parseFilter(c *fiber.Ctx) services.NewsFilter {
	return services.NewsFilter{
		County:       c.Query("county"),
		State:        c.Query("state"),
		ReporterName: c.Query("reporter_name"),
		Search:       c.Query("search"),
		Status:       c.Query("status"),
		StartDate:    c.Query("start_date"),
		EndDate:      c.Query("end_date"),
		IsVerified:   queryBoolPtr(c, "is_verified"),
		IsHidden:     queryBoolPtr(c, "is_hidden"),
		DataType:     c.Query("data_type"),
		Page:         queryInt(c, "page", 1),
		PageSize:     queryInt(c, "page_size", 10),
		SortBy:       c.Query("sort_by"),
		SortOrder:    c.Query("sort_order"),
	}
}

func (h *NewsHandler) list(c *fiber.Ctx, slice services.Slice) error {
	filter := parseFilter(c)
	var resp *dto.NewsListResponse
	err := database.Do(func() error {
		var err error
		resp, err = h.news.List(filter, slice)
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

func (h *NewsHandler) List(c *fiber.Ctx) error { return h.list(c, services.SliceNone) }

// slice views

func (h *NewsHandler) AllLeads(c *fiber.Ctx) error      { return h.list(c, services.SliceAllLeads) }
func (h *NewsHandler) Tweets(c *fiber.Ctx) error        { return h.list(c, services.SliceTweets) }
func (h *NewsHandler) Web(c *fiber.Ctx) error           { return h.list(c, services.SliceWeb) }
func (h *NewsHandler) Uncategorized(c *fiber.Ctx) error { return h.list(c, services.SliceUncategorized) }
func (h *NewsHandler) Hidden(c *fiber.Ctx) error        { return h.list(c, services.SliceHidden) }
func (h *NewsHandler) Emergency(c *fiber.Ctx) error     { return h.list(c, services.SliceEmergency) }

func (h *NewsHandler) Get(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid record id")
	}

	var resp dto.NewsResponse
	err = database.Do(func() error {
		record, err := h.news.Get(id)
		if err != nil {
			return err
		}
		resp = dto.NewNewsResponse(record)
		return nil
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

func (h *NewsHandler) Search(c *fiber.Ctx) error {
	title := c.Query("title")
	if title == "" {
		return fail(c, fiber.StatusBadRequest, "title query parameter is required")
	}

	var resp *dto.NewsListResponse
	err := database.Do(func() error {
		var err error
		resp, err = h.news.SearchByTitle(title, queryInt(c, "page", 1), queryInt(c, "page_size", 10))
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

func (h *NewsHandler) Reporters(c *fiber.Ctx) error {
	var names []string
	err := database.Do(func() error {
		var err error
		names, err = h.news.Reporters()
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.ReportersResponse{Reporters: names})
}

func (h *NewsHandler) Update(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid record id")
	}

	var req dto.UpdateNewsRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var resp *dto.NewsResponse
	err = database.Do(func() error {
		var err error
		resp, err = h.news.Update(id, &req)
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

func (h *NewsHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid record id")
	}

	actor := middleware.CurrentUser(c)

	err = database.Do(func() error {
		if err := h.news.Delete(id); err != nil {
			return err
		}
		if logErr := h.activity.LogNewsDeletion(fmt.Sprintf("Deleted record %d", id), actor); logErr != nil {
			slog.Warn("failed to record deletion activity", "error", logErr)
		}
		return nil
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Record deleted"})
}

// DeleteAll wipes the whole table. Admin only; the route layer enforces it.
func (h *NewsHandler) DeleteAll(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	var deleted int64
	err := database.Do(func() error {
		var err error
		deleted, err = h.news.DeleteAll()
		if err != nil {
			return err
		}
		if logErr := h.activity.LogNewsDeletion(fmt.Sprintf("Deleted all records (%d rows)", deleted), actor); logErr != nil {
			slog.Warn("failed to record deletion activity", "error", logErr)
		}
		return nil
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: fmt.Sprintf("Deleted %d records", deleted)})
}

func (h *NewsHandler) ToggleVerified(c *fiber.Ctx) error {
	return h.toggle(c, h.news.ToggleVerified)
}

func (h *NewsHandler) ToggleHidden(c *fiber.Ctx) error {
	return h.toggle(c, h.news.ToggleHidden)
}

func (h *NewsHandler) toggle(c *fiber.Ctx, fn func(uint) (*dto.NewsResponse, error)) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid record id")
	}

	var resp *dto.NewsResponse
	err = database.Do(func() error {
		var err error
		resp, err = fn(id)
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}
