package handlers

import (
	"io"
	"log/slog"

	"github.com/firewatchhq/firewatch-backend/internal/database"
	"github.com/firewatchhq/firewatch-backend/internal/dto"
	"github.com/firewatchhq/firewatch-backend/internal/middleware"
	"github.com/firewatchhq/firewatch-backend/internal/models"
	"github.com/firewatchhq/firewatch-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// IngestHandler serves the upload endpoints: single-record test upload, bulk
// JSON, and spreadsheet processing.
type IngestHandler struct {
	ingest      *services.IngestService
	spreadsheet *services.SpreadsheetService
	activity    *services.ActivityService
}

func NewIngestHandler(ingest *services.IngestService, spreadsheet *services.SpreadsheetService, activity *services.ActivityService) *IngestHandler {
	return &IngestHandler{ingest: ingest, spreadsheet: spreadsheet, activity: activity}
}

// TestUpload ingests a single record, mainly for pipeline smoke checks.
func (h *IngestHandler) TestUpload(c *fiber.Ctx) error {
	var req dto.NewsItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var outcome services.IngestOutcome
	err := database.Do(func() error {
		var err error
		outcome, err = h.ingest.IngestSingle(&req)
		if err != nil {
			return err
		}
		h.logIngestion(c, "test-upload", outcome)
		return nil
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ingestResult(outcome))
}

func (h *IngestHandler) BulkUpload(c *fiber.Ctx) error {
	var req dto.BulkUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.Items) == 0 {
		return fail(c, fiber.StatusBadRequest, "items must not be empty")
	}

	var outcome services.IngestOutcome
	err := database.Do(func() error {
		var err error
		outcome, err = h.ingest.IngestBulk(req.Items)
		if err != nil {
			return err
		}
		h.logIngestion(c, "bulk-upload", outcome)
		return nil
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ingestResult(outcome))
}

// ProcessSpreadsheet accepts a multipart file plus a label form field that
// selects the parsing schema.
func (h *IngestHandler) ProcessSpreadsheet(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "file is required")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "could not open uploaded file")
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "could not read uploaded file")
	}

	// The reporter_name form field doubles as the schema selector: a label
	// containing "911" marks the file as incident data.
	label := c.FormValue("reporter_name")
	meta := services.UploadMeta{
		FromURL:   c.FormValue("from_url"),
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	}

	var outcome services.IngestOutcome
	err = database.Do(func() error {
		var err error
		outcome, err = h.spreadsheet.Process(fileHeader.Filename, label, content, meta)
		if err != nil {
			return err
		}
		h.logIngestion(c, "spreadsheet:"+fileHeader.Filename, outcome)
		return nil
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ingestResult(outcome))
}

// ArchiveUpload stores a file and its metadata without parsing rows.
func (h *IngestHandler) ArchiveUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "file is required")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "could not open uploaded file")
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "could not read uploaded file")
	}

	meta := services.UploadMeta{
		FromURL:   c.FormValue("from_url"),
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	}

	var upload *models.SpreadsheetUpload
	err = database.Do(func() error {
		var err error
		upload, err = h.spreadsheet.Archive(fileHeader.Filename, content, meta, c.FormValue("reporter_name"))
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(upload)
}

// ListUploads returns spreadsheet upload metadata, never file contents.
func (h *IngestHandler) ListUploads(c *fiber.Ctx) error {
	var uploads []models.SpreadsheetUpload
	var total int64
	err := database.Do(func() error {
		var err error
		uploads, total, err = h.spreadsheet.ListUploads(queryInt(c, "page", 1), queryInt(c, "page_size", 20))
		return err
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":   total,
		"uploads": uploads,
	})
}

func (h *IngestHandler) logIngestion(c *fiber.Ctx, source string, outcome services.IngestOutcome) {
	var userID *uint
	if id, err := middleware.UserID(c); err == nil {
		userID = &id
	}
	if err := h.activity.LogIngestion(source, outcome, userID, c.IP(), c.Get("User-Agent")); err != nil {
		slog.Warn("failed to record ingestion activity", "error", err)
	}
}

func ingestResult(outcome services.IngestOutcome) dto.IngestResult {
	return dto.IngestResult{
		Message:        "Upload processed",
		Inserted:       outcome.Inserted,
		Skipped:        outcome.Skipped,
		TotalProcessed: outcome.TotalProcessed,
	}
}
