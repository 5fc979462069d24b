package handler

import (
	"bytes"
	"errors"
	"net/url"
	"path"
	"time"

	"go-datamonitor/internal/archive"
	"go-datamonitor/internal/export"
	"go-datamonitor/internal/metrics"
	"go-datamonitor/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ExportHandler struct {
	measurements service.MeasurementService
	store        archive.Store // nil when archiving is disabled
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewExportHandler(measurements service.MeasurementService, store archive.Store, m *metrics.Metrics) *ExportHandler {
	return &ExportHandler{
		measurements: measurements,
		store:        store,
		metrics:      m,
		now:          time.Now,
	}
}

// render loads the filtered measurements and encodes them.
func (h *ExportHandler) render(c *fiber.Ctx, format string) ([]byte, string, error) {
	filter, err := filterFromQuery(c)
	if err != nil {
		return nil, "", fiber.NewError(400, err.Error())
	}
	ms, err := h.measurements.List(filter)
	if err != nil {
		return nil, "", err
	}
	body, err := export.Render(format, ms)
	if err != nil {
		var unsupported *export.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			return nil, "", fiber.NewError(400, err.Error())
		}
		return nil, "", err
	}
	return body, export.FileName(format, h.now()), nil
}

func (h *ExportHandler) renderFailed(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	return fail(c, err, "Failed to export data")
}

// Download streams the export as an attachment.
// GET /api/v1/exports/:format (csv | xlsx), same filters as the list.
func (h *ExportHandler) Download(c *fiber.Ctx) error {
	format := c.Params("format")
	body, name, err := h.render(c, format)
	if err != nil {
		return h.renderFailed(c, err)
	}
	h.metrics.Exported(format, "download")

	c.Set(fiber.HeaderContentType, export.ContentType(format))
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(body)
}

// Archive stores the export and returns where it can be fetched from.
// POST /api/v1/exports/archive?format=csv|xlsx
func (h *ExportHandler) Archive(c *fiber.Ctx) error {
	if h.store == nil {
		return c.Status(503).JSON(fiber.Map{"error": "Export archive is not configured"})
	}

	format := c.Query("format", export.FormatCSV)
	body, name, err := h.render(c, format)
	if err != nil {
		return h.renderFailed(c, err)
	}

	ctx := c.UserContext()
	key := archive.NewKey(name, h.now())
	obj, err := h.store.Put(ctx, key, bytes.NewReader(body), export.ContentType(format))
	if err != nil {
		return fail(c, err, "Failed to archive export")
	}
	link, err := h.store.URL(ctx, key, archive.DefaultURLExpiry)
	if err != nil {
		return fail(c, err, "Failed to archive export")
	}
	h.metrics.Exported(format, h.store.Driver())

	return c.Status(201).JSON(fiber.Map{
		"message": "Export archived",
		"data":    obj,
		"url":     link,
	})
}

// ListArchive returns every archived export.
// GET /api/v1/exports/archive
func (h *ExportHandler) ListArchive(c *fiber.Ctx) error {
	if h.store == nil {
		return c.Status(503).JSON(fiber.Map{"error": "Export archive is not configured"})
	}
	objs, err := h.store.List(c.UserContext(), "exports/")
	if err != nil {
		return fail(c, err, "Failed to list archive")
	}
	return c.JSON(objs)
}

// GetArchived serves an archived file. Used by the memory driver, whose
// URLs point back at this route.
// GET /api/v1/exports/archive/*
func (h *ExportHandler) GetArchived(c *fiber.Ctx) error {
	if h.store == nil {
		return c.Status(503).JSON(fiber.Map{"error": "Export archive is not configured"})
	}
	key, err := url.PathUnescape(c.Params("*"))
	if err != nil || key == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid archive key"})
	}

	obj, rc, err := h.store.Get(c.UserContext(), key)
	if err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return fail(c, err, "Failed to read archive")
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		return fail(c, err, "Failed to read archive")
	}
	c.Set(fiber.HeaderContentType, obj.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+path.Base(key)+`"`)
	return c.Send(buf.Bytes())
}
