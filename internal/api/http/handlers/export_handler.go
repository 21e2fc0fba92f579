package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-portal/internal/service"
)

const (
	exportFilename    = "Staff_Records.xlsx"
	exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler serves the staff roster as a spreadsheet download.
type ExportHandler struct {
	staffService  *service.StaffService
	exportService *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(staffService *service.StaffService, exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{staffService: staffService, exportService: exportService}
}

// Export handles GET /api/admin/export-excel.
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	records, err := h.staffService.ListStaff(c.UserContext())
	if err != nil {
		return err
	}

	buffer, err := h.exportService.ExportToSpreadsheet(records)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, exportContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=`+exportFilename)
	return c.Send(buffer)
}
