package handler

import (
	"net/http"

	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/coachdesk/coachdesk-backend/internal/response"
	"github.com/coachdesk/coachdesk-backend/internal/service"
	"github.com/coachdesk/coachdesk-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// ExportHandler handles attendance report downloads. Each request renders a
// fresh report file, streams it as an attachment, and removes it afterwards.
type ExportHandler struct {
	attendanceService *service.AttendanceService
	exportService     *service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(attendanceService *service.AttendanceService, exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		attendanceService: attendanceService,
		exportService:     exportService,
	}
}

// ExportTxt godoc
// GET /api/attendance/export/txt
// Downloads the full attendance register as a text report.
func (h *ExportHandler) ExportTxt(c *gin.Context) {
	records, err := h.attendanceService.ListAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if len(records) == 0 {
		response.Fail(c, http.StatusNotFound, response.ErrNothingToExport)
		return
	}

	h.sendReport(c, h.exportService.BuildReport(records, ""))
}

// ExportDateRange godoc
// POST /api/attendance/export/date-range
// Downloads the records between two dates (end inclusive) as a text report
// with per-student subtotals.
func (h *ExportHandler) ExportDateRange(c *gin.Context) {
	var req model.DateRangeExportRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	records, err := h.attendanceService.ListRange(c.Request.Context(), req.StartDate, req.EndDate)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if len(records) == 0 {
		response.Fail(c, http.StatusNotFound, response.ErrNothingToExport)
		return
	}

	h.sendReport(c, h.exportService.BuildReport(records, req.StartDate+" to "+req.EndDate))
}

// sendReport writes the report to a transient file, streams it as a download
// and removes it on every exit path.
func (h *ExportHandler) sendReport(c *gin.Context, content string) {
	path, err := h.exportService.WriteReportFile(content)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer h.exportService.Cleanup(path)

	c.FileAttachment(path, "attendance_report.txt")
}
