package handler

import (
	"errors"
	"net/http"

	"github.com/coachdesk/coachdesk-backend/internal/middleware"
	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/coachdesk/coachdesk-backend/internal/response"
	"github.com/coachdesk/coachdesk-backend/internal/service"
	"github.com/coachdesk/coachdesk-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// AttendanceHandler handles attendance marking and reporting endpoints.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// MarkBulk godoc
// POST /api/attendance/bulk
// Marks a whole class session in one call. Re-submitting the same session
// overwrites the earlier records instead of duplicating them.
func (h *AttendanceHandler) MarkBulk(c *gin.Context) {
	var req model.BulkMarkRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if req.MarkedBy == "" {
		if claims := middleware.GetClaims(c); claims != nil {
			req.MarkedBy = claims.Email
		}
	}

	records, err := h.attendanceService.MarkBulk(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"records": records,
		"count":   len(records),
	})
}

// GetByStudent godoc
// GET /api/attendance/student/:email
// Returns one student's records, most recent first.
func (h *AttendanceHandler) GetByStudent(c *gin.Context) {
	email := c.Param("email")

	records, err := h.attendanceService.GetByStudent(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrNoAttendanceRecords) {
			response.Fail(c, http.StatusNotFound, response.ErrNoAttendanceRecords)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"records": records,
		"count":   len(records),
	})
}

// GetStatistics godoc
// GET /api/attendance/stats/:email
// Returns one student's present/absent counts and percentage.
func (h *AttendanceHandler) GetStatistics(c *gin.Context) {
	email := c.Param("email")

	stats, err := h.attendanceService.GetStatistics(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrNoAttendanceRecords) {
			response.Fail(c, http.StatusNotFound, response.ErrNoAttendanceRecords)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// QueryAll godoc
// GET /api/attendance/all?date=&subject=&status=
// The teacher's register view; each filter is optional.
func (h *AttendanceHandler) QueryAll(c *gin.Context) {
	filter := model.AttendanceFilter{
		Date:    c.Query("date"),
		Subject: c.Query("subject"),
		Status:  model.AttendanceStatus(c.Query("status")),
	}

	records, err := h.attendanceService.QueryAll(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"records": records,
		"count":   len(records),
	})
}

// MyAttendance godoc
// GET /api/student/attendance
// The authenticated student's own records and statistics, resolved by the
// email in their token.
func (h *AttendanceHandler) MyAttendance(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	records, err := h.attendanceService.GetByStudent(c.Request.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, service.ErrNoAttendanceRecords) {
			response.Fail(c, http.StatusNotFound, response.ErrNoAttendanceRecords)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	stats, err := h.attendanceService.GetStatistics(c.Request.Context(), claims.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"records": records,
		"stats":   stats,
	})
}
