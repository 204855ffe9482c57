package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/coachdesk/coachdesk-backend/internal/middleware"
	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/coachdesk/coachdesk-backend/internal/repository"
	"github.com/coachdesk/coachdesk-backend/internal/response"
	"github.com/coachdesk/coachdesk-backend/internal/service"
	"github.com/coachdesk/coachdesk-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// TimetableHandler handles the weekly schedule endpoints. Reads are open to
// both roles; writes are teacher-only.
type TimetableHandler struct {
	timetableService *service.TimetableService
	authService      *service.AuthService
}

// NewTimetableHandler creates a new TimetableHandler.
func NewTimetableHandler(timetableService *service.TimetableService, authService *service.AuthService) *TimetableHandler {
	return &TimetableHandler{
		timetableService: timetableService,
		authService:      authService,
	}
}

// List godoc
// GET /api/timetable
func (h *TimetableHandler) List(c *gin.Context) {
	entries, err := h.timetableService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"timetable": entries})
}

// Create godoc
// POST /api/timetable
func (h *TimetableHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateTimetableRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	teacherName := claims.Email
	if user, err := h.authService.GetUser(c.Request.Context(), claims.UserID); err == nil {
		teacherName = user.Name
	}

	entry, err := h.timetableService.Create(c.Request.Context(), &req, claims.UserID, teacherName)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"entry": entry})
}

// Update godoc
// PUT /api/timetable/:id
func (h *TimetableHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateTimetableRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	entry, err := h.timetableService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrTimetableNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"entry": entry})
}

// Delete godoc
// DELETE /api/timetable/:id
func (h *TimetableHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.timetableService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrTimetableNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "timetable entry deleted successfully"})
}
