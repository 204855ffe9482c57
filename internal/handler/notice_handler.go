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

// NoticeHandler handles the notice board endpoints. Students see a capped
// feed of recent notices; teachers see and manage everything.
type NoticeHandler struct {
	noticeService *service.NoticeService
}

// NewNoticeHandler creates a new NoticeHandler.
func NewNoticeHandler(noticeService *service.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

// List godoc
// GET /api/notices
// Teachers get the full board; students get the most recent notices only.
func (h *NoticeHandler) List(c *gin.Context) {
	limit := 0
	if claims := middleware.GetClaims(c); claims != nil && claims.Role == model.RoleStudent {
		limit = model.StudentNoticeFeedLimit
	}

	notices, err := h.noticeService.List(c.Request.Context(), limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notices": notices})
}

// Create godoc
// POST /api/notices
func (h *NoticeHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateNoticeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	notice, err := h.noticeService.Create(c.Request.Context(), &req, claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"notice": notice})
}

// Update godoc
// PUT /api/notices/:id
func (h *NoticeHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateNoticeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	notice, err := h.noticeService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNoticeNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notice": notice})
}

// Delete godoc
// DELETE /api/notices/:id
func (h *NoticeHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.noticeService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNoticeNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "notice deleted successfully"})
}
